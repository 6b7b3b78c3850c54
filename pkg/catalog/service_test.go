// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package catalog

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/canonical/academy-service/internal/db"
	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/storage"
	"github.com/canonical/academy-service/internal/tenancy"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

//go:generate mockgen -build_flags=--mod=mod -package catalog -destination ./mock_catalog.go -source=./interfaces.go

const tenantID = "0192f5c4-7f3a-7b3e-9a10-5d1c2e3f4a5b"

var (
	admin      = &types.Membership{ID: "m-admin", TenantID: tenantID, PrincipalID: "alice", Role: types.RoleAdmin}
	instructor = &types.Membership{ID: "m-instructor", TenantID: tenantID, PrincipalID: "bob", Role: types.RoleInstructor}
	student    = &types.Membership{ID: "m-student", TenantID: tenantID, PrincipalID: "carol", Role: types.RoleStudent}
)

func newTestService(s StorageInterface) *Service {
	logger := logging.NewNoopLogger()
	return NewService(s, tracing.NewNoopTracer(), monitoring.NewNoopMonitor("test", logger), logger)
}

func memberContext(t *testing.T, m *types.Membership) context.Context {
	t.Helper()

	ctx, err := tenancy.WithTenant(context.Background(), tenantID)
	if err != nil {
		t.Fatalf("WithTenant() error = %v", err)
	}

	return tenancy.WithMembership(ctx, m)
}

func TestServiceListCoursesVisibility(t *testing.T) {
	page := db.Page{Number: 2, Size: 10}

	tests := []struct {
		name       string
		membership *types.Membership
		wantFilter types.CourseFilter
	}{
		{name: "anonymous", wantFilter: types.CourseFilter{PublishedOnly: true}},
		{name: "student", membership: student, wantFilter: types.CourseFilter{PublishedOnly: true}},
		{name: "instructor", membership: instructor, wantFilter: types.CourseFilter{DraftsOf: "m-instructor"}},
		{name: "admin", membership: admin, wantFilter: types.CourseFilter{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			courses := []*types.Course{{ID: "c-1", Published: true}}

			mockStorage := NewMockStorageInterface(ctrl)
			mockStorage.EXPECT().ListCourses(gomock.Any(), tt.wantFilter, page).Return(courses, nil)
			mockStorage.EXPECT().CountCourses(gomock.Any(), tt.wantFilter).Return(uint64(11), nil)

			got, total, err := newTestService(mockStorage).ListCourses(memberContext(t, tt.membership), page)
			if err != nil {
				t.Fatalf("ListCourses() error = %v", err)
			}

			if len(got) != 1 || total != 11 {
				t.Errorf("ListCourses() = %d courses, total %d", len(got), total)
			}
		})
	}
}

func TestServiceListCoursesPropagatesTenantToFanOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	check := func(ctx context.Context) {
		if id, ok := tenancy.FromContext(ctx); !ok || id != tenantID {
			t.Errorf("fan-out context tenant = %q, %v", id, ok)
		}
	}

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().ListCourses(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ types.CourseFilter, _ db.Page) ([]*types.Course, error) {
			check(ctx)
			return nil, nil
		},
	)
	mockStorage.EXPECT().CountCourses(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ types.CourseFilter) (uint64, error) {
			check(ctx)
			return 0, nil
		},
	)

	if _, _, err := newTestService(mockStorage).ListCourses(memberContext(t, student), db.Page{Number: 1, Size: 25}); err != nil {
		t.Fatalf("ListCourses() error = %v", err)
	}
}

func TestServiceListCoursesCountFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	boom := errors.New("boom")

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().ListCourses(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	mockStorage.EXPECT().CountCourses(gomock.Any(), gomock.Any()).Return(uint64(0), boom)

	_, _, err := newTestService(mockStorage).ListCourses(memberContext(t, nil), db.Page{Number: 1, Size: 25})
	if !errors.Is(err, boom) {
		t.Errorf("ListCourses() error = %v, want %v", err, boom)
	}
}

func TestServiceGetCourse(t *testing.T) {
	draft := &types.Course{ID: "c-draft", InstructorID: "m-instructor", Published: false}
	published := &types.Course{ID: "c-live", Published: true}

	tests := []struct {
		name       string
		membership *types.Membership
		course     *types.Course
		wantErr    error
	}{
		{name: "published for anonymous", course: published},
		{name: "draft for anonymous", course: draft, wantErr: storage.ErrNotFound},
		{name: "draft for student", membership: student, course: draft, wantErr: storage.ErrNotFound},
		{name: "draft for its instructor", membership: instructor, course: draft},
		{name: "draft for another instructor", membership: &types.Membership{ID: "m-other", Role: types.RoleInstructor}, course: draft, wantErr: storage.ErrNotFound},
		{name: "draft for admin", membership: admin, course: draft},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockStorage.EXPECT().GetCourse(gomock.Any(), tt.course.ID).Return(tt.course, nil)

			_, err := newTestService(mockStorage).GetCourse(memberContext(t, tt.membership), tt.course.ID)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("GetCourse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestServiceCreateCourses(t *testing.T) {
	tests := []struct {
		name       string
		membership *types.Membership
		input      []*types.Course
		setupMocks func(*MockStorageInterface)
		wantSlugs  []string
		wantErr    error
	}{
		{
			name:       "batch owned by the caller",
			membership: instructor,
			input:      []*types.Course{{Title: "Intro to Go"}, {Title: "Concurrency", Slug: "go-concurrency"}},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().CreateCourses(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, courses ...*types.Course) ([]*types.Course, error) {
						for _, c := range courses {
							if c.InstructorID != "m-instructor" {
								t.Errorf("instructor = %q, want m-instructor", c.InstructorID)
							}
						}
						return courses, nil
					},
				)
			},
			wantSlugs: []string{"intro-to-go", "go-concurrency"},
		},
		{
			name:       "missing title",
			membership: instructor,
			input:      []*types.Course{{Title: " "}},
			setupMocks: func(s *MockStorageInterface) {},
			wantErr:    httptypes.ErrInvalidInput,
		},
		{
			name:       "bad slug",
			membership: admin,
			input:      []*types.Course{{Title: "Go", Slug: "Go Course"}},
			setupMocks: func(s *MockStorageInterface) {},
			wantErr:    httptypes.ErrInvalidInput,
		},
		{
			name:       "no membership attached",
			input:      []*types.Course{{Title: "Go"}},
			setupMocks: func(s *MockStorageInterface) {},
			wantErr:    tenancy.ErrMembershipNotAttached,
		},
		{
			name:       "duplicate slug",
			membership: admin,
			input:      []*types.Course{{Title: "Go"}},
			setupMocks: func(s *MockStorageInterface) {
				s.EXPECT().CreateCourses(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)
			},
			wantErr: storage.ErrDuplicateKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			tt.setupMocks(mockStorage)

			got, err := newTestService(mockStorage).CreateCourses(memberContext(t, tt.membership), tt.input...)

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CreateCourses() error = %v, want %v", err, tt.wantErr)
			}

			for i, slug := range tt.wantSlugs {
				if got[i].Slug != slug {
					t.Errorf("slug[%d] = %q, want %q", i, got[i].Slug, slug)
				}
			}
		})
	}
}

func TestServiceUpdateCourseOwnership(t *testing.T) {
	owned := &types.Course{ID: "c-1", InstructorID: "m-instructor", Published: true}
	foreign := &types.Course{ID: "c-2", InstructorID: "m-someone", Published: true}

	tests := []struct {
		name       string
		membership *types.Membership
		course     *types.Course
		wantUpdate bool
		wantErr    error
	}{
		{name: "instructor edits own course", membership: instructor, course: owned, wantUpdate: true},
		{name: "instructor edits someone else's course", membership: instructor, course: foreign, wantErr: tenancy.ErrRoleNotPermitted},
		{name: "admin edits any course", membership: admin, course: foreign, wantUpdate: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			patch := &types.Course{ID: tt.course.ID, Title: "Renamed"}

			mockStorage := NewMockStorageInterface(ctrl)
			mockStorage.EXPECT().GetCourse(gomock.Any(), tt.course.ID).Return(tt.course, nil)
			if tt.wantUpdate {
				mockStorage.EXPECT().UpdateCourse(gomock.Any(), patch, []string{"title"}).Return(patch, nil)
			}

			_, err := newTestService(mockStorage).UpdateCourse(memberContext(t, tt.membership), patch, []string{"title"})
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("UpdateCourse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestServiceCreateLessonOnForeignCourse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// The scoped storage cannot see courses of another tenant.
	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().GetCourse(gomock.Any(), "c-elsewhere").Return(nil, storage.ErrNotFound)

	_, err := newTestService(mockStorage).CreateLesson(memberContext(t, admin), &types.Lesson{CourseID: "c-elsewhere", Title: "Lesson 1"})
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("CreateLesson() error = %v, want %v", err, storage.ErrNotFound)
	}
}

func TestServiceEnroll(t *testing.T) {
	tests := []struct {
		name       string
		course     *types.Course
		getErr     error
		wantEnroll bool
		wantErr    error
	}{
		{name: "published course", course: &types.Course{ID: "c-1", Published: true}, wantEnroll: true},
		{name: "draft course", course: &types.Course{ID: "c-1"}, wantErr: storage.ErrNotFound},
		{name: "course of another tenant", getErr: storage.ErrNotFound, wantErr: storage.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStorage := NewMockStorageInterface(ctrl)
			mockStorage.EXPECT().GetCourse(gomock.Any(), "c-1").Return(tt.course, tt.getErr)
			if tt.wantEnroll {
				mockStorage.EXPECT().CreateEnrollment(gomock.Any(), "c-1", "m-student").
					Return(&types.Enrollment{CourseID: "c-1", MembershipID: "m-student"}, nil)
			}

			_, err := newTestService(mockStorage).Enroll(memberContext(t, student), "c-1")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Enroll() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestServiceListEnrollmentsOfCaller(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStorage := NewMockStorageInterface(ctrl)
	mockStorage.EXPECT().ListEnrollments(gomock.Any(), "m-student").Return([]*types.Enrollment{}, nil)

	if _, err := newTestService(mockStorage).ListEnrollments(memberContext(t, student)); err != nil {
		t.Fatalf("ListEnrollments() error = %v", err)
	}
}
