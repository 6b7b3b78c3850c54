// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/canonical/academy-service/internal/db"
	httptypes "github.com/canonical/academy-service/internal/http/types"
	"github.com/canonical/academy-service/internal/logging"
	"github.com/canonical/academy-service/internal/monitoring"
	"github.com/canonical/academy-service/internal/tracing"
	"github.com/canonical/academy-service/internal/types"
)

const maxBatch = 50

type courseRequest struct {
	Slug        string `json:"slug" validate:"omitempty,max=80"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=4000"`
	Published   bool   `json:"published"`
}

type updateCourseRequest struct {
	Slug        *string `json:"slug" validate:"omitempty,min=1,max=80"`
	Title       *string `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=4000"`
	Published   *bool   `json:"published"`
}

type lessonRequest struct {
	Title    string `json:"title" validate:"required,max=200"`
	Position int    `json:"position" validate:"gte=0"`
}

type API struct {
	service   ServiceInterface
	guard     Guard
	validator *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func (a *API) RegisterEndpoints(mux chi.Router) {
	mux.Group(func(r chi.Router) {
		r.Use(a.guard.Public())

		r.Get("/api/v0/courses", a.handleListCourses)
		r.Get("/api/v0/courses/{courseID}", a.handleGetCourse)
		r.Get("/api/v0/courses/{courseID}/lessons", a.handleListLessons)
	})

	mux.Group(func(r chi.Router) {
		r.Use(a.guard.RequireMember())

		r.Post("/api/v0/courses/{courseID}/enrollments", a.handleEnroll)
		r.Get("/api/v0/enrollments", a.handleListEnrollments)

		r.With(a.guard.RequireRole(types.RoleAdmin, types.RoleInstructor)).Group(func(r chi.Router) {
			r.Post("/api/v0/courses", a.handleCreateCourses)
			r.Patch("/api/v0/courses/{courseID}", a.handleUpdateCourse)
			r.Post("/api/v0/courses/{courseID}/lessons", a.handleCreateLesson)
		})

		r.With(a.guard.RequireRole(types.RoleAdmin)).Delete("/api/v0/courses/{courseID}", a.handleDeleteCourse)
	})
}

func (a *API) validate(v interface{}) error {
	if err := a.validator.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", httptypes.ErrInvalidInput, err)
	}
	return nil
}

func (a *API) decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: malformed body", httptypes.ErrInvalidInput)
	}
	return a.validate(v)
}

// decodeCourses accepts either a single course object or an array of them.
func (a *API) decodeCourses(r *http.Request) ([]*courseRequest, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable body", httptypes.ErrInvalidInput)
	}

	body = bytes.TrimSpace(body)
	reqs := make([]*courseRequest, 0, 1)

	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &reqs); err != nil {
			return nil, fmt.Errorf("%w: malformed body", httptypes.ErrInvalidInput)
		}
	} else {
		req := new(courseRequest)
		if err := json.Unmarshal(body, req); err != nil {
			return nil, fmt.Errorf("%w: malformed body", httptypes.ErrInvalidInput)
		}
		reqs = append(reqs, req)
	}

	if len(reqs) == 0 || len(reqs) > maxBatch {
		return nil, fmt.Errorf("%w: between 1 and %d courses per request", httptypes.ErrInvalidInput, maxBatch)
	}

	for _, req := range reqs {
		if req == nil {
			return nil, fmt.Errorf("%w: null course", httptypes.ErrInvalidInput)
		}
		if err := a.validate(req); err != nil {
			return nil, err
		}
	}

	return reqs, nil
}

func (a *API) handleListCourses(w http.ResponseWriter, r *http.Request) {
	page := db.PageFromQuery(r.URL.Query())

	courses, total, err := a.service.ListCourses(r.Context(), page)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WritePage(w, courses, httptypes.Pagination{Page: page.Number, Size: page.Size, Total: total})
}

func (a *API) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	c, err := a.service.GetCourse(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "ok", c)
}

func (a *API) handleCreateCourses(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "catalog.API.handleCreateCourses")
	defer span.End()

	reqs, err := a.decodeCourses(r)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	courses := make([]*types.Course, 0, len(reqs))
	for _, req := range reqs {
		courses = append(courses, &types.Course{
			Slug:        req.Slug,
			Title:       req.Title,
			Description: req.Description,
			Published:   req.Published,
		})
	}

	created, err := a.service.CreateCourses(ctx, courses...)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, "courses created", created)
}

func (a *API) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	req := new(updateCourseRequest)
	if err := a.decode(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	c := &types.Course{ID: chi.URLParam(r, "courseID")}
	paths := make([]string, 0, 4)

	if req.Slug != nil {
		c.Slug = *req.Slug
		paths = append(paths, "slug")
	}
	if req.Title != nil {
		c.Title = *req.Title
		paths = append(paths, "title")
	}
	if req.Description != nil {
		c.Description = *req.Description
		paths = append(paths, "description")
	}
	if req.Published != nil {
		c.Published = *req.Published
		paths = append(paths, "published")
	}

	updated, err := a.service.UpdateCourse(r.Context(), c, paths)
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "course updated", updated)
}

func (a *API) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	if err := a.service.DeleteCourse(r.Context(), chi.URLParam(r, "courseID")); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "course deleted", nil)
}

func (a *API) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := a.service.ListLessons(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "ok", lessons)
}

func (a *API) handleCreateLesson(w http.ResponseWriter, r *http.Request) {
	req := new(lessonRequest)
	if err := a.decode(r, req); err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	l, err := a.service.CreateLesson(r.Context(), &types.Lesson{
		CourseID: chi.URLParam(r, "courseID"),
		Title:    req.Title,
		Position: req.Position,
	})
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, "lesson created", l)
}

func (a *API) handleEnroll(w http.ResponseWriter, r *http.Request) {
	e, err := a.service.Enroll(r.Context(), chi.URLParam(r, "courseID"))
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusCreated, "enrolled", e)
}

func (a *API) handleListEnrollments(w http.ResponseWriter, r *http.Request) {
	enrollments, err := a.service.ListEnrollments(r.Context())
	if err != nil {
		httptypes.WriteError(w, err, a.logger)
		return
	}

	httptypes.WriteJSON(w, http.StatusOK, "ok", enrollments)
}

func NewAPI(service ServiceInterface, guard Guard, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.guard = guard
	a.validator = validator.New(validator.WithRequiredStructEnabled())

	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}
