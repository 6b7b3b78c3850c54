// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package db

import (
	"math"
	"net/url"
	"strconv"
)

const (
	DefaultPageSize uint64 = 25
	MaxPageSize     uint64 = 100

	// MaxPageNumber keeps every offset within the bigint range postgres accepts.
	MaxPageNumber = math.MaxInt64 / MaxPageSize
)

// Page is a 1-based page request.
type Page struct {
	Number uint64 `json:"page"`
	Size   uint64 `json:"size"`
}

// Offset saturates at the last whole page below math.MaxInt64.
func (p Page) Offset() uint64 {
	if p.Number == 0 || p.Size == 0 {
		return 0
	}

	skip := p.Number - 1
	if limit := math.MaxInt64 / p.Size; skip > limit {
		skip = limit
	}

	return skip * p.Size
}

func (p Page) Limit() uint64 {
	return p.Size
}

// PageFromQuery reads the page and size query parameters, anything unparsable or out
// of range falls back to the first page of DefaultPageSize items. Size is capped at MaxPageSize
// and page at MaxPageNumber.
func PageFromQuery(q url.Values) Page {
	p := Page{Number: 1, Size: DefaultPageSize}

	if n, err := strconv.ParseUint(q.Get("page"), 10, 64); err == nil && n > 0 {
		p.Number = min(n, MaxPageNumber)
	}

	if s, err := strconv.ParseUint(q.Get("size"), 10, 64); err == nil && s > 0 {
		p.Size = min(s, MaxPageSize)
	}

	return p
}
