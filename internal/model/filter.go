// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// =============================================================================
// SORT ORDER
// =============================================================================

// SortOrder selects how the server orders the task listing.
type SortOrder string

const (
	SortNone          SortOrder = ""
	SortCreatedDesc   SortOrder = "createdAt,desc"
	SortCreatedAsc    SortOrder = "createdAt,asc"
	SortUpdatedDesc   SortOrder = "updatedAt,desc"
	SortTitleAsc      SortOrder = "title,asc"
	SortStatusAsc     SortOrder = "status,asc"
)

// sortCycle is the order in which the UI cycles through sorts.
var sortCycle = []SortOrder{
	SortNone,
	SortCreatedDesc,
	SortCreatedAsc,
	SortUpdatedDesc,
	SortTitleAsc,
	SortStatusAsc,
}

// Next returns the sort order that follows s in the UI cycle.
func (s SortOrder) Next() SortOrder {
	for i, candidate := range sortCycle {
		if candidate == s {
			return sortCycle[(i+1)%len(sortCycle)]
		}
	}
	return SortNone
}

// Label returns a short label for the status bar.
func (s SortOrder) Label() string {
	switch s {
	case SortNone:
		return "server default"
	case SortCreatedDesc:
		return "newest first"
	case SortCreatedAsc:
		return "oldest first"
	case SortUpdatedDesc:
		return "recently updated"
	case SortTitleAsc:
		return "title A-Z"
	case SortStatusAsc:
		return "by status"
	default:
		return string(s)
	}
}

// =============================================================================
// TASK FILTER
// =============================================================================

// TaskFilter is the listing query state: pagination, free-text search,
// status filter and sort. The zero value means "first page, server defaults".
//
// The filter is passed through to the server unmodified; the client performs
// no filtering of its own.
type TaskFilter struct {
	Page   int        // 1-based; 0 means unset
	Size   int        // page size; 0 means unset
	Query  string     // free-text search
	Status TaskStatus // empty means all statuses
	Sort   SortOrder  // empty means server default
}

// Values serializes the filter as URL query parameters.
// Parameters are included only when set, so an empty filter produces an
// empty query string rather than a string of defaults.
func (f TaskFilter) Values() url.Values {
	v := url.Values{}
	if f.Page > 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Size > 0 {
		v.Set("size", strconv.Itoa(f.Size))
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		v.Set("q", q)
	}
	if f.Status != "" {
		v.Set("status", string(f.Status))
	}
	if f.Sort != "" {
		v.Set("sort", string(f.Sort))
	}
	return v
}

// Encode returns the filter as a raw query string ("" when nothing is set).
func (f TaskFilter) Encode() string {
	return f.Values().Encode()
}

// String describes the active filter for the status bar.
func (f TaskFilter) String() string {
	var parts []string
	if f.Query != "" {
		parts = append(parts, fmt.Sprintf("q=%q", f.Query))
	}
	if f.Status != "" {
		parts = append(parts, "status="+f.Status.Label())
	}
	if f.Sort != "" {
		parts = append(parts, "sort="+f.Sort.Label())
	}
	if len(parts) == 0 {
		return "no filter"
	}
	return strings.Join(parts, " ")
}
