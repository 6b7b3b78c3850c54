// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope of every JSON body the API returns.
type Response struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Status  int         `json:"status"`
	Meta    *Pagination `json:"_meta,omitempty"`
}

type Pagination struct {
	Page  uint64 `json:"page"`
	Size  uint64 `json:"size"`
	Total uint64 `json:"total"`
}

// WriteJSON writes data wrapped in a Response with the given status.
func WriteJSON(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, Response{Data: data, Message: message, Status: status})
}

// WritePage writes one page of a listing along with its position.
func WritePage(w http.ResponseWriter, data interface{}, meta Pagination) {
	write(w, Response{Data: data, Message: "ok", Status: http.StatusOK, Meta: &meta})
}

func write(w http.ResponseWriter, r Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(r.Status)

	_ = json.NewEncoder(w).Encode(r)
}
