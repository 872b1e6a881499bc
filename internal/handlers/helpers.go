package handlers

import (
	"net/http"
	"strconv"
)

const (
	defaultLimit = 100
	maxLimit     = 200
)

// pagination reads offset/limit from the query string. Limit is capped so a
// caller can no longer request an unbounded result set.
func pagination(r *http.Request) (offset, limit int) {
	limit = defaultLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			offset = n
		}
	}
	return offset, limit
}

// pathID parses the {id} segment of the matched route.
func pathID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
