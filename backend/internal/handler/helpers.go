package handler

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/yamdb-dev/yamdb/shared/errors"
)

const defaultPage int = 1

// maxPage bounds the offset so (page-1)*size cannot overflow.
const maxPage int = math.MaxInt32

// parseIntParam parses an integer parameter from a string and returns a meaningful error
func parseIntParam(param string, paramName string) (int, error) {
	val, err := strconv.Atoi(param)
	if err != nil {
		return 0, errors.Validation(fmt.Sprintf("invalid %s: must be an integer", paramName))
	}
	return val, nil
}

// idParam reads a positive numeric path parameter. Anything else can't name
// an existing row, so it is reported as not found.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, errors.NotFound(fmt.Sprintf("No %s matches the given query", name))
	}
	return id, nil
}

func pageParam(r *http.Request) (int, error) {
	pageQuery := r.URL.Query().Get("page")
	if pageQuery == "" {
		return defaultPage, nil
	}
	page, err := parseIntParam(pageQuery, "page")
	if err != nil {
		return 0, err
	}
	if page < 1 {
		return 0, errors.Validation("invalid page: must be positive")
	}
	if page > maxPage {
		return 0, errors.Validation(fmt.Sprintf("invalid page: must not exceed %d", maxPage))
	}
	return page, nil
}
