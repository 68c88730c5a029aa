package helpers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// DefaultQueryOffset is where a browse list starts when no offset is given
const DefaultQueryOffset int64 = 0

// GetLimitAndOffset returns the limit and offset for a browse querystring
func GetLimitAndOffset(query url.Values) (int64, int64, int, error) {
	var (
		limit  int64
		offset int64
	)

	limit = DefaultQueryLimit
	if query.Get("limit") != "" {
		inLimit, err := strconv.ParseInt(query.Get("limit"), 10, 64)
		if err != nil {
			return 0, 0, http.StatusBadRequest,
				fmt.Errorf("limit (%s) is not a number", query.Get("limit"))
		}

		if inLimit < 1 {
			return 0, 0, http.StatusBadRequest,
				fmt.Errorf("limit (%d) cannot be zero or negative", inLimit)
		}

		if inLimit > MaxQueryLimit {
			return 0, 0, http.StatusBadRequest,
				fmt.Errorf("limit (%d) cannot exceed %d", inLimit, MaxQueryLimit)
		}

		limit = inLimit
	}

	offset = DefaultQueryOffset
	if query.Get("offset") != "" {
		inOffset, err := strconv.ParseInt(query.Get("offset"), 10, 64)
		if err != nil {
			return 0, 0, http.StatusBadRequest,
				fmt.Errorf("offset (%s) is not a number", query.Get("offset"))
		}

		if inOffset < 0 {
			return 0, 0, http.StatusBadRequest,
				fmt.Errorf("offset (%d) cannot be negative", inOffset)
		}

		offset = inOffset
	}

	return limit, offset, http.StatusOK, nil
}
