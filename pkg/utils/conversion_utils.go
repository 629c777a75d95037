package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// OptionalQuery returns a pointer to the trimmed query value, or nil when it is absent or blank.
func OptionalQuery(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

// QueryBool parses an optional boolean query parameter.
func QueryBool(c *gin.Context, key string) (*bool, error) {
	raw := OptionalQuery(c, key)
	if raw == nil {
		return nil, nil
	}
	b, err := strconv.ParseBool(*raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q must be true or false", key)
	}
	return &b, nil
}

// QueryInt parses an optional non-negative integer query parameter, returning fallback when absent.
func QueryInt(c *gin.Context, key string, fallback int) (int, error) {
	raw := OptionalQuery(c, key)
	if raw == nil {
		return fallback, nil
	}
	n, err := strconv.Atoi(*raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("query parameter %q must be a non-negative integer", key)
	}
	return n, nil
}
