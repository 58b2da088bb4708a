package services

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

func sanitize(s string) string {
	return strings.TrimSpace(policy.Sanitize(s))
}
