// Package openapi contains the low-level Verso OpenAPI calls: one
// function per endpoint, with explicit json-tagged request and response
// types. Field mapping is plain encoding/json; higher layers in
// pkg/manager wrap these calls with resource behavior.
package openapi

import (
	"net/url"
	"strconv"
	"strings"
)

// datasetPath builds "/v2/datasets/{owner}/{dataset}[/segments...]".
func datasetPath(owner, dataset string, segments ...string) string {
	parts := []string{"/v2/datasets", url.PathEscape(owner), url.PathEscape(dataset)}
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}

// pagedQuery builds the offset/limit query shared by all list endpoints.
func pagedQuery(offset, limit int) url.Values {
	query := url.Values{}
	query.Set("offset", strconv.Itoa(offset))
	query.Set("limit", strconv.Itoa(limit))
	return query
}
