// Package pathutil maps request paths onto a fixed set of route labels.
package pathutil

import (
	"strings"
)

// OtherRoute is the label used for any path the API does not serve.
const OtherRoute = "other"

// knownRoutes lists every path the records API serves.
var knownRoutes = map[string]struct{}{
	"/records":        {},
	"/records/insert": {},
	"/health":         {},
	"/live":           {},
	"/metrics":        {},
}

// NormalizePath returns the route label for path, used for metrics labels and span names.
// Query strings and a trailing slash are ignored. Unknown paths collapse to OtherRoute
// so that scanners cannot inflate label cardinality.
//
//	NormalizePath("/records")          // "/records"
//	NormalizePath("/records/?page=2")  // "/records"
//	NormalizePath("/wp-admin")         // "other"
func NormalizePath(path string) string {
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	if _, ok := knownRoutes[path]; ok {
		return path
	}
	return OtherRoute
}
