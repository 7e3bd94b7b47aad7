package lambda

import "context"

// Request represents a generic HTTP request for serverless functions.
// RouteTemplate carries the API Gateway resource template (e.g.
// "/facilities/{facility_id}") rather than the concrete path, so routing
// is an exact match on (method, template).
type Request struct {
	Method        string            `json:"method"`
	Path          string            `json:"path"`
	RouteTemplate string            `json:"route_template"`
	Headers       map[string]string `json:"headers"`
	QueryParams   map[string]string `json:"query_params"`
	PathParams    map[string]string `json:"path_params"`
	Body          []byte            `json:"body"`
}

// Response represents a generic HTTP response for serverless functions
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// HandlerFunc is a framework-agnostic handler interface
type HandlerFunc func(ctx context.Context, req *Request) (*Response, error)
