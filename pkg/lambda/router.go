package lambda

import (
	"context"
	"fmt"
	"net/http"
	"sort"

	"github.com/sirupsen/logrus"
)

// Route identifies a handler by HTTP method and route template. Using a
// struct key instead of a concatenated "METHOD /path" string keeps the
// route table typo-proof and lets callers enumerate registered routes.
type Route struct {
	Method   string
	Template string
}

// Router dispatches a generic request to the handler registered for its
// (method, route template) pair. One Router is built per resource domain.
type Router struct {
	routes map[Route]HandlerFunc
	logger *logrus.Logger
}

// NewRouter creates an empty router
func NewRouter(logger *logrus.Logger) *Router {
	if logger == nil {
		logger = logrus.New()
	}
	return &Router{
		routes: make(map[Route]HandlerFunc),
		logger: logger,
	}
}

// Handle registers fn for the given method and route template
func (r *Router) Handle(method, template string, fn HandlerFunc) {
	r.routes[Route{Method: method, Template: template}] = fn
}

// Routes returns the registered routes in a stable order
func (r *Router) Routes() []Route {
	routes := make([]Route, 0, len(r.routes))
	for route := range r.routes {
		routes = append(routes, route)
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Template != routes[j].Template {
			return routes[i].Template < routes[j].Template
		}
		return routes[i].Method < routes[j].Method
	})
	return routes
}

// Dispatch routes a request and normalizes every outcome into a Response:
// pre-flight OPTIONS short-circuits with 200 and an empty body, unknown
// (method, template) pairs map to 400, and any error or panic escaping a
// handler maps to 500. Nothing propagates past this point.
func (r *Router) Dispatch(ctx context.Context, req *Request) (resp *Response) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.WithFields(logrus.Fields{
				"method": req.Method,
				"route":  req.RouteTemplate,
				"panic":  rec,
			}).Error("Handler panicked")
			resp = Respond(http.StatusInternalServerError, map[string]string{
				"error": fmt.Sprint(rec),
			})
		}
	}()

	if req.Method == http.MethodOptions {
		return Respond(http.StatusOK, nil)
	}

	fn, ok := r.routes[Route{Method: req.Method, Template: req.RouteTemplate}]
	if !ok {
		r.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"route":  req.RouteTemplate,
		}).Warn("Unsupported route")
		return Respond(http.StatusBadRequest, map[string]string{"message": "Invalid Request"})
	}

	resp, err := fn(ctx, req)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"method": req.Method,
			"route":  req.RouteTemplate,
			"error":  err.Error(),
		}).Error("Handler failed")
		return Respond(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return resp
}
