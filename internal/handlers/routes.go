package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storage-rental-api/pkg/lambda"
)

// Route templates, one constant per (verb, template) pair so the route
// tables are assembled from a closed set instead of ad-hoc strings.
const (
	RouteFacilities       = "/facilities"
	RouteFacilitiesSearch = "/facilities/search"
	RouteFacilityByID     = "/facilities/{facility_id}"
	RoutePayments         = "/payments"
	RoutePaymentByID      = "/payments/{payment_id}"
	RouteUsers            = "/users"
	RouteUserByID         = "/users/{userid}"
)

// NewFacilityRouter builds the facility domain's route table
func NewFacilityRouter(h *FacilityHandler, logger *logrus.Logger) *lambda.Router {
	router := lambda.NewRouter(logger)
	router.Handle(http.MethodGet, RouteFacilities, h.HandleList)
	router.Handle(http.MethodGet, RouteFacilitiesSearch, h.HandleSearch)
	router.Handle(http.MethodPost, RouteFacilities, h.HandleCreate)
	router.Handle(http.MethodDelete, RouteFacilityByID, h.HandleDelete)
	return router
}

// NewPaymentRouter builds the payment domain's route table
func NewPaymentRouter(h *PaymentHandler, logger *logrus.Logger) *lambda.Router {
	router := lambda.NewRouter(logger)
	router.Handle(http.MethodPost, RoutePayments, h.HandleCreate)
	router.Handle(http.MethodGet, RoutePayments, h.HandleList)
	router.Handle(http.MethodDelete, RoutePaymentByID, h.HandleCancel)
	return router
}

// NewUserRouter builds the user domain's route table
func NewUserRouter(h *UserHandler, logger *logrus.Logger) *lambda.Router {
	router := lambda.NewRouter(logger)
	router.Handle(http.MethodGet, RouteUsers, h.HandleList)
	router.Handle(http.MethodGet, RouteUserByID, h.HandleGet)
	router.Handle(http.MethodPost, RouteUsers, h.HandleCreate)
	router.Handle(http.MethodPut, RouteUserByID, h.HandleUpdate)
	router.Handle(http.MethodDelete, RouteUserByID, h.HandleDelete)
	return router
}

// Mount exposes a domain router's routes on the local gin server. Each
// gin route delegates to the same Dispatch path the Lambda entrypoints
// use, so the two deployment modes cannot drift apart.
func Mount(engine *gin.Engine, router *lambda.Router) {
	for _, route := range router.Routes() {
		route := route
		engine.Handle(route.Method, ginPath(route.Template), func(c *gin.Context) {
			serveThrough(c, router, route.Template)
		})
	}
}

// SetupRoutes mounts all domain routers plus the health and swagger
// endpoints on the local server
func SetupRoutes(engine *gin.Engine, facilities, payments, users *lambda.Router) {
	Mount(engine, facilities)
	Mount(engine, payments)
	Mount(engine, users)

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "storage-rental-api",
			"version": "1.0.0",
		})
	})

	// Swagger documentation
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// ginPath converts an API Gateway template ("/users/{userid}") to gin's
// parameter syntax ("/users/:userid")
func ginPath(template string) string {
	parts := strings.Split(template, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			parts[i] = ":" + strings.Trim(part, "{}")
		}
	}
	return strings.Join(parts, "/")
}

// serveThrough translates a gin request into the generic envelope,
// dispatches it, and writes the normalized response back
func serveThrough(c *gin.Context, router *lambda.Router, template string) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
		return
	}

	pathParams := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		pathParams[p.Key] = p.Value
	}
	queryParams := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if len(values) > 0 {
			queryParams[key] = values[0]
		}
	}
	headers := make(map[string]string, len(c.Request.Header))
	for key := range c.Request.Header {
		headers[key] = c.Request.Header.Get(key)
	}

	resp := router.Dispatch(c.Request.Context(), &lambda.Request{
		Method:        c.Request.Method,
		Path:          c.Request.URL.Path,
		RouteTemplate: template,
		Headers:       headers,
		QueryParams:   queryParams,
		PathParams:    pathParams,
		Body:          body,
	})

	for key, value := range resp.Headers {
		c.Header(key, value)
	}
	c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
}
