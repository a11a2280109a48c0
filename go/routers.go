package lendingserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Apurer/equipment-lending-api/internal/platform/metrics"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API part.
type ApiHandleFunctions struct {
	EquipmentAPI EquipmentAPI
	EmployeeAPI  EmployeeAPI
}

// NewRouter returns a new router. Middleware runs before the built-in request id and metrics middleware.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	for _, m := range middleware {
		if m != nil {
			router.Use(m)
		}
	}
	router.Use(RequestID(), metrics.GinMiddleware())
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine registers every route on an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{
			"Health",
			http.MethodGet,
			"/healthz",
			func(c *gin.Context) { c.String(http.StatusOK, "ok") },
		},
		{
			"Metrics",
			http.MethodGet,
			"/metrics",
			gin.WrapH(metrics.Handler()),
		},
		{
			"RegisterEquipment",
			http.MethodPost,
			"/v1/equipment",
			handleFunctions.EquipmentAPI.RegisterEquipment,
		},
		{
			"ListEquipment",
			http.MethodGet,
			"/v1/equipment",
			handleFunctions.EquipmentAPI.ListEquipment,
		},
		{
			"GetEquipment",
			http.MethodGet,
			"/v1/equipment/:equipmentId",
			handleFunctions.EquipmentAPI.GetEquipment,
		},
		{
			"BorrowEquipment",
			http.MethodPost,
			"/v1/equipment/:equipmentId/borrowings",
			handleFunctions.EquipmentAPI.BorrowEquipment,
		},
		{
			"ReturnBorrowing",
			http.MethodDelete,
			"/v1/equipment/:equipmentId/borrowings/:borrowingId",
			handleFunctions.EquipmentAPI.ReturnBorrowing,
		},
		{
			"DisposeEquipment",
			http.MethodPost,
			"/v1/equipment/:equipmentId/dispose",
			handleFunctions.EquipmentAPI.DisposeEquipment,
		},
		{
			"ListEmployeeBorrowings",
			http.MethodGet,
			"/v1/employees/:employeeId/borrowings",
			handleFunctions.EmployeeAPI.ListBorrowings,
		},
	}
}
