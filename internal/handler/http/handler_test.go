package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MKhiriev/guardian-alarm/internal/logger"
	"github.com/MKhiriev/guardian-alarm/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ─────────────────────────────────────────────
// NewHandler
// ─────────────────────────────────────────────

func TestNewHandler_ReturnsNonNil(t *testing.T) {
	h := NewHandler(&service.Services{}, logger.Nop())

	require.NotNil(t, h)
}

func TestNewHandler_StoresServices(t *testing.T) {
	svc := &service.Services{}
	h := NewHandler(svc, logger.Nop())

	assert.Equal(t, svc, h.services)
}

func TestNewHandler_StoresLogger(t *testing.T) {
	log := logger.Nop()
	h := NewHandler(&service.Services{}, log)

	assert.Equal(t, log, h.logger)
}

func TestNewHandler_IndependentInstances(t *testing.T) {
	h1 := NewHandler(&service.Services{}, logger.Nop())
	h2 := NewHandler(&service.Services{}, logger.Nop())

	assert.NotSame(t, h1, h2)
}

// ─────────────────────────────────────────────
// Init — route registration
// ─────────────────────────────────────────────

func TestInit_ReturnsRouter(t *testing.T) {
	router := newTestHandler(t).Init()

	require.NotNil(t, router)
}

// routeCase describes a single expected route.
type routeCase struct {
	method string
	path   string
}

// expectedRoutes lists every route that Init() must register.
var expectedRoutes = []routeCase{
	// public: session front door, build info, alarm poll
	{http.MethodPost, "/api/session"},
	{http.MethodGet, "/api/version"},
	{http.MethodGet, "/api/alarm/active"},
	// directory (auth middleware will return 401, not 404/405)
	{http.MethodGet, "/api/user/profile"},
	{http.MethodPut, "/api/user/profile"},
	{http.MethodGet, "/api/user/role"},
	{http.MethodGet, "/api/user/admin"},
	{http.MethodGet, "/api/user/linked-child"},
	{http.MethodGet, "/api/users/some-principal"},
	{http.MethodPut, "/api/users/some-principal/role"},
	{http.MethodPut, "/api/users/some-principal/link"},
	{http.MethodDelete, "/api/users/some-principal/link"},
	// children (auth middleware will return 401, not 404/405)
	{http.MethodPost, "/api/children"},
	{http.MethodGet, "/api/children"},
	{http.MethodPut, "/api/children/child-1/name"},
	{http.MethodPost, "/api/children/child-1/archive"},
	{http.MethodGet, "/api/children/child-1/records/biometric"},
	{http.MethodGet, "/api/children/child-1/records/touch"},
	// records (auth middleware will return 401, not 404/405)
	{http.MethodPost, "/api/records/biometric"},
	{http.MethodDelete, "/api/records/biometric/1"},
	{http.MethodPost, "/api/records/touch"},
	{http.MethodDelete, "/api/records/touch/1"},
	{http.MethodGet, "/api/records"},
	// pin (auth middleware will return 401, not 404/405)
	{http.MethodPut, "/api/pin"},
	{http.MethodPost, "/api/pin/verify"},
	// alarm (auth middleware will return 401, not 404/405)
	{http.MethodPost, "/api/alarm/trigger"},
	{http.MethodPost, "/api/alarm/acknowledge"},
	{http.MethodGet, "/api/alarm/events"},
}

func TestInit_RegistersAllRoutes(t *testing.T) {
	router := newTestHandler(t).Init()

	for _, tc := range expectedRoutes {
		tc := tc
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			// A registered route returns anything except 404 (not found) or
			// 405 (method not allowed). Auth-protected routes return 401 —
			// that still proves the route exists.
			assert.NotEqual(t, http.StatusNotFound, rec.Code,
				"route not found: %s %s", tc.method, tc.path)
			assert.NotEqual(t, http.StatusMethodNotAllowed, rec.Code,
				"method not allowed: %s %s", tc.method, tc.path)
		})
	}
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	router := newTestHandler(t).Init()

	req := httptest.NewRequest(http.MethodGet, "/api/nonexistent", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInit_WrongMethodReturns404(t *testing.T) {
	router := newTestHandler(t).Init()

	// POST /api/version is not registered — only GET is. The method-check
	// handler masks 405 as 404 so route existence cannot be probed.
	req := httptest.NewRequest(http.MethodPost, "/api/version", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
