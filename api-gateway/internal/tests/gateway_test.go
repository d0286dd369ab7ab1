package tests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"foodcourt/api-gateway/internal/gateway"
	"foodcourt/api-gateway/internal/mocks"
	"foodcourt/logger"
)

var testConfig = gateway.Config{
	StorefrontSvcURL: "http://storefront-svc",
	RateSvcURL:       "http://rate-svc",
	AnalyticsSvcURL:  "http://analytics-svc",
}

func okResponse(body string) *http.Response {
	resp := &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
	resp.Header.Set("Content-Type", "application/json")
	resp.Header.Set("Access-Control-Allow-Origin", "*")
	return resp
}

func TestGateway_HealthCheck(t *testing.T) {
	gw := gateway.NewGateway(gateway.Config{}, nil, logger.Discard())

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	gw.SetupRoutes().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var body map[string]string
	json.NewDecoder(rr.Body).Decode(&body)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "api-gateway", body["service"])
}

func TestGateway_RouteHandler_Targets(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		expectedTo string
	}{
		{name: "restaurants", method: http.MethodGet, path: "/api/restaurants?cuisine=Indian", expectedTo: "http://storefront-svc/api/restaurants?cuisine=Indian"},
		{name: "menu", method: http.MethodGet, path: "/api/restaurants/r1/menu", expectedTo: "http://storefront-svc/api/restaurants/r1/menu"},
		{name: "session_messages", method: http.MethodPost, path: "/api/sessions/s1/messages", expectedTo: "http://storefront-svc/api/sessions/s1/messages"},
		{name: "order_qrcode", method: http.MethodGet, path: "/api/orders/o1/qrcode", expectedTo: "http://storefront-svc/api/orders/o1/qrcode"},
		{name: "order_timeline", method: http.MethodGet, path: "/api/orders/o1/timeline", expectedTo: "http://analytics-svc/api/orders/o1/timeline"},
		{name: "dashboard", method: http.MethodGet, path: "/api/admin/dashboard", expectedTo: "http://analytics-svc/api/admin/dashboard"},
		{name: "admin_status", method: http.MethodPut, path: "/api/admin/orders/o1/status", expectedTo: "http://storefront-svc/api/admin/orders/o1/status"},
		{name: "top_items", method: http.MethodGet, path: "/api/analytics/top-items", expectedTo: "http://analytics-svc/api/analytics/top-items"},
		{name: "item_reviews", method: http.MethodGet, path: "/api/menu-items/b1/reviews", expectedTo: "http://rate-svc/api/menu-items/b1/reviews"},
		{name: "bulk_reviews", method: http.MethodPost, path: "/api/reviews", expectedTo: "http://rate-svc/api/reviews"},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockClient := mocks.NewHTTPClient(t)
			gw := gateway.NewGateway(testConfig, mockClient, logger.Discard())

			mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
				return req.Method == testCase.method && req.URL.String() == testCase.expectedTo
			})).Return(okResponse(`{"ok":true}`), nil).Once()

			rr := httptest.NewRecorder()
			gw.RouteHandler(rr, httptest.NewRequest(testCase.method, testCase.path, nil))

			assert.Equal(t, http.StatusOK, rr.Code)
			assert.JSONEq(t, `{"ok":true}`, rr.Body.String())
			assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestGateway_RouteHandler_UnknownAPI(t *testing.T) {
	gw := gateway.NewGateway(testConfig, nil, logger.Discard())

	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGateway_RouteHandler_ProxyError(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, logger.Discard())

	mockClient.On("Do", mock.Anything).Return(nil, errors.New("connection failed")).Once()

	req := httptest.NewRequest(http.MethodGet, "/api/restaurants", nil)
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}

func TestGateway_ProxyKeepsUpstreamStatusAndBody(t *testing.T) {
	mockClient := mocks.NewHTTPClient(t)
	gw := gateway.NewGateway(testConfig, mockClient, logger.Discard())

	mockResp := &http.Response{
		StatusCode: http.StatusCreated,
		Body:       io.NopCloser(strings.NewReader(`{"id":"o1"}`)),
		Header:     make(http.Header),
	}
	mockClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		body, _ := io.ReadAll(req.Body)
		return req.Header.Get("Content-Type") == "application/json" && string(body) == `{"delivery_address":"12 Main St"}`
	})).Return(mockResp, nil).Once()

	req := httptest.NewRequest(http.MethodPost, "/api/sessions/s1/checkout", strings.NewReader(`{"delivery_address":"12 Main St"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	gw.RouteHandler(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"id":"o1"}`, rr.Body.String())
}
