package gateway

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	StorefrontSvcURL string
	RateSvcURL       string
	AnalyticsSvcURL  string
}

// route sends every request whose path it matches to one upstream. Routes
// are tried in order, so narrower paths come before the prefixes that
// would swallow them.
type route struct {
	name   string
	match  func(path string) bool
	target func(Config) string
}

func prefix(p string) func(string) bool {
	return func(path string) bool { return path == strings.TrimSuffix(p, "/") || strings.HasPrefix(path, p) }
}

func suffixUnder(p, suffix string) func(string) bool {
	return func(path string) bool { return strings.HasPrefix(path, p) && strings.HasSuffix(path, suffix) }
}

func storefront(c Config) string { return c.StorefrontSvcURL }
func rate(c Config) string       { return c.RateSvcURL }
func analytics(c Config) string  { return c.AnalyticsSvcURL }

var routes = []route{
	{name: "order-timeline", match: suffixUnder("/api/orders/", "/timeline"), target: analytics},
	{name: "dashboard", match: prefix("/api/admin/dashboard"), target: analytics},
	{name: "analytics", match: prefix("/api/analytics/"), target: analytics},
	{name: "item-reviews", match: suffixUnder("/api/menu-items/", "/reviews"), target: rate},
	{name: "reviews", match: prefix("/api/reviews"), target: rate},
	{name: "restaurants", match: prefix("/api/restaurants/"), target: storefront},
	{name: "sessions", match: prefix("/api/sessions/"), target: storefront},
	{name: "orders", match: prefix("/api/orders/"), target: storefront},
	{name: "admin", match: prefix("/api/admin/"), target: storefront},
}

type Gateway struct {
	config Config
	client HTTPClient
	log    *slog.Logger
}

func NewGateway(config Config, client HTTPClient, log *slog.Logger) *Gateway {
	return &Gateway{
		config: config,
		client: client,
		log:    log,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	url := strings.TrimSuffix(targetURL, "/") + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.log.Error("build upstream request failed", slog.String("url", url), slog.Any("error", err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}
	req.Header.Set("X-Forwarded-Host", r.Host)

	resp, err := g.client.Do(req)
	if err != nil {
		g.log.Error("upstream unavailable", slog.String("target", targetURL), slog.Any("error", err))
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		// CORS is answered by the gateway itself.
		if strings.HasPrefix(k, "Access-Control-") {
			continue
		}
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.log.Warn("copy upstream response failed", slog.Any("error", err))
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	for _, rt := range routes {
		if !rt.match(path) {
			continue
		}
		target := rt.target(g.config)
		g.log.Debug("proxy", slog.String("route", rt.name), slog.String("method", r.Method),
			slog.String("path", path), slog.String("target", target))
		g.ProxyRequest(w, r, target)
		return
	}

	g.log.Info("unmatched route", slog.String("method", r.Method), slog.String("path", path))
	http.Error(w, "API route not found", http.StatusNotFound)
}

func (g *Gateway) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
