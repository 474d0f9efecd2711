package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/person-backend/internal/data/repos/person"
	"github.com/yungbote/person-backend/internal/data/repos/personrecord"
	httpH "github.com/yungbote/person-backend/internal/http/handlers"
	"github.com/yungbote/person-backend/internal/observability"
	"github.com/yungbote/person-backend/internal/platform/logger"
	"github.com/yungbote/person-backend/internal/services"
)

func newTestRouterConfig(t *testing.T) RouterConfig {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	persons := person.NewMemoryStore(log)
	records := personrecord.NewMemoryStore(log)
	return RouterConfig{
		Log:                 log,
		ServiceName:         "person-backend",
		CORSOrigins:         []string{"*"},
		HealthHandler:       httpH.NewHealthHandler("person-backend", "test", nil),
		PersonHandler:       httpH.NewPersonHandler(log, services.NewPersonService(log, persons)),
		PersonRecordHandler: httpH.NewPersonRecordHandler(log, services.NewPersonRecordService(log, records, nil)),
	}
}

func serve(r http.Handler, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRouterRegistersRoutes(t *testing.T) {
	r := NewRouter(newTestRouterConfig(t))

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthcheck", http.StatusOK},
		{http.MethodGet, "/api/v1/health", http.StatusOK},
		{http.MethodGet, "/api/v1/health/ready", http.StatusOK},
		{http.MethodGet, "/api/v1/persons", http.StatusOK},
		{http.MethodGet, "/api/v1/persons/count", http.StatusOK},
		{http.MethodGet, "/api/v1/persons/cpf/12345678909", http.StatusNotFound},
		{http.MethodGet, "/person", http.StatusOK},
		{http.MethodGet, "/person/1/age?output=years", http.StatusNotFound},
		// memory map and metrics are only routed when configured
		{http.MethodGet, "/api/v1/memory-map/stats", http.StatusNotFound},
		{http.MethodGet, "/metrics", http.StatusNotFound},
	}
	for _, tc := range cases {
		if rec := serve(r, tc.method, tc.path); rec.Code != tc.want {
			t.Fatalf("%s %s: status=%d want=%d body=%s", tc.method, tc.path, rec.Code, tc.want, rec.Body.String())
		}
	}
}

func TestRouterMetricsAndRateLimit(t *testing.T) {
	cfg := newTestRouterConfig(t)
	cfg.Metrics = observability.New()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 2
	r := NewRouter(cfg)

	for i := 0; i < 2; i++ {
		if rec := serve(r, http.MethodGet, "/api/v1/persons"); rec.Code != http.StatusOK {
			t.Fatalf("request %d: status=%d", i, rec.Code)
		}
	}
	if rec := serve(r, http.MethodGet, "/api/v1/persons"); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("over burst: status=%d want=429", rec.Code)
	}
}

func TestServerRunStopsOnCancel(t *testing.T) {
	cfg := newTestRouterConfig(t)
	s := NewServer(cfg.Log, ServerConfig{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second}, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("server did not stop")
	}
}
