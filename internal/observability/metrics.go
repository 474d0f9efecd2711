package observability

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/person-backend/internal/platform/logger"
)

type Metrics struct {
	apiRequests  *CounterVec
	apiLatency   *HistogramVec
	apiInflight  *Gauge
	apiLimited   *Counter
	storeOps     *CounterVec
	storeLatency *HistogramVec
	storeSize    *GaugeVec
	seeded       *CounterVec
	dbStats      *GaugeVec
	redisUp      *Gauge
	redisPing    *Gauge
}

var (
	initOnce sync.Once
	instance *Metrics
)

// Init builds the process-wide registry once.
func Init(log *logger.Logger) *Metrics {
	initOnce.Do(func() {
		instance = New()
		if log != nil {
			log.Info("metrics initialized")
		}
	})
	return instance
}

func Current() *Metrics {
	return instance
}

// New returns an unshared registry.
func New() *Metrics {
	return &Metrics{
		apiRequests:  NewCounterVec("person_api_requests_total", "HTTP requests by method, route and status.", []string{"method", "route", "status"}),
		apiLatency:   NewHistogramVec("person_api_request_duration_seconds", "HTTP request latency.", []string{"method", "route"}, nil),
		apiInflight:  NewGauge("person_api_inflight_requests", "HTTP requests currently being served."),
		apiLimited:   NewCounter("person_api_rate_limited_total", "Requests rejected by the rate limiter."),
		storeOps:     NewCounterVec("person_store_operations_total", "Store calls by store, operation and status.", []string{"store", "op", "status"}),
		storeLatency: NewHistogramVec("person_store_operation_duration_seconds", "Store call latency.", []string{"store", "op"}, []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1}),
		storeSize:    NewGaugeVec("person_store_records", "Records held per store.", []string{"store"}),
		seeded:       NewCounterVec("person_seed_records_total", "Records inserted by the startup seeder.", []string{"store"}),
		dbStats:      NewGaugeVec("person_db_pool", "database/sql pool statistics.", []string{"stat"}),
		redisUp:      NewGauge("person_redis_up", "Redis connectivity (1=up, 0=down)."),
		redisPing:    NewGauge("person_redis_ping_seconds", "Redis ping latency in seconds."),
	}
}

func (m *Metrics) WriteHTTP(w http.ResponseWriter, r *http.Request) {
	if m == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	_ = m.WritePrometheus(w)
}

func (m *Metrics) WritePrometheus(w io.Writer) error {
	if m == nil {
		return nil
	}
	writers := []interface{ WritePrometheus(io.Writer) error }{
		m.apiRequests, m.apiLatency, m.apiInflight, m.apiLimited,
		m.storeOps, m.storeLatency, m.storeSize, m.seeded, m.dbStats, m.redisUp, m.redisPing,
	}
	for _, mw := range writers {
		if err := mw.WritePrometheus(w); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) ObserveAPI(method, route string, status int, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unmatched"
	}
	m.apiRequests.Inc(method, route, strconv.Itoa(status))
	m.apiLatency.Observe(dur.Seconds(), method, route)
}

func (m *Metrics) APIInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Add(1)
}

func (m *Metrics) APIInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Add(-1)
}

func (m *Metrics) IncRateLimited() {
	if m == nil {
		return
	}
	m.apiLimited.Inc()
}

func (m *Metrics) ObserveStoreOp(store, op, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.storeOps.Inc(store, op, status)
	m.storeLatency.Observe(dur.Seconds(), store, op)
}

func (m *Metrics) StoreOpCount(store, op, status string) float64 {
	if m == nil {
		return 0
	}
	return m.storeOps.Value(store, op, status)
}

func (m *Metrics) SetStoreSize(store string, n int64) {
	if m == nil {
		return
	}
	m.storeSize.Set(float64(n), store)
}

func (m *Metrics) AddSeeded(store string, n int) {
	if m == nil {
		return
	}
	m.seeded.Add(float64(n), store)
}

func scrapeInterval() time.Duration {
	return 15 * time.Second
}

// StartDBCollector samples the gorm pool until ctx is done.
func (m *Metrics) StartDBCollector(ctx context.Context, log *logger.Logger, db *gorm.DB) {
	if m == nil || db == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(scrapeInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					if log != nil {
						log.Warn("metrics: db stats unavailable", "error", err)
					}
					continue
				}
				stats := sqlDB.Stats()
				m.dbStats.Set(float64(stats.OpenConnections), "open_connections")
				m.dbStats.Set(float64(stats.InUse), "in_use")
				m.dbStats.Set(float64(stats.Idle), "idle")
				m.dbStats.Set(float64(stats.WaitCount), "wait_count")
				m.dbStats.Set(stats.WaitDuration.Seconds(), "wait_duration_seconds")
			}
		}
	}()
}

// StartRedisCollector pings rdb on an interval until ctx is done.
func (m *Metrics) StartRedisCollector(ctx context.Context, log *logger.Logger, rdb *goredis.Client) {
	if m == nil || rdb == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(scrapeInterval())
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				start := time.Now()
				if err := rdb.Ping(ctx).Err(); err != nil {
					m.redisUp.Set(0)
					if log != nil {
						log.Warn("metrics: redis ping failed", "error", err)
					}
					continue
				}
				m.redisUp.Set(1)
				m.redisPing.Set(time.Since(start).Seconds())
			}
		}
	}()
}
