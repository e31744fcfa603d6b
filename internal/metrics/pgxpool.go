package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPoolMetrics publishes gauges for the portal's Postgres connection
// pool under the certportal_db_pool_* namespace. Call once at startup.
func RegisterPoolMetrics(pool *pgxpool.Pool) {
	poolGauge := func(name, help string, value func(*pgxpool.Stat) int32) prometheus.GaugeFunc {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "certportal",
			Subsystem: "db_pool",
			Name:      name,
			Help:      help,
		}, func() float64 {
			return float64(value(pool.Stat()))
		})
	}

	prometheus.MustRegister(
		poolGauge("acquired_conns", "Connections currently checked out of the pool.",
			func(s *pgxpool.Stat) int32 { return s.AcquiredConns() }),
		poolGauge("idle_conns", "Open connections sitting idle in the pool.",
			func(s *pgxpool.Stat) int32 { return s.IdleConns() }),
		poolGauge("total_conns", "All open connections, acquired and idle.",
			func(s *pgxpool.Stat) int32 { return s.TotalConns() }),
		poolGauge("max_conns", "Configured ceiling on pool connections.",
			func(s *pgxpool.Stat) int32 { return s.MaxConns() }),
	)
}
