package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Posting metrics
	EntriesPosted   *prometheus.CounterVec
	PostingErrors   *prometheus.CounterVec
	PostingDuration prometheus.Histogram
	LinesPerEntry   prometheus.Histogram
	EntryAmount     prometheus.Histogram

	// Account metrics
	AccountsCreated   prometheus.Counter
	AccountOperations *prometheus.CounterVec

	// Reporting metrics
	TrialBalanceBuilds prometheus.Counter
	ChartBuilds        prometheus.Counter
	ReportDuration     *prometheus.HistogramVec

	// Cache metrics
	BalanceCacheHits   prometheus.Counter
	BalanceCacheMisses prometheus.Counter

	// Outbox metrics
	OutboxPublished prometheus.Counter
	OutboxErrors    prometheus.Counter

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBDuration    *prometheus.HistogramVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		EntriesPosted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_entries_posted_total",
				Help: "Total number of journal entries posted",
			},
			[]string{"transaction_type"},
		),
		PostingErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_posting_errors_total",
				Help: "Total number of rejected postings",
			},
			[]string{"reason"},
		),
		PostingDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_posting_duration_seconds",
			Help:    "Duration of posting operations",
			Buckets: prometheus.DefBuckets,
		}),
		LinesPerEntry: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_lines_per_entry",
			Help:    "Number of lines per posted entry",
			Buckets: []float64{2, 3, 4, 5, 6, 8, 10, 15, 20},
		}),
		EntryAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "ledger_entry_amount",
			Help:    "Total debit amount per posted entry",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		AccountsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_accounts_created_total",
			Help: "Total number of accounts created",
		}),
		AccountOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_account_operations_total",
				Help: "Total account operations",
			},
			[]string{"operation"},
		),

		TrialBalanceBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_trial_balance_builds_total",
			Help: "Total number of trial balance reports built",
		}),
		ChartBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_chart_builds_total",
			Help: "Total number of chart-of-accounts reports built",
		}),
		ReportDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_report_duration_seconds",
				Help:    "Duration of reporting queries",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"report"},
		),

		BalanceCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_balance_cache_hits_total",
			Help: "Total balance reads served from cache",
		}),
		BalanceCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_balance_cache_misses_total",
			Help: "Total balance reads that fell through to the database",
		}),

		OutboxPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_outbox_published_total",
			Help: "Total outbox events published",
		}),
		OutboxErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ledger_outbox_errors_total",
			Help: "Total outbox publish failures",
		}),

		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"query"},
		),
		DBDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ledger_db_duration_seconds",
				Help:    "Database query duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"query"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "ledger_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"query"},
		),

		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}
