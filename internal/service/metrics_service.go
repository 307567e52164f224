package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/noah-isme/sma-clubs/internal/models"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

const (
	queryTotalName    = "clubdesk_queries_total"
	queryDurationName = "clubdesk_query_duration_seconds"

	outcomeOK = "ok"
)

// MetricsService encapsulates Prometheus instrumentation for table statements
// and renders snapshots for the statistics menu.
type MetricsService struct {
	registry      *prometheus.Registry
	queryTotal    *prometheus.CounterVec
	queryDuration *prometheus.HistogramVec
}

// NewMetricsService registers the query collectors on a private registry.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	queryTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: queryTotalName,
		Help: "Statements executed per table, operation and outcome",
	}, []string{"table", "operation", "outcome"})

	queryDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    queryDurationName,
		Help:    "Duration of statements in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"table", "operation"})

	registry.MustRegister(queryTotal, queryDuration)

	return &MetricsService{registry: registry, queryTotal: queryTotal, queryDuration: queryDuration}
}

// Registry exposes the underlying registry.
func (m *MetricsService) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveQuery records one statement. The outcome label is the error kind.
func (m *MetricsService) ObserveQuery(table, operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := outcomeOK
	if err != nil {
		outcome = string(appErrors.KindOf(err))
	}
	m.queryTotal.WithLabelValues(table, operation, outcome).Inc()
	m.queryDuration.WithLabelValues(table, operation).Observe(duration.Seconds())
}

type queryKey struct {
	table     string
	operation string
}

// Snapshot returns one row per table, operation and outcome with the count
// and the mean duration of that table and operation.
func (m *MetricsService) Snapshot() (*models.ResultSet, error) {
	result := &models.ResultSet{Columns: []string{"table", "operation", "outcome", "count", "avg_ms"}, Rows: [][]string{}}
	if m == nil {
		return result, nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrQuery.Kind, appErrors.ErrQuery.Code, "gather metrics")
	}

	averages := make(map[queryKey]float64)
	for _, family := range families {
		if family.GetName() != queryDurationName {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := labelMap(metric)
			h := metric.GetHistogram()
			if h.GetSampleCount() == 0 {
				continue
			}
			key := queryKey{table: labels["table"], operation: labels["operation"]}
			averages[key] = h.GetSampleSum() / float64(h.GetSampleCount()) * 1000
		}
	}

	for _, family := range families {
		if family.GetName() != queryTotalName {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := labelMap(metric)
			key := queryKey{table: labels["table"], operation: labels["operation"]}
			result.Rows = append(result.Rows, []string{
				key.table,
				key.operation,
				labels["outcome"],
				fmt.Sprintf("%.0f", metric.GetCounter().GetValue()),
				fmt.Sprintf("%.3f", averages[key]),
			})
		}
	}

	sort.Slice(result.Rows, func(i, j int) bool {
		a, b := result.Rows[i], result.Rows[j]
		for k := 0; k < 3; k++ {
			if a[k] != b[k] {
				return a[k] < b[k]
			}
		}
		return false
	})
	return result, nil
}

func labelMap(metric *dto.Metric) map[string]string {
	labels := make(map[string]string, len(metric.GetLabel()))
	for _, pair := range metric.GetLabel() {
		labels[pair.GetName()] = pair.GetValue()
	}
	return labels
}
