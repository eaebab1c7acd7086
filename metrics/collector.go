// Package metrics counts design-space operations on a private Prometheus
// registry and renders the counts as markdown.
package metrics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// Collector tracks how a design space was refined. A nil *Collector is valid
// and records nothing.
type Collector struct {
	registry *prometheus.Registry

	familiesCreated  *prometheus.CounterVec
	splits           prometheus.Counter
	assignments      prometheus.Counter
	holesRestricted  *prometheus.CounterVec
	optionsPruned    *prometheus.CounterVec
	restrictDuration prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Collector{
		registry: reg,
		familiesCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fscsynth_families_created_total",
			Help: "Families created, by operation",
		}, []string{"op"}),
		splits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fscsynth_splits_total",
			Help: "Families split into subfamilies",
		}),
		assignments: factory.NewCounter(prometheus.CounterOpts{
			Name: "fscsynth_assignments_enumerated_total",
			Help: "Assignments produced by enumeration",
		}),
		holesRestricted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fscsynth_memory_holes_restricted_total",
			Help: "Memory-update holes visited by the restriction pass, by policy",
		}, []string{"policy"}),
		optionsPruned: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fscsynth_memory_options_pruned_total",
			Help: "Options removed from memory-update holes, by policy",
		}, []string{"policy"}),
		restrictDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fscsynth_memory_restrict_duration_seconds",
			Help:    "Duration of one memory restriction pass",
			Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}
}

func (c *Collector) FamiliesCreated(op string, n int) {
	if c == nil {
		return
	}
	c.familiesCreated.WithLabelValues(op).Add(float64(n))
}

// Split records one split producing the given number of children.
func (c *Collector) Split(children int) {
	if c == nil {
		return
	}
	c.splits.Inc()
	c.familiesCreated.WithLabelValues("split").Add(float64(children))
}

func (c *Collector) AssignmentsEnumerated(n int) {
	if c == nil {
		return
	}
	c.assignments.Add(float64(n))
}

// Restricted records one restriction pass.
func (c *Collector) Restricted(policy string, holes, pruned int, d time.Duration) {
	if c == nil {
		return
	}
	c.holesRestricted.WithLabelValues(policy).Add(float64(holes))
	c.optionsPruned.WithLabelValues(policy).Add(float64(pruned))
	c.restrictDuration.Observe(d.Seconds())
}

// GenerateMetricsTable renders every recorded series as a markdown table.
func (c *Collector) GenerateMetricsTable() (string, error) {
	var sb strings.Builder
	sb.WriteString("| Metric | Type | Labels | Value | Description |\n")
	sb.WriteString("|--------|------|--------|-------|-------------|\n")
	if c == nil {
		return sb.String(), nil
	}

	families, err := c.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				mf.GetName(), strings.ToLower(mf.GetType().String()),
				labelString(m.GetLabel()), valueString(mf.GetType(), m), mf.GetHelp()))
		}
	}
	return sb.String(), nil
}

func labelString(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, p := range pairs {
		parts = append(parts, p.GetName()+"="+p.GetValue())
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

func valueString(t dto.MetricType, m *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%.0f", m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%.2f", m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		return fmt.Sprintf("n=%d sum=%.6fs", h.GetSampleCount(), h.GetSampleSum())
	}
	return ""
}
