package cli

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// reportMetrics выводит метрики синхронизации за команду: в stdout с флагом --metrics,
// иначе в лог на уровне debug
func (c *Cli) reportMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}

	if !c.cfg.Metrics {
		for _, mf := range families {
			for _, m := range mf.GetMetric() {
				c.logger.Debug("Sync metric", "name", mf.GetName(), "labels", labels(m), "value", metricValue(m))
			}
		}
		return nil
	}

	c.io.Println("=== Sync metrics ===")
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(c.io, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	pairs := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		pairs = append(pairs, lp.GetName()+"="+lp.GetValue())
	}
	return strings.Join(pairs, ",")
}

// metricValue значение счетчика или gauge, для гистограммы - число наблюдений
func metricValue(m *dto.Metric) float64 {
	switch {
	case m.GetCounter() != nil:
		return m.GetCounter().GetValue()
	case m.GetGauge() != nil:
		return m.GetGauge().GetValue()
	case m.GetHistogram() != nil:
		return float64(m.GetHistogram().GetSampleCount())
	default:
		return 0
	}
}
