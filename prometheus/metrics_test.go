package prometheus_test

import (
	"errors"
	"testing"

	"github.com/onobori/chintai"
	chprom "github.com/onobori/chintai/prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counterValue returns the value of the counter named name whose labels
// include all of labels, or 0 when there is none.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() != name {
			continue
		}
	metrics:
		for _, m := range f.GetMetric() {
			for _, lp := range m.GetLabel() {
				if v, ok := labels[lp.GetName()]; ok && v != lp.GetValue() {
					continue metrics
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestMetrics(t *testing.T) {
	t.Parallel()

	t.Run("counts pages by result", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		m := chprom.NewMetrics(reg)

		m.PageFetched(nil)
		m.PageFetched(nil)
		m.PageFetched(errors.New("HTTP 503"))

		assert.InDelta(t, 2, counterValue(t, reg, "chintai_pages_fetched_total", map[string]string{"result": "ok"}), 0)
		assert.InDelta(t, 1, counterValue(t, reg, "chintai_pages_fetched_total", map[string]string{"result": "error"}), 0)
	})

	t.Run("counts skipped blocks and stored records", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		m := chprom.NewMetrics(reg)

		m.BlockSkipped()
		m.RecordsStored(40)
		m.RecordsStored(2)

		assert.InDelta(t, 1, counterValue(t, reg, "chintai_blocks_skipped_total", nil), 0)
		assert.InDelta(t, 42, counterValue(t, reg, "chintai_records_stored_total", nil), 0)
	})

	t.Run("counts diagnostics as failed suggestions", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		m := chprom.NewMetrics(reg)

		m.SuggestionServed(&chintai.Suggestion{Stations: []string{"1. 中野駅"}})
		m.SuggestionServed(chintai.SuggestionFailure("no choices in response"))

		assert.InDelta(t, 1, counterValue(t, reg, "chintai_suggestions_total", map[string]string{"result": "ok"}), 0)
		assert.InDelta(t, 1, counterValue(t, reg, "chintai_suggestions_total", map[string]string{"result": "error"}), 0)
	})

	t.Run("panics on duplicate registration", func(t *testing.T) {
		t.Parallel()

		reg := prometheus.NewRegistry()
		chprom.NewMetrics(reg)

		assert.Panics(t, func() { chprom.NewMetrics(reg) })
	})
}
