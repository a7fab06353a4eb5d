package web

import (
	"net/url"
	"testing"

	"github.com/onobori/chintai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilter(t *testing.T) {
	t.Parallel()

	t.Run("empty form yields default filter", func(t *testing.T) {
		t.Parallel()

		f, err := parseFilter(url.Values{})

		require.NoError(t, err)
		assert.Equal(t, chintai.DefaultPropertyFilter(), f)
	})

	t.Run("overrides given bounds only", func(t *testing.T) {
		t.Parallel()

		f, err := parseFilter(url.Values{"rent_min": {"50000"}, "area_max": {" 40.5 "}, "fee_max": {""}})

		require.NoError(t, err)
		assert.Equal(t, chintai.Range{Min: 50000, Max: 250000}, f.Rent)
		assert.Equal(t, chintai.Range{Min: 0, Max: 40.5}, f.Area)
		assert.Equal(t, chintai.Range{Min: 0, Max: 50000}, f.ManagementFee)
	})

	t.Run("rejects NaN bound", func(t *testing.T) {
		t.Parallel()

		for _, v := range []string{"NaN", "nan"} {
			_, err := parseFilter(url.Values{"rent_max": {v}})

			require.Error(t, err, "value %q", v)
			assert.Equal(t, chintai.EINVALID, chintai.ErrorCode(err))
			assert.Equal(t, "rent_max must be a number", chintai.ErrorMessage(err))
		}
	})

	t.Run("drops blank stations", func(t *testing.T) {
		t.Parallel()

		f, err := parseFilter(url.Values{"station": {"中野駅", " ", "荻窪"}, "layout": {"2LDK"}})

		require.NoError(t, err)
		assert.Equal(t, []string{"中野駅", "荻窪"}, f.Stations)
		assert.Equal(t, "2LDK", f.Layout)
	})
}

func TestParseCommute(t *testing.T) {
	t.Parallel()

	t.Run("defaults minutes to 10", func(t *testing.T) {
		t.Parallel()

		station, minutes, err := parseCommute(url.Values{"work_station": {" 渋谷駅 "}})

		require.NoError(t, err)
		assert.Equal(t, "渋谷駅", station)
		assert.Equal(t, 10, minutes)
	})

	t.Run("rejects non-integer minutes", func(t *testing.T) {
		t.Parallel()

		_, _, err := parseCommute(url.Values{"work_station": {"渋谷駅"}, "commute_minutes": {"1.5"}})

		assert.Equal(t, chintai.EINVALID, chintai.ErrorCode(err))
	})
}

func TestFormatNumber(t *testing.T) {
	t.Parallel()

	v := 8.5
	assert.Equal(t, "8.5", formatNumber(&v))
	assert.Equal(t, "-", formatNumber(nil))
}
