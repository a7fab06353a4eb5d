package chintai_test

import (
	"math"
	"testing"

	"github.com/onobori/chintai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func newProperty(name string, rent float64, layout string, stations ...string) *chintai.Property {
	p := &chintai.Property{
		Name:          name,
		Rent:          floatPtr(rent),
		ManagementFee: floatPtr(5000),
		Age:           floatPtr(10),
		Area:          floatPtr(25),
		Layout:        layout,
	}
	for i, s := range stations {
		p.Access[i].Station = strPtr(s)
	}
	return p
}

func TestRange_Contains(t *testing.T) {
	t.Parallel()

	r := chintai.Range{Min: 10, Max: 20}

	assert.True(t, r.Contains(floatPtr(10)))
	assert.True(t, r.Contains(floatPtr(20)))
	assert.False(t, r.Contains(floatPtr(9.99)))
	assert.False(t, r.Contains(floatPtr(20.01)))
	assert.False(t, r.Contains(nil))
}

func TestPropertyFilter_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts default filter", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()

		assert.NoError(t, f.Validate())
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Area = chintai.Range{Min: 50, Max: 10}

		err := f.Validate()

		require.Error(t, err)
		assert.Equal(t, chintai.EINVALID, chintai.ErrorCode(err))
		assert.Contains(t, chintai.ErrorMessage(err), "area")
	})

	t.Run("rejects NaN bound", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Rent.Max = math.NaN()

		err := f.Validate()

		require.Error(t, err)
		assert.Equal(t, chintai.EINVALID, chintai.ErrorCode(err))
		assert.Equal(t, "rent range bounds must be numbers", chintai.ErrorMessage(err))
	})

	t.Run("rejects more than five stations", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Stations = []string{"a", "b", "c", "d", "e", "f"}

		err := f.Validate()

		require.Error(t, err)
		assert.Equal(t, chintai.EINVALID, chintai.ErrorCode(err))
	})
}

func TestPropertyFilter_Match(t *testing.T) {
	t.Parallel()

	t.Run("applies inclusive ranges", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Rent = chintai.Range{Min: 80000, Max: 100000}

		assert.True(t, f.Match(newProperty("a", 80000, "1K")))
		assert.True(t, f.Match(newProperty("b", 100000, "1K")))
		assert.False(t, f.Match(newProperty("c", 100001, "1K")))
	})

	t.Run("excludes null rent regardless of bounds", func(t *testing.T) {
		t.Parallel()

		p := newProperty("a", 0, "1K")
		p.Rent = nil

		for _, r := range []chintai.Range{{Min: 0, Max: 0}, {Min: 0, Max: 250000}, {Min: -1e18, Max: 1e18}} {
			f := chintai.DefaultPropertyFilter()
			f.Rent = r
			assert.False(t, f.Match(p), "range %v", r)
		}
	})

	t.Run("excludes null management fee, age and area", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()

		fee := newProperty("fee", 90000, "1K")
		fee.ManagementFee = nil
		age := newProperty("age", 90000, "1K")
		age.Age = nil
		area := newProperty("area", 90000, "1K")
		area.Area = nil

		assert.False(t, f.Match(fee))
		assert.False(t, f.Match(age))
		assert.False(t, f.Match(area))
	})

	t.Run("matches layout exactly unless all", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Layout = "1LDK"

		assert.True(t, f.Match(newProperty("a", 90000, "1LDK")))
		assert.False(t, f.Match(newProperty("b", 90000, "1K")))

		f.Layout = chintai.LayoutAll
		assert.True(t, f.Match(newProperty("b", 90000, "1K")))

		f.Layout = ""
		assert.True(t, f.Match(newProperty("b", 90000, "1K")))
	})

	t.Run("matches any station slot", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Stations = []string{"中野駅"}

		assert.True(t, f.Match(newProperty("first", 90000, "1K", "中野駅", "高円寺駅")))
		assert.True(t, f.Match(newProperty("second", 90000, "1K", "新宿駅", "中野駅")))
		assert.True(t, f.Match(newProperty("third", 90000, "1K", "新宿駅", "渋谷駅", "中野駅")))
		assert.False(t, f.Match(newProperty("none", 90000, "1K", "新宿駅", "渋谷駅")))
		assert.False(t, f.Match(newProperty("empty", 90000, "1K")))
	})

	t.Run("treats station names with and without suffix alike", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Stations = []string{"中野"}

		assert.True(t, f.Match(newProperty("a", 90000, "1K", "中野駅")))
	})

	t.Run("rejects nil property", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()

		assert.False(t, f.Match(nil))
	})
}

func TestFilterProperties(t *testing.T) {
	t.Parallel()

	props := []*chintai.Property{
		newProperty("a", 70000, "1K", "中野駅"),
		newProperty("b", 90000, "1DK", "新宿駅"),
		newProperty("c", 120000, "1K", "高円寺駅", "中野駅"),
		newProperty("d", 300000, "1K", "中野駅"),
	}

	t.Run("preserves order", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Layout = "1K"
		f.Stations = []string{"中野駅"}

		got := chintai.FilterProperties(props, f)

		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].Name)
		assert.Equal(t, "c", got[1].Name)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Rent = chintai.Range{Min: 80000, Max: 200000}

		once := chintai.FilterProperties(props, f)
		twice := chintai.FilterProperties(once, f)

		assert.Equal(t, once, twice)
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		t.Parallel()

		f := chintai.DefaultPropertyFilter()
		f.Layout = "4LDK"

		got := chintai.FilterProperties(props, f)

		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}
