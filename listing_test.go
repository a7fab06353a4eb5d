package chintai_test

import (
	"testing"

	"github.com/onobori/chintai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestExpandListing(t *testing.T) {
	t.Parallel()

	t.Run("pairs every room with every access context", func(t *testing.T) {
		t.Parallel()

		l := &chintai.Listing{
			Name:   "メゾン渋谷",
			Access: []string{"ＪＲ山手線/渋谷駅 歩9分", "東急東横線/代官山駅 歩12分"},
			Rooms: []chintai.Room{
				{Floor: "2階", Rent: "8.5万円", Layout: "1K"},
				{Floor: "3階", Rent: "9万円", Layout: "1DK"},
			},
			DetailURL: strPtr("https://suumo.jp/chintai/jnc_000001/"),
		}

		got := chintai.ExpandListing(l)

		require.Len(t, got, 4)
		assert.Equal(t, "ＪＲ山手線/渋谷駅 歩9分", got[0].Access)
		assert.Equal(t, "2階", got[0].Floor)
		assert.Equal(t, "ＪＲ山手線/渋谷駅 歩9分", got[1].Access)
		assert.Equal(t, "3階", got[1].Floor)
		assert.Equal(t, "東急東横線/代官山駅 歩12分", got[2].Access)
		assert.Equal(t, "2階", got[2].Floor)
		assert.Equal(t, "東急東横線/代官山駅 歩12分", got[3].Access)
		assert.Equal(t, "3階", got[3].Floor)
		for _, r := range got {
			assert.Equal(t, "メゾン渋谷", r.Name)
			assert.Equal(t, "https://suumo.jp/chintai/jnc_000001/", r.DetailURL)
			assert.Empty(t, r.ImageURL)
		}
	})

	t.Run("normalizes to rooms times access records", func(t *testing.T) {
		t.Parallel()

		l := &chintai.Listing{
			Name:   "コーポ中野",
			Access: []string{"LineA/StationA 歩5分", "LineB/StationB 歩12分"},
			Rooms:  []chintai.Room{{Floor: "1階"}, {Floor: "2階"}},
		}

		got := chintai.Normalize(chintai.ExpandListing(l))

		assert.Len(t, got, 4)
	})

	t.Run("yields nothing without access descriptors", func(t *testing.T) {
		t.Parallel()

		l := &chintai.Listing{Name: "A", Rooms: []chintai.Room{{Floor: "1階"}}}

		assert.Empty(t, chintai.ExpandListing(l))
	})

	t.Run("handles nil listing", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, chintai.ExpandListing(nil))
	})
}

func TestProperty_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()

		p := &chintai.Property{}

		err := p.Validate()

		require.Error(t, err)
		assert.Equal(t, chintai.EINVALID, chintai.ErrorCode(err))
	})

	t.Run("accepts all-nil numeric fields", func(t *testing.T) {
		t.Parallel()

		p := &chintai.Property{Name: "A"}

		assert.NoError(t, p.Validate())
	})
}
