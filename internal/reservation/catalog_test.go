package reservation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/restaurant-table-reservation/internal/model"
)

func TestCanAccommodate(t *testing.T) {
	table := model.Table{Capacity: 6, MinPartySize: 4, IsActive: true}

	assert.True(t, CanAccommodate(table, 4))
	assert.True(t, CanAccommodate(table, 6))
	assert.False(t, CanAccommodate(table, 3), "below the table's minimum party")
	assert.False(t, CanAccommodate(table, 7), "over capacity")

	table.IsActive = false
	assert.False(t, CanAccommodate(table, 5), "inactive tables seat nobody")
}

func TestFitScore(t *testing.T) {
	deuce := model.Table{Capacity: 2, MinPartySize: 1, TableType: model.TableTypeStandard, IsActive: true}
	fourTop := model.Table{Capacity: 4, MinPartySize: 1, TableType: model.TableTypeStandard, IsActive: true}
	privateFour := model.Table{Capacity: 4, MinPartySize: 1, TableType: model.TableTypePrivate, IsActive: true}

	// A party of two: exact fit beats wasted seats beats private.
	score, ok := FitScore(deuce, 2)
	assert.True(t, ok)
	assert.Equal(t, 0, score)

	score, ok = FitScore(fourTop, 2)
	assert.True(t, ok)
	assert.Equal(t, 2, score)

	score, ok = FitScore(privateFour, 2)
	assert.True(t, ok)
	assert.Equal(t, 7, score, "wasted capacity plus the private penalty")

	// A table that cannot seat the party scores the sentinel.
	score, ok = FitScore(deuce, 3)
	assert.False(t, ok)
	assert.Equal(t, fitScoreInvalid, score)
}
