package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKS2424/Travel/internal/domain"
)

func TestExportRows(t *testing.T) {
	bare := domain.Trek{ID: uuid.New(), Title: "Day hike", Inclusions: []string{"Lunch"}}
	full := domain.Trek{ID: uuid.New(), Title: "GR20", Itinerary: []domain.ItineraryDay{
		{Day: 1, Title: "Calenzana", Activities: []domain.Activity{
			{ID: "a", Time: "07:00", Description: "Start"},
			{ID: "b", Time: "15:00", Description: "Refuge"},
		}},
		{Day: 2, Title: "Rest"},
	}}

	rows := domain.ExportRows([]domain.Trek{bare, full})

	require.Len(t, rows, 4)
	assert.Equal(t, "Day hike", rows[0].Title)
	assert.Zero(t, rows[0].Day)
	assert.Equal(t, []string{"Lunch"}, rows[0].Inclusions)

	assert.Equal(t, full.ID.String(), rows[1].TrekID)
	assert.Equal(t, 1, rows[1].Day)
	assert.Equal(t, "Start", rows[1].ActivityDescription)
	assert.Equal(t, "Refuge", rows[2].ActivityDescription)

	assert.Equal(t, 2, rows[3].Day)
	assert.Equal(t, "Rest", rows[3].DayTitle)
	assert.Empty(t, rows[3].ActivityTime)
}

func TestExportRows_Empty(t *testing.T) {
	assert.Empty(t, domain.ExportRows(nil))
}
