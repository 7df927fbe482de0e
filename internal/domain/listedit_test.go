package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKS2424/Travel/internal/domain"
)

func TestListEdits(t *testing.T) {
	list := []string{"a", "b", "c"}

	got, err := domain.ReplaceAt(list, 1, "B")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "B", "c"}, got)

	got, err = domain.InsertAt(list, 0, "z")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "b", "c"}, got)

	got, err = domain.InsertAt(list, 3, "d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)

	got, err = domain.RemoveAt(list, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	assert.Equal(t, []string{"a", "b", "c"}, list, "input must be left unchanged")
}

func TestListEdits_OutOfRange(t *testing.T) {
	_, err := domain.ReplaceAt([]string{}, 0, "x")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.InsertAt([]string{"a"}, 2, "x")
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = domain.RemoveAt([]string{"a"}, -1)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRenumberDays(t *testing.T) {
	days := []domain.ItineraryDay{{Day: 4, Title: "Arrive"}, {Day: 9, Title: "Summit"}}

	got := domain.RenumberDays(days)

	assert.Equal(t, 1, got[0].Day)
	assert.Equal(t, 2, got[1].Day)
	assert.Equal(t, 4, days[0].Day)
}
