package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DKS2424/Travel/internal/domain"
)

func TestParseDifficulty(t *testing.T) {
	for _, want := range domain.Difficulties {
		got, err := domain.ParseDifficulty(want.String())
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseDifficulty_Invalid(t *testing.T) {
	for _, s := range []string{"", "easy", "Extreme"} {
		_, err := domain.ParseDifficulty(s)
		assert.ErrorIs(t, err, domain.ErrValidation, "input %q", s)
	}
}

func TestDifficulty_RankIsOrdered(t *testing.T) {
	assert.Less(t, domain.DifficultyEasy.Rank(), domain.DifficultyModerate.Rank())
	assert.Less(t, domain.DifficultyModerate.Rank(), domain.DifficultyHard.Rank())
	assert.Less(t, domain.DifficultyHard.Rank(), domain.DifficultyExpert.Rank())
	assert.Zero(t, domain.Difficulty("Casual").Rank())
}

func TestParseTrekOrder(t *testing.T) {
	tests := []struct {
		in   string
		want domain.TrekOrder
	}{
		{"", domain.DefaultTrekOrder},
		{"price", domain.TrekOrder{Field: "price", Ascending: true}},
		{"created_at.desc", domain.TrekOrder{Field: "created_at", Ascending: false}},
		{"start_date.asc", domain.TrekOrder{Field: "start_date", Ascending: true}},
	}
	for _, tc := range tests {
		got, err := domain.ParseTrekOrder(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestParseTrekOrder_Rejects(t *testing.T) {
	for _, s := range []string{"id", "price.up", "start_date;drop table treks"} {
		_, err := domain.ParseTrekOrder(s)
		assert.ErrorIs(t, err, domain.ErrValidation, s)
	}
}

func TestTrekOrder_String(t *testing.T) {
	assert.Equal(t, "start_date.asc", domain.DefaultTrekOrder.String())
	assert.Equal(t, "price.desc", domain.TrekOrder{Field: "price"}.String())
}
