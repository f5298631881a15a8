package ingest

import (
	"testing"

	"stockroom-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMarkdownNotification(t *testing.T) {
	text := "New sale!\nName: **bud_ogkush**\n3x sold\nProfit: **$2,400**"

	parsed, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, "bud_ogkush", parsed.Item)
	assert.Equal(t, 3, parsed.Quantity)
	assert.Equal(t, 2400, parsed.Total)
	assert.Equal(t, 800, parsed.UnitPrice)
}

func TestParseInlineNotification(t *testing.T) {
	parsed, err := Parse("5x joint_ogkush purchased for $150")
	require.NoError(t, err)
	assert.Equal(t, "joint_ogkush", parsed.Item)
	assert.Equal(t, 5, parsed.Quantity)
	assert.Equal(t, 150, parsed.Total)
	assert.Equal(t, 30, parsed.UnitPrice)
}

func TestParseQuantityDefaultsToOne(t *testing.T) {
	parsed, err := Parse("Name: bud_ogkush\nProfit: $780")
	require.NoError(t, err)
	assert.Equal(t, 1, parsed.Quantity)
	assert.Equal(t, 780, parsed.UnitPrice)
}

func TestParsePerUnitPriceFloors(t *testing.T) {
	parsed, err := Parse("Name: **joint_ogkush**\n3x\nProfit: $100")
	require.NoError(t, err)
	assert.Equal(t, 33, parsed.UnitPrice)
	assert.Equal(t, 100, parsed.Total)
}

func TestParseFailures(t *testing.T) {
	cases := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no item", "Profit: $500"},
		{"no value", "Name: **bud_ogkush**\n2x"},
		{"zero value", "Name: **bud_ogkush**\nProfit: $0"},
		{"plain chatter", "hey did anyone restock yet"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.text)
			assert.ErrorIs(t, err, domain.ErrParseFailure)
		})
	}
}
