package ui

import (
	"testing"

	"github.com/charmbracelet/bubbles/table"
	"github.com/stretchr/testify/assert"

	"github.com/okabrink/creator-scout/db/models"
)

func TestBrandTableRows(t *testing.T) {
	brands := []models.Brand{
		{Handle: "shoeco", BrandName: "Shoe Co", FollowerCount: 50000, IsVerified: true},
		{Handle: "teanow", BrandName: "Tea Now", FollowerCount: 1200},
	}
	counts := map[string]int64{"shoeco": 7}

	rows := brandTableRows(brands, counts)

	assert.Equal(t, []table.Row{
		{"shoeco", "Shoe Co", "50000", "7", "yes"},
		{"teanow", "Tea Now", "1200", "0", "no"},
	}, rows)
}

func TestBrandTableRowsEmpty(t *testing.T) {
	assert.Empty(t, brandTableRows(nil, nil))
}
