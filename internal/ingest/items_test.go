package ingest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"ppetrack/internal/domain"
	"ppetrack/internal/ingest"
)

func TestItemCatalog_Match(t *testing.T) {
	items := ingest.DefaultItemCatalog()
	c := ingest.NewCollector()

	assert.Equal(t, domain.ItemN95Surgical, items.Match("N95 Respirators", c))
	assert.Equal(t, domain.ItemGown, items.Match("ISO GOWNS", c))
	assert.Equal(t, domain.ItemFaceshield, items.Match("Face Shields", c))
	assert.Equal(t, domain.ItemVentsFull, items.Match("Full Service Ventilators", c))
	assert.Empty(t, c.Errors)
	assert.Empty(t, c.Warnings)
}

func TestItemCatalog_UnknownName(t *testing.T) {
	items := ingest.DefaultItemCatalog()
	c := ingest.NewCollector()

	assert.Equal(t, domain.ItemUnknown, items.Match("Widgets", c))
	assert.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "unknown asset type: Widgets")
	assert.Empty(t, c.Errors)
}

func TestItemCatalog_NullName(t *testing.T) {
	items := ingest.DefaultItemCatalog()
	c := ingest.NewCollector()

	assert.Equal(t, domain.ItemUnknown, items.Match(nil, c))
	assert.Equal(t, domain.ItemUnknown, items.Match("", c))
	assert.Len(t, c.Errors, 2)
	assert.Contains(t, c.Errors[0], "null asset name")
}

func TestItemDisplay(t *testing.T) {
	assert.Equal(t, "Surgical n95 Masks", domain.ItemN95Surgical.Display())
	assert.Equal(t, "BiPap Machines", domain.ItemBiPAPMachines.Display())
	assert.Equal(t, "bogus", domain.Item("bogus").Display())
}
