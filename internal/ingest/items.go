package ingest

import (
	"strings"

	"ppetrack/internal/domain"
)

// ItemCatalog normalizes free-text asset names from source spreadsheets
// into the closed Item set. The lookup is case- and space-insensitive.
// Loaded once at process start and injected; unknown names map to
// ItemUnknown with a warning, never an abort, since the source sheets
// are not controlled by this system.
type ItemCatalog struct {
	names map[string]domain.Item
}

// DefaultItemCatalog returns the catalog of every asset spelling seen in
// the wild so far.
func DefaultItemCatalog() ItemCatalog {
	return ItemCatalog{names: map[string]domain.Item{
		"bipap":                      domain.ItemBiPAPMachines,
		"bipapmachines":              domain.ItemBiPAPMachines,
		"bodybags":                   domain.ItemBodyBags,
		"coveralls":                  domain.ItemCoveralls,
		"eyewear":                    domain.ItemGenericEyewear,
		"facecoverings-nonmedical":   domain.ItemMaskOther,
		"facemasks":                  domain.ItemMaskOther,
		"facemasks-other":            domain.ItemMaskOther,
		"faceshield":                 domain.ItemFaceshield,
		"faceshields":                domain.ItemFaceshield,
		"fullserviceventilators":     domain.ItemVentsFull,
		"gloves":                     domain.ItemGloves,
		"gloves-latex":               domain.ItemGloves,
		"swabkit":                    domain.ItemSwabKit,
		"goggles":                    domain.ItemGoggles,
		"gowns":                      domain.ItemGown,
		"isolationgowns":             domain.ItemGown,
		"isogowns":                   domain.ItemGown,
		"kn95masks":                  domain.ItemKN95Mask,
		"materialsforgowns":          domain.ItemGownMaterial,
		"misc":                       domain.ItemPPEOther,
		"multipurposeppe":            domain.ItemPPEOther,
		"n95":                        domain.ItemN95Surgical,
		"n95respirators":             domain.ItemN95Surgical,
		"n95respiratormasks":         domain.ItemN95Surgical,
		"non-surgicalgraden95smasks": domain.ItemN95NonSurgical,
		"nonfullserviceventilators":  domain.ItemVentsNonFull,
		"otherppe,healthcare":        domain.ItemPPEOther,
		"postmortembags":             domain.ItemBodyBags,
		"scrubs":                     domain.ItemScrubs,
		"surgicalgraden95smasks":     domain.ItemN95Surgical,
		"surgicalmasks":              domain.ItemSurgicalMask,
		"vents":                      domain.ItemVentsFull,
		"ponchos":                    domain.ItemPonchos,
		"other":                      domain.ItemUnknown,
	}}
}

// Match resolves a raw asset name cell to an Item.
func (ic ItemCatalog) Match(raw any, c *Collector) domain.Item {
	name, ok := raw.(string)
	if !ok || name == "" {
		c.Errorf("null asset name")
		return domain.ItemUnknown
	}
	key := strings.ReplaceAll(strings.ToLower(name), " ", "")
	if item, found := ic.names[key]; found {
		return item
	}
	c.Warnf("unknown asset type: %s", name)
	return domain.ItemUnknown
}

// coerce adapts Match to the CoerceFunc signature used in sheet mappings.
func (ic ItemCatalog) coerce(raw any, c *Collector) any {
	return ic.Match(raw, c)
}
