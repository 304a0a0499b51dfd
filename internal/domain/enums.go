package domain

// ImportStatus represents the lifecycle of a data import ledger entry.
type ImportStatus string

const (
	ImportStatusCandidate ImportStatus = "candidate"
	ImportStatusActive    ImportStatus = "active"
	ImportStatusReplaced  ImportStatus = "replaced"
	ImportStatusCancelled ImportStatus = "cancelled"
)

// DataFile identifies a logical family of spreadsheet layouts.
// One uploaded file belongs to exactly one family; a family may span
// several sheets of the same workbook.
type DataFile string

const (
	DataFileOrderingCharts     DataFile = "ppe_orderingcharts"
	DataFileSuppliersPartners  DataFile = "suppliers_partners"
	DataFileDonations          DataFile = "csh_donations"
	DataFileFacilityDeliveries DataFile = "facility_deliveries"
	DataFileInventory          DataFile = "inventory"
	DataFileHospitalDemands    DataFile = "hospital_demands"
)

// AllDataFiles lists every known data family.
var AllDataFiles = []DataFile{
	DataFileOrderingCharts,
	DataFileSuppliersPartners,
	DataFileDonations,
	DataFileFacilityDeliveries,
	DataFileInventory,
	DataFileHospitalDemands,
}

// OrderType distinguishes how a purchase was sourced.
type OrderType string

const (
	OrderTypePurchase OrderType = "purchase"
	OrderTypeMake     OrderType = "make"
	OrderTypeDonation OrderType = "donation"
)

// Unit is the counting unit for a purchased quantity.
type Unit string

const (
	UnitEach Unit = "each"
	UnitYard Unit = "yard"
	UnitLb   Unit = "lb"
)

// Item is the closed set of tracked asset categories. Free-text asset
// names from source spreadsheets are normalized into this set so the
// database stays clean.
type Item string

const (
	ItemFaceshield     Item = "faceshield"
	ItemGown           Item = "gown"
	ItemGownMaterial   Item = "gown_material"
	ItemCoveralls      Item = "coveralls"
	ItemN95NonSurgical Item = "n95_mask"
	ItemN95Surgical    Item = "n95_mask_surgical"
	ItemKN95Mask       Item = "kn95_mask"
	ItemSurgicalMask   Item = "surgical_mask"
	ItemMaskOther      Item = "mask_other"
	ItemGoggles        Item = "goggles"
	ItemGenericEyewear Item = "generic_eyeware"
	ItemGloves         Item = "gloves"
	ItemVentsFull      Item = "ventilators_full"
	ItemVentsNonFull   Item = "ventilators_non_full"
	ItemBiPAPMachines  Item = "bipap_machines"
	ItemPPEOther       Item = "ppe_other"
	ItemBodyBags       Item = "body_bags"
	ItemScrubs         Item = "scrubs"
	ItemSwabKit        Item = "swab_kit"
	ItemPonchos        Item = "ponchos"
	ItemUnknown        Item = "unknown"
)

var itemDisplayNames = map[Item]string{
	ItemFaceshield:     "Face Shields",
	ItemGown:           "Gowns",
	ItemGownMaterial:   "Gown Material",
	ItemCoveralls:      "Coveralls",
	ItemN95NonSurgical: "Non-surgical n95 Masks",
	ItemN95Surgical:    "Surgical n95 Masks",
	ItemKN95Mask:       "KN95 Masks",
	ItemSurgicalMask:   "Surgical Masks",
	ItemMaskOther:      "Other Face Masks",
	ItemGoggles:        "Goggles",
	ItemGenericEyewear: "Eyeware",
	ItemGloves:         "Gloves",
	ItemVentsFull:      "Full Service Ventilators",
	ItemVentsNonFull:   "Non Full Service Ventilators",
	ItemBiPAPMachines:  "BiPap Machines",
	ItemPPEOther:       "Other PPE",
	ItemBodyBags:       "Body bags",
	ItemScrubs:         "Scrubs",
	ItemSwabKit:        "Swab Kits",
	ItemPonchos:        "Ponchos",
	ItemUnknown:        "Unknown",
}

// Display returns the human-readable name for an item.
func (i Item) Display() string {
	if name, ok := itemDisplayNames[i]; ok {
		return name
	}
	return string(i)
}
