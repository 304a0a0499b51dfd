package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ppetrack/internal/domain"
	"ppetrack/internal/ingest"
)

var fixedNow = time.Date(2020, time.April, 15, 12, 0, 0, 0, time.UTC)

func testExpander() *ingest.Expander {
	return &ingest.Expander{
		Coercer: testCoercer(),
		Items:   ingest.DefaultItemCatalog(),
		Now:     func() time.Time { return fixedNow },
	}
}

// expandRows runs rows through extraction and expansion under a pinned
// clock and returns the produced domain objects.
func expandRows(t *testing.T, kind ingest.RowKind, rows [][]string, c *ingest.Collector) []any {
	t.Helper()
	e := testExpander()
	m := mappingFor(t, kind)
	var objs []any
	for _, rec := range ingest.Extract(ingest.ResolvedSheet{Mapping: m, Rows: rows}, c) {
		objs = append(objs, e.Expand(rec, c)...)
	}
	return objs
}

var sourcingHeader = []string{
	"Critical Asset", "Description", "Total Qty Ordered", "Received Qty",
	"Delivery 1 Week Of", "Delivery 1 Qty", "Deliver 2 Week Of", "Delivery 2 Qty",
	"Vendor", "Status",
}

func TestSourcing_CompletedOrderWithTwoDeliveries(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindSourcing, [][]string{
		sourcingHeader,
		{"N95 Respirators", "3M 1860", "1005", "5",
			"4/10/2020", "5", "4/16/2020", "1000", "Acme Supply", "Completed"},
	}, c)

	require.Len(t, objs, 3)
	purchase, ok := objs[0].(domain.Purchase)
	require.True(t, ok)
	assert.Equal(t, domain.OrderTypePurchase, purchase.OrderType)
	assert.Equal(t, domain.ItemN95Surgical, purchase.Item)
	assert.Equal(t, 1005, purchase.Quantity)
	assert.Equal(t, 5, purchase.ReceivedQuantity)
	assert.Equal(t, "Acme Supply", purchase.Vendor)
	assert.NotEmpty(t, purchase.RawData)

	d1, ok := objs[1].(domain.ScheduledDelivery)
	require.True(t, ok)
	d2, ok := objs[2].(domain.ScheduledDelivery)
	require.True(t, ok)
	assert.Equal(t, purchase.ID, d1.PurchaseID)
	assert.Equal(t, purchase.ID, d2.PurchaseID)
	assert.Equal(t, day(2020, time.April, 10), *d1.DeliveryDate)
	assert.Equal(t, 5, d1.Quantity)
	assert.Equal(t, day(2020, time.April, 16), *d2.DeliveryDate)
	assert.Equal(t, 1000, d2.Quantity)
	assert.Empty(t, c.Errors)
}

func TestSourcing_OnlyCompletedOrdersCount(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindSourcing, [][]string{
		sourcingHeader,
		{"N95 Respirators", "", "1005", "",
			"4/10/2020", "5", "", "", "Acme Supply", "In Progress"},
	}, c)

	assert.Empty(t, objs)
	assert.Empty(t, c.Errors)
}

func TestSourcing_MissingQuantityIsRejected(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindSourcing, [][]string{
		sourcingHeader,
		{"N95 Respirators", "", "", "", "", "", "", "", "Acme Supply", "Completed"},
	}, c)

	assert.Empty(t, objs)
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "refusing to generate a data model")
	assert.Contains(t, c.Errors[0], "quantity is nil")
}

func TestSourcing_NullDeliveryQuantityMeansFullDelivery(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindSourcing, [][]string{
		sourcingHeader,
		{"Gloves", "", "200", "", "4/10/2020", "", "", "", "Acme Supply", "Completed"},
	}, c)

	require.Len(t, objs, 2)
	delivery := objs[1].(domain.ScheduledDelivery)
	assert.Equal(t, 200, delivery.Quantity)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "assuming that a null quantity means a full delivery")
}

func TestSourcing_OverDeliveryIsAWarning(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindSourcing, [][]string{
		sourcingHeader,
		{"Gloves", "", "10", "", "4/10/2020", "5", "4/16/2020", "1000", "Acme Supply", "Completed"},
	}, c)

	assert.Len(t, objs, 3)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "claimed delivered quantity")
	assert.Empty(t, c.Errors)
}

var ventilatorHeader = []string{
	"Equipment Detail", "Adjusted ETA", "Quantity Ordered", "Quantity Delivered",
	"Functionality", "Supplier", "Delivered?",
}

func TestVentilators_PendingOrder(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindVentilator, [][]string{
		ventilatorHeader,
		{"PB 980", "4/20/2020", "50", "0", "FULL", "Medtronic", "No"},
	}, c)

	require.Len(t, objs, 2)
	purchase := objs[0].(domain.Purchase)
	assert.Equal(t, domain.ItemVentsFull, purchase.Item)
	assert.Equal(t, 50, purchase.Quantity)
	assert.Contains(t, purchase.Description, "PB 980")

	delivery := objs[1].(domain.ScheduledDelivery)
	assert.Equal(t, purchase.ID, delivery.PurchaseID)
	assert.Equal(t, day(2020, time.April, 20), *delivery.DeliveryDate)
	assert.Empty(t, c.Errors)
}

func TestVentilators_LimitedFunctionality(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindVentilator, [][]string{
		ventilatorHeader,
		{"Trilogy", "4/20/2020", "10", "0", "LIMITED", "Philips", "No"},
	}, c)

	require.Len(t, objs, 2)
	assert.Equal(t, domain.ItemVentsNonFull, objs[0].(domain.Purchase).Item)
}

func TestVentilators_DeliveredAndDatelessRowsAreSkipped(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindVentilator, [][]string{
		ventilatorHeader,
		{"PB 980", "4/2/2020", "50", "50", "FULL", "Medtronic", "Yes"},
		{"Trilogy", "", "10", "0", "LIMITED", "Philips", "No"},
	}, c)

	assert.Empty(t, objs)
	assert.Empty(t, c.Errors)
}

func TestVentilators_UnknownFunctionality(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindVentilator, [][]string{
		ventilatorHeader,
		{"PB 980", "4/20/2020", "50", "0", "PARTIAL", "Medtronic", "No"},
	}, c)

	assert.Empty(t, objs)
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "unknown ventilator type: PARTIAL")
}

var makeHeader = []string{
	"Supply / Service", "Number of Units", "Delivery Date",
	"Counterparty Name (for procurement)", "Contract Status",
}

func TestMake_ExecutedContractWithSingleDate(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindMake, [][]string{
		makeHeader,
		{"Face Shields", "200", "5/1/2020", "Brooklyn Shop Collective", "Executed"},
	}, c)

	require.Len(t, objs, 2)
	purchase := objs[0].(domain.Purchase)
	assert.Equal(t, domain.OrderTypeMake, purchase.OrderType)
	assert.Equal(t, domain.ItemFaceshield, purchase.Item)
	assert.Equal(t, 200, purchase.Quantity)

	delivery := objs[1].(domain.ScheduledDelivery)
	assert.Equal(t, day(2020, time.May, 1), *delivery.DeliveryDate)
	assert.Equal(t, 200, delivery.Quantity)
	assert.Empty(t, c.Errors)
}

func TestMake_WeeklyUntilExpandsToOneDeliveryPerWeek(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindMake, [][]string{
		makeHeader,
		{"Iso Gowns", "400", "Weekly until 5/30", "Garment District Makers", "Executed"},
	}, c)

	// Weeks counted backward from 5/30 that are still ahead of 4/15:
	// 5/30, 5/23, 5/16, 5/9, 5/2, 4/25, 4/18.
	require.Len(t, objs, 8)
	purchase := objs[0].(domain.Purchase)
	assert.Equal(t, domain.ItemGown, purchase.Item)

	var dates []time.Time
	for _, obj := range objs[1:] {
		delivery := obj.(domain.ScheduledDelivery)
		assert.Equal(t, purchase.ID, delivery.PurchaseID)
		assert.Equal(t, 400, delivery.Quantity)
		dates = append(dates, *delivery.DeliveryDate)
	}
	assert.Equal(t, day(2020, time.May, 30), dates[0])
	assert.Equal(t, day(2020, time.April, 18), dates[len(dates)-1])
}

func TestMake_NonExecutedContractsAreSkipped(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindMake, [][]string{
		makeHeader,
		{"Gowns", "100", "5/1/2020", "Someone", "In Progress"},
		{"Gowns", "100", "5/1/2020", "Someone Else", "Preliminary"},
	}, c)

	assert.Empty(t, objs)
	assert.Empty(t, c.Errors)
}

func TestMake_UnknownContractStatus(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindMake, [][]string{
		makeHeader,
		{"Gowns", "100", "5/1/2020", "Someone", "Handshake"},
	}, c)

	assert.Empty(t, objs)
	assert.Contains(t, c.Errors, `unknown contract status: "handshake"`)
}

func TestMake_MissingVendorIsRejected(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindMake, [][]string{
		makeHeader,
		{"Gowns", "100", "5/1/2020", "", "Executed"},
	}, c)

	assert.Empty(t, objs)
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "vendor is nil")
}

var donationRows = [][]string{
	{"Donations Tracker"},
	{},
	{"Donor", "Notified Date", "Person of Contact", "Detailed Item Description",
		"Critical Asset", "Total Quantity ", "Distribution Status", "Receiving Status", "Comments"},
}

func TestDonations_ReceivedDateDrivesDelivery(t *testing.T) {
	c := ingest.NewCollector()
	rows := append(append([][]string{}, donationRows...),
		[]string{"Helpful Corp", "4/1/2020", "Jo", "boxed masks", "Face Masks",
			"500", "", "4/12/2020", "gate B"})
	objs := expandRows(t, ingest.KindDonation, rows, c)

	require.Len(t, objs, 2)
	purchase := objs[0].(domain.Purchase)
	assert.Equal(t, domain.OrderTypeDonation, purchase.OrderType)
	assert.Equal(t, domain.ItemMaskOther, purchase.Item)
	assert.Equal(t, 500, purchase.Quantity)
	assert.Equal(t, "Helpful Corp", purchase.Vendor)
	assert.Equal(t, "gate B", purchase.Comment)
	require.NotNil(t, purchase.DonationDate)
	assert.Equal(t, day(2020, time.April, 1), *purchase.DonationDate)

	delivery := objs[1].(domain.ScheduledDelivery)
	assert.Equal(t, day(2020, time.April, 12), *delivery.DeliveryDate)
	assert.Empty(t, c.Errors)
}

func TestDonations_PendingReceiptGuessesDeliveryDate(t *testing.T) {
	c := ingest.NewCollector()
	rows := append(append([][]string{}, donationRows...),
		[]string{"Helpful Corp", "4/1/2020", "Jo", "boxed masks", "Face Masks",
			"500", "", "Pending", ""})
	objs := expandRows(t, ingest.KindDonation, rows, c)

	require.Len(t, objs, 2)
	// Notification was over donationDaysGuess days ago, so the guess is
	// clamped relative to now instead of sitting in the past.
	delivery := objs[1].(domain.ScheduledDelivery)
	assert.Equal(t, fixedNow.AddDate(0, 0, 5), *delivery.DeliveryDate)
}

func TestDonations_PickedUpRowsAreDropped(t *testing.T) {
	c := ingest.NewCollector()
	rows := append(append([][]string{}, donationRows...),
		[]string{"Helpful Corp", "4/1/2020", "Jo", "boxed masks", "Face Masks",
			"500", "Picked Up", "4/12/2020", ""})
	objs := expandRows(t, ingest.KindDonation, rows, c)

	assert.Empty(t, objs)
	assert.Empty(t, c.Errors)
}

func TestDonations_MissingQuantityIsAWarning(t *testing.T) {
	c := ingest.NewCollector()
	rows := append(append([][]string{}, donationRows...),
		[]string{"Helpful Corp", "4/1/2020", "Jo", "boxed masks", "Face Masks",
			"", "", "Pending", ""})
	objs := expandRows(t, ingest.KindDonation, rows, c)

	assert.Empty(t, objs)
	require.Len(t, c.Warnings, 1)
	assert.Contains(t, c.Warnings[0], "ignoring donation row with no quantity")
}

func TestFacilityDeliveries_OneObjectPerItemColumn(t *testing.T) {
	m := mappingFor(t, ingest.KindFacilityDelivery)
	header := []string{"Date", "Facility Name or Network", "Facility Type",
		"N95 Respirators", "Other Respirators", "Face Masks", "Face Shields",
		"Goggles", "Gloves", "Gowns", "Ponchos", "Aprons", "Vents",
		"Ventilator Parts", "Post Mortem Bags", "BiPap", "BiPap Parts",
		"Coveralls", "Shoe/Boot Covers", "Scrubs", "Multipurpose PPE",
		"Hand Sanitizer", "Misc", "Misc Non-Deployable"}
	row := make([]string, len(header))
	row[0], row[1], row[2] = "4/12/2020", "Elmhurst", "Hospital"
	row[3] = "100" // N95 Respirators
	row[8] = "50"  // Gloves

	c := ingest.NewCollector()
	e := testExpander()
	var objs []any
	for _, rec := range ingest.Extract(ingest.ResolvedSheet{Mapping: m, Rows: [][]string{header, row}}, c) {
		objs = append(objs, e.Expand(rec, c)...)
	}

	// Every tracked item column yields a record, zero quantities included.
	require.Len(t, objs, 21)
	total := 0
	byItem := map[domain.Item]int{}
	for _, obj := range objs {
		fd := obj.(domain.FacilityDelivery)
		assert.Equal(t, day(2020, time.April, 12), fd.Date)
		assert.Equal(t, "Elmhurst", fd.FacilityName)
		assert.Equal(t, "Hospital", fd.FacilityType)
		total += fd.Quantity
		byItem[fd.Item] += fd.Quantity
	}
	assert.Equal(t, 150, total)
	assert.Equal(t, 100, byItem[domain.ItemN95Surgical])
	assert.Equal(t, 50, byItem[domain.ItemGloves])
	assert.Empty(t, c.Errors)
}

func TestFacilityDeliveries_TotalsRowIsSkipped(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindFacilityDelivery, [][]string{
		{"Date", "Facility Name or Network", "Facility Type", "N95 Respirators"},
		{"", "Total", "", "9000"},
	}, c)

	assert.Empty(t, objs)
	assert.Empty(t, c.Errors)
}

func TestFacilityInventory_OneRecordPerItem(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindFacilityInventory, [][]string{
		{"Date", "N95 Respirators", "Face Masks", "Eyewear", "Gloves", "Gowns",
			"Ponchos", "Coveralls", "Vents", "BiPaps", "Multipurpose PPE",
			"Post Mortem Bags", "Scrubs"},
		{"4/12/2020", "10", "20", "0", "7", "", "", "", "", "", "", "", ""},
	}, c)

	require.Len(t, objs, 12)
	byItem := map[domain.Item]int{}
	for _, obj := range objs {
		inv := obj.(domain.Inventory)
		require.NotNil(t, inv.AsOf)
		assert.Equal(t, day(2020, time.April, 12), *inv.AsOf)
		byItem[inv.Item] += inv.Quantity
	}
	assert.Equal(t, 10, byItem[domain.ItemN95Surgical])
	assert.Equal(t, 7, byItem[domain.ItemGloves])
	assert.Equal(t, 0, byItem[domain.ItemGown])
	assert.Empty(t, c.Errors)
}

func TestFacilityInventory_MissingDateIsRejected(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindFacilityInventory, [][]string{
		{"Date", "N95 Respirators", "Face Masks", "Eyewear", "Gloves", "Gowns",
			"Ponchos", "Coveralls", "Vents", "BiPaps", "Multipurpose PPE",
			"Post Mortem Bags", "Scrubs"},
		{"", "10", "", "", "", "", "", "", "", "", "", "", ""},
	}, c)

	assert.Empty(t, objs)
	assert.Contains(t, c.Errors, "inventory levels row has no date")
}

func TestInventory_CityOnHand(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindInventory, [][]string{
		{"Item", "CITY"},
		{"Gowns", "1200"},
		{"Gloves", ""},
	}, c)

	require.Len(t, objs, 1)
	inv := objs[0].(domain.Inventory)
	assert.Equal(t, domain.ItemGown, inv.Item)
	assert.Equal(t, 1200, inv.Quantity)
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "has no quantity")
}

func TestDemands_WeekRangeRequired(t *testing.T) {
	c := ingest.NewCollector()
	objs := expandRows(t, ingest.KindDemand, [][]string{
		{"Item", "Demand", "Week Start", "Week End"},
		{"N95 Respirators", "1000", "4/6/2020", "4/12/2020"},
		{"Gloves", "50", "4/6/2020", ""},
	}, c)

	require.Len(t, objs, 1)
	demand := objs[0].(domain.Demand)
	assert.Equal(t, domain.ItemN95Surgical, demand.Item)
	assert.Equal(t, 1000, demand.Demand)
	assert.Equal(t, day(2020, time.April, 6), demand.StartDate)
	assert.Equal(t, day(2020, time.April, 12), demand.EndDate)
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "missing its week range")
}
