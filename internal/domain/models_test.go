package domain_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"ppetrack/internal/domain"
)

func TestObjectBatch_AddAndStats(t *testing.T) {
	b := &domain.ObjectBatch{}
	b.Add(domain.Purchase{})
	b.Add(domain.ScheduledDelivery{})
	b.Add(domain.ScheduledDelivery{})
	b.Add(domain.Inventory{})
	b.Add(domain.FacilityDelivery{})
	b.Add(domain.Demand{})
	b.Add("not a domain object")

	assert.Equal(t, 6, b.Len())
	assert.Equal(t, map[string]int{
		"Purchase":          1,
		"ScheduledDelivery": 2,
		"Inventory":         1,
		"FacilityDelivery":  1,
		"Demand":            1,
	}, b.Stats())
}

func TestObjectBatch_StatsOmitsEmptyTypes(t *testing.T) {
	b := &domain.ObjectBatch{}
	b.Add(domain.Purchase{})

	assert.Equal(t, map[string]int{"Purchase": 1}, b.Stats())
}

func TestObjectBatch_SetSource(t *testing.T) {
	b := &domain.ObjectBatch{}
	b.Add(domain.Purchase{})
	b.Add(domain.ScheduledDelivery{})
	b.Add(domain.Demand{})

	sourceID := uuid.New()
	b.SetSource(sourceID)

	assert.Equal(t, sourceID, b.Purchases[0].SourceID)
	assert.Equal(t, sourceID, b.Deliveries[0].SourceID)
	assert.Equal(t, sourceID, b.Demands[0].SourceID)
}

func TestDataImport_Display(t *testing.T) {
	imp := &domain.DataImport{
		ImportDate: time.Date(2020, time.April, 12, 10, 0, 0, 0, time.UTC),
		UploadedBy: "ops",
		FileName:   "ordering.xlsx",
	}
	assert.Equal(t, "File uploaded 12/04/20 by ops. Filename: ordering.xlsx", imp.Display())

	imp.UploadedBy = ""
	assert.Contains(t, imp.Display(), "by unknown")
}
