package ingest_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ppetrack/internal/ingest"
)

func testCoercer() ingest.Coercer {
	return ingest.Coercer{RefYear: 2020, Formats: ingest.DefaultDateFormats()}
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestDate_AcceptedFormats(t *testing.T) {
	co := testCoercer()
	cases := map[string]time.Time{
		"04/10/2020": day(2020, time.April, 10),
		"4/10/20":    day(2020, time.April, 10),
		"2020-04-10": day(2020, time.April, 10),
		"30-Apr":     day(2020, time.April, 30),
		"4/15":       day(2020, time.April, 15),
		"04-13":      day(2020, time.April, 13),
		"04-13-2020": day(2020, time.April, 13),
	}
	for raw, want := range cases {
		c := ingest.NewCollector()
		got := co.Date(raw, c)
		assert.Equal(t, want, got, raw)
		assert.Empty(t, c.Errors, raw)
	}
}

func TestDate_YearlessFormatsUseRefYear(t *testing.T) {
	co := testCoercer()
	co.RefYear = 2021
	c := ingest.NewCollector()

	assert.Equal(t, day(2021, time.May, 30), co.Date("5/30", c))
	assert.Empty(t, c.Errors)
}

func TestDate_UnknownFormat(t *testing.T) {
	co := testCoercer()
	c := ingest.NewCollector()

	assert.Nil(t, co.Date("Pending", c))
	assert.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "unknown date format")
}

func TestDate_AmbiguousAcrossFormats(t *testing.T) {
	// Two layouts that read day and month in opposite order: "3/4" is
	// either March 4 or April 3, and must be rejected, not guessed.
	co := ingest.Coercer{RefYear: 2020, Formats: []ingest.DateFormat{
		{Layout: "1/2", NeedYear: true},
		{Layout: "2/1", NeedYear: true},
	}}
	c := ingest.NewCollector()

	assert.Nil(t, co.Date("3/4", c))
	assert.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "ambiguous date!")
}

func TestDate_MultipleFormatsAgreeing(t *testing.T) {
	// "4/4" parses under both layouts to the same day, which is fine.
	co := ingest.Coercer{RefYear: 2020, Formats: []ingest.DateFormat{
		{Layout: "1/2", NeedYear: true},
		{Layout: "2/1", NeedYear: true},
	}}
	c := ingest.NewCollector()

	assert.Equal(t, day(2020, time.April, 4), co.Date("4/4", c))
	assert.Empty(t, c.Errors)
}

func TestDate_PassthroughAndAbsent(t *testing.T) {
	co := testCoercer()
	c := ingest.NewCollector()
	parsed := day(2020, time.April, 1)

	assert.Equal(t, parsed, co.Date(parsed, c))
	assert.Nil(t, co.Date(nil, c))
	assert.Nil(t, co.Date(42, c))
	assert.Empty(t, c.Errors)
}

func TestInt(t *testing.T) {
	co := testCoercer()
	c := ingest.NewCollector()

	assert.Equal(t, 42, co.Int(" 42 ", c))
	assert.Equal(t, 7, co.Int(7, c))
	assert.Equal(t, 3, co.Int(float64(3), c))
	assert.Nil(t, co.Int(nil, c))
	assert.Empty(t, c.Errors)

	assert.Nil(t, co.Int("1,000 boxes", c))
	assert.Nil(t, co.Int(3.5, c))
	assert.Len(t, c.Errors, 2)
}

func TestIntOrZero(t *testing.T) {
	co := testCoercer()
	c := ingest.NewCollector()

	assert.Equal(t, 12, co.IntOrZero("12", c))
	assert.Equal(t, 0, co.IntOrZero(nil, c))
	assert.Empty(t, c.Errors)

	assert.Equal(t, 0, co.IntOrZero("n/a", c))
	assert.Len(t, c.Errors, 1)
}

func TestBool(t *testing.T) {
	co := testCoercer()
	c := ingest.NewCollector()

	assert.Equal(t, true, co.Bool("Y", c))
	assert.Equal(t, true, co.Bool(" yes ", c))
	assert.Equal(t, false, co.Bool("No", c))
	assert.Empty(t, c.Errors)

	assert.Nil(t, co.Bool("maybe", c))
	assert.Nil(t, co.Bool(nil, c))
	assert.Len(t, c.Errors, 2)
}

func TestStringOrNone(t *testing.T) {
	co := testCoercer()
	c := ingest.NewCollector()

	assert.Equal(t, "left at loading dock", co.StringOrNone("left at loading dock", c))
	assert.Equal(t, "None", co.StringOrNone("", c))
	assert.Equal(t, "None", co.StringOrNone(nil, c))
	assert.Empty(t, c.Errors)
}

func TestCollector(t *testing.T) {
	c := ingest.NewCollector()
	c.Errorf("bad cell %d", 1)
	c.Warnf("suspect cell %d", 2)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "1 errors and 1 warnings", c.String())
}
