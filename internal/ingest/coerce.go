package ingest

import (
	"strconv"
	"strings"
	"time"
)

// CoerceFunc converts one raw cell value into a typed value, reporting
// failures to the collector instead of returning an error. A nil result
// means the field is absent.
type CoerceFunc func(raw any, c *Collector) any

// Coercer holds the coercion configuration. Source spreadsheets write
// some dates without a year ("30-Apr", "4/15"); RefYear is the year those
// resolve to. Constructed once at startup and injected wherever coercions
// are declared.
type Coercer struct {
	RefYear int
	Formats []DateFormat
}

// NewCoercer returns a Coercer accepting the default formats and
// resolving year-less dates to the current year.
func NewCoercer() Coercer {
	return Coercer{RefYear: time.Now().Year(), Formats: DefaultDateFormats()}
}

// DateFormat is one accepted textual date layout. NeedYear marks layouts
// without a year component, which resolve to the coercer's RefYear.
type DateFormat struct {
	Layout   string
	NeedYear bool
}

// DefaultDateFormats returns the ordered list of date spellings seen in
// the source spreadsheets. Unpadded layouts also accept zero-padded input.
func DefaultDateFormats() []DateFormat {
	return []DateFormat{
		{Layout: "1/2/2006"},              // 04/10/2020
		{Layout: "1/2/06"},                // 04/10/20
		{Layout: "2006-1-2"},              // 2020-04-10
		{Layout: "2-Jan", NeedYear: true}, // 30-Apr
		{Layout: "1/2", NeedYear: true},   // 4/15
		{Layout: "1-2", NeedYear: true},   // 04-13
		{Layout: "1-2-2006"},              // 04-13-2020
	}
}

// Date coerces a raw cell into a date. Strings are tried against every
// accepted format; if two formats parse to different calendar dates the
// value is ambiguous and rejected rather than silently picking one.
// Already-typed times pass through. Anything else is an absent field.
func (co Coercer) Date(raw any, c *Collector) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case time.Time:
		return v
	case string:
		s := strings.TrimSpace(v)
		var matches []time.Time
		for _, f := range co.Formats {
			t, err := time.Parse(f.Layout, s)
			if err != nil {
				continue
			}
			if f.NeedYear {
				t = time.Date(co.RefYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			matches = append(matches, t)
		}
		distinct := distinctTimes(matches)
		switch len(distinct) {
		case 0:
			c.Errorf("unknown date format: %s", s)
			return nil
		case 1:
			return distinct[0]
		default:
			c.Errorf("ambiguous date! %s", s)
			return nil
		}
	default:
		return nil
	}
}

func distinctTimes(ts []time.Time) []time.Time {
	var out []time.Time
	for _, t := range ts {
		dup := false
		for _, o := range out {
			if t.Equal(o) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	return out
}

// Int coerces a raw cell into an integer. Ints pass through, nil stays
// nil, and strings that do not parse record an error and become nil.
func (co Coercer) Int(raw any, c *Collector) any {
	switch v := raw.(type) {
	case nil:
		return nil
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		if v == float64(int(v)) {
			return int(v)
		}
		c.Errorf("can't parse %v as an integer", v)
		return nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			// Maybe there's a unit or some other crap in the cell.
			c.Errorf("can't parse %q as an integer", v)
			return nil
		}
		return n
	default:
		c.Errorf("can't parse %v as an integer", raw)
		return nil
	}
}

// IntOrZero is Int for fields where absence means zero, e.g. summed
// quantity columns.
func (co Coercer) IntOrZero(raw any, c *Collector) any {
	if n, ok := co.Int(raw, c).(int); ok {
		return n
	}
	return 0
}

// Bool coerces y/yes and n/no (case-insensitive, trimmed). Anything else,
// including an absent cell, records an error and stays nil.
func (co Coercer) Bool(raw any, c *Collector) any {
	s, ok := raw.(string)
	if !ok {
		c.Errorf("bool input was %v", raw)
		return nil
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		c.Errorf("failed to parse bool: `%s`", s)
		return nil
	}
}

// StringOrNone keeps non-empty strings and maps everything else to the
// literal "None", matching how the source sheets record absent comments.
func (co Coercer) StringOrNone(raw any, c *Collector) any {
	if s, ok := raw.(string); ok && s != "" {
		return s
	}
	return "None"
}
