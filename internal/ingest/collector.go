package ingest

import (
	"fmt"
	"log"
	"sort"
)

// Collector accumulates row-level problems for one import operation.
// Errors mean a value or row was dropped; warnings mean it was kept but
// is suspect. Nothing here ever aborts the import: bad cells degrade to
// missing fields and bad rows to empty expansions.
type Collector struct {
	Errors   []string
	Warnings []string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Errorf records a dropped-value error.
func (c *Collector) Errorf(format string, args ...any) {
	c.Errors = append(c.Errors, fmt.Sprintf(format, args...))
}

// Warnf records a kept-but-suspect warning.
func (c *Collector) Warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

// Len returns the total number of recorded problems.
func (c *Collector) Len() int {
	return len(c.Errors) + len(c.Warnings)
}

// Dump logs the deduplicated errors and warnings.
func (c *Collector) Dump() {
	for _, e := range dedupe(c.Errors) {
		log.Printf("import error: %s", e)
	}
	for _, w := range dedupe(c.Warnings) {
		log.Printf("import warning: %s", w)
	}
}

func (c *Collector) String() string {
	return fmt.Sprintf("%d errors and %d warnings", len(c.Errors), len(c.Warnings))
}

func dedupe(msgs []string) []string {
	seen := make(map[string]struct{}, len(msgs))
	var out []string
	for _, m := range msgs {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
