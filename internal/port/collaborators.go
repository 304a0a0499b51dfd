package port

// Suggester finds the closest match for a string among candidates, used
// to turn sheet/column name mismatches into actionable rename hints.
type Suggester interface {
	// Closest returns the best-matching candidate and a similarity score
	// in [0, 1]. ok is false when candidates is empty.
	Closest(target string, candidates []string) (match string, score float64, ok bool)
}

// ErrorSink receives unexpected failures for external tracking. It is
// fire-and-forget: implementations must not block the import path.
type ErrorSink interface {
	Notify(err error, msg string)
}
