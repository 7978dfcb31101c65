package lexicon

// Word is one corpus entry in the form the ranking engine consumes.
type Word struct {
	Text string
	Freq float64
	// POS is the part-of-speech filter code, "?" when unknown.
	POS string
	// Stress is the 1-based stressed syllable, 0 when unknown.
	Stress int
	// Vector is the optional semantic embedding.
	Vector []float64
}

// Stats holds loader statistics for logging.
type Stats struct {
	TotalLines   int
	CommentLines int
	ParsedLines  int
	SkippedLines int
	CustomWords  int
}
