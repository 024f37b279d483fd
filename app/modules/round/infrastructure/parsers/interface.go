package parsers

// Parser defines the interface for scorecard parsers.
type Parser interface {
	// Parse reads scorecard data and returns a ParsedScorecard.
	// fileData should contain the raw file bytes; fileName is only used in errors.
	Parse(fileData []byte, fileName string) (*ParsedScorecard, error)
}

// ParsedScorecard is the parser output before names are matched to the roster.
type ParsedScorecard struct {
	// ParScores is empty for scorecards that carry front/back totals directly.
	ParScores    []int
	PlayerScores []PlayerScore
}

// PlayerScore is one scorecard row. Front and Back are strokes relative to par.
type PlayerScore struct {
	PlayerName string
	HoleScores []int
	Front      int
	Back       int
	Aces       int
	Eagles     int
	AceEagles  int
}
