package parsers

import "errors"

var (
	ErrUnsupportedFile = errors.New("unsupported scorecard file")
	ErrNoHeader        = errors.New("scorecard has no recognisable header row")
	ErrNoPlayers       = errors.New("no valid player scores found")
	ErrHoleColumns     = errors.New("scorecard needs 18 hole columns or front and back columns")
	ErrIncompleteCard  = errors.New("incomplete scorecard row")
	ErrInvalidPar      = errors.New("invalid par row")
)
