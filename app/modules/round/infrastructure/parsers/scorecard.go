package parsers

import (
	"bytes"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	HolesPerSide = 9
	Holes        = 2 * HolesPerSide
	defaultPar   = 3
)

var (
	nameColumns      = []string{"player", "playername", "name", "username"}
	frontColumns     = []string{"front", "front9", "f9", "frontrelative", "out"}
	backColumns      = []string{"back", "back9", "b9", "backrelative", "in"}
	aceColumns       = []string{"aces", "ace", "acount"}
	eagleColumns     = []string{"eagles", "eagle", "ecount"}
	aceEagleColumns  = []string{"aceeagles", "aceeagle", "aecount"}
	knownHeaderCells = []string{"player", "playername", "name", "username", "par", "front", "back", "1", "hole1", "h1", "total"}
)

// parseRows turns a header plus data rows into a scorecard. It accepts either
// 18 hole columns (with an optional Par row, par 3 otherwise) or explicit
// front/back columns holding strokes relative to par.
func parseRows(rows [][]string, fileName string) (*ParsedScorecard, error) {
	headerIdx := detectHeaderRow(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoHeader)
	}
	header := rows[headerIdx]
	body := rows[headerIdx+1:]

	nameIdx := findColumn(header, nameColumns)
	if nameIdx < 0 {
		nameIdx = 0
	}

	frontIdx := findColumn(header, frontColumns)
	backIdx := findColumn(header, backColumns)
	if frontIdx >= 0 && backIdx >= 0 {
		return parseRelativeRows(header, body, nameIdx, frontIdx, backIdx, fileName)
	}

	holes := findHoleColumns(header)
	if len(holes) != Holes {
		return nil, fmt.Errorf("%s: found %d hole columns: %w", fileName, len(holes), ErrHoleColumns)
	}
	return parseHoleRows(body, nameIdx, holes, fileName)
}

func parseRelativeRows(header []string, body [][]string, nameIdx, frontIdx, backIdx int, fileName string) (*ParsedScorecard, error) {
	aceIdx := findColumn(header, aceColumns)
	eagleIdx := findColumn(header, eagleColumns)
	aceEagleIdx := findColumn(header, aceEagleColumns)

	var players []PlayerScore
	for i, row := range body {
		name := cell(row, nameIdx)
		if name == "" || isPARRow(name) {
			continue
		}
		front, errF := strconv.Atoi(cell(row, frontIdx))
		back, errB := strconv.Atoi(cell(row, backIdx))
		if errF != nil || errB != nil {
			return nil, fmt.Errorf("%s: row %d (%s): front and back must be whole numbers: %w", fileName, i+2, name, ErrIncompleteCard)
		}
		players = append(players, PlayerScore{
			PlayerName: name,
			Front:      front,
			Back:       back,
			Aces:       optionalCount(row, aceIdx),
			Eagles:     optionalCount(row, eagleIdx),
			AceEagles:  optionalCount(row, aceEagleIdx),
		})
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoPlayers)
	}
	return &ParsedScorecard{PlayerScores: players}, nil
}

func parseHoleRows(body [][]string, nameIdx int, holes []int, fileName string) (*ParsedScorecard, error) {
	pars := slices.Repeat([]int{defaultPar}, Holes)
	var players []PlayerScore

	for i, row := range body {
		name := cell(row, nameIdx)
		if name == "" {
			continue
		}
		if isPARRow(name) {
			parsed, err := extractScores(row, holes)
			if err != nil {
				return nil, fmt.Errorf("%s: %w: %v", fileName, ErrInvalidPar, err)
			}
			pars = parsed
			continue
		}
		scores, err := extractScores(row, holes)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d (%s): %w: %v", fileName, i+2, name, ErrIncompleteCard, err)
		}
		players = append(players, PlayerScore{PlayerName: name, HoleScores: scores})
	}
	if len(players) == 0 {
		return nil, fmt.Errorf("%s: %w", fileName, ErrNoPlayers)
	}

	for i := range players {
		players[i].applyPars(pars)
	}
	return &ParsedScorecard{ParScores: pars, PlayerScores: players}, nil
}

// applyPars derives the relative halves and the ace and eagle counts.
// An ace on a par 3 is counted as an ace-eagle rather than an ace.
func (p *PlayerScore) applyPars(pars []int) {
	p.Front, p.Back = 0, 0
	p.Aces, p.Eagles, p.AceEagles = 0, 0, 0
	for hole, strokes := range p.HoleScores {
		diff := strokes - pars[hole]
		if hole < HolesPerSide {
			p.Front += diff
		} else {
			p.Back += diff
		}
		switch {
		case strokes == 1 && diff == -2:
			p.AceEagles++
		case strokes == 1:
			p.Aces++
		case diff == -2:
			p.Eagles++
		}
	}
}

// findColumn searches for a column by multiple possible names (case-insensitive)
// Removes spaces, underscores, and hyphens for normalization
func findColumn(header []string, possibleNames []string) int {
	for i, col := range header {
		colNorm := normalize(col)
		for _, name := range possibleNames {
			if colNorm == normalize(name) {
				return i
			}
		}
	}
	return -1
}

// findHoleColumns returns the column index for each hole, ordered by hole number.
// Matches patterns: "hole1", "hole_1", "hole 1", "h1", "H1", or just "1".
func findHoleColumns(header []string) []int {
	byHole := make(map[int]int)
	for i, col := range header {
		colNorm := normalize(col)
		numStr := colNorm
		switch {
		case strings.HasPrefix(colNorm, "hole"):
			numStr = strings.TrimPrefix(colNorm, "hole")
		case strings.HasPrefix(colNorm, "h"):
			numStr = strings.TrimPrefix(colNorm, "h")
		}
		n, err := strconv.Atoi(numStr)
		if err != nil || n < 1 || n > Holes {
			continue
		}
		if _, dup := byHole[n]; !dup {
			byHole[n] = i
		}
	}
	cols := make([]int, 0, len(byHole))
	for hole := 1; hole <= Holes; hole++ {
		col, ok := byHole[hole]
		if !ok {
			break
		}
		cols = append(cols, col)
	}
	return cols
}

// detectHeaderRow scans the first 5 rows to find the header
// Returns the index of the header row, or -1 if not found
func detectHeaderRow(rows [][]string) int {
	maxRows := min(len(rows), 5)
	bestScore, bestRow := 0, -1
	for rowIdx := 0; rowIdx < maxRows; rowIdx++ {
		score := 0
		for _, c := range rows[rowIdx] {
			if slices.Contains(knownHeaderCells, normalize(c)) {
				score++
			}
		}
		// Need at least 2 recognized columns to consider it a header
		if score >= 2 && score > bestScore {
			bestScore, bestRow = score, rowIdx
		}
	}
	return bestRow
}

// isPARRow checks if a row represents par values
func isPARRow(cellValue string) bool {
	normalized := strings.ToUpper(strings.TrimSpace(cellValue))
	return normalized == "PAR" || normalized == "PARS"
}

// extractScores reads one positive stroke count per hole column.
func extractScores(row []string, columns []int) ([]int, error) {
	scores := make([]int, 0, len(columns))
	for hole, idx := range columns {
		val := cell(row, idx)
		score, err := strconv.Atoi(val)
		if err != nil || score < 1 {
			return nil, fmt.Errorf("hole %d has %q", hole+1, val)
		}
		scores = append(scores, score)
	}
	return scores, nil
}

func optionalCount(row []string, idx int) int {
	if idx < 0 {
		return 0
	}
	n, err := strconv.Atoi(cell(row, idx))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "", "_", "", "-", "").Replace(s)
}

// preprocessCSVData cleans CSV data and auto-detects delimiter
func preprocessCSVData(data []byte) (string, rune, error) {
	if len(data) == 0 {
		return "", ',', fmt.Errorf("empty CSV data")
	}

	// Strip UTF-8 BOM if present
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	cleaned := string(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))

	// Auto-detect delimiter: count commas vs tabs in first 5 lines
	lines := strings.Split(cleaned, "\n")
	commaCount, tabCount := 0, 0
	for _, line := range lines[:min(len(lines), 5)] {
		commaCount += strings.Count(line, ",")
		tabCount += strings.Count(line, "\t")
	}

	delimiter := ','
	if tabCount > commaCount {
		delimiter = '\t'
	}
	return cleaned, delimiter, nil
}
