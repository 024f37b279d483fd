package parsers

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func holeHeader() string {
	cols := []string{"Name"}
	for i := 1; i <= Holes; i++ {
		cols = append(cols, strconv.Itoa(i))
	}
	return strings.Join(cols, ",")
}

func holeRow(name string, scores ...int) string {
	cols := []string{name}
	for _, s := range scores {
		cols = append(cols, strconv.Itoa(s))
	}
	return strings.Join(cols, ",")
}

func repeat(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "scores.csv", want: "csv"},
		{name: "tsv file", filename: "SCORES.TSV", want: "csv"},
		{name: "xlsx file", filename: "scores.xlsx", want: "xlsx"},
		{name: "unsupported file", filename: "scores.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFile)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			}
			assert.Equal(t, tt.want, FormatOf(tt.filename))
		})
	}
}

func TestCSVParser_HoleByHole(t *testing.T) {
	pars := append(repeat(9, 3), repeat(9, 4)...)
	gary := append(append([]int{1, 2}, repeat(7, 3)...), append([]int{2}, repeat(8, 4)...)...)
	pat := append(repeat(9, 4), repeat(9, 5)...)

	data := strings.Join([]string{
		holeHeader(),
		holeRow("Par", pars...),
		holeRow("Gary", gary...),
		holeRow("Pat", pat...),
	}, "\r\n")

	card, err := NewCSVParser().Parse([]byte(data), "round.csv")
	require.NoError(t, err)
	assert.Equal(t, pars, card.ParScores)
	require.Len(t, card.PlayerScores, 2)

	g := card.PlayerScores[0]
	assert.Equal(t, "Gary", g.PlayerName)
	assert.Equal(t, -3, g.Front, "ace-eagle on 1, birdie on 2")
	assert.Equal(t, -2, g.Back, "eagle on 10")
	assert.Equal(t, 1, g.AceEagles)
	assert.Equal(t, 0, g.Aces)
	assert.Equal(t, 1, g.Eagles)

	p := card.PlayerScores[1]
	assert.Equal(t, 9, p.Front)
	assert.Equal(t, 9, p.Back)
}

func TestCSVParser_DefaultParAndTabs(t *testing.T) {
	data := strings.ReplaceAll(holeHeader()+"\n"+holeRow("Lee", repeat(18, 3)...), ",", "\t")

	card, err := NewCSVParser().Parse([]byte(data), "round.tsv")
	require.NoError(t, err)
	assert.Equal(t, repeat(18, 3), card.ParScores)
	assert.Equal(t, 0, card.PlayerScores[0].Front)
}

func TestCSVParser_Relative(t *testing.T) {
	data := "\xEF\xBB\xBFPlayer,Front,Back,Aces,Eagles\nGary,-3,-2,1,0\nDick,1,0,,\n"

	card, err := NewCSVParser().Parse([]byte(data), "round.csv")
	require.NoError(t, err)
	assert.Empty(t, card.ParScores)
	require.Len(t, card.PlayerScores, 2)
	assert.Equal(t, PlayerScore{PlayerName: "Gary", Front: -3, Back: -2, Aces: 1}, card.PlayerScores[0])
	assert.Equal(t, PlayerScore{PlayerName: "Dick", Front: 1, Back: 0}, card.PlayerScores[1])
}

func TestCSVParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		want error
	}{
		{name: "nine holes", data: "Name,1,2,3,4,5,6,7,8,9\nGary,3,3,3,3,3,3,3,3,3", want: ErrHoleColumns},
		{name: "missing hole", data: holeHeader() + "\n" + holeRow("Gary", repeat(17, 3)...), want: ErrIncompleteCard},
		{name: "bad par", data: holeHeader() + "\n" + holeRow("Par", repeat(17, 3)...) + ",x\n" + holeRow("Gary", repeat(18, 3)...), want: ErrInvalidPar},
		{name: "no players", data: holeHeader() + "\n" + holeRow("Par", repeat(18, 3)...), want: ErrNoPlayers},
		{name: "bad relative", data: "Player,Front,Back\nGary,-3,two", want: ErrIncompleteCard},
		{name: "no header", data: "a,b\nc,d", want: ErrNoHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCSVParser().Parse([]byte(tt.data), "bad.csv")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []any{"Player"}
	par := []any{"Par"}
	lee := []any{"Lee"}
	for i := 1; i <= Holes; i++ {
		header = append(header, "Hole "+strconv.Itoa(i))
		par = append(par, 3)
		lee = append(lee, 3)
	}
	lee[18] = 2
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &par))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &lee))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	card, err := NewXLSXParser().Parse(buf.Bytes(), "round.xlsx")
	require.NoError(t, err)
	require.Len(t, card.PlayerScores, 1)
	assert.Equal(t, 0, card.PlayerScores[0].Front)
	assert.Equal(t, -1, card.PlayerScores[0].Back)
}

func TestXLSXParser_Corrupt(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("not a workbook"), "round.xlsx")
	assert.Error(t, err)
}
