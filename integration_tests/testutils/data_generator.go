package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v7"
	roundservice "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/application"
	rounddomain "github.com/gonzoleeman/disc-golf-scoring-app/app/modules/round/domain"
)

// Roster sizes from the seeded migrations.
const (
	SeededPlayers = 11
	SeededCourses = 5
)

// TestDataGenerator builds plausible rounds and scores for integration tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed is the seed in use, for reproducing a failure.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GenerateRounds returns count rounds a week apart starting at start, each on a
// random course with between minPlayers and SeededPlayers distinct participants.
func (g *TestDataGenerator) GenerateRounds(count, minPlayers int, start time.Time) []roundservice.CreateRoundRequest {
	rounds := make([]roundservice.CreateRoundRequest, count)
	for i := range rounds {
		n := g.faker.Number(minPlayers, SeededPlayers)
		roster := make([]int, SeededPlayers)
		for j := range roster {
			roster[j] = j + 1
		}
		g.faker.ShuffleInts(roster)
		ids := make([]rounddomain.PlayerID, 0, n)
		for _, id := range roster[:n] {
			ids = append(ids, rounddomain.PlayerID(id))
		}
		rounds[i] = roundservice.CreateRoundRequest{
			CourseID:  rounddomain.CourseID(g.faker.Number(1, SeededCourses)),
			Date:      start.AddDate(0, 0, 7*i),
			PlayerIDs: ids,
		}
	}
	return rounds
}

// GenerateScores gives every player a front and back between -6 and +8 relative to par.
func (g *TestDataGenerator) GenerateScores(players []rounddomain.PlayerID) []roundservice.ScoreEntry {
	entries := make([]roundservice.ScoreEntry, len(players))
	for i, id := range players {
		entries[i] = roundservice.ScoreEntry{
			PlayerID: id,
			Front:    g.faker.Number(-6, 8),
			Back:     g.faker.Number(-6, 8),
			Aces:     g.faker.Number(0, 1),
			Eagles:   g.faker.Number(0, 2),
		}
	}
	return entries
}
