package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettleRequest_ToService(t *testing.T) {
	req := SettleRequest{
		Stages:   [3]int{2, 7, 0},
		Winnings: []PlayerWinnings{{PlayerID: 4, Stages: [3]string{"2.50", "", ""}}},
	}
	require.NoError(t, req.Validate())

	svc := req.toService(9)
	assert.EqualValues(t, 9, svc.RoundID)
	assert.Equal(t, [3]int{2, 7, 0}, svc.Stages)
	require.Len(t, svc.Winnings, 1)
	assert.EqualValues(t, 4, svc.Winnings[0].PlayerID)
	assert.Equal(t, int64(250), svc.Winnings[0].Stages[0].AsCents())
	assert.True(t, svc.Winnings[0].Stages[1].IsZero())
}

func TestCreateRoundRequest_Validate(t *testing.T) {
	assert.NoError(t, CreateRoundRequest{CourseID: 1, Date: "2015-01-12", PlayerIDs: []int64{1}}.Validate())
	assert.Error(t, CreateRoundRequest{CourseID: 1, Date: "2015-01-12"}.Validate())
	assert.Error(t, CreateRoundRequest{CourseID: 0, Date: "2015-01-12", PlayerIDs: []int64{1}}.Validate())
	assert.Error(t, RescheduleRequest{CourseID: 1, Date: "tomorrow"}.Validate())
}
