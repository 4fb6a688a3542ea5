package main

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateColourGridGradient(t *testing.T) {
	grid := generateColourGrid(shadesGridSize, shadesGridSize)

	assert.Len(t, grid, shadesGridSize)
	for _, row := range grid {
		assert.Len(t, row, shadesGridSize)
	}

	// Red rises left to right, green top to bottom, blue falls left to right.
	assert.Equal(t, "#0000ff", grid[0][0])
	assert.Equal(t, "#ff0000", grid[0][shadesGridSize-1])
	assert.Equal(t, "#00ffff", grid[shadesGridSize-1][0])
	assert.Equal(t, "#ffff00", grid[shadesGridSize-1][shadesGridSize-1])
}

func TestInterpolate(t *testing.T) {
	assert.Equal(t, 0, interpolate(0, 255, 0, 19))
	assert.Equal(t, 255, interpolate(0, 255, 19, 19))
	assert.Equal(t, 255, interpolate(255, 0, 0, 19))
	assert.Equal(t, 128, interpolate(0, 255, 5, 10))
}

func TestShadesTurnOrderPalindrome(t *testing.T) {
	players := []string{"alice", "bob", "carol", "dave"}

	order := shadesTurnOrder("bob", players)

	assert.Equal(t, []string{
		"bob", "alice", "carol", "dave",
		"bob", "dave", "carol", "alice",
	}, order)
}

func TestShadesTurnOrderTwoPlayers(t *testing.T) {
	order := shadesTurnOrder("alice", []string{"alice", "bob"})

	assert.Equal(t, []string{"alice", "bob", "alice", "bob"}, order)
}

func TestCalculateShadesScores(t *testing.T) {
	target := [2]int{10, 10}

	tests := []struct {
		name          string
		guess         shadesCoord
		guesserPoints int
		masterPoints  int
	}{
		{"exact", shadesCoord{Row: 10, Col: 10}, 3, 1},
		{"adjacent", shadesCoord{Row: 9, Col: 11}, 2, 1},
		{"two off", shadesCoord{Row: 8, Col: 10}, 1, 0},
		{"two off diagonally", shadesCoord{Row: 12, Col: 12}, 1, 0},
		{"far", shadesCoord{Row: 0, Col: 0}, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scores := map[string]int{"alice": 0, "bob": 0, "carol": 0}

			calculateShadesScores([]shadesGuess{{Player: "bob", Guess: tc.guess}}, target, scores, "alice")

			assert.Equal(t, tc.guesserPoints, scores["bob"])
			assert.Equal(t, tc.masterPoints, scores["alice"])
			assert.Zero(t, scores["carol"], "bystander score changed")
		})
	}
}

func TestShadesWinnerTieGoesToEarliestJoiner(t *testing.T) {
	state := &shadesState{
		Scores:         map[string]int{"alice": 4, "bob": 4, "carol": 1},
		ColourPosition: [2]int{0, 0},
		ClueMaster:     "carol",
	}

	winner, scores := shadesWinner(state, []string{"alice", "bob", "carol"})

	assert.Equal(t, "alice", winner)
	assert.Equal(t, 4, scores["alice"])
	assert.Equal(t, 4, scores["bob"])
}

func shadesClue(t *testing.T, clue string) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(clue)
	assert.NoError(t, err)
	raw, err := json.Marshal(shadesMove{Data: data})
	assert.NoError(t, err)
	return raw
}

func shadesGuessMove(t *testing.T, row, col int) json.RawMessage {
	t.Helper()

	data, err := json.Marshal(shadesCoord{Row: row, Col: col})
	assert.NoError(t, err)
	raw, err := json.Marshal(shadesMove{Data: data})
	assert.NoError(t, err)
	return raw
}

func TestShadesFullGameTwoPlayers(t *testing.T) {
	room := twoPlayerRoom(t, gameShadesAndTones)
	engine := shadesAndTonesEngine{}

	payload, err := engine.Initialize(room)
	assert.NoError(t, err)

	start := payload.(*shadesStart)
	state := start.GameState

	assert.Equal(t, "alice", state.ClueMaster)
	assert.Equal(t, "alice", room.CurrentTurn)
	assert.Equal(t, 2, state.NumRounds)
	assert.Equal(t, map[string]int{"alice": 0, "bob": 0}, state.Scores)

	// Round 1: alice clues, bob guesses the exact cell, twice each.
	target := state.ColourPosition

	outcome, err := engine.ApplyMove(room, "alice", shadesClue(t, "ocean"))
	assert.NoError(t, err)
	assert.Equal(t, "bob", outcome.CurrentTurn)

	outcome, err = engine.ApplyMove(room, "bob", shadesGuessMove(t, target[0], target[1]))
	assert.NoError(t, err)
	assert.Equal(t, "alice", outcome.CurrentTurn)

	outcome, err = engine.ApplyMove(room, "alice", shadesClue(t, "deep ocean"))
	assert.NoError(t, err)
	assert.Equal(t, "bob", outcome.CurrentTurn)

	// Bob's final guess of the round closes the palindromic order.
	outcome, err = engine.ApplyMove(room, "bob", shadesGuessMove(t, target[0], target[1]))
	assert.NoError(t, err)
	assert.True(t, outcome.NewRound)
	assert.False(t, outcome.GameOver)

	// Two exact guesses: 3+3 for bob, 1+1 for the clue master.
	assert.Equal(t, 6, state.Scores["bob"])
	assert.Equal(t, 2, state.Scores["alice"])

	// The clue master rotates to the next player in join order.
	assert.Equal(t, "bob", state.ClueMaster)
	assert.Equal(t, "bob", room.CurrentTurn)
	assert.Equal(t, 2, state.Round)
	assert.Empty(t, state.Clues)
	assert.Empty(t, state.Guesses)

	// Round 2: alice misses wide both times.
	target = state.ColourPosition
	missRow := (target[0] + 10) % shadesGridSize
	missCol := (target[1] + 10) % shadesGridSize

	_, err = engine.ApplyMove(room, "bob", shadesClue(t, "sunset"))
	assert.NoError(t, err)
	_, err = engine.ApplyMove(room, "alice", shadesGuessMove(t, missRow, missCol))
	assert.NoError(t, err)
	_, err = engine.ApplyMove(room, "bob", shadesClue(t, "late sunset"))
	assert.NoError(t, err)

	outcome, err = engine.ApplyMove(room, "alice", shadesGuessMove(t, missRow, missCol))
	assert.NoError(t, err)
	assert.True(t, outcome.GameOver)
	assert.Equal(t, "bob", outcome.Winner)
	assert.Equal(t, 6, outcome.Scores["bob"])
	assert.Equal(t, 2, outcome.Scores["alice"])
}

func TestShadesBounds(t *testing.T) {
	engine := shadesAndTonesEngine{}

	room := createRoom("abcdef", gameShadesAndTones, "alice")
	_, err := engine.Initialize(room)
	assert.ErrorIs(t, err, errGameNotStartable)
}
