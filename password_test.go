package main

import (
	"encoding/json"
	"fmt"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func passwordRoom(t *testing.T, playerCount int) *Room {
	t.Helper()

	room := createRoom("abcdef", gamePassword, "player0")
	for i := 1; i < playerCount; i++ {
		room.Players = append(room.Players, fmt.Sprintf("player%d", i))
	}
	return room
}

func TestPasswordPartition(t *testing.T) {
	for playerCount := 4; playerCount <= 8; playerCount++ {
		t.Run(fmt.Sprintf("%d players", playerCount), func(t *testing.T) {
			room := passwordRoom(t, playerCount)

			_, err := passwordEngine{}.Initialize(room)
			assert.NoError(t, err)

			state := room.GameState.(*passwordState)

			assert.NotEqual(t, state.ClueMaster1, state.ClueMaster2)

			// Clue masters plus both teams cover every player exactly once.
			seen := map[string]int{}
			seen[state.ClueMaster1]++
			seen[state.ClueMaster2]++
			for _, p := range state.Team1 {
				seen[p]++
			}
			for _, p := range state.Team2 {
				seen[p]++
			}

			assert.Len(t, seen, playerCount)
			for _, p := range room.Players {
				assert.Equal(t, 1, seen[p], "player %s assigned %d times", p, seen[p])
			}

			// Teams are split roughly evenly, team 1 taking the extra player.
			remaining := playerCount - 2
			assert.Len(t, state.Team1, (remaining+1)/2)
			assert.Len(t, state.Team2, remaining/2)

			assert.Contains(t, passwords, state.Password)
			assert.Equal(t, "Clue Master 1", room.CurrentTurn)
		})
	}
}

func TestPasswordInitializeBounds(t *testing.T) {
	engine := passwordEngine{}

	_, err := engine.Initialize(passwordRoom(t, 3))
	assert.ErrorIs(t, err, errGameNotStartable)

	_, err = engine.Initialize(passwordRoom(t, 9))
	assert.ErrorIs(t, err, errGameNotStartable)
}

func TestPasswordTurnCycle(t *testing.T) {
	turn := "Clue Master 1"
	var cycle []string
	for range 8 {
		cycle = append(cycle, turn)
		turn = nextPasswordTurn(turn)
	}

	assert.Equal(t, []string{
		"Clue Master 1", "Team 1", "Clue Master 2", "Team 2",
		"Clue Master 1", "Team 1", "Clue Master 2", "Team 2",
	}, cycle)
}

func TestPasswordIsTurn(t *testing.T) {
	room := passwordRoom(t, 6)
	engine := passwordEngine{}

	_, err := engine.Initialize(room)
	assert.NoError(t, err)

	state := room.GameState.(*passwordState)

	assert.True(t, engine.IsTurn(room, state.ClueMaster1))
	assert.False(t, engine.IsTurn(room, state.ClueMaster2))
	assert.False(t, engine.IsTurn(room, state.Team1[0]))

	room.CurrentTurn = "Team 2"
	assert.True(t, engine.IsTurn(room, state.Team2[0]))
	assert.False(t, engine.IsTurn(room, state.ClueMaster1))
}

func passwordMovePayload(t *testing.T, data string) json.RawMessage {
	t.Helper()

	raw, err := json.Marshal(passwordMove{Data: data})
	assert.NoError(t, err)
	return raw
}

func TestPasswordCluesAndGuessesAreLogged(t *testing.T) {
	room := passwordRoom(t, 4)
	engine := passwordEngine{}

	_, err := engine.Initialize(room)
	assert.NoError(t, err)

	state := room.GameState.(*passwordState)

	outcome, err := engine.ApplyMove(room, state.ClueMaster1, passwordMovePayload(t, "sweet"))
	assert.NoError(t, err)
	assert.Empty(t, outcome.Winner)
	assert.Equal(t, "Team 1", room.CurrentTurn)

	outcome, err = engine.ApplyMove(room, state.Team1[0], passwordMovePayload(t, "sugar"))
	assert.NoError(t, err)
	assert.Empty(t, outcome.Winner)
	assert.Equal(t, "Clue Master 2", room.CurrentTurn)

	assert.Equal(t, []passwordEntry{
		{Player: state.ClueMaster1, Type: "clue", Team: "Team 1", Message: "sweet"},
		{Player: state.Team1[0], Type: "guess", Team: "Team 1", Message: "sugar"},
	}, state.Log)
}

func TestPasswordGuessWinsCaseInsensitively(t *testing.T) {
	room := passwordRoom(t, 5)
	engine := passwordEngine{}

	_, err := engine.Initialize(room)
	assert.NoError(t, err)

	state := room.GameState.(*passwordState)
	room.CurrentTurn = "Team 2"

	guesser := state.Team2[0]
	guess := "  " // wrong guess first
	outcome, err := engine.ApplyMove(room, guesser, passwordMovePayload(t, guess))
	assert.NoError(t, err)
	assert.Empty(t, outcome.Winner)

	room.CurrentTurn = "Team 2"
	upper := []byte(state.Password)
	upper[0] = upper[0] - 'a' + 'A'
	outcome, err = engine.ApplyMove(room, guesser, passwordMovePayload(t, string(upper)))
	assert.NoError(t, err)
	assert.Equal(t, "Team 2", outcome.Winner)
}

func TestPasswordClueMatchingPasswordDoesNotWin(t *testing.T) {
	room := passwordRoom(t, 4)
	engine := passwordEngine{}

	_, err := engine.Initialize(room)
	assert.NoError(t, err)

	state := room.GameState.(*passwordState)

	// A clue master blurting the password is logged as a clue, not a
	// winning guess.
	outcome, err := engine.ApplyMove(room, state.ClueMaster1, passwordMovePayload(t, state.Password))
	assert.NoError(t, err)
	assert.Empty(t, outcome.Winner)
	assert.Equal(t, "clue", state.Log[0].Type)
}

func TestPasswordListHasNoEmptyEntries(t *testing.T) {
	assert.NotEmpty(t, passwords)
	assert.False(t, slices.Contains(passwords, ""))
}
