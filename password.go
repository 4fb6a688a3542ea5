/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

// Password: two clue masters know a secret word and take turns feeding
// clues to their teams. Turns cycle Clue Master 1 -> Team 1 -> Clue Master 2
// -> Team 2. The first team to guess the word exactly wins.

package main

import (
	"encoding/json"
	"math/rand/v2"
	"slices"
	"strings"
)

var passwords = []string{
	"chocolate", "volleyball", "edward", "firefighter", "orchestra", "universe", "adventure",
	"harmony", "blueprint", "avalanche", "detective", "symphony",
	"treasure", "cathedral", "tornado",
	"pirate", "squirrel", "bamboo", "rainbow", "lighthouse",
	"whisper", "secret", "enigma", "blizzard", "galaxy",
	"serenade", "jungle", "atlantis", "monsoon",
	"waterfall", "horizon", "butterfly", "mirage",
	"conqueror", "dragonfly", "oasis", "serenity",
	"phoenix", "blossom", "quest", "eclipse",
	"paradise", "illusion", "discovery",
}

var passwordTurnOrder = []string{"Clue Master 1", "Team 1", "Clue Master 2", "Team 2"}

type passwordEngine struct{}

type passwordState struct {
	Password    string          `json:"password"`
	ClueMaster1 string          `json:"clueMaster1"`
	ClueMaster2 string          `json:"clueMaster2"`
	Team1       []string        `json:"team1"`
	Team2       []string        `json:"team2"`
	Log         []passwordEntry `json:"log"`
}

// passwordEntry records one clue or guess in the shared log.
type passwordEntry struct {
	Player  string `json:"player"`
	Type    string `json:"type"` // "clue" or "guess"
	Team    string `json:"team"` // "Team 1" or "Team 2"
	Message string `json:"message"`
}

type passwordMove struct {
	Player string `json:"player"`
	Data   string `json:"data"`
}

type passwordStart struct {
	GameState   *passwordState `json:"gameState"`
	CurrentTurn string         `json:"currentTurn"`
	Password    string         `json:"password"`
}

func (passwordEngine) PlayerBounds() (int, int) {
	return 4, 8
}

func (passwordEngine) CheckGameStart(room *Room) bool {
	return room != nil && len(room.Players) >= 4 && len(room.Players) <= 8
}

func (e passwordEngine) Initialize(room *Room) (any, error) {
	if !e.CheckGameStart(room) {
		return nil, errGameNotStartable
	}

	password := passwords[rand.IntN(len(passwords))]

	shuffled := slices.Clone(room.Players)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	// First two shuffled players run the teams; the rest split roughly evenly.
	remaining := shuffled[2:]
	half := (len(remaining) + 1) / 2

	state := &passwordState{
		Password:    password,
		ClueMaster1: shuffled[0],
		ClueMaster2: shuffled[1],
		Team1:       slices.Clone(remaining[:half]),
		Team2:       slices.Clone(remaining[half:]),
		Log:         []passwordEntry{},
	}

	room.GameState = state
	room.PlayerSymbols = nil
	room.PlayerColours = nil
	room.CurrentTurn = passwordTurnOrder[0]

	return &passwordStart{
		GameState:   state,
		CurrentTurn: room.CurrentTurn,
		Password:    password,
	}, nil
}

// IsTurn maps the current phase label to the concrete player(s) allowed to act.
func (passwordEngine) IsTurn(room *Room, nickname string) bool {
	state, ok := room.GameState.(*passwordState)
	if !ok {
		return false
	}

	switch room.CurrentTurn {
	case "Clue Master 1":
		return state.ClueMaster1 == nickname
	case "Clue Master 2":
		return state.ClueMaster2 == nickname
	case "Team 1":
		return slices.Contains(state.Team1, nickname)
	case "Team 2":
		return slices.Contains(state.Team2, nickname)
	}

	return false
}

func (e passwordEngine) ApplyMove(room *Room, nickname string, move json.RawMessage) (*Outcome, error) {
	var m passwordMove
	if err := json.Unmarshal(move, &m); err != nil {
		return nil, errInvalidMove
	}

	state, ok := room.GameState.(*passwordState)
	if !ok {
		return nil, errGameNotStarted
	}

	moveType, team := passwordMoveType(state, nickname)
	if moveType == "" {
		return nil, errInvalidMove
	}

	state.Log = append(state.Log, passwordEntry{
		Player:  nickname,
		Type:    moveType,
		Team:    team,
		Message: m.Data,
	})

	// The game ends the instant a guess matches, case-insensitively.
	if moveType == "guess" && strings.EqualFold(state.Password, m.Data) {
		return &Outcome{
			GameState:   state,
			CurrentTurn: room.CurrentTurn,
			Winner:      team,
		}, nil
	}

	room.CurrentTurn = nextPasswordTurn(room.CurrentTurn)

	return &Outcome{
		GameState:   state,
		CurrentTurn: room.CurrentTurn,
	}, nil
}

// passwordMoveType classifies a move by who sent it: clue masters give
// clues, team members guess.
func passwordMoveType(state *passwordState, nickname string) (moveType, team string) {
	switch {
	case nickname == state.ClueMaster1:
		return "clue", "Team 1"
	case nickname == state.ClueMaster2:
		return "clue", "Team 2"
	case slices.Contains(state.Team1, nickname):
		return "guess", "Team 1"
	case slices.Contains(state.Team2, nickname):
		return "guess", "Team 2"
	}

	return "", ""
}

func nextPasswordTurn(currentTurn string) string {
	i := slices.Index(passwordTurnOrder, currentTurn)
	if i == -1 || i == len(passwordTurnOrder)-1 {
		return passwordTurnOrder[0]
	}
	return passwordTurnOrder[i+1]
}
