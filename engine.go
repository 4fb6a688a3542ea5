/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
)

type GameType string

const (
	gameXsAndOs        GameType = "xsAndOs"
	gameLineFour       GameType = "lineFour"
	gamePassword       GameType = "password"
	gameSpyHunt        GameType = "spyHunt"
	gameShadesAndTones GameType = "shadesAndTones"
)

// Engine is the rule module for one game type. Initialize mutates the
// room's stored state and turn fields and returns a payload mirroring them
// for broadcast; ApplyMove validates and applies a single move and advances
// the turn. Engines hold no state of their own.
type Engine interface {
	// PlayerBounds returns the inclusive player count range required to start.
	PlayerBounds() (min, max int)

	// CheckGameStart reports whether the room can start a game right now.
	CheckGameStart(room *Room) bool

	// Initialize assigns roles/symbols, builds the initial state, stores it
	// on the room, and returns the start payload for broadcast.
	Initialize(room *Room) (any, error)

	// IsTurn reports whether nickname is the legitimate actor for the
	// room's current turn.
	IsTurn(room *Room, nickname string) bool

	// ApplyMove validates and applies a move for nickname, advancing the
	// room's turn on success.
	ApplyMove(room *Room, nickname string, move json.RawMessage) (*Outcome, error)
}

// Outcome describes the result of an accepted move. The gateway branches on
// which fields are set: Winner ends the game, Draw ends it without one,
// NewRound and GameOver are round-based endings, and a bare outcome is an
// in-progress moveMade.
type Outcome struct {
	GameState   any
	CurrentTurn string
	Winner      string
	Draw        bool
	NewRound    bool
	GameOver    bool
	Scores      map[string]int
}

// engines is the closed set of playable games. Adding a game means adding
// an engine here, not editing the dispatcher.
var engines = map[GameType]Engine{
	gameXsAndOs:        xsAndOsEngine{},
	gameLineFour:       lineFourEngine{},
	gamePassword:       passwordEngine{},
	gameSpyHunt:        spyHuntEngine{},
	gameShadesAndTones: shadesAndTonesEngine{},
}

// moveEvents maps per-game move event names to their game type.
var moveEvents = map[string]GameType{
	"xsAndOsMove":        gameXsAndOs,
	"lineFourMove":       gameLineFour,
	"passwordMove":       gamePassword,
	"shadesAndTonesMove": gameShadesAndTones,
}

// startGame routes to the engine for the room's game type and invokes its
// initializer. Pure routing; all decisions live in the engine.
func startGame(reg *Registry, roomID string, gameType GameType) (any, error) {
	engine, ok := engines[gameType]
	if !ok {
		return nil, errUnknownGameType
	}

	room, ok := reg.get(roomID)
	if !ok {
		return nil, errGameNotStartable
	}

	return engine.Initialize(room)
}
