/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import "encoding/json"

// clientEnvelope wraps every message from a client: a named event plus an
// event-specific payload decoded by the handler.
type clientEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type serverEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

type createRoomRequest struct {
	GameType GameType `json:"gameType"`
	Nickname string   `json:"nickname"`
}

type joinRoomRequest struct {
	RoomID   string   `json:"roomId"`
	Nickname string   `json:"nickname"`
	GameType GameType `json:"gameType"`
}

type leaveRoomRequest struct {
	RoomID   string `json:"roomId"`
	Nickname string `json:"nickname"`
}

type startGameRequest struct {
	GameType GameType `json:"gameType"`
	RoomID   string   `json:"roomId"`
}

type moveRequest struct {
	RoomID string          `json:"roomId"`
	Move   json.RawMessage `json:"move"`
}

type roomCreatedMessage struct {
	RoomID string `json:"roomId"`
	Room   *Room  `json:"room"`
}

type playerLeftMessage struct {
	Nickname string `json:"nickname"`
}

type moveMadeMessage struct {
	GameState   any    `json:"gameState"`
	CurrentTurn string `json:"currentTurn"`
}

type gameOverMessage struct {
	Winner string         `json:"winner"`
	Scores map[string]int `json:"scores"`
}
