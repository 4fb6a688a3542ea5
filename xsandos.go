/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

// Xs and Os: two players alternate marking a 3x3 grid. Three in a row,
// column, or diagonal wins; a full board with no line is a draw.

package main

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
)

var errInvalidMove = errors.New("Invalid move")

type xsAndOsEngine struct{}

type xsAndOsMove struct {
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Player string `json:"player"`
}

type xsAndOsStart struct {
	GameState     [][]string        `json:"gameState"`
	PlayerSymbols map[string]string `json:"playerSymbols"`
	CurrentTurn   string            `json:"currentTurn"`
}

func newGrid(rows, cols int) [][]string {
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
	}
	return grid
}

func (xsAndOsEngine) PlayerBounds() (int, int) {
	return 2, 2
}

func (xsAndOsEngine) CheckGameStart(room *Room) bool {
	return room != nil && len(room.Players) == 2
}

func (e xsAndOsEngine) Initialize(room *Room) (any, error) {
	if !e.CheckGameStart(room) {
		return nil, errGameNotStartable
	}

	// Whoever draws X also draws the first turn.
	starting := rand.IntN(2)
	symbols := []string{"X", "O"}

	grid := newGrid(3, 3)
	room.GameState = grid
	room.PlayerSymbols = map[string]string{
		room.Players[0]: symbols[starting],
		room.Players[1]: symbols[1-starting],
	}
	room.PlayerColours = nil
	room.CurrentTurn = room.Players[starting]

	return &xsAndOsStart{
		GameState:     grid,
		PlayerSymbols: room.PlayerSymbols,
		CurrentTurn:   room.CurrentTurn,
	}, nil
}

func (xsAndOsEngine) IsTurn(room *Room, nickname string) bool {
	return room.CurrentTurn == nickname
}

func (e xsAndOsEngine) ApplyMove(room *Room, nickname string, move json.RawMessage) (*Outcome, error) {
	var m xsAndOsMove
	if err := json.Unmarshal(move, &m); err != nil {
		return nil, errInvalidMove
	}

	grid, ok := room.GameState.([][]string)
	if !ok {
		return nil, errGameNotStarted
	}

	// The sender's symbol comes from the server-side assignment, not the wire.
	symbol := room.PlayerSymbols[nickname]

	winner, draw, err := applyXsAndOsMove(grid, m.Row, m.Col, symbol)
	if err != nil {
		return nil, err
	}

	for _, p := range room.Players {
		if p != nickname {
			room.CurrentTurn = p
			break
		}
	}

	return &Outcome{
		GameState:   grid,
		CurrentTurn: room.CurrentTurn,
		Winner:      winner,
		Draw:        draw,
	}, nil
}

// applyXsAndOsMove places player's symbol at (row, col), mutating the grid,
// and reports a win or draw. Occupied or out-of-range cells are rejected.
func applyXsAndOsMove(grid [][]string, row, col int, player string) (winner string, draw bool, err error) {
	if row < 0 || row > 2 || col < 0 || col > 2 || grid[row][col] != "" {
		return "", false, errInvalidMove
	}

	grid[row][col] = player

	if checkXsAndOsWin(grid, player) {
		return player, false, nil
	}
	if gridFull(grid) {
		return "", true, nil
	}
	return "", false, nil
}

func checkXsAndOsWin(grid [][]string, player string) bool {
	for i := 0; i < 3; i++ {
		if grid[i][0] == player && grid[i][1] == player && grid[i][2] == player {
			return true
		}
		if grid[0][i] == player && grid[1][i] == player && grid[2][i] == player {
			return true
		}
	}
	if grid[0][0] == player && grid[1][1] == player && grid[2][2] == player {
		return true
	}
	if grid[0][2] == player && grid[1][1] == player && grid[2][0] == player {
		return true
	}

	return false
}

func gridFull(grid [][]string) bool {
	for _, row := range grid {
		for _, cell := range row {
			if cell == "" {
				return false
			}
		}
	}
	return true
}
