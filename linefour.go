/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

// Line Four: two players drop coloured tokens into a 6x7 grid. Tokens fall
// to the lowest empty row of their column; the first unbroken line of four
// wins. A full top row with no line is a draw.

package main

import (
	"encoding/json"
	"errors"
	"math/rand/v2"
)

var errColumnFull = errors.New("Invalid move, column is full")

const (
	lineFourRows = 6
	lineFourCols = 7
)

type lineFourEngine struct{}

type lineFourMove struct {
	Col    int    `json:"col"`
	Player string `json:"player"`
}

type lineFourStart struct {
	GameState     [][]string        `json:"gameState"`
	PlayerColours map[string]string `json:"playerColours"`
	CurrentTurn   string            `json:"currentTurn"`
}

func (lineFourEngine) PlayerBounds() (int, int) {
	return 2, 2
}

func (lineFourEngine) CheckGameStart(room *Room) bool {
	return room != nil && len(room.Players) == 2
}

func (e lineFourEngine) Initialize(room *Room) (any, error) {
	if !e.CheckGameStart(room) {
		return nil, errGameNotStartable
	}

	starting := rand.IntN(2)
	colours := []string{"green", "yellow"}

	grid := newGrid(lineFourRows, lineFourCols)
	room.GameState = grid
	room.PlayerColours = map[string]string{
		room.Players[0]: colours[starting],
		room.Players[1]: colours[1-starting],
	}
	room.PlayerSymbols = nil
	room.CurrentTurn = room.Players[starting]

	return &lineFourStart{
		GameState:     grid,
		PlayerColours: room.PlayerColours,
		CurrentTurn:   room.CurrentTurn,
	}, nil
}

func (lineFourEngine) IsTurn(room *Room, nickname string) bool {
	return room.CurrentTurn == nickname
}

func (e lineFourEngine) ApplyMove(room *Room, nickname string, move json.RawMessage) (*Outcome, error) {
	var m lineFourMove
	if err := json.Unmarshal(move, &m); err != nil {
		return nil, errInvalidMove
	}

	grid, ok := room.GameState.([][]string)
	if !ok {
		return nil, errGameNotStarted
	}

	colour := room.PlayerColours[nickname]

	winner, draw, err := applyLineFourMove(grid, m.Col, colour)
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

// applyLineFourMove drops player's token into col, mutating the grid, and
// reports a win or draw. A full column is an illegal move.
func applyLineFourMove(grid [][]string, col int, player string) (winner string, draw bool, err error) {
	if col < 0 || col >= lineFourCols {
		return "", false, errInvalidMove
	}

	for row := lineFourRows - 1; row >= 0; row-- {
		if grid[row][col] != "" {
			continue
		}
		grid[row][col] = player

		if checkLineFourWin(grid, player) {
			return player, false, nil
		}
		if lineFourDraw(grid) {
			return "", true, nil
		}
		return "", false, nil
	}

	return "", false, errColumnFull
}

func checkLineFourWin(grid [][]string, player string) bool {
	rows := len(grid)
	cols := len(grid[0])

	// Horizontal
	for i := 0; i < rows; i++ {
		for j := 0; j < cols-3; j++ {
			if grid[i][j] == player && grid[i][j+1] == player &&
				grid[i][j+2] == player && grid[i][j+3] == player {
				return true
			}
		}
	}

	// Vertical
	for j := 0; j < cols; j++ {
		for i := 0; i < rows-3; i++ {
			if grid[i][j] == player && grid[i+1][j] == player &&
				grid[i+2][j] == player && grid[i+3][j] == player {
				return true
			}
		}
	}

	// Diagonals, down-right and up-right
	for i := 0; i < rows-3; i++ {
		for j := 0; j < cols-3; j++ {
			if grid[i][j] == player && grid[i+1][j+1] == player &&
				grid[i+2][j+2] == player && grid[i+3][j+3] == player {
				return true
			}
			if grid[i+3][j] == player && grid[i+2][j+1] == player &&
				grid[i+1][j+2] == player && grid[i][j+3] == player {
				return true
			}
		}
	}

	return false
}

// The board is full exactly when the top row is.
func lineFourDraw(grid [][]string) bool {
	for _, cell := range grid[0] {
		if cell == "" {
			return false
		}
	}
	return true
}
