/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

// Shades and Tones: a clue master describes a colour from a shared gradient
// grid and everyone else guesses the cell. Each round the clue master role
// rotates through the players in join order; within a round the turn order
// is palindromic, so everyone guesses once before and once after the clue
// master's second clue. Closest guesses score, and after one round per
// player the highest scorer wins.

package main

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
)

const shadesGridSize = 20

type shadesAndTonesEngine struct{}

type shadesState struct {
	ColourGrid     [][]string     `json:"colourGrid"`
	CurrentColour  string         `json:"currentColour"`
	ClueMaster     string         `json:"clueMaster"`
	CurrentTurn    string         `json:"currentTurn"`
	TurnOrder      []string       `json:"turnOrder"`
	Scores         map[string]int `json:"scores"`
	NumRounds      int            `json:"numRounds"`
	Round          int            `json:"round"`
	TurnIndex      int            `json:"turnIndex"`
	Clues          []string       `json:"clues"`
	Guesses        []shadesGuess  `json:"guesses"`
	ColourPosition [2]int         `json:"colourPosition"`
}

type shadesGuess struct {
	Player string      `json:"player"`
	Guess  shadesCoord `json:"guess"`
}

type shadesCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type shadesMove struct {
	Player string          `json:"player"`
	Data   json.RawMessage `json:"data"` // clue string or guess coordinate
}

type shadesStart struct {
	GameState     *shadesState `json:"gameState"`
	CurrentTurn   string       `json:"currentTurn"`
	CurrentColour string       `json:"currentColour"`
	ColourGrid    [][]string   `json:"colourGrid"`
}

func (shadesAndTonesEngine) PlayerBounds() (int, int) {
	return 2, 8
}

func (shadesAndTonesEngine) CheckGameStart(room *Room) bool {
	return room != nil && len(room.Players) >= 2 && len(room.Players) <= 8
}

func (e shadesAndTonesEngine) Initialize(room *Room) (any, error) {
	if !e.CheckGameStart(room) {
		return nil, errGameNotStartable
	}

	clueMaster := room.Players[0]

	scores := make(map[string]int, len(room.Players))
	for _, player := range room.Players {
		scores[player] = 0
	}

	grid := generateColourGrid(shadesGridSize, shadesGridSize)
	colour, pos := chooseRandomColour(grid)

	state := &shadesState{
		ColourGrid:     grid,
		CurrentColour:  colour,
		ClueMaster:     clueMaster,
		CurrentTurn:    clueMaster,
		TurnOrder:      shadesTurnOrder(clueMaster, room.Players),
		Scores:         scores,
		NumRounds:      len(room.Players),
		Round:          1,
		TurnIndex:      0,
		Clues:          []string{},
		Guesses:        []shadesGuess{},
		ColourPosition: pos,
	}

	room.GameState = state
	room.PlayerSymbols = nil
	room.PlayerColours = nil
	room.CurrentTurn = clueMaster

	return &shadesStart{
		GameState:     state,
		CurrentTurn:   clueMaster,
		CurrentColour: colour,
		ColourGrid:    grid,
	}, nil
}

func (shadesAndTonesEngine) IsTurn(room *Room, nickname string) bool {
	return room.CurrentTurn == nickname
}

func (e shadesAndTonesEngine) ApplyMove(room *Room, nickname string, move json.RawMessage) (*Outcome, error) {
	var m shadesMove
	if err := json.Unmarshal(move, &m); err != nil {
		return nil, errInvalidMove
	}

	state, ok := room.GameState.(*shadesState)
	if !ok {
		return nil, errGameNotStarted
	}

	if nickname == state.ClueMaster {
		var clue string
		if err := json.Unmarshal(m.Data, &clue); err != nil {
			return nil, errInvalidMove
		}
		state.Clues = append(state.Clues, clue)
	} else {
		var guess shadesCoord
		if err := json.Unmarshal(m.Data, &guess); err != nil {
			return nil, errInvalidMove
		}
		state.Guesses = append(state.Guesses, shadesGuess{
			Player: nickname,
			Guess:  guess,
		})
	}

	// The round ends once the last actor in the palindromic order has moved.
	if state.TurnIndex == len(state.TurnOrder)-1 {
		if state.Round == state.NumRounds {
			winner, scores := shadesWinner(state, room.Players)
			state.Scores = scores
			return &Outcome{
				GameState:   state,
				CurrentTurn: room.CurrentTurn,
				GameOver:    true,
				Winner:      winner,
				Scores:      scores,
			}, nil
		}

		startNewShadesRound(state, room.Players)
		room.CurrentTurn = state.CurrentTurn

		return &Outcome{
			GameState:   state,
			CurrentTurn: room.CurrentTurn,
			NewRound:    true,
		}, nil
	}

	state.CurrentTurn = state.TurnOrder[state.TurnIndex+1]
	state.TurnIndex++
	room.CurrentTurn = state.CurrentTurn

	return &Outcome{
		GameState:   state,
		CurrentTurn: room.CurrentTurn,
	}, nil
}

// shadesTurnOrder builds a round's order: the clue master, every other
// player in join order, the clue master again, then the other players in
// reverse.
func shadesTurnOrder(clueMaster string, players []string) []string {
	var others []string
	for _, player := range players {
		if player != clueMaster {
			others = append(others, player)
		}
	}

	order := make([]string, 0, 2*len(others)+2)
	order = append(order, clueMaster)
	order = append(order, others...)
	order = append(order, clueMaster)
	slices.Reverse(others)
	order = append(order, others...)

	return order
}

// startNewShadesRound scores the finished round, rotates the clue master to
// the next player in join order, and resets the per-round fields around a
// fresh target colour.
func startNewShadesRound(state *shadesState, players []string) {
	state.Scores = calculateShadesScores(state.Guesses, state.ColourPosition, state.Scores, state.ClueMaster)

	state.Round++
	state.ClueMaster = players[state.Round-1]
	state.TurnOrder = shadesTurnOrder(state.ClueMaster, players)
	state.CurrentTurn = state.ClueMaster
	state.TurnIndex = 0
	state.Clues = []string{}
	state.Guesses = []shadesGuess{}

	colour, pos := chooseRandomColour(state.ColourGrid)
	state.CurrentColour = colour
	state.ColourPosition = pos
}

// calculateShadesScores awards each guesser 3 points for the exact cell or
// 2 points for an adjacent one, with 1 point to the clue master either way,
// and 1 point for a guess exactly two cells off. Distance is Chebyshev.
func calculateShadesScores(guesses []shadesGuess, target [2]int, scores map[string]int, clueMaster string) map[string]int {
	for _, g := range guesses {
		dRow := abs(g.Guess.Row - target[0])
		dCol := abs(g.Guess.Col - target[1])
		dist := max(dRow, dCol)

		switch {
		case dist == 0:
			scores[g.Player] += 3
			scores[clueMaster]++
		case dist == 1:
			scores[g.Player] += 2
			scores[clueMaster]++
		case dist == 2:
			scores[g.Player]++
		}
	}

	return scores
}

// shadesWinner folds the final round's guesses into the scores and picks
// the highest scorer. Ties go to whoever joined the room first.
func shadesWinner(state *shadesState, players []string) (string, map[string]int) {
	scores := calculateShadesScores(state.Guesses, state.ColourPosition, state.Scores, state.ClueMaster)

	winner := ""
	best := math.MinInt
	for _, player := range players {
		if scores[player] > best {
			winner = player
			best = scores[player]
		}
	}

	return winner, scores
}

// generateColourGrid builds a rows x cols gradient of hex colours: red
// rises left to right, green top to bottom, blue falls left to right.
func generateColourGrid(rows, cols int) [][]string {
	grid := make([][]string, rows)
	for i := range grid {
		grid[i] = make([]string, cols)
		for j := range grid[i] {
			r := interpolate(0, 255, j, cols-1)
			g := interpolate(0, 255, i, rows-1)
			b := interpolate(255, 0, j, cols-1)
			grid[i][j] = fmt.Sprintf("#%02x%02x%02x", r, g, b)
		}
	}
	return grid
}

func interpolate(start, end, step, max int) int {
	return int(math.Round(float64(start) + float64(end-start)*float64(step)/float64(max)))
}

func chooseRandomColour(grid [][]string) (string, [2]int) {
	row := rand.IntN(len(grid))
	col := rand.IntN(len(grid[0]))

	return grid[row][col], [2]int{row, col}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
