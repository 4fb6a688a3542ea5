/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"crypto/rand"
	"slices"
	"sync"
	"time"
)

type roomStatus int

const (
	statusWaiting roomStatus = iota
	statusInProgress
	statusFinished
)

// Room is a named, ephemeral session bound to one game type and a roster of
// players. The registry owns every Room for the lifetime of the process;
// engines receive it by pointer and mutate GameState/CurrentTurn in place.
type Room struct {
	ID            string            `json:"id"`
	GameType      GameType          `json:"gameType"`
	Players       []string          `json:"players"`
	GameState     any               `json:"gameState"`
	CurrentTurn   string            `json:"currentTurn,omitempty"`
	PlayerSymbols map[string]string `json:"playerSymbols,omitempty"`
	PlayerColours map[string]string `json:"playerColours,omitempty"`

	status     roomStatus
	lastActive time.Time
}

func (r *Room) hasPlayer(nickname string) bool {
	return slices.Contains(r.Players, nickname)
}

func (r *Room) touch() {
	r.lastActive = time.Now()
}

// createRoom builds a new single-player room. The caller is responsible for
// inserting it into the registry.
func createRoom(id string, gameType GameType, nickname string) *Room {
	return &Room{
		ID:         id,
		GameType:   gameType,
		Players:    []string{nickname},
		GameState:  map[string]any{},
		status:     statusWaiting,
		lastActive: time.Now(),
	}
}

// Registry is the single shared mapping of live rooms. The gateway's run
// loop is the only writer during normal operation, but the map is still
// guarded so the HTTP surface can take read-only peeks.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func newRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

const roomIDAlphabet = "abcdefghijklmnopqrstuvwxyz"

// newRoomID generates a crypto-random 6-character room ID and re-checks it
// against live rooms before returning. Collisions are vanishingly rare at
// this alphabet size, but the re-check keeps the contract honest.
func (reg *Registry) newRoomID() string {
	const max = byte(255 - (256 % len(roomIDAlphabet)))

	for {
		out := make([]byte, 0, 6)
		buf := make([]byte, 12)

		for len(out) < 6 {
			if _, err := rand.Read(buf); err != nil {
				panic("crypto/rand failure: " + err.Error())
			}
			for _, b := range buf {
				if b <= max {
					out = append(out, roomIDAlphabet[int(b)%len(roomIDAlphabet)])
					if len(out) == 6 {
						break
					}
				}
			}
		}
		id := string(out)

		reg.mu.RLock()
		_, exists := reg.rooms[id]
		reg.mu.RUnlock()

		if !exists {
			return id
		}
	}
}

func (reg *Registry) get(id string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	room, ok := reg.rooms[id]
	return room, ok
}

func (reg *Registry) insert(room *Room) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	reg.rooms[room.ID] = room
}

func (reg *Registry) count() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.rooms)
}

// join appends a player to a room after the registry-level checks pass and
// the game's engine confirms there is space. Returns the updated room.
func (reg *Registry) join(roomID string, gameType GameType, nickname string) (*Room, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return nil, errRoomNotFound
	}
	if room.hasPlayer(nickname) {
		return nil, errDuplicatePlayer
	}

	engine, ok := engines[gameType]
	if !ok {
		return nil, errUnknownGameType
	}
	_, max := engine.PlayerBounds()
	if len(room.Players) >= max {
		return nil, errRoomFull
	}

	room.Players = append(room.Players, nickname)
	room.touch()

	return room, nil
}

// leave removes a player if present (a no-op otherwise) and deletes the room
// entirely once its player list empties. Reports whether the room is gone.
func (reg *Registry) leave(roomID string, nickname string) (empty bool, err error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	room, ok := reg.rooms[roomID]
	if !ok {
		return false, errRoomNotFound
	}

	if i := slices.Index(room.Players, nickname); i != -1 {
		room.Players = slices.Delete(room.Players, i, i+1)
	}

	if len(room.Players) == 0 {
		delete(reg.rooms, roomID)
		return true, nil
	}

	room.touch()

	return false, nil
}

// reap deletes rooms idle longer than d and returns their IDs so the
// gateway can disconnect any remaining members.
func (reg *Registry) reap(d time.Duration) []string {
	cutoff := time.Now().Add(-d)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	var reaped []string
	for id, room := range reg.rooms {
		if room.lastActive.Before(cutoff) {
			delete(reg.rooms, id)
			reaped = append(reaped, id)
		}
	}

	return reaped
}
