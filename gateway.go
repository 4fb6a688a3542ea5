/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

// The gateway is the single mediator between websocket connections and the
// room registry. Every room mutation happens inside its run loop, so two
// concurrent moves for the same room are serialized by construction rather
// than by per-room locking.

package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

type Client struct {
	id   string
	conn *websocket.Conn
	send chan any

	// rooms maps room ID to the nickname this connection plays under, and
	// is touched only by the gateway's run loop.
	rooms map[string]string
}

type inboundMessage struct {
	client *Client
	env    clientEnvelope
}

type Gateway struct {
	cfg      *Config
	registry *Registry

	clients map[*Client]bool
	members map[string]map[*Client]bool

	register   chan *Client
	unregister chan *Client
	inbound    chan inboundMessage
}

func newGateway(cfg *Config, registry *Registry) *Gateway {
	return &Gateway{
		cfg:        cfg,
		registry:   registry,
		clients:    make(map[*Client]bool),
		members:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbound:    make(chan inboundMessage),
	}
}

func (g *Gateway) run() {
	var reaper <-chan time.Time
	if g.cfg.sessionTimeout > 0 {
		ticker := time.NewTicker(g.cfg.sessionTimeout / 2)
		defer ticker.Stop()
		reaper = ticker.C
	}

	for {
		select {
		case c := <-g.register:
			g.clients[c] = true

		case c := <-g.unregister:
			g.disconnect(c)

		case in := <-g.inbound:
			g.handle(in.client, in.env)

		case <-reaper:
			g.reapIdleRooms()
		}
	}
}

func (g *Gateway) handle(c *Client, env clientEnvelope) {
	// A client dropped during a broadcast may still have reads in flight;
	// its send channel is already closed.
	if !g.clients[c] {
		return
	}

	switch env.Event {
	case "createRoom":
		g.handleCreateRoom(c, env.Data)
	case "joinRoom":
		g.handleJoinRoom(c, env.Data)
	case "leaveRoom":
		g.handleLeaveRoom(c, env.Data)
	case "startGame", "restartGame":
		g.handleStartGame(c, env.Data, env.Event == "restartGame")
	default:
		if gameType, ok := moveEvents[env.Event]; ok {
			g.handleMove(c, gameType, env.Data)
		}
		// Unknown events are dropped.
	}
}

func (g *Gateway) handleCreateRoom(c *Client, data json.RawMessage) {
	var req createRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Nickname == "" {
		return
	}
	if _, ok := engines[req.GameType]; !ok {
		g.sendError(c, errUnknownGameType.Error())
		return
	}

	roomID := g.registry.newRoomID()
	room := createRoom(roomID, req.GameType, req.Nickname)
	g.registry.insert(room)

	c.rooms[roomID] = req.Nickname
	g.subscribe(c, roomID)

	logf(g.cfg, "ROOMS: %q (%s) created room %s (%s)", req.Nickname, c.id, roomID, req.GameType)

	g.sendTo(c, serverEnvelope{Event: "roomCreated", Data: roomCreatedMessage{
		RoomID: roomID,
		Room:   room,
	}})
}

func (g *Gateway) handleJoinRoom(c *Client, data json.RawMessage) {
	var req joinRoomRequest
	if err := json.Unmarshal(data, &req); err != nil || req.Nickname == "" {
		return
	}

	room, err := g.registry.join(req.RoomID, req.GameType, req.Nickname)
	if err != nil {
		g.sendError(c, err.Error())
		return
	}

	c.rooms[req.RoomID] = req.Nickname
	g.subscribe(c, req.RoomID)

	logf(g.cfg, "ROOMS: %q (%s) joined room %s", req.Nickname, c.id, req.RoomID)

	g.broadcast(req.RoomID, serverEnvelope{Event: "roomJoined", Data: room})
}

func (g *Gateway) handleLeaveRoom(c *Client, data json.RawMessage) {
	var req leaveRoomRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	if _, ok := g.registry.get(req.RoomID); !ok {
		g.sendError(c, errRoomNotFound.Error())
		return
	}

	// The nickname comes from the session record, not the wire, so a
	// connection can only ever remove its own roster entry.
	nickname, ok := c.rooms[req.RoomID]
	if !ok {
		return
	}

	g.removePlayer(c, req.RoomID, nickname)
	delete(c.rooms, req.RoomID)
}

func (g *Gateway) handleStartGame(c *Client, data json.RawMessage, restart bool) {
	var req startGameRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	room, ok := g.registry.get(req.RoomID)
	if !ok {
		g.sendError(c, errGameNotStartable.Error())
		return
	}
	if room.status == statusInProgress && !restart {
		g.sendError(c, "The game has already been started.")
		return
	}

	payload, err := startGame(g.registry, req.RoomID, req.GameType)
	if err != nil {
		g.sendError(c, err.Error())
		return
	}

	// The room's type is locked in once a game actually starts.
	room.GameType = req.GameType
	room.status = statusInProgress
	room.touch()

	logf(g.cfg, "GAMES: Started %s in room %s with %d players", req.GameType, req.RoomID, len(room.Players))

	g.broadcast(req.RoomID, serverEnvelope{Event: "gameStarted", Data: payload})
}

func (g *Gateway) handleMove(c *Client, gameType GameType, data json.RawMessage) {
	var req moveRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return
	}

	room, ok := g.registry.get(req.RoomID)
	if !ok {
		g.sendError(c, errRoomNotFound.Error())
		return
	}
	if room.status != statusInProgress || room.GameType != gameType {
		g.sendError(c, errGameNotStarted.Error())
		return
	}

	nickname, ok := c.rooms[req.RoomID]
	if !ok {
		g.sendError(c, errNotYourTurn.Error())
		return
	}

	engine := engines[room.GameType]
	if !engine.IsTurn(room, nickname) {
		g.sendError(c, errNotYourTurn.Error())
		return
	}

	outcome, err := engine.ApplyMove(room, nickname, req.Move)
	if err != nil {
		g.sendError(c, err.Error())
		return
	}

	room.touch()

	// Round transitions replace the usual moveMade broadcast so a round
	// boundary emits state exactly once.
	switch {
	case outcome.GameOver:
		room.status = statusFinished
		g.broadcast(req.RoomID, serverEnvelope{Event: "gameOver", Data: gameOverMessage{
			Winner: outcome.Winner,
			Scores: outcome.Scores,
		}})
		logf(g.cfg, "GAMES: %s in room %s won by %q", room.GameType, req.RoomID, outcome.Winner)
		return
	case outcome.NewRound:
		g.broadcast(req.RoomID, serverEnvelope{Event: "newRound", Data: moveMadeMessage{
			GameState:   outcome.GameState,
			CurrentTurn: outcome.CurrentTurn,
		}})
		return
	}

	g.broadcast(req.RoomID, serverEnvelope{Event: "moveMade", Data: moveMadeMessage{
		GameState:   outcome.GameState,
		CurrentTurn: outcome.CurrentTurn,
	}})

	switch {
	case outcome.Winner != "":
		room.status = statusFinished
		g.broadcast(req.RoomID, serverEnvelope{Event: "gameWon", Data: outcome.Winner})
		logf(g.cfg, "GAMES: %s in room %s won by %q", room.GameType, req.RoomID, outcome.Winner)
	case outcome.Draw:
		room.status = statusFinished
		g.broadcast(req.RoomID, serverEnvelope{Event: "gameDraw"})
		logf(g.cfg, "GAMES: %s in room %s ended in a draw", room.GameType, req.RoomID)
	}
}

// disconnect tears down a dropped connection. The player leaves every room
// they occupy even when a full send buffer already evicted the client, so a
// slow consumer never leaves a ghost roster entry behind.
func (g *Gateway) disconnect(c *Client) {
	for roomID, nickname := range c.rooms {
		g.removePlayer(c, roomID, nickname)
	}

	if g.clients[c] {
		delete(g.clients, c)
		close(c.send)
	}

	logf(g.cfg, "SOCKET: Closed connection %s", c.id)
}

// removePlayer takes a player out of one room, aborting any game in
// progress, and destroys the room if it empties.
func (g *Gateway) removePlayer(c *Client, roomID, nickname string) {
	room, ok := g.registry.get(roomID)
	if !ok {
		return
	}

	// A mid-game departure invalidates role and turn assignments, so the
	// game is abandoned rather than left stalled on a ghost turn.
	if room.status == statusInProgress && room.hasPlayer(nickname) {
		room.status = statusWaiting
		room.GameState = map[string]any{}
		room.CurrentTurn = ""
		room.PlayerSymbols = nil
		room.PlayerColours = nil
	}

	empty, err := g.registry.leave(roomID, nickname)
	if err != nil {
		return
	}

	if clients, ok := g.members[roomID]; ok {
		delete(clients, c)
	}

	if empty {
		delete(g.members, roomID)
		logf(g.cfg, "ROOMS: Destroyed empty room %s", roomID)
		return
	}

	logf(g.cfg, "ROOMS: %q left room %s", nickname, roomID)

	g.broadcast(roomID, serverEnvelope{Event: "playerLeft", Data: playerLeftMessage{
		Nickname: nickname,
	}})
}

func (g *Gateway) reapIdleRooms() {
	for _, roomID := range g.registry.reap(g.cfg.sessionTimeout) {
		logf(g.cfg, "ROOMS: Reaped idle room %s", roomID)

		for c := range g.members[roomID] {
			g.sendError(c, "Room closed due to inactivity.")
			delete(c.rooms, roomID)
		}
		delete(g.members, roomID)
	}
}

func (g *Gateway) subscribe(c *Client, roomID string) {
	if g.members[roomID] == nil {
		g.members[roomID] = make(map[*Client]bool)
	}
	g.members[roomID][c] = true
}

// broadcast fans an event out to every member of a room, best-effort: a
// client with a full send buffer is dropped.
func (g *Gateway) broadcast(roomID string, msg serverEnvelope) {
	for c := range g.members[roomID] {
		select {
		case c.send <- msg:
		default:
			delete(g.members[roomID], c)
			delete(g.clients, c)
			close(c.send)
		}
	}
}

func (g *Gateway) sendTo(c *Client, msg serverEnvelope) {
	select {
	case c.send <- msg:
	default:
	}
}

// sendError delivers a failure to the acting connection only; failures are
// never broadcast.
func (g *Gateway) sendError(c *Client, message string) {
	g.sendTo(c, serverEnvelope{Event: "error", Data: message})
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func serveWS(cfg *Config, g *Gateway) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("upgrade error:", err)
			return
		}

		client := &Client{
			id:    uuid.NewString(),
			conn:  conn,
			send:  make(chan any, 8),
			rooms: make(map[string]string),
		}

		g.register <- client

		logf(cfg, "SOCKET: Opened connection %s from %s", client.id, realIP(r))

		go client.writePump()
		client.readPump(g)
	}
}

func (c *Client) readPump(g *Gateway) {
	defer func() {
		g.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		var env clientEnvelope
		if err := c.conn.ReadJSON(&env); err != nil {
			return
		}

		g.inbound <- inboundMessage{
			client: c,
			env:    env,
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}
