/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
)

// GameInfo is the catalog entry shown on the game picker.
type GameInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Status       bool   `json:"status"`
	ImageName    string `json:"imageName"`
	Colour       string `json:"colour"`
	DetailedInfo string `json:"detailedInfo"`
	NumPlayers   string `json:"numPlayers"`
}

var gameCatalog = []GameInfo{
	{
		Name:         "Xs and Os",
		Description:  "Simple naughts and crosses!",
		Status:       true,
		ImageName:    "/xs_os.svg",
		Colour:       "#25309B",
		DetailedInfo: "Tic-tac-toe, noughts and crosses, or Xs and Os is a paper-and-pencil game for two players who take turns marking the spaces in a three-by-three grid with X or O. The player who succeeds in placing three of their marks in a horizontal, vertical, or diagonal row is the winner.",
		NumPlayers:   "2",
	},
	{
		Name:         "Line Four",
		Description:  "Connect Four!",
		Status:       true,
		ImageName:    "/line_four.svg",
		Colour:       "#33D9B2",
		DetailedInfo: "Two rival players go head to head dropping tokens in a grid, fighting to be the first to form a horizontal, vertical or diagonal line of four.",
		NumPlayers:   "2",
	},
	{
		Name:         "Password",
		Description:  "Guess the password!",
		Status:       true,
		ImageName:    "/pass_word.svg",
		Colour:       "#C98D09",
		DetailedInfo: "In two teams, two rival wordmasters know the secret password and must provide clever clues to help their own team guess the password. However, they must not give away clues that are too obvious, to ensure that their team guesses it first!",
		NumPlayers:   "4-8",
	},
	{
		Name:         "Spy Hunt",
		Description:  "Find the Spy!",
		Status:       true,
		ImageName:    "/spy_hunt.svg",
		Colour:       "#783035",
		DetailedInfo: "In Spy Hunt one person is the spy (or two if you have many players) and the rest of the players are non-spies who receive a secret location. The players ask each other questions to figure out who does not know the location (and hence, is the spy).",
		NumPlayers:   "4-8",
	},
	{
		Name:         "Shades and Tones",
		Description:  "Guess the colour!",
		Status:       true,
		ImageName:    "/shades_tones.svg",
		Colour:       "#66509F",
		DetailedInfo: "One player describes a colour on a shared gradient board without naming it, and everyone else races to guess the exact square they mean. Points go to the closest guesses, and the best describer-guesser pairing takes the round.",
		NumPlayers:   "2-8",
	},
	{
		Name:         "Code Words",
		Description:  "Find the code words!",
		Status:       false,
		ImageName:    "/code_words.svg",
		Colour:       "#963D41",
		DetailedInfo: "Two rival spymasters know the secret identities of 25 agents. Their teammates know the agents only by their codenames. To win the game, your team will need to contact all of your agents in the field before the other team finds their own agents. And watch out for the assassin - meet him in the field and your team is done!",
		NumPlayers:   "2-8",
	},
}

func writeJSON(cfg *Config, w http.ResponseWriter, v any, errs chan<- error) int {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	securityHeaders(cfg, w)

	data, err := json.Marshal(v)
	if err != nil {
		errs <- err
		w.WriteHeader(http.StatusInternalServerError)

		return 0
	}

	written, err := w.Write(data)
	if err != nil {
		errs <- err
	}

	return written
}

// requestScheme derives ws or wss from the request, respecting TLS and
// X-Forwarded-Proto.
func requestScheme(r *http.Request) string {
	scheme := "ws"
	if r.TLS != nil {
		scheme = "wss"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto == "https" {
		scheme = "wss"
	}
	return scheme
}

func serveClientConfig(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		socketURL := cfg.socketURL
		if socketURL == "" {
			socketURL = requestScheme(r) + "://" + r.Host + cfg.prefix + "/ws"
		}

		writeJSON(cfg, w, map[string]string{"socketUrl": socketURL}, errs)
	}
}

func serveGameList(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		written := writeJSON(cfg, w, gameCatalog, errs)

		logf(cfg, "SERVE: Game list (%s) to %s in %s",
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveSpyHuntLocations(cfg *Config, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		writeJSON(cfg, w, spyHuntLocations, errs)
	}
}

// serveRoomQR renders a PNG QR code pointing a phone at the room's join
// URL, so joining means scanning instead of typing a code.
func serveRoomQR(cfg *Config) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		roomID := ps.ByName("roomid")
		if roomID == "" {
			http.Error(w, "missing room id", http.StatusBadRequest)
			return
		}

		scheme := "http"
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		// We are at /rooms/:roomid/qr; strip the suffix to get the room URL.
		path := strings.TrimSuffix(r.URL.Path, "/qr")

		url := scheme + "://" + r.Host + path

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}
}

func registerAPI(cfg *Config, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/config", serveClientConfig(cfg, errs))
	mux.GET(cfg.prefix+"/api/list_games", serveGameList(cfg, errs))
	mux.GET(cfg.prefix+"/api/spy_hunt/locations", serveSpyHuntLocations(cfg, errs))
	mux.GET(cfg.prefix+"/rooms/:roomid/qr", serveRoomQR(cfg))
}
