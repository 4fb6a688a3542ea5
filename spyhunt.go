/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

// Spy Hunt: one player is secretly the spy, everyone else shares a location
// and a role within it. There is no server-driven turn cycle; the round is
// timed on the clients and ends with a reveal.

package main

import (
	"encoding/json"
	"math/rand/v2"
	"slices"
)

var spyHuntLocations = []string{
	"Boeing 737", "Commonwealth Bank of Australia", "Bondi Beach", "Crown Casino",
	"Deloitte Corporate Party", "Royal Prince Alfred Hospital", "Meriton Suites",
	"Events Cinema", "Sydney Trains", "Chinatown Noodle King", "Soju Alley",
	"Woolworths", "UNSW", "WAO",
}

var spyHuntRoles = map[string][]string{
	"Boeing 737":                     {"Pilot", "Flight Attendant", "Air Marshal", "First Class Passenger", "Economy Class Passenger", "Baggage Handler", "Customs Officer", "Baby"},
	"Commonwealth Bank of Australia": {"Bank Manager", "Teller", "Security Guard", "Mortgage Advisor", "Robber", "Janitor", "Customer", "Business Client"},
	"Bondi Beach":                    {"Lifeguard", "Surfer", "Tourist", "Child", "Beach Volleyball Player", "Dog", "Fisherman", "Marine Biologist"},
	"Crown Casino":                   {"Dealer", "Casino Manager", "Bouncer", "Waitress/Waiter", "Professional Gambler", "Bartender", "Lounge Singer", "Tourist Gambler"},
	"Deloitte Corporate Party":       {"CEO", "Marketing Manager", "Partner", "Consultant", "Intern", "Client", "HR Manager", "IT Technician"},
	"Royal Prince Alfred Hospital":   {"Surgeon", "Nurse", "Anesthesiologists", "Patient", "Psychiatrist", "Janitor", "Paramedic", "Radiologist"},
	"Meriton Suites":                 {"Hotel Manager", "Concierge", "Housekeeper", "Guest", "Security Guard", "Valet", "Chef", "Maintenance Worker"},
	"Events Cinema":                  {"Moviegoer", "Cinema Manager", "Ticket Seller", "Concession Stand Worker", "Security Guard", "Movie Premiere Guest", "Film Critic", "Janitor"},
	"Sydney Trains":                  {"Train Conductor", "Engineer", "Passenger", "Opal Card Officer", "Drunk Person", "Lost Child", "Student", "Police Officer"},
	"Chinatown Noodle King":          {"Drunk Society Student", "Chef", "Waitress/Waiter", "Restaurant Owner", "Uber Eats Driver", "Health Inspector", "Dishwasher", "Underage Child Staff"},
	"Soju Alley":                     {"Underage Drinker", "Homeless Person", "Police Officer", "Stray Cat", "University Student", "Red Bottle Employee", "Alcoholic", "First Time Drinker"},
	"Woolworths":                     {"Store Manager", "Cashier", "Butcher", "Baker", "Child", "Parent", "Security Guard", "Health Inspector"},
	"UNSW":                           {"Vice-Chancellor", "Professor", "Undergraduate", "Postgraduate", "Tutor", "Campus Security", "Lecturer", "Student Society"},
	"WAO":                            {"Drug Dealer", "DJ", "Bartender", "Bouncer", "Dancer", "Club Owner", "VIP Guest", "Photographer"},
}

type spyHuntEngine struct{}

type spyHuntStart struct {
	GameState map[string]string `json:"gameState"`
	Location  string            `json:"location"`
	Spy       string            `json:"spy"`
}

func (spyHuntEngine) PlayerBounds() (int, int) {
	return 4, 8
}

func (spyHuntEngine) CheckGameStart(room *Room) bool {
	return room != nil && len(room.Players) >= 4 && len(room.Players) <= 8
}

func (e spyHuntEngine) Initialize(room *Room) (any, error) {
	if !e.CheckGameStart(room) {
		return nil, errGameNotStartable
	}

	spy := room.Players[rand.IntN(len(room.Players))]
	location := spyHuntLocations[rand.IntN(len(spyHuntLocations))]

	roles := slices.Clone(spyHuntRoles[location])
	rand.Shuffle(len(roles), func(i, j int) {
		roles[i], roles[j] = roles[j], roles[i]
	})

	assignments := make(map[string]string, len(room.Players))
	i := 0
	for _, player := range room.Players {
		if player == spy {
			continue
		}
		assignments[player] = roles[i]
		i++
	}
	assignments[spy] = "Spy"

	room.GameState = assignments
	room.PlayerSymbols = nil
	room.PlayerColours = nil
	room.CurrentTurn = ""

	return &spyHuntStart{
		GameState: assignments,
		Location:  location,
		Spy:       spy,
	}, nil
}

// Spy Hunt has no move cycle; the round is discussed out loud and timed by
// the clients.
func (spyHuntEngine) IsTurn(room *Room, nickname string) bool {
	return false
}

func (spyHuntEngine) ApplyMove(room *Room, nickname string, move json.RawMessage) (*Outcome, error) {
	return nil, errInvalidMove
}
