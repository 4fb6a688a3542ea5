/*
Copyright © 2025 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Player-facing failures. These travel up the call chain as values and are
// only turned into a private websocket error event by the gateway.
var (
	errRoomNotFound     = errors.New("Room does not exist.")
	errDuplicatePlayer  = errors.New("Player already exists in this room.")
	errRoomFull         = errors.New("Room is full.")
	errNotYourTurn      = errors.New("Not your turn")
	errGameNotStartable = errors.New("Could not start game, not enough players or room does not exist.")
	errUnknownGameType  = errors.New("Unknown game type.")
	errGameNotStarted   = errors.New("The game has not been started.")
)

func logf(cfg *Config, format string, args ...any) {
	if !cfg.verbose {
		return
	}

	log.Printf("%s | "+format, append([]any{time.Now().Format(logDate)}, args...)...)
}

func newPage(title, body string) string {
	var htmlBody strings.Builder

	htmlBody.WriteString(`<!DOCTYPE html><html lang="en"><head>`)
	htmlBody.WriteString(`<style>`)
	htmlBody.WriteString(`html,body,a{display:block;height:100%;width:100%;text-decoration:none;color:inherit;cursor:auto;}</style>`)
	htmlBody.WriteString(fmt.Sprintf("<title>%s</title></head>", title))
	htmlBody.WriteString(fmt.Sprintf("<body><a href=\"/\">%s</a></body></html>", body))

	return htmlBody.String()
}
