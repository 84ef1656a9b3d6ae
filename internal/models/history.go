package models

import (
	"time"
)

// HistoryPlayer is one player of a finished game
type HistoryPlayer struct {
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// GameRecord is a finished game kept in a device's history
type GameRecord struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	GameMode      GameMode        `json:"game_mode"`
	Winner        Team            `json:"winner,omitempty"`
	Players       []HistoryPlayer `json:"players"`
	MafiaCount    int             `json:"mafia_count"`
	CivilianCount int             `json:"civilian_count"`
}

// PlayerStats aggregates a player's games across a device's history
type PlayerStats struct {
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
	TimesMafia  int    `json:"times_mafia"`
	TimesTown   int    `json:"times_town"`
}
