package api

import (
	"time"

	"github.com/KirkDiggler/secretmafia/internal/device"
	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/vote"
)

// RoomResponse is a room as any member may see it
type RoomResponse struct {
	ID           string            `json:"id"`
	Code         string            `json:"code"`
	GameMode     models.GameMode   `json:"game_mode"`
	MafiaCount   int               `json:"mafia_count"`
	TimerMinutes int               `json:"timer_minutes"`
	Status       models.RoomStatus `json:"status"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// PlayerResponse is a slot without the device it belongs to
type PlayerResponse struct {
	ID         string      `json:"id"`
	PlayerName string      `json:"player_name"`
	Avatar     string      `json:"avatar"`
	IsHost     bool        `json:"is_host"`
	IsAlive    bool        `json:"is_alive"`
	IsSelf     bool        `json:"is_self"`
	Role       models.Role `json:"role,omitempty"`
}

// StateResponse is the shared game state with ballots keyed by player name
type StateResponse struct {
	Phase        models.Phase        `json:"phase"`
	RoundNumber  int                 `json:"round_number"`
	Gate         int                 `json:"gate"`
	NightResult  *models.NightResult `json:"night_result,omitempty"`
	Winner       models.Team         `json:"winner,omitempty"`
	PlayersReady []string            `json:"players_ready"`
	Votes        map[string]string   `json:"votes"`
}

// GameResponse is a device's full view of a room
type GameResponse struct {
	Room        *RoomResponse     `json:"room"`
	Players     []*PlayerResponse `json:"players"`
	Self        *PlayerResponse   `json:"self,omitempty"`
	IsHost      bool              `json:"is_host"`
	State       *StateResponse    `json:"state,omitempty"`
	ReadyCount  int               `json:"ready_count"`
	ReadyTarget int               `json:"ready_target"`
}

// ViewResponse is what the event stream pushes after every change
type ViewResponse struct {
	Type     string        `json:"type"`
	Screen   device.Screen `json:"screen"`
	AllVoted bool          `json:"all_voted"`
	Recorded bool          `json:"recorded"`
	GameResponse
}

// ClosedResponse is pushed once when the room goes away
type ClosedResponse struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

// VoteResultResponse is the tally of a resolved vote
type VoteResultResponse struct {
	Eliminated string         `json:"eliminated,omitempty"`
	Counts     map[string]int `json:"counts"`
	MaxVotes   int            `json:"max_votes"`
	Threshold  int            `json:"threshold"`
	Reason     vote.Reason    `json:"reason,omitempty"`
}

// MessageResponse is flavor text for the current outcome
type MessageResponse struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func toRoom(room *models.Room) *RoomResponse {
	if room == nil {
		return nil
	}
	return &RoomResponse{
		ID:           room.ID,
		Code:         room.Code,
		GameMode:     room.GameMode,
		MafiaCount:   room.MafiaCount,
		TimerMinutes: room.TimerMinutes,
		Status:       room.Status,
		CreatedAt:    room.CreatedAt,
		UpdatedAt:    room.UpdatedAt,
	}
}

// roleVisible reports whether a viewer may see a slot's role
func roleVisible(slot *models.PlayerSlot, deviceID string, phase models.Phase) bool {
	return slot.DeviceID == deviceID || !slot.IsAlive || phase == models.PhaseComplete
}

func toPlayer(slot *models.PlayerSlot, deviceID string, phase models.Phase) *PlayerResponse {
	if slot == nil {
		return nil
	}
	player := &PlayerResponse{
		ID:         slot.ID,
		PlayerName: slot.PlayerName,
		Avatar:     slot.Avatar,
		IsHost:     slot.IsHost,
		IsAlive:    slot.IsAlive,
		IsSelf:     slot.DeviceID == deviceID,
	}
	if roleVisible(slot, deviceID, phase) {
		player.Role = slot.Role
	}
	return player
}

func toPlayers(slots []*models.PlayerSlot, deviceID string, phase models.Phase) []*PlayerResponse {
	players := make([]*PlayerResponse, 0, len(slots))
	for _, slot := range slots {
		players = append(players, toPlayer(slot, deviceID, phase))
	}
	return players
}

// toState translates slot IDs in the marks to player names
func toState(state *models.GameState, slots []*models.PlayerSlot) *StateResponse {
	if state == nil {
		return nil
	}
	names := make(map[string]string, len(slots))
	for _, slot := range slots {
		names[slot.ID] = slot.PlayerName
	}

	response := &StateResponse{
		Phase:        state.Phase,
		RoundNumber:  state.RoundNumber,
		Gate:         state.Gate,
		NightResult:  state.NightResult,
		Winner:       state.Winner,
		PlayersReady: make([]string, 0, len(state.PlayersReady)),
		Votes:        make(map[string]string, len(state.Votes)),
	}
	for _, slotID := range state.PlayersReady {
		if name, ok := names[slotID]; ok {
			response.PlayersReady = append(response.PlayersReady, name)
		}
	}
	for slotID, target := range state.Votes {
		if name, ok := names[slotID]; ok {
			response.Votes[name] = target
		}
	}
	return response
}

func toGame(room *models.Room, slots []*models.PlayerSlot, state *models.GameState, deviceID string, readyCount, readyTarget int) *GameResponse {
	var phase models.Phase
	if state != nil {
		phase = state.Phase
	}

	response := &GameResponse{
		Room:        toRoom(room),
		Players:     toPlayers(slots, deviceID, phase),
		IsHost:      room.IsHost(deviceID),
		State:       toState(state, slots),
		ReadyCount:  readyCount,
		ReadyTarget: readyTarget,
	}
	for _, player := range response.Players {
		if player.IsSelf {
			response.Self = player
			break
		}
	}
	return response
}

func toView(view *device.View, deviceID string) *ViewResponse {
	return &ViewResponse{
		Type:         "update",
		Screen:       view.Screen,
		AllVoted:     view.AllVoted,
		Recorded:     view.Recorded,
		GameResponse: *toGame(view.Room, view.Slots, view.State, deviceID, view.ReadyCount, view.ReadyTarget),
	}
}

func toVoteResult(result *vote.Result) *VoteResultResponse {
	if result == nil {
		return nil
	}
	return &VoteResultResponse{
		Eliminated: result.Eliminated,
		Counts:     result.Counts,
		MaxVotes:   result.MaxVotes,
		Threshold:  result.Threshold,
		Reason:     result.Reason,
	}
}
