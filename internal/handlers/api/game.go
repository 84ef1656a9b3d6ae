package api

import (
	"net/http"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/services/game"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/gin-gonic/gin"
)

type castVoteRequest struct {
	// Target is a player name; empty skips
	Target string `json:"target"`
}

type resolveNightRequest struct {
	MafiaTarget     string `json:"mafia_target"`
	DoctorTarget    string `json:"doctor_target"`
	DetectiveTarget string `json:"detective_target"`
}

type investigationResponse struct {
	Name    string `json:"name"`
	IsMafia bool   `json:"is_mafia"`
}

func (h *Handler) startGame(c *gin.Context) {
	deviceID := deviceIDFrom(c)
	output, err := h.gameService.StartGame(c.Request.Context(), &game.StartGameInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toGame(output.Room, output.Slots, output.Room.State(), deviceID, 0, len(output.Slots)))
}

func (h *Handler) getGame(c *gin.Context) {
	deviceID := deviceIDFrom(c)
	output, err := h.gameService.GetGame(c.Request.Context(), &game.GetGameInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	var state *models.GameState
	if output.Room.Status.IsPlaying() {
		state = output.State
	}
	c.JSON(http.StatusOK, toGame(output.Room, output.Slots, state, deviceID, output.ReadyCount, output.ReadyTarget))
}

func (h *Handler) markReady(c *gin.Context) {
	output, err := h.gameService.MarkReady(c.Request.Context(), &game.MarkReadyInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceIDFrom(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"phase":    output.Phase,
		"advanced": output.Advanced,
	})
}

func (h *Handler) castVote(c *gin.Context) {
	var req castVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.gameService.CastVote(c.Request.Context(), &game.CastVoteInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceIDFrom(c),
		Target:   req.Target,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"target":  output.Target,
		"skipped": output.Skipped,
	})
}

func (h *Handler) completeNightIntro(c *gin.Context) {
	output, err := h.gameService.CompleteNightIntro(c.Request.Context(), &game.CompleteNightIntroInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceIDFrom(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":    toRoom(output.Room),
		"message": h.phaseMessage(c, output.Room),
	})
}

func (h *Handler) resolveNight(c *gin.Context) {
	var req resolveNightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.gameService.ResolveNight(c.Request.Context(), &game.ResolveNightInput{
		RoomID:          c.Param("id"),
		DeviceID:        deviceIDFrom(c),
		MafiaTarget:     req.MafiaTarget,
		DoctorTarget:    req.DoctorTarget,
		DetectiveTarget: req.DetectiveTarget,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response := gin.H{
		"room":         toRoom(output.Room),
		"night_result": output.NightResult,
		"winner":       output.Winner,
		"message":      h.phaseMessage(c, output.Room),
	}
	if output.Investigation != nil {
		response["investigation"] = &investigationResponse{
			Name:    output.Investigation.Name,
			IsMafia: output.Investigation.IsMafia,
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) startVoting(c *gin.Context) {
	output, err := h.gameService.StartVoting(c.Request.Context(), &game.StartVotingInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceIDFrom(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":    toRoom(output.Room),
		"message": h.phaseMessage(c, output.Room),
	})
}

func (h *Handler) resolveVotes(c *gin.Context) {
	output, err := h.gameService.ResolveVotes(c.Request.Context(), &game.ResolveVotesInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceIDFrom(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response := gin.H{
		"room":   toRoom(output.Room),
		"result": toVoteResult(output.Result),
		"winner": output.Winner,
	}
	msg, err := h.messaging.GetVoteResultMessage(c.Request.Context(), &messaging.GetVoteResultMessageInput{
		Result:        output.Result,
		Eliminated:    output.Eliminated,
		PreferredTone: messaging.ToneDramatic,
	})
	if err == nil {
		response["message"] = &MessageResponse{Title: msg.Title, Message: msg.Message}
	}

	c.JSON(http.StatusOK, response)
}

// phaseMessage announces the phase the room is now in; nil when there is nothing to say
func (h *Handler) phaseMessage(c *gin.Context, room *models.Room) *MessageResponse {
	if room == nil {
		return nil
	}
	state := room.State()
	msg, err := h.messaging.GetPhaseMessage(c.Request.Context(), &messaging.GetPhaseMessageInput{
		Phase:         state.Phase,
		GameMode:      room.GameMode,
		RoundNumber:   state.RoundNumber,
		NightResult:   state.NightResult,
		Winner:        state.Winner,
		PreferredTone: messaging.ToneDramatic,
	})
	if err != nil {
		return nil
	}
	return &MessageResponse{Title: msg.Title, Message: msg.Message}
}
