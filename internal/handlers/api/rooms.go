package api

import (
	"net/http"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/KirkDiggler/secretmafia/internal/services/session"
	"github.com/gin-gonic/gin"
)

type createRoomRequest struct {
	PlayerName string          `json:"player_name" binding:"required"`
	Avatar     string          `json:"avatar"`
	GameMode   models.GameMode `json:"game_mode"`
}

type joinRoomRequest struct {
	Code       string `json:"code" binding:"required"`
	PlayerName string `json:"player_name" binding:"required"`
	Avatar     string `json:"avatar"`
}

type updateSettingsRequest struct {
	MafiaCount   *int             `json:"mafia_count"`
	TimerMinutes *int             `json:"timer_minutes"`
	GameMode     *models.GameMode `json:"game_mode"`
}

func (h *Handler) createRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	deviceID := deviceIDFrom(c)
	output, err := h.sessionService.CreateRoom(c.Request.Context(), &session.CreateRoomInput{
		DeviceID:   deviceID,
		PlayerName: req.PlayerName,
		Avatar:     req.Avatar,
		GameMode:   req.GameMode,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toGame(output.Room, []*models.PlayerSlot{output.Slot}, nil, deviceID, 0, 0))
}

func (h *Handler) joinRoom(c *gin.Context) {
	var req joinRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	deviceID := deviceIDFrom(c)
	output, err := h.sessionService.JoinRoom(c.Request.Context(), &session.JoinRoomInput{
		Code:       req.Code,
		DeviceID:   deviceID,
		PlayerName: req.PlayerName,
		Avatar:     req.Avatar,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	response := gin.H{
		"game":     toGame(output.Room, output.Slots, nil, deviceID, 0, 0),
		"rejoined": output.Rejoined,
	}
	msg, err := h.messaging.GetJoinRoomMessage(c.Request.Context(), &messaging.GetJoinRoomMessageInput{
		PlayerName:    output.Slot.PlayerName,
		Code:          output.Room.Code,
		Rejoined:      output.Rejoined,
		PreferredTone: messaging.ToneDramatic,
	})
	if err == nil {
		response["message"] = &MessageResponse{Title: msg.Title, Message: msg.Message}
	}

	c.JSON(http.StatusOK, response)
}

func (h *Handler) getRoom(c *gin.Context) {
	deviceID := deviceIDFrom(c)
	output, err := h.sessionService.GetRoom(c.Request.Context(), &session.GetRoomInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceID,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if output.Self == nil {
		h.fail(c, session.ErrNotInRoom)
		return
	}

	c.JSON(http.StatusOK, toGame(output.Room, output.Slots, nil, deviceID, 0, 0))
}

func (h *Handler) updateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}

	output, err := h.sessionService.UpdateRoomSettings(c.Request.Context(), &session.UpdateRoomSettingsInput{
		RoomID:       c.Param("id"),
		DeviceID:     deviceIDFrom(c),
		MafiaCount:   req.MafiaCount,
		TimerMinutes: req.TimerMinutes,
		GameMode:     req.GameMode,
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"room":    toRoom(output.Room),
		"updated": output.Updated,
	})
}

func (h *Handler) leaveRoom(c *gin.Context) {
	output, err := h.sessionService.LeaveRoom(c.Request.Context(), &session.LeaveRoomInput{
		RoomID:   c.Param("id"),
		DeviceID: deviceIDFrom(c),
	})
	if err != nil {
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"room_closed": output.RoomClosed})
}
