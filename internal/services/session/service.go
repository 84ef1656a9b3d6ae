package session

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/secretmafia/internal/common/clock"
	"github.com/KirkDiggler/secretmafia/internal/common/uuid"
	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/random"
	gateRepo "github.com/KirkDiggler/secretmafia/internal/repositories/gate"
	roomRepo "github.com/KirkDiggler/secretmafia/internal/repositories/room"
	slotRepo "github.com/KirkDiggler/secretmafia/internal/repositories/slot"
	"go.uber.org/zap"
)

// maxCodeAttempts bounds how many codes are tried before giving up
const maxCodeAttempts = 5

// service implements the Service interface
type service struct {
	roomRepo      roomRepo.Repository
	slotRepo      slotRepo.Repository
	gateRepo      gateRepo.Repository
	random        random.Source
	clock         clock.Clock
	uuidGenerator uuid.UUID
	logger        *zap.Logger
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoomRepo == nil {
		return nil, ErrNilRoomRepo
	}

	if cfg.SlotRepo == nil {
		return nil, ErrNilSlotRepo
	}

	if cfg.GateRepo == nil {
		return nil, ErrNilGateRepo
	}

	if cfg.Random == nil {
		return nil, ErrNilRandom
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		roomRepo:      cfg.RoomRepo,
		slotRepo:      cfg.SlotRepo,
		gateRepo:      cfg.GateRepo,
		random:        cfg.Random,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		logger:        logger.Named("session"),
	}, nil
}

// CreateRoom reserves a fresh code, stores the room and the host's slot
func (s *service) CreateRoom(ctx context.Context, input *CreateRoomInput) (*CreateRoomOutput, error) {
	if input == nil || input.DeviceID == "" {
		return nil, ErrInvalidDeviceID
	}

	name, err := validatePlayerName(input.PlayerName)
	if err != nil {
		return nil, err
	}

	avatar, err := validateAvatar(input.Avatar)
	if err != nil {
		return nil, err
	}

	mode := input.GameMode
	if mode == "" {
		mode = models.GameModeSimple
	}
	if !mode.Valid() {
		return nil, ErrInvalidGameMode
	}

	now := s.clock.Now()
	room := &models.Room{
		ID:           s.uuidGenerator.NewUUID(),
		HostDeviceID: input.DeviceID,
		GameMode:     mode,
		MafiaCount:   models.DefaultMafiaCount,
		TimerMinutes: models.DefaultTimerMinutes,
		Status:       models.RoomStatusWaiting,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created := false
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		room.Code = GenerateCode(s.random)
		err := s.roomRepo.CreateRoom(ctx, &roomRepo.CreateRoomInput{Room: room})
		if err == nil {
			created = true
			break
		}
		if errors.Is(err, roomRepo.ErrCodeTaken) {
			s.logger.Debug("Room code collision, retrying", zap.String("code", room.Code))
			continue
		}
		s.logger.Error("Failed to create room", zap.Error(err))
		return nil, err
	}
	if !created {
		return nil, ErrCodeUnavailable
	}

	slotOutput, err := s.slotRepo.CreateSlot(ctx, &slotRepo.CreateSlotInput{
		Slot: &models.PlayerSlot{
			ID:         s.uuidGenerator.NewUUID(),
			RoomID:     room.ID,
			PlayerName: name,
			Avatar:     avatar,
			DeviceID:   input.DeviceID,
			IsHost:     true,
			IsAlive:    true,
			JoinedAt:   now,
		},
	})
	if err != nil {
		// The room is left in place and expires with its TTL
		s.logger.Error("Failed to create host slot, room is orphaned",
			zap.String("room_id", room.ID),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Room created",
		zap.String("room_id", room.ID),
		zap.String("code", room.Code),
		zap.String("game_mode", string(mode)))

	return &CreateRoomOutput{
		Room: room,
		Slot: slotOutput.Slot,
	}, nil
}

// JoinRoom resolves the code to a waiting room and claims a slot for the device
func (s *service) JoinRoom(ctx context.Context, input *JoinRoomInput) (*JoinRoomOutput, error) {
	if input == nil || input.DeviceID == "" {
		return nil, ErrInvalidDeviceID
	}

	code := NormalizeCode(input.Code)
	if !IsValidCode(code) {
		return nil, ErrInvalidCode
	}

	name, err := validatePlayerName(input.PlayerName)
	if err != nil {
		return nil, err
	}

	avatar, err := validateAvatar(input.Avatar)
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetWaitingRoomByCode(ctx, &roomRepo.GetWaitingRoomByCodeInput{Code: code})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("Failed to look up room code", zap.String("code", code), zap.Error(err))
		return nil, err
	}

	slotOutput, err := s.slotRepo.CreateSlot(ctx, &slotRepo.CreateSlotInput{
		Slot: &models.PlayerSlot{
			ID:         s.uuidGenerator.NewUUID(),
			RoomID:     room.ID,
			PlayerName: name,
			Avatar:     avatar,
			DeviceID:   input.DeviceID,
			IsAlive:    true,
			JoinedAt:   s.clock.Now(),
		},
	})
	if err != nil {
		if errors.Is(err, slotRepo.ErrNameTaken) {
			return nil, ErrNameTaken
		}
		if errors.Is(err, slotRepo.ErrRoomNotWaiting) {
			// Started or closed after the code lookup
			return nil, ErrRoomNotFound
		}
		s.logger.Error("Failed to join room", zap.String("room_id", room.ID), zap.Error(err))
		return nil, err
	}

	slots, err := s.slotRepo.ListSlots(ctx, &slotRepo.ListSlotsInput{RoomID: room.ID})
	if err != nil {
		s.logger.Error("Failed to list room slots", zap.String("room_id", room.ID), zap.Error(err))
		return nil, err
	}

	return &JoinRoomOutput{
		Room:     room,
		Slot:     slotOutput.Slot,
		Slots:    slots,
		Rejoined: slotOutput.Existing,
	}, nil
}

// LeaveRoom deletes the caller's slot. A host deletes the room first so every
// subscriber learns the session ended, then the remaining slots and marks.
func (s *service) LeaveRoom(ctx context.Context, input *LeaveRoomInput) (*LeaveRoomOutput, error) {
	if input == nil || input.DeviceID == "" {
		return nil, ErrInvalidDeviceID
	}
	if input.RoomID == "" {
		return nil, ErrNotInRoom
	}

	slot, err := s.slotRepo.GetSlotByDevice(ctx, &slotRepo.GetSlotByDeviceInput{
		RoomID:   input.RoomID,
		DeviceID: input.DeviceID,
	})
	if err != nil {
		if errors.Is(err, slotRepo.ErrSlotNotFound) {
			return nil, ErrNotInRoom
		}
		return nil, err
	}

	isHost := slot.IsHost
	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{RoomID: input.RoomID})
	switch {
	case err == nil:
		isHost = isHost || room.IsHost(input.DeviceID)
	case errors.Is(err, roomRepo.ErrRoomNotFound):
		// Room already gone, only the slot remains
		isHost = false
	default:
		return nil, err
	}

	if !isHost {
		if err := s.slotRepo.DeleteSlot(ctx, &slotRepo.DeleteSlotInput{SlotID: slot.ID}); err != nil {
			s.logger.Error("Failed to delete slot", zap.String("slot_id", slot.ID), zap.Error(err))
			return nil, err
		}
		return &LeaveRoomOutput{}, nil
	}

	if err := s.roomRepo.DeleteRoom(ctx, &roomRepo.DeleteRoomInput{RoomID: input.RoomID}); err != nil && !errors.Is(err, roomRepo.ErrRoomNotFound) {
		s.logger.Error("Failed to delete room", zap.String("room_id", input.RoomID), zap.Error(err))
		return nil, err
	}

	if err := s.slotRepo.DeleteSlotsInRoom(ctx, &slotRepo.DeleteSlotsInRoomInput{RoomID: input.RoomID}); err != nil {
		s.logger.Error("Failed to delete room slots", zap.String("room_id", input.RoomID), zap.Error(err))
		return nil, err
	}

	if err := s.gateRepo.ClearMarks(ctx, &gateRepo.ClearMarksInput{RoomID: input.RoomID}); err != nil {
		// Marks expire with their TTL
		s.logger.Warn("Failed to clear room marks", zap.String("room_id", input.RoomID), zap.Error(err))
	}

	s.logger.Info("Host closed room", zap.String("room_id", input.RoomID))

	return &LeaveRoomOutput{RoomClosed: true}, nil
}

// UpdateRoomSettings writes the given settings when the caller is the host
func (s *service) UpdateRoomSettings(ctx context.Context, input *UpdateRoomSettingsInput) (*UpdateRoomSettingsOutput, error) {
	if input == nil || input.DeviceID == "" {
		return nil, ErrInvalidDeviceID
	}

	if input.MafiaCount != nil && (*input.MafiaCount < 1 || *input.MafiaCount > models.MaxMafiaCount) {
		return nil, ErrInvalidMafiaCount
	}
	if input.TimerMinutes != nil && (*input.TimerMinutes < 1 || *input.TimerMinutes > models.MaxTimerMinutes) {
		return nil, ErrInvalidTimer
	}
	if input.GameMode != nil && !input.GameMode.Valid() {
		return nil, ErrInvalidGameMode
	}

	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	if !room.IsHost(input.DeviceID) {
		return &UpdateRoomSettingsOutput{Room: room}, nil
	}
	if !room.Status.IsWaiting() {
		return nil, ErrRoomNotWaiting
	}
	if input.MafiaCount == nil && input.TimerMinutes == nil && input.GameMode == nil {
		return &UpdateRoomSettingsOutput{Room: room}, nil
	}

	updated, err := s.roomRepo.UpdateSettings(ctx, &roomRepo.UpdateSettingsInput{
		RoomID:       room.ID,
		MafiaCount:   input.MafiaCount,
		TimerMinutes: input.TimerMinutes,
		GameMode:     input.GameMode,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotWaiting) {
			return nil, ErrRoomNotWaiting
		}
		s.logger.Error("Failed to update room settings", zap.String("room_id", room.ID), zap.Error(err))
		return nil, err
	}

	return &UpdateRoomSettingsOutput{
		Room:    updated,
		Updated: true,
	}, nil
}

// GetRoom returns the room, its players and the caller's slot
func (s *service) GetRoom(ctx context.Context, input *GetRoomInput) (*GetRoomOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	room, err := s.getRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}

	slots, err := s.slotRepo.ListSlots(ctx, &slotRepo.ListSlotsInput{RoomID: room.ID})
	if err != nil {
		return nil, err
	}

	output := &GetRoomOutput{
		Room:  room,
		Slots: slots,
	}
	if input.DeviceID != "" {
		for _, slot := range slots {
			if slot.DeviceID == input.DeviceID {
				output.Self = slot
				break
			}
		}
	}

	return output, nil
}

func (s *service) getRoom(ctx context.Context, roomID string) (*models.Room, error) {
	if roomID == "" {
		return nil, ErrRoomNotFound
	}

	room, err := s.roomRepo.GetRoom(ctx, &roomRepo.GetRoomInput{RoomID: roomID})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}

	return room, nil
}

func validatePlayerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	length := utf8.RuneCountInString(name)
	if length < 1 || length > models.MaxPlayerNameLength {
		return "", ErrInvalidPlayerName
	}
	return name, nil
}

func validateAvatar(avatar string) (string, error) {
	if avatar == "" {
		return models.DefaultAvatar, nil
	}
	if !models.IsValidAvatar(avatar) {
		return "", ErrInvalidAvatar
	}
	return avatar, nil
}
