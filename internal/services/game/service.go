package game

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/secretmafia/internal/models"
	gateRepo "github.com/KirkDiggler/secretmafia/internal/repositories/gate"
	roomRepo "github.com/KirkDiggler/secretmafia/internal/repositories/room"
	slotRepo "github.com/KirkDiggler/secretmafia/internal/repositories/slot"
	"github.com/KirkDiggler/secretmafia/internal/services/roles"
	"github.com/KirkDiggler/secretmafia/internal/vote"
	"go.uber.org/zap"
)

// maxStartAttempts bounds how often StartGame deals again after the roster moved
const maxStartAttempts = 3

// service implements the Service interface
type service struct {
	roomRepo    roomRepo.Repository
	slotRepo    slotRepo.Repository
	gateRepo    gateRepo.Repository
	roleService roles.Service
	logger      *zap.Logger
}

// New creates a new game service
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

	if cfg.RoleService == nil {
		return nil, ErrNilRoleService
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &service{
		roomRepo:    cfg.RoomRepo,
		slotRepo:    cfg.SlotRepo,
		gateRepo:    cfg.GateRepo,
		roleService: cfg.RoleService,
		logger:      logger.Named("game"),
	}, nil
}

// snapshot is one consistent read of a room for a device
type snapshot struct {
	room  *models.Room
	slots []*models.PlayerSlot
	state *models.GameState
	self  *models.PlayerSlot
}

func (snap *snapshot) isHost(deviceID string) bool {
	return snap.room.IsHost(deviceID)
}

func (snap *snapshot) alive() []*models.PlayerSlot {
	alive := make([]*models.PlayerSlot, 0, len(snap.slots))
	for _, slot := range snap.slots {
		if slot.IsAlive {
			alive = append(alive, slot)
		}
	}
	return alive
}

// readiness returns how many players passed the gate and how many must
func (snap *snapshot) readiness() (count, target int) {
	return Readiness(snap.state, snap.slots)
}

// findAlive resolves a player name to an alive slot
func (snap *snapshot) findAlive(name string) *models.PlayerSlot {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	for _, slot := range snap.slots {
		if slot.IsAlive && strings.EqualFold(slot.PlayerName, name) {
			return slot
		}
	}
	return nil
}

// load reads the room, its slots and the marks of the current gate.
// Marks of slots that no longer exist are ignored.
func (s *service) load(ctx context.Context, roomID, deviceID string) (*snapshot, error) {
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

	slots, err := s.slotRepo.ListSlots(ctx, &slotRepo.ListSlotsInput{RoomID: roomID})
	if err != nil {
		return nil, err
	}

	snap := &snapshot{
		room:  room,
		slots: slots,
		state: room.State(),
	}

	members := make(map[string]bool, len(slots))
	for _, slot := range slots {
		members[slot.ID] = true
		if deviceID != "" && slot.DeviceID == deviceID {
			snap.self = slot
		}
	}

	if room.Status.IsPlaying() {
		marks, err := s.gateRepo.GetMarks(ctx, &gateRepo.GetMarksInput{
			RoomID: roomID,
			Gate:   snap.state.Gate,
		})
		if err != nil {
			return nil, err
		}
		for _, slotID := range marks.Ready {
			if members[slotID] {
				snap.state.PlayersReady = append(snap.state.PlayersReady, slotID)
			}
		}
		for voter, target := range marks.Votes {
			if members[voter] {
				snap.state.Votes[voter] = target
			}
		}
	}

	return snap, nil
}

// loadPlaying loads a started room and checks the caller is in it
func (s *service) loadPlaying(ctx context.Context, roomID, deviceID string) (*snapshot, error) {
	snap, err := s.load(ctx, roomID, deviceID)
	if err != nil {
		return nil, err
	}
	if snap.self == nil {
		return nil, ErrNotInRoom
	}
	if !snap.room.Status.IsPlaying() {
		return nil, ErrGameNotStarted
	}
	return snap, nil
}

// loadHost loads a started room for a host-only transition out of phase
func (s *service) loadHost(ctx context.Context, roomID, deviceID string, phase models.Phase) (*snapshot, error) {
	snap, err := s.loadPlaying(ctx, roomID, deviceID)
	if err != nil {
		return nil, err
	}
	if !snap.isHost(deviceID) {
		return nil, ErrNotHost
	}
	if snap.state.Phase != phase {
		return nil, ErrInvalidPhase
	}
	return snap, nil
}

// commit writes the state that follows the event, provided nobody moved the
// phase or gate since the snapshot was read. The listed slots are eliminated
// in the same write.
func (s *service) commit(ctx context.Context, snap *snapshot, event Event, mutate func(next *models.GameState), eliminate ...string) (*models.Room, error) {
	next, err := Apply(snap.room.GameMode, snap.state, event)
	if err != nil {
		return nil, err
	}
	if mutate != nil {
		mutate(next)
	}

	room, err := s.roomRepo.SaveGameState(ctx, &roomRepo.SaveGameStateInput{
		RoomID:        snap.room.ID,
		ExpectedPhase: snap.state.Phase,
		ExpectedGate:  snap.state.Gate,
		State:         next,
		Eliminate:     eliminate,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrStaleGameState) {
			return nil, ErrAlreadyAdvanced
		}
		s.logger.Error("Failed to commit game state",
			zap.String("room_id", snap.room.ID),
			zap.String("event", string(event)),
			zap.Error(err))
		return nil, err
	}

	s.logger.Info("Phase committed",
		zap.String("room_id", room.ID),
		zap.String("event", string(event)),
		zap.String("from", string(snap.state.Phase)),
		zap.String("to", string(next.Phase)),
		zap.Int("round", next.RoundNumber))

	return room, nil
}

// StartGame deals roles and starts the room. The room is claimed before the
// roles are written so a second start cannot deal again, and the claim fails
// when players joined or left after the deal, in which case the deal is redone.
func (s *service) StartGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	for attempt := 0; attempt < maxStartAttempts; attempt++ {
		output, err := s.startGame(ctx, input)
		if errors.Is(err, roomRepo.ErrRosterChanged) {
			s.logger.Info("Players changed while starting, dealing again",
				zap.String("room_id", input.RoomID),
				zap.Int("attempt", attempt+1))
			continue
		}
		return output, err
	}

	return nil, ErrRosterChanged
}

func (s *service) startGame(ctx context.Context, input *StartGameInput) (*StartGameOutput, error) {
	snap, err := s.load(ctx, input.RoomID, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if !snap.isHost(input.DeviceID) {
		return nil, ErrNotHost
	}
	if !snap.room.Status.IsWaiting() {
		return nil, ErrGameAlreadyStarted
	}

	slotIDs := make([]string, 0, len(snap.slots))
	for _, slot := range snap.slots {
		slotIDs = append(slotIDs, slot.ID)
	}

	dealt, err := s.roleService.Assign(&roles.AssignInput{
		GameMode:   snap.room.GameMode,
		MafiaCount: snap.room.MafiaCount,
		SlotIDs:    slotIDs,
	})
	if err != nil {
		return nil, err
	}

	room, err := s.roomRepo.StartRoom(ctx, &roomRepo.StartRoomInput{
		RoomID:  snap.room.ID,
		State:   models.NewGameState(),
		SlotIDs: slotIDs,
	})
	if err != nil {
		if errors.Is(err, roomRepo.ErrRoomNotWaiting) {
			return nil, ErrGameAlreadyStarted
		}
		if errors.Is(err, roomRepo.ErrRosterChanged) {
			return nil, err
		}
		s.logger.Error("Failed to start room", zap.String("room_id", snap.room.ID), zap.Error(err))
		return nil, err
	}

	slots, err := s.slotRepo.AssignRoles(ctx, &slotRepo.AssignRolesInput{
		RoomID: room.ID,
		Roles:  dealt.Roles,
	})
	if err != nil {
		s.logger.Error("Failed to assign roles", zap.String("room_id", room.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Game started",
		zap.String("room_id", room.ID),
		zap.String("game_mode", string(room.GameMode)),
		zap.Int("players", len(slots)),
		zap.Int("mafia", room.MafiaCount))

	return &StartGameOutput{
		Room:  room,
		Slots: slots,
	}, nil
}

// GetGame returns the caller's view of the game
func (s *service) GetGame(ctx context.Context, input *GetGameInput) (*GetGameOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	snap, err := s.load(ctx, input.RoomID, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if snap.self == nil {
		return nil, ErrNotInRoom
	}

	count, target := snap.readiness()

	return &GetGameOutput{
		Room:        snap.room,
		Slots:       snap.slots,
		State:       snap.state,
		Self:        snap.self,
		ReadyCount:  count,
		ReadyTarget: target,
		AllReady:    target > 0 && count >= target,
	}, nil
}

// MarkReady records the caller in the current gate. The host's own mark
// also moves the shared phase to waiting-for-players.
func (s *service) MarkReady(ctx context.Context, input *MarkReadyInput) (*MarkReadyOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	snap, err := s.loadPlaying(ctx, input.RoomID, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if !snap.state.Phase.IsRevealStage() {
		return nil, ErrInvalidPhase
	}

	if err := s.gateRepo.MarkReady(ctx, &gateRepo.MarkReadyInput{
		RoomID: snap.room.ID,
		Gate:   snap.state.Gate,
		SlotID: snap.self.ID,
	}); err != nil {
		s.logger.Error("Failed to mark ready", zap.String("room_id", snap.room.ID), zap.Error(err))
		return nil, err
	}

	if !snap.isHost(input.DeviceID) {
		return &MarkReadyOutput{Phase: snap.state.Phase}, nil
	}

	if snap.state.Phase != models.PhaseWaitingForPlayers {
		if _, err := s.commit(ctx, snap, EventHostReady, nil); err != nil && !errors.Is(err, ErrAlreadyAdvanced) {
			return nil, err
		}
	}

	reconciled, err := s.Reconcile(ctx, &ReconcileInput{
		RoomID:   input.RoomID,
		DeviceID: input.DeviceID,
	})
	if err != nil {
		return nil, err
	}

	return &MarkReadyOutput{
		Phase:    reconciled.Phase,
		Advanced: reconciled.Advanced,
	}, nil
}

// CastVote records one ballot per alive player per vote
func (s *service) CastVote(ctx context.Context, input *CastVoteInput) (*CastVoteOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	snap, err := s.loadPlaying(ctx, input.RoomID, input.DeviceID)
	if err != nil {
		return nil, err
	}
	if snap.state.Phase != models.PhaseVoting {
		return nil, ErrInvalidPhase
	}
	if !snap.self.IsAlive {
		return nil, ErrPlayerEliminated
	}

	var target string
	if strings.TrimSpace(input.Target) != "" {
		slot := snap.findAlive(input.Target)
		if slot == nil || slot.ID == snap.self.ID {
			return nil, ErrInvalidTarget
		}
		target = slot.PlayerName
	}

	err = s.gateRepo.CastVote(ctx, &gateRepo.CastVoteInput{
		RoomID:  snap.room.ID,
		Gate:    snap.state.Gate,
		VoterID: snap.self.ID,
		Target:  target,
	})
	if err != nil {
		if errors.Is(err, gateRepo.ErrAlreadyVoted) {
			return nil, ErrAlreadyVoted
		}
		s.logger.Error("Failed to cast vote", zap.String("room_id", snap.room.ID), zap.Error(err))
		return nil, err
	}

	return &CastVoteOutput{
		Target:  target,
		Skipped: target == "",
	}, nil
}

// Reconcile is run by the host after every change notification. When every
// player has seen their role it commits the first gated phase.
func (s *service) Reconcile(ctx context.Context, input *ReconcileInput) (*ReconcileOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	snap, err := s.load(ctx, input.RoomID, input.DeviceID)
	if err != nil {
		return nil, err
	}

	output := &ReconcileOutput{Phase: snap.state.Phase}
	if !snap.isHost(input.DeviceID) || !snap.room.Status.IsPlaying() {
		return output, nil
	}

	count, target := snap.readiness()
	switch {
	case snap.state.Phase.IsRevealStage():
		if target == 0 || count < target {
			return output, nil
		}
		room, err := s.commit(ctx, snap, EventAllReady, func(next *models.GameState) {
			next.NightResult = nil
		})
		if err != nil {
			if errors.Is(err, ErrAlreadyAdvanced) {
				return output, nil
			}
			return nil, err
		}
		output.Phase = room.State().Phase
		output.Advanced = true
	case snap.state.Phase == models.PhaseVoting:
		output.AllVoted = target > 0 && count >= target
	}

	return output, nil
}

// CompleteNightIntro moves the room into the night
func (s *service) CompleteNightIntro(ctx context.Context, input *CompleteNightIntroInput) (*CompleteNightIntroOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	snap, err := s.loadHost(ctx, input.RoomID, input.DeviceID, models.PhaseNightIntro)
	if err != nil {
		return nil, err
	}

	room, err := s.commit(ctx, snap, EventIntroDone, nil)
	if err != nil {
		return nil, err
	}

	return &CompleteNightIntroOutput{Room: room}, nil
}

// ResolveNight applies the mafia kill unless the doctor protected the same
// player, runs the investigation and checks for a winner
func (s *service) ResolveNight(ctx context.Context, input *ResolveNightInput) (*ResolveNightOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	snap, err := s.loadHost(ctx, input.RoomID, input.DeviceID, models.PhaseNight)
	if err != nil {
		return nil, err
	}

	resolve := func(name string) (*models.PlayerSlot, error) {
		if strings.TrimSpace(name) == "" {
			return nil, nil
		}
		slot := snap.findAlive(name)
		if slot == nil {
			return nil, ErrInvalidTarget
		}
		return slot, nil
	}

	mafiaTarget, err := resolve(input.MafiaTarget)
	if err != nil {
		return nil, err
	}
	doctorTarget, err := resolve(input.DoctorTarget)
	if err != nil {
		return nil, err
	}
	detectiveTarget, err := resolve(input.DetectiveTarget)
	if err != nil {
		return nil, err
	}

	output := &ResolveNightOutput{}
	var eliminate []string
	if mafiaTarget != nil {
		if doctorTarget != nil && doctorTarget.ID == mafiaTarget.ID {
			output.NightResult.Saved = true
		} else {
			mafiaTarget.IsAlive = false
			eliminate = append(eliminate, mafiaTarget.ID)
			output.NightResult.Eliminated = mafiaTarget.PlayerName
		}
	}

	if detectiveTarget != nil {
		output.Investigation = &Investigation{
			Name:    detectiveTarget.PlayerName,
			IsMafia: detectiveTarget.Role.AppearsAsMafia(),
		}
	}

	result := output.NightResult
	output.Winner = CheckWinner(snap.slots)

	event := EventNightResolved
	if output.Winner != "" {
		event = EventWin
	}
	room, err := s.commit(ctx, snap, event, func(next *models.GameState) {
		next.NightResult = &result
		next.Winner = output.Winner
	}, eliminate...)
	if err != nil {
		return nil, err
	}
	output.Room = room

	return output, nil
}

// StartVoting opens a fresh ballot gate
func (s *service) StartVoting(ctx context.Context, input *StartVotingInput) (*StartVotingOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	snap, err := s.loadHost(ctx, input.RoomID, input.DeviceID, models.PhaseDay)
	if err != nil {
		return nil, err
	}

	room, err := s.commit(ctx, snap, EventStartVoting, nil)
	if err != nil {
		return nil, err
	}

	return &StartVotingOutput{Room: room}, nil
}

// ResolveVotes tallies the ballots of alive players once all of them are in
func (s *service) ResolveVotes(ctx context.Context, input *ResolveVotesInput) (*ResolveVotesOutput, error) {
	if input == nil {
		return nil, ErrRoomNotFound
	}

	snap, err := s.loadHost(ctx, input.RoomID, input.DeviceID, models.PhaseVoting)
	if err != nil {
		return nil, err
	}

	count, target := snap.readiness()
	if count < target {
		return nil, ErrVotingIncomplete
	}

	alive := snap.alive()
	ballots := make(map[string]string, len(alive))
	for _, slot := range alive {
		if choice, ok := snap.state.Votes[slot.ID]; ok {
			ballots[slot.ID] = choice
		}
	}

	output := &ResolveVotesOutput{
		Result: vote.Tabulate(ballots, len(alive)),
	}

	var eliminate []string
	if output.Result.HasElimination() {
		if eliminated := snap.findAlive(output.Result.Eliminated); eliminated != nil {
			eliminated.IsAlive = false
			eliminate = append(eliminate, eliminated.ID)
			output.Eliminated = eliminated
		}
	}

	output.Winner = CheckWinner(snap.slots)

	event := EventVoteResolved
	if output.Winner != "" {
		event = EventWin
	}
	room, err := s.commit(ctx, snap, event, func(next *models.GameState) {
		next.Winner = output.Winner
		if next.Phase == models.PhaseNightIntro {
			next.NightResult = nil
		}
	}, eliminate...)
	if err != nil {
		return nil, err
	}
	output.Room = room

	return output, nil
}
