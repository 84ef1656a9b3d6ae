package device

import (
	"testing"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/stretchr/testify/suite"
)

type MirrorTestSuite struct {
	suite.Suite
	mirror   *mirror
	testTime time.Time
}

func (s *MirrorTestSuite) SetupTest() {
	s.testTime = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.mirror = newMirror()
	s.mirror.load(
		s.room(&models.GameState{Phase: models.PhaseVoting, RoundNumber: 1, Gate: 2}, 0),
		[]*models.PlayerSlot{
			{ID: "slot-a", RoomID: "room-1", PlayerName: "Alice", DeviceID: "device-a", Role: models.RoleMafia, IsAlive: true, JoinedAt: s.testTime},
			{ID: "slot-b", RoomID: "room-1", PlayerName: "Bob", DeviceID: "device-b", Role: models.RoleCivilian, IsAlive: true, JoinedAt: s.testTime.Add(time.Second)},
			{ID: "slot-c", RoomID: "room-1", PlayerName: "Carol", DeviceID: "device-c", Role: models.RoleCivilian, IsAlive: true, JoinedAt: s.testTime.Add(2 * time.Second)},
		},
		&models.GameState{PlayersReady: []string{"slot-a"}, Votes: map[string]string{"slot-a": "Bob"}},
	)
}

func TestMirrorTestSuite(t *testing.T) {
	suite.Run(t, new(MirrorTestSuite))
}

func (s *MirrorTestSuite) room(state *models.GameState, offset time.Duration) *models.Room {
	return &models.Room{
		ID:           "room-1",
		HostDeviceID: "device-a",
		GameMode:     models.GameModeSimple,
		Status:       models.RoomStatusPlaying,
		GameState:    state,
		UpdatedAt:    s.testTime.Add(offset),
	}
}

func vote(target string) *string {
	return &target
}

func (s *MirrorTestSuite) TestMarksAreGateScoped() {
	s.Equal(applyChanged, s.mirror.apply(&models.ChangeEvent{
		Type:       models.EventTypeInsert,
		Collection: models.CollectionGameState,
		RoomID:     "room-1",
		SlotID:     "slot-b",
		Gate:       2,
		Vote:       vote("Alice"),
	}))

	// Replays and marks of an earlier gate change nothing
	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeInsert, Collection: models.CollectionGameState, RoomID: "room-1",
		SlotID: "slot-b", Gate: 2, Vote: vote("Alice"),
	}))
	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeInsert, Collection: models.CollectionGameState, RoomID: "room-1",
		SlotID: "slot-c", Gate: 1,
	}))

	state := s.mirror.state()
	s.Equal([]string{"slot-a", "slot-b"}, state.PlayersReady)
	s.Equal(map[string]string{"slot-a": "Bob", "slot-b": "Alice"}, state.Votes)

	// A mark of a gate the mirror has not reached asks for a snapshot
	s.Equal(applyResync, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeInsert, Collection: models.CollectionGameState, RoomID: "room-1",
		SlotID: "slot-c", Gate: 3,
	}))
}

func (s *MirrorTestSuite) TestNewGateClearsMarks() {
	next := s.room(&models.GameState{Phase: models.PhaseVoting, RoundNumber: 2, Gate: 3}, time.Second)
	s.Equal(applyChanged, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeUpdate, Collection: models.CollectionRooms, RoomID: "room-1", Room: next,
	}))

	state := s.mirror.state()
	s.Equal(3, state.Gate)
	s.Empty(state.PlayersReady)
	s.Empty(state.Votes)
}

func (s *MirrorTestSuite) TestStaleRoomIsIgnored() {
	older := s.room(&models.GameState{Phase: models.PhaseWaitingForPlayers, RoundNumber: 1, Gate: 1}, time.Second)
	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeUpdate, Collection: models.CollectionRooms, RoomID: "room-1", Room: older,
	}))

	waiting := s.room(nil, 2*time.Second)
	waiting.Status = models.RoomStatusWaiting
	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeUpdate, Collection: models.CollectionRooms, RoomID: "room-1", Room: waiting,
	}))

	s.Equal(models.PhaseVoting, s.mirror.state().Phase)
}

func (s *MirrorTestSuite) TestEliminationIsFinal() {
	dead := *s.mirror.slots["slot-c"]
	dead.IsAlive = false
	s.Equal(applyChanged, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeUpdate, Collection: models.CollectionPlayerSlots, RoomID: "room-1", Slot: &dead,
	}))

	// An older copy of the slot arriving late does not revive it
	alive := dead
	alive.IsAlive = true
	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeUpdate, Collection: models.CollectionPlayerSlots, RoomID: "room-1", Slot: &alive,
	}))
	s.False(s.mirror.slots["slot-c"].IsAlive)
}

func (s *MirrorTestSuite) TestRoleIsKept() {
	unassigned := *s.mirror.slots["slot-b"]
	unassigned.Role = ""
	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeInsert, Collection: models.CollectionPlayerSlots, RoomID: "room-1", Slot: &unassigned,
	}))
	s.Equal(models.RoleCivilian, s.mirror.slots["slot-b"].Role)
}

func (s *MirrorTestSuite) TestSlotDeleteDropsMarks() {
	s.Equal(applyChanged, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeDelete, Collection: models.CollectionPlayerSlots, RoomID: "room-1", SlotID: "slot-a",
	}))
	s.Len(s.mirror.slots, 2)
	s.Empty(s.mirror.state().Votes)

	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeDelete, Collection: models.CollectionPlayerSlots, RoomID: "room-1", SlotID: "slot-a",
	}))
}

func (s *MirrorTestSuite) TestRoomDeleteClosesOnce() {
	s.Equal(applyClosed, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeDelete, Collection: models.CollectionRooms, RoomID: "room-1",
	}))
	s.True(s.mirror.closed)
	s.Nil(s.mirror.room)

	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeDelete, Collection: models.CollectionRooms, RoomID: "room-1",
	}))
}

func (s *MirrorTestSuite) TestOtherRoomIsIgnored() {
	s.Equal(applyIgnored, s.mirror.apply(&models.ChangeEvent{
		Type: models.EventTypeDelete, Collection: models.CollectionRooms, RoomID: "room-2",
	}))
}

func (s *MirrorTestSuite) TestDeriveScreen() {
	waiting := s.room(nil, 0)
	waiting.Status = models.RoomStatusWaiting
	reveal := &models.GameState{Phase: models.PhaseWaitingForPlayers, RoundNumber: 1, Gate: 1}
	day := &models.GameState{Phase: models.PhaseDay, RoundNumber: 1, Gate: 2}

	s.Equal(ScreenClosed, deriveScreen(nil, nil, stageHidePhones, false))
	s.Equal(ScreenLobby, deriveScreen(waiting, models.NewGameState(), stageHidePhones, false))

	// The shared phase has moved on while this device is still counting down
	s.Equal(ScreenForPhase(models.PhaseHidePhones), deriveScreen(s.room(reveal, 0), reveal, stageHidePhones, false))
	s.Equal(ScreenForPhase(models.PhaseRoleReveal), deriveScreen(s.room(reveal, 0), reveal, stageRoleReveal, false))
	s.Equal(ScreenForPhase(models.PhaseWaitingForPlayers), deriveScreen(s.room(reveal, 0), reveal, stageRoleReveal, true))
	s.Equal(ScreenForPhase(models.PhaseDay), deriveScreen(s.room(day, 0), day, stageHidePhones, false))
}
