package slot

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/repositories/feed"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)

	s.seedRoom("room-1", models.RoomStatusWaiting)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) seedRoom(roomID string, status models.RoomStatus) {
	data, err := json.Marshal(&models.Room{ID: roomID, Code: "ABC234", Status: status})
	s.Require().NoError(err)
	s.Require().NoError(s.mr.Set("room:"+roomID, string(data)))
}

func (s *RedisRepositoryTestSuite) newSlot(id, deviceID, name string, offset time.Duration) *models.PlayerSlot {
	return &models.PlayerSlot{
		ID:         id,
		RoomID:     "room-1",
		PlayerName: name,
		Avatar:     models.DefaultAvatar,
		DeviceID:   deviceID,
		JoinedAt:   s.testNow.Add(offset),
	}
}

func (s *RedisRepositoryTestSuite) createSlot(slot *models.PlayerSlot) *models.PlayerSlot {
	output, err := s.repo.CreateSlot(s.ctx, &CreateSlotInput{Slot: slot})
	s.Require().NoError(err)
	s.Require().False(output.Existing)
	return output.Slot
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetSlot() {
	s.createSlot(s.newSlot("slot-1", "device-1", "Alice", 0))

	slot, err := s.repo.GetSlot(s.ctx, &GetSlotInput{SlotID: "slot-1"})
	s.Require().NoError(err)
	s.Equal("Alice", slot.PlayerName)
	s.Equal("room-1", slot.RoomID)

	byDevice, err := s.repo.GetSlotByDevice(s.ctx, &GetSlotByDeviceInput{RoomID: "room-1", DeviceID: "device-1"})
	s.Require().NoError(err)
	s.Equal("slot-1", byDevice.ID)

	s.Equal(DefaultTTL, s.mr.TTL("slot:slot-1"))
}

func (s *RedisRepositoryTestSuite) TestCreateSlotIsIdempotentPerDevice() {
	s.createSlot(s.newSlot("slot-1", "device-1", "Alice", 0))

	output, err := s.repo.CreateSlot(s.ctx, &CreateSlotInput{Slot: s.newSlot("slot-2", "device-1", "Alicia", time.Second)})
	s.Require().NoError(err)
	s.True(output.Existing)
	s.Equal("slot-1", output.Slot.ID)
	s.Equal("Alice", output.Slot.PlayerName)

	slots, err := s.repo.ListSlots(s.ctx, &ListSlotsInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Len(slots, 1)
}

func (s *RedisRepositoryTestSuite) TestCreateSlotRejectsTakenName() {
	s.createSlot(s.newSlot("slot-1", "device-1", "Alice", 0))

	_, err := s.repo.CreateSlot(s.ctx, &CreateSlotInput{Slot: s.newSlot("slot-2", "device-2", "alice", time.Second)})
	s.ErrorIs(err, ErrNameTaken)
}

func (s *RedisRepositoryTestSuite) TestCreateSlotRequiresWaitingRoom() {
	s.createSlot(s.newSlot("slot-1", "device-1", "Alice", 0))
	s.seedRoom("room-1", models.RoomStatusPlaying)

	_, err := s.repo.CreateSlot(s.ctx, &CreateSlotInput{Slot: s.newSlot("slot-2", "device-2", "Bob", time.Second)})
	s.ErrorIs(err, ErrRoomNotWaiting)

	slots, err := s.repo.ListSlots(s.ctx, &ListSlotsInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Len(slots, 1)
	s.False(s.mr.Exists("slot:slot-2"))

	// A device that already holds a slot still gets it back
	output, err := s.repo.CreateSlot(s.ctx, &CreateSlotInput{Slot: s.newSlot("slot-3", "device-1", "Alice", time.Second)})
	s.Require().NoError(err)
	s.True(output.Existing)
	s.Equal("slot-1", output.Slot.ID)
}

func (s *RedisRepositoryTestSuite) TestCreateSlotMissingRoom() {
	slot := s.newSlot("slot-1", "device-1", "Alice", 0)
	slot.RoomID = "gone"

	_, err := s.repo.CreateSlot(s.ctx, &CreateSlotInput{Slot: slot})
	s.ErrorIs(err, ErrRoomNotWaiting)
}

func (s *RedisRepositoryTestSuite) TestCreateSlotValidatesInput() {
	_, err := s.repo.CreateSlot(s.ctx, nil)
	s.Error(err)

	_, err = s.repo.CreateSlot(s.ctx, &CreateSlotInput{Slot: s.newSlot("slot-1", "", "Alice", 0)})
	s.Error(err)

	_, err = s.repo.CreateSlot(s.ctx, &CreateSlotInput{Slot: s.newSlot("slot-1", "device-1", "", 0)})
	s.Error(err)
}

func (s *RedisRepositoryTestSuite) TestListSlotsInJoinOrder() {
	s.createSlot(s.newSlot("slot-c", "device-3", "Carol", 2*time.Second))
	s.createSlot(s.newSlot("slot-a", "device-1", "Alice", 0))
	s.createSlot(s.newSlot("slot-b", "device-2", "Bob", time.Second))

	slots, err := s.repo.ListSlots(s.ctx, &ListSlotsInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Require().Len(slots, 3)
	s.Equal("Alice", slots[0].PlayerName)
	s.Equal("Bob", slots[1].PlayerName)
	s.Equal("Carol", slots[2].PlayerName)

	empty, err := s.repo.ListSlots(s.ctx, &ListSlotsInput{RoomID: "room-2"})
	s.Require().NoError(err)
	s.Empty(empty)
}

func (s *RedisRepositoryTestSuite) TestAssignRoles() {
	s.createSlot(s.newSlot("slot-a", "device-1", "Alice", 0))
	s.createSlot(s.newSlot("slot-b", "device-2", "Bob", time.Second))

	assigned, err := s.repo.AssignRoles(s.ctx, &AssignRolesInput{
		RoomID: "room-1",
		Roles: map[string]models.Role{
			"slot-a": models.RoleMafia,
			"slot-b": models.RoleCivilian,
		},
	})
	s.Require().NoError(err)
	s.Require().Len(assigned, 2)
	s.Equal("slot-a", assigned[0].ID)

	slot, err := s.repo.GetSlot(s.ctx, &GetSlotInput{SlotID: "slot-a"})
	s.Require().NoError(err)
	s.Equal(models.RoleMafia, slot.Role)
	s.True(slot.IsAlive)
}

func (s *RedisRepositoryTestSuite) TestAssignRolesUnknownSlot() {
	_, err := s.repo.AssignRoles(s.ctx, &AssignRolesInput{
		RoomID: "room-1",
		Roles:  map[string]models.Role{"missing": models.RoleMafia},
	})
	s.ErrorIs(err, ErrSlotNotFound)
}

func (s *RedisRepositoryTestSuite) TestDeleteSlotReleasesDevice() {
	s.createSlot(s.newSlot("slot-a", "device-1", "Alice", 0))

	s.Require().NoError(s.repo.DeleteSlot(s.ctx, &DeleteSlotInput{SlotID: "slot-a"}))

	_, err := s.repo.GetSlot(s.ctx, &GetSlotInput{SlotID: "slot-a"})
	s.ErrorIs(err, ErrSlotNotFound)

	_, err = s.repo.GetSlotByDevice(s.ctx, &GetSlotByDeviceInput{RoomID: "room-1", DeviceID: "device-1"})
	s.ErrorIs(err, ErrSlotNotFound)

	// The device can join again with a new slot
	s.createSlot(s.newSlot("slot-b", "device-1", "Alice", time.Second))
}

func (s *RedisRepositoryTestSuite) TestDeleteSlotsInRoom() {
	s.createSlot(s.newSlot("slot-a", "device-1", "Alice", 0))
	s.createSlot(s.newSlot("slot-b", "device-2", "Bob", time.Second))

	s.Require().NoError(s.repo.DeleteSlotsInRoom(s.ctx, &DeleteSlotsInRoomInput{RoomID: "room-1"}))

	slots, err := s.repo.ListSlots(s.ctx, &ListSlotsInput{RoomID: "room-1"})
	s.Require().NoError(err)
	s.Empty(slots)
	s.False(s.mr.Exists("room_devices:room-1"))
	s.False(s.mr.Exists("slot:slot-b"))
}

func (s *RedisRepositoryTestSuite) TestWritesPublishChangeEvents() {
	subscriber, err := feed.NewRedis(&feed.Config{RedisClient: s.client})
	s.Require().NoError(err)
	sub, err := subscriber.Subscribe(s.ctx, &feed.SubscribeInput{RoomID: "room-1"})
	s.Require().NoError(err)
	defer sub.Close()

	s.createSlot(s.newSlot("slot-a", "device-1", "Alice", 0))
	s.Require().NoError(s.repo.DeleteSlot(s.ctx, &DeleteSlotInput{SlotID: "slot-a"}))

	expected := []models.EventType{models.EventTypeInsert, models.EventTypeDelete}
	for _, eventType := range expected {
		select {
		case event := <-sub.Events():
			s.Equal(eventType, event.Type)
			s.Equal(models.CollectionPlayerSlots, event.Collection)
			if eventType == models.EventTypeDelete {
				s.Equal("slot-a", event.SlotID)
			} else {
				s.Require().NotNil(event.Slot)
				s.Equal("Alice", event.Slot.PlayerName)
			}
		case <-time.After(2 * time.Second):
			s.FailNow("timed out waiting for event")
		}
	}
}
