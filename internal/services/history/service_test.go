package history

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/secretmafia/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/secretmafia/internal/common/uuid/mocks"
	"github.com/KirkDiggler/secretmafia/internal/models"
	historyRepo "github.com/KirkDiggler/secretmafia/internal/repositories/history"
	historyMocks "github.com/KirkDiggler/secretmafia/internal/repositories/history/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HistoryServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockHistoryRepo *historyMocks.MockRepository
	mockClock       *clockMocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	service         Service
	ctx             context.Context

	testTime   time.Time
	testDevice string
}

func (s *HistoryServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockHistoryRepo = historyMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.testDevice = "device-1"

	svc, err := New(&Config{
		HistoryRepo:   s.mockHistoryRepo,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *HistoryServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHistoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(HistoryServiceTestSuite))
}

func (s *HistoryServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{HistoryRepo: s.mockHistoryRepo, Clock: s.mockClock})
	s.ErrorIs(err, ErrNilUUIDGenerator)
}

func (s *HistoryServiceTestSuite) TestRecordGame() {
	room := &models.Room{
		ID:       "room-1",
		GameMode: models.GameModeAdvanced,
		Status:   models.RoomStatusPlaying,
		GameState: &models.GameState{
			Phase:       models.PhaseComplete,
			RoundNumber: 2,
			Gate:        4,
			Winner:      models.TeamTown,
		},
	}
	slots := []*models.PlayerSlot{
		{ID: "s1", PlayerName: "Alice", Role: models.RoleGodfather},
		{ID: "s2", PlayerName: "Bob", Role: models.RoleDoctor},
		{ID: "s3", PlayerName: "Carol", Role: models.RoleDetective},
		{ID: "s4", PlayerName: "Dave", Role: models.RoleMafioso},
		{ID: "s5", PlayerName: "Erin", Role: models.RoleCivilian},
	}

	expected := &models.GameRecord{
		ID:       "record-1",
		Date:     s.testTime,
		GameMode: models.GameModeAdvanced,
		Winner:   models.TeamTown,
		Players: []models.HistoryPlayer{
			{Name: "Alice", Role: models.RoleGodfather},
			{Name: "Bob", Role: models.RoleDoctor},
			{Name: "Carol", Role: models.RoleDetective},
			{Name: "Dave", Role: models.RoleMafioso},
			{Name: "Erin", Role: models.RoleCivilian},
		},
		MafiaCount:    2,
		CivilianCount: 3,
	}

	s.mockUUID.EXPECT().NewUUID().Return("record-1")
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockHistoryRepo.EXPECT().
		AddRecord(gomock.Any(), &historyRepo.AddRecordInput{DeviceID: s.testDevice, Record: expected}).
		Return(nil)

	record, err := s.service.RecordGame(s.ctx, &RecordGameInput{
		DeviceID: s.testDevice,
		Room:     room,
		Slots:    slots,
	})
	s.Require().NoError(err)
	s.Equal(expected, record)
}

func (s *HistoryServiceTestSuite) TestRecordGame_NotComplete() {
	room := &models.Room{
		ID:        "room-1",
		Status:    models.RoomStatusPlaying,
		GameState: &models.GameState{Phase: models.PhaseVoting, RoundNumber: 1, Gate: 2},
	}

	_, err := s.service.RecordGame(s.ctx, &RecordGameInput{DeviceID: s.testDevice, Room: room})
	s.ErrorIs(err, ErrGameNotComplete)

	_, err = s.service.RecordGame(s.ctx, &RecordGameInput{DeviceID: s.testDevice})
	s.ErrorIs(err, ErrGameNotComplete)
}

func (s *HistoryServiceTestSuite) TestRecordGame_StoreFailure() {
	room := &models.Room{
		ID:        "room-1",
		GameMode:  models.GameModeSimple,
		Status:    models.RoomStatusPlaying,
		GameState: &models.GameState{Phase: models.PhaseComplete, Winner: models.TeamMafia},
	}
	storeErr := errors.New("connection refused")

	s.mockUUID.EXPECT().NewUUID().Return("record-1")
	s.mockClock.EXPECT().Now().Return(s.testTime)
	s.mockHistoryRepo.EXPECT().AddRecord(gomock.Any(), gomock.Any()).Return(storeErr)

	_, err := s.service.RecordGame(s.ctx, &RecordGameInput{DeviceID: s.testDevice, Room: room})
	s.ErrorIs(err, storeErr)
}

func (s *HistoryServiceTestSuite) TestGetPlayerStats() {
	s.mockHistoryRepo.EXPECT().
		ListRecords(gomock.Any(), &historyRepo.ListRecordsInput{DeviceID: s.testDevice}).
		Return([]*models.GameRecord{
			{
				ID: "g3",
				Players: []models.HistoryPlayer{
					{Name: "alice", Role: models.RoleGodfather},
					{Name: "Bob", Role: models.RoleDoctor},
				},
			},
			{
				ID: "g2",
				Players: []models.HistoryPlayer{
					{Name: "Alice", Role: models.RoleCivilian},
					{Name: "Carol", Role: models.RoleMafia},
				},
			},
			{
				ID: "g1",
				Players: []models.HistoryPlayer{
					{Name: "ALICE", Role: models.RoleMafia},
					{Name: "Bob", Role: models.RoleCivilian},
				},
			},
		}, nil)

	stats, err := s.service.GetPlayerStats(s.ctx, &GetPlayerStatsInput{DeviceID: s.testDevice})
	s.Require().NoError(err)
	s.Equal([]*models.PlayerStats{
		{Name: "alice", GamesPlayed: 3, TimesMafia: 2, TimesTown: 1},
		{Name: "Bob", GamesPlayed: 2, TimesMafia: 0, TimesTown: 2},
		{Name: "Carol", GamesPlayed: 1, TimesMafia: 1, TimesTown: 0},
	}, stats)
}

func (s *HistoryServiceTestSuite) TestGetPlayerStats_Empty() {
	s.mockHistoryRepo.EXPECT().ListRecords(gomock.Any(), gomock.Any()).Return([]*models.GameRecord{}, nil)

	stats, err := s.service.GetPlayerStats(s.ctx, &GetPlayerStatsInput{DeviceID: s.testDevice})
	s.Require().NoError(err)
	s.Empty(stats)
}

func (s *HistoryServiceTestSuite) TestClearHistory() {
	s.mockHistoryRepo.EXPECT().
		ClearRecords(gomock.Any(), &historyRepo.ClearRecordsInput{DeviceID: s.testDevice}).
		Return(nil)

	s.NoError(s.service.ClearHistory(s.ctx, &ClearHistoryInput{DeviceID: s.testDevice}))
}

func (s *HistoryServiceTestSuite) TestRequiresDevice() {
	_, err := s.service.GetHistory(s.ctx, &GetHistoryInput{})
	s.ErrorIs(err, ErrInvalidDeviceID)

	s.ErrorIs(s.service.ClearHistory(s.ctx, nil), ErrInvalidDeviceID)
}
