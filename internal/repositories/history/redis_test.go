package history

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/models"
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
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) record(id string) *models.GameRecord {
	return &models.GameRecord{
		ID:       id,
		Date:     s.testNow,
		GameMode: models.GameModeSimple,
		Winner:   models.TeamTown,
		Players: []models.HistoryPlayer{
			{Name: "Alice", Role: models.RoleMafia},
			{Name: "Bob", Role: models.RoleCivilian},
			{Name: "Carol", Role: models.RoleCivilian},
		},
		MafiaCount:    1,
		CivilianCount: 2,
	}
}

func (s *RedisRepositoryTestSuite) TestAddAndListNewestFirst() {
	s.Require().NoError(s.repo.AddRecord(s.ctx, &AddRecordInput{DeviceID: "device-1", Record: s.record("game-1")}))
	s.Require().NoError(s.repo.AddRecord(s.ctx, &AddRecordInput{DeviceID: "device-1", Record: s.record("game-2")}))

	records, err := s.repo.ListRecords(s.ctx, &ListRecordsInput{DeviceID: "device-1"})
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("game-2", records[0].ID)
	s.Equal("game-1", records[1].ID)
	s.Equal(models.TeamTown, records[0].Winner)
	s.Len(records[0].Players, 3)

	other, err := s.repo.ListRecords(s.ctx, &ListRecordsInput{DeviceID: "device-2"})
	s.Require().NoError(err)
	s.Empty(other)
}

func (s *RedisRepositoryTestSuite) TestHistoryIsCapped() {
	for i := 0; i < MaxRecords+5; i++ {
		s.Require().NoError(s.repo.AddRecord(s.ctx, &AddRecordInput{
			DeviceID: "device-1",
			Record:   s.record(fmt.Sprintf("game-%d", i)),
		}))
	}

	records, err := s.repo.ListRecords(s.ctx, &ListRecordsInput{DeviceID: "device-1"})
	s.Require().NoError(err)
	s.Len(records, MaxRecords)
	s.Equal(fmt.Sprintf("game-%d", MaxRecords+4), records[0].ID)
}

func (s *RedisRepositoryTestSuite) TestMalformedEntriesAreSkipped() {
	s.Require().NoError(s.repo.AddRecord(s.ctx, &AddRecordInput{DeviceID: "device-1", Record: s.record("game-1")}))
	_, err := s.mr.Lpush("history:device-1", "{not json")
	s.Require().NoError(err)

	records, err := s.repo.ListRecords(s.ctx, &ListRecordsInput{DeviceID: "device-1"})
	s.Require().NoError(err)
	s.Require().Len(records, 1)
	s.Equal("game-1", records[0].ID)
}

func (s *RedisRepositoryTestSuite) TestClearRecords() {
	s.Require().NoError(s.repo.AddRecord(s.ctx, &AddRecordInput{DeviceID: "device-1", Record: s.record("game-1")}))
	s.Require().NoError(s.repo.ClearRecords(s.ctx, &ClearRecordsInput{DeviceID: "device-1"}))

	records, err := s.repo.ListRecords(s.ctx, &ListRecordsInput{DeviceID: "device-1"})
	s.Require().NoError(err)
	s.Empty(records)
}
