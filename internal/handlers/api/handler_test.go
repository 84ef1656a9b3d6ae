package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	uuidMocks "github.com/KirkDiggler/secretmafia/internal/common/uuid/mocks"
	"github.com/KirkDiggler/secretmafia/internal/device"
	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/random"
	"github.com/KirkDiggler/secretmafia/internal/repositories/feed"
	"github.com/KirkDiggler/secretmafia/internal/services/game"
	gameMocks "github.com/KirkDiggler/secretmafia/internal/services/game/mocks"
	"github.com/KirkDiggler/secretmafia/internal/services/history"
	historyMocks "github.com/KirkDiggler/secretmafia/internal/services/history/mocks"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"github.com/KirkDiggler/secretmafia/internal/services/session"
	sessionMocks "github.com/KirkDiggler/secretmafia/internal/services/session/mocks"
	"github.com/KirkDiggler/secretmafia/internal/vote"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HandlerTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockSessionService *sessionMocks.MockService
	mockGameService    *gameMocks.MockService
	mockHistoryService *historyMocks.MockService
	mockUUID           *uuidMocks.MockUUID
	mr                 *miniredis.Miniredis
	client             *redis.Client
	router             *gin.Engine
}

func (s *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionService = sessionMocks.NewMockService(s.mockCtrl)
	s.mockGameService = gameMocks.NewMockService(s.mockCtrl)
	s.mockHistoryService = historyMocks.NewMockService(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})

	subscriber, err := feed.NewRedis(&feed.Config{RedisClient: s.client})
	s.Require().NoError(err)

	messagingService, err := messaging.NewService(&messaging.ServiceConfig{
		Random: random.New(&random.Config{Seed: 1}),
	})
	s.Require().NoError(err)

	handler, err := New(&Config{
		SessionService:     s.mockSessionService,
		GameService:        s.mockGameService,
		HistoryService:     s.mockHistoryService,
		Messaging:          messagingService,
		Subscriber:         subscriber,
		UUIDGenerator:      s.mockUUID,
		PublicURL:          "https://mafia.example.com/",
		HidePhonesDuration: 20 * time.Millisecond,
	})
	s.Require().NoError(err)
	s.router = handler.Router()
}

func (s *HandlerTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
	s.mockCtrl.Finish()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path, deviceID string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if deviceID != "" {
		req.Header.Set(DeviceIDHeader, deviceID)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func (s *HandlerTestSuite) waitingRoom() *models.Room {
	return &models.Room{
		ID:           "room-1",
		Code:         "ABC234",
		HostDeviceID: "device-alice",
		GameMode:     models.GameModeSimple,
		MafiaCount:   1,
		TimerMinutes: 3,
		Status:       models.RoomStatusWaiting,
	}
}

func (s *HandlerTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.Error(err)

	_, err = New(&Config{SessionService: s.mockSessionService})
	s.Error(err)
}

func (s *HandlerTestSuite) TestHealth() {
	w := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *HandlerTestSuite) TestCreateRoomIssuesDeviceID() {
	s.mockUUID.EXPECT().NewUUID().Return("device-new")
	s.mockSessionService.EXPECT().
		CreateRoom(gomock.Any(), &session.CreateRoomInput{
			DeviceID:   "device-new",
			PlayerName: "Alice",
			GameMode:   models.GameModeSimple,
		}).
		Return(&session.CreateRoomOutput{
			Room: &models.Room{ID: "room-1", Code: "ABC234", HostDeviceID: "device-new", Status: models.RoomStatusWaiting},
			Slot: &models.PlayerSlot{ID: "slot-1", PlayerName: "Alice", DeviceID: "device-new", IsHost: true, IsAlive: true},
		}, nil)

	w := s.do(http.MethodPost, "/rooms", "", gin.H{"player_name": "Alice", "game_mode": "simple"})

	s.Equal(http.StatusCreated, w.Code)
	s.Equal("device-new", w.Header().Get(DeviceIDHeader))
	body := s.decode(w)
	s.Equal(true, body["is_host"])
	s.Equal("ABC234", body["room"].(map[string]interface{})["code"])
	s.NotContains(w.Body.String(), "device-new")
}

func (s *HandlerTestSuite) TestCreateRoomRequiresName() {
	w := s.do(http.MethodPost, "/rooms", "device-alice", gin.H{"avatar": "🦊"})

	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlerTestSuite) TestJoinRoomNameTaken() {
	s.mockSessionService.EXPECT().
		JoinRoom(gomock.Any(), &session.JoinRoomInput{Code: "abc234", DeviceID: "device-bob", PlayerName: "alice"}).
		Return(nil, session.ErrNameTaken)

	w := s.do(http.MethodPost, "/rooms/join", "device-bob", gin.H{"code": "abc234", "player_name": "alice"})

	s.Equal(http.StatusConflict, w.Code)
	body := s.decode(w)
	s.Equal("Name taken", body["error"])
}

func (s *HandlerTestSuite) TestJoinRoomReturnsMessage() {
	room := s.waitingRoom()
	alice := &models.PlayerSlot{ID: "slot-alice", PlayerName: "Alice", DeviceID: "device-alice", IsHost: true, IsAlive: true}
	bob := &models.PlayerSlot{ID: "slot-bob", PlayerName: "Bob", DeviceID: "device-bob", IsAlive: true}
	s.mockSessionService.EXPECT().
		JoinRoom(gomock.Any(), gomock.Any()).
		Return(&session.JoinRoomOutput{Room: room, Slot: bob, Slots: []*models.PlayerSlot{alice, bob}}, nil)

	w := s.do(http.MethodPost, "/rooms/join", "device-bob", gin.H{"code": "ABC234", "player_name": "Bob"})

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal(false, body["rejoined"])
	s.NotNil(body["message"])
	players := body["game"].(map[string]interface{})["players"].([]interface{})
	s.Len(players, 2)
	s.NotContains(w.Body.String(), "device-alice")
}

func (s *HandlerTestSuite) TestGetRoomRequiresMembership() {
	s.mockSessionService.EXPECT().
		GetRoom(gomock.Any(), &session.GetRoomInput{RoomID: "room-1", DeviceID: "device-eve"}).
		Return(&session.GetRoomOutput{Room: s.waitingRoom()}, nil)

	w := s.do(http.MethodGet, "/rooms/room-1", "device-eve", nil)

	s.Equal(http.StatusForbidden, w.Code)
}

func (s *HandlerTestSuite) TestUpdateSettings() {
	mafia := 2
	s.mockSessionService.EXPECT().
		UpdateRoomSettings(gomock.Any(), &session.UpdateRoomSettingsInput{
			RoomID:     "room-1",
			DeviceID:   "device-alice",
			MafiaCount: &mafia,
		}).
		Return(&session.UpdateRoomSettingsOutput{Room: s.waitingRoom(), Updated: true}, nil)

	w := s.do(http.MethodPatch, "/rooms/room-1/settings", "device-alice", gin.H{"mafia_count": 2})

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["updated"])
}

func (s *HandlerTestSuite) TestLeaveRoom() {
	s.mockSessionService.EXPECT().
		LeaveRoom(gomock.Any(), &session.LeaveRoomInput{RoomID: "room-1", DeviceID: "device-alice"}).
		Return(&session.LeaveRoomOutput{RoomClosed: true}, nil)

	w := s.do(http.MethodDelete, "/rooms/room-1/players/me", "device-alice", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal(true, s.decode(w)["room_closed"])
}

func (s *HandlerTestSuite) TestGetGameHidesOtherRoles() {
	room := s.waitingRoom()
	room.Status = models.RoomStatusPlaying
	slots := []*models.PlayerSlot{
		{ID: "slot-alice", PlayerName: "Alice", DeviceID: "device-alice", IsHost: true, IsAlive: true, Role: models.RoleCivilian},
		{ID: "slot-bob", PlayerName: "Bob", DeviceID: "device-bob", IsAlive: true, Role: models.RoleMafia},
		{ID: "slot-carol", PlayerName: "Carol", DeviceID: "device-carol", IsAlive: false, Role: models.RoleCivilian},
	}
	state := &models.GameState{
		Phase:        models.PhaseVoting,
		RoundNumber:  2,
		Gate:         3,
		PlayersReady: []string{},
		Votes:        map[string]string{"slot-alice": "Bob"},
	}
	s.mockGameService.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{RoomID: "room-1", DeviceID: "device-alice"}).
		Return(&game.GetGameOutput{Room: room, Slots: slots, State: state, Self: slots[0], ReadyCount: 1, ReadyTarget: 2}, nil)

	w := s.do(http.MethodGet, "/rooms/room-1/game", "device-alice", nil)

	s.Equal(http.StatusOK, w.Code)
	var response GameResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	s.Require().Len(response.Players, 3)
	s.Equal(models.RoleCivilian, response.Players[0].Role)
	s.True(response.Players[0].IsSelf)
	s.Empty(response.Players[1].Role)
	s.Equal(models.RoleCivilian, response.Players[2].Role)
	s.Equal(map[string]string{"Alice": "Bob"}, response.State.Votes)
	s.Equal(1, response.ReadyCount)
	s.Equal(2, response.ReadyTarget)
	s.NotContains(w.Body.String(), "device-bob")
}

func (s *HandlerTestSuite) TestCompleteGameRevealsRoles() {
	slots := []*models.PlayerSlot{
		{ID: "slot-alice", PlayerName: "Alice", DeviceID: "device-alice", IsAlive: true, Role: models.RoleCivilian},
		{ID: "slot-bob", PlayerName: "Bob", DeviceID: "device-bob", IsAlive: true, Role: models.RoleMafia},
	}

	response := toGame(s.waitingRoom(), slots, &models.GameState{Phase: models.PhaseComplete}, "device-alice", 0, 0)

	s.Equal(models.RoleMafia, response.Players[1].Role)
}

func (s *HandlerTestSuite) TestStartGameNotHost() {
	s.mockGameService.EXPECT().
		StartGame(gomock.Any(), &game.StartGameInput{RoomID: "room-1", DeviceID: "device-bob"}).
		Return(nil, game.ErrNotHost)

	w := s.do(http.MethodPost, "/rooms/room-1/start", "device-bob", nil)

	s.Equal(http.StatusForbidden, w.Code)
	s.Equal("Host only", s.decode(w)["error"])
}

func (s *HandlerTestSuite) TestStoreFailureIsGeneric() {
	s.mockGameService.EXPECT().
		MarkReady(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("redis: connection refused"))

	w := s.do(http.MethodPost, "/rooms/room-1/ready", "device-bob", nil)

	s.Equal(http.StatusInternalServerError, w.Code)
	body := s.decode(w)
	s.Equal("Something went wrong. Please try again.", body["message"])
	s.NotContains(w.Body.String(), "redis")
}

func (s *HandlerTestSuite) TestCastVote() {
	s.mockGameService.EXPECT().
		CastVote(gomock.Any(), &game.CastVoteInput{RoomID: "room-1", DeviceID: "device-bob", Target: "carol"}).
		Return(&game.CastVoteOutput{Target: "Carol"}, nil)

	w := s.do(http.MethodPost, "/rooms/room-1/votes", "device-bob", gin.H{"target": "carol"})

	s.Equal(http.StatusOK, w.Code)
	s.Equal("Carol", s.decode(w)["target"])
}

func (s *HandlerTestSuite) TestCastVoteTwice() {
	s.mockGameService.EXPECT().
		CastVote(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrAlreadyVoted)

	w := s.do(http.MethodPost, "/rooms/room-1/votes", "device-bob", gin.H{})

	s.Equal(http.StatusConflict, w.Code)
	s.Equal("Already voted", s.decode(w)["error"])
}

func (s *HandlerTestSuite) TestResolveNightReturnsInvestigation() {
	room := s.waitingRoom()
	room.Status = models.RoomStatusPlaying
	room.GameMode = models.GameModeAdvanced
	room.GameState = &models.GameState{
		Phase:       models.PhaseDay,
		RoundNumber: 1,
		Gate:        2,
		NightResult: &models.NightResult{Saved: true},
	}
	s.mockGameService.EXPECT().
		ResolveNight(gomock.Any(), &game.ResolveNightInput{
			RoomID:          "room-1",
			DeviceID:        "device-alice",
			MafiaTarget:     "Bob",
			DoctorTarget:    "Bob",
			DetectiveTarget: "Dave",
		}).
		Return(&game.ResolveNightOutput{
			Room:          room,
			NightResult:   models.NightResult{Saved: true},
			Investigation: &game.Investigation{Name: "Dave", IsMafia: true},
		}, nil)

	w := s.do(http.MethodPost, "/rooms/room-1/night", "device-alice", gin.H{
		"mafia_target":     "Bob",
		"doctor_target":    "Bob",
		"detective_target": "Dave",
	})

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal(map[string]interface{}{"name": "Dave", "is_mafia": true}, body["investigation"])
	message := body["message"].(map[string]interface{})
	s.Equal("Day 1", message["title"])
	s.Contains([]interface{}{
		"No one was killed! The doctor saved the target.",
		"The mafia struck, but the doctor got there first.",
	}, message["message"])
}

func (s *HandlerTestSuite) TestResolveVotes() {
	room := s.waitingRoom()
	room.Status = models.RoomStatusPlaying
	room.GameState = &models.GameState{Phase: models.PhaseComplete, Winner: models.TeamTown}
	bob := &models.PlayerSlot{ID: "slot-bob", PlayerName: "Bob", Role: models.RoleMafia}
	s.mockGameService.EXPECT().
		ResolveVotes(gomock.Any(), &game.ResolveVotesInput{RoomID: "room-1", DeviceID: "device-alice"}).
		Return(&game.ResolveVotesOutput{
			Room:       room,
			Result:     &vote.Result{Eliminated: "Bob", Counts: map[string]int{"Bob": 2}, MaxVotes: 2, Threshold: 2},
			Eliminated: bob,
			Winner:     models.TeamTown,
		}, nil)

	w := s.do(http.MethodPost, "/rooms/room-1/voting/resolve", "device-alice", nil)

	s.Equal(http.StatusOK, w.Code)
	body := s.decode(w)
	s.Equal("town", body["winner"])
	s.Equal("Bob", body["result"].(map[string]interface{})["eliminated"])
	s.Equal("Bob was a Mafia", body["message"].(map[string]interface{})["title"])
}

func (s *HandlerTestSuite) TestResolveVotesIncomplete() {
	s.mockGameService.EXPECT().
		ResolveVotes(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrVotingIncomplete)

	w := s.do(http.MethodPost, "/rooms/room-1/voting/resolve", "device-alice", nil)

	s.Equal(http.StatusConflict, w.Code)
}

func (s *HandlerTestSuite) TestHistory() {
	s.mockHistoryService.EXPECT().
		GetHistory(gomock.Any(), &history.GetHistoryInput{DeviceID: "device-alice"}).
		Return([]*models.GameRecord{{ID: "game-1", Winner: models.TeamMafia}}, nil)
	s.mockHistoryService.EXPECT().
		GetPlayerStats(gomock.Any(), &history.GetPlayerStatsInput{DeviceID: "device-alice"}).
		Return([]*models.PlayerStats{{Name: "Bob", GamesPlayed: 1, TimesMafia: 1}}, nil)
	s.mockHistoryService.EXPECT().
		ClearHistory(gomock.Any(), &history.ClearHistoryInput{DeviceID: "device-alice"}).
		Return(nil)

	w := s.do(http.MethodGet, "/history", "device-alice", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["games"], 1)

	w = s.do(http.MethodGet, "/history/stats", "device-alice", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.decode(w)["players"], 1)

	w = s.do(http.MethodDelete, "/history", "device-alice", nil)
	s.Equal(http.StatusNoContent, w.Code)
}

func (s *HandlerTestSuite) TestJoinCodeQR() {
	w := s.do(http.MethodGet, "/codes/abc234/qr", "", nil)

	s.Equal(http.StatusOK, w.Code)
	s.Equal("image/png", w.Header().Get("Content-Type"))
	s.True(bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func (s *HandlerTestSuite) TestJoinCodeQRRejectsBadCode() {
	w := s.do(http.MethodGet, "/codes/ABC10O/qr", "", nil)

	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("Invalid code", s.decode(w)["error"])
}

func (s *HandlerTestSuite) TestJoinLink() {
	handler := &Handler{publicURL: "https://mafia.example.com/"}
	s.Equal("https://mafia.example.com/join/ABC234", handler.joinLink("ABC234"))

	handler.publicURL = ""
	s.Equal("ABC234", handler.joinLink("ABC234"))
}

func (s *HandlerTestSuite) dial(server *httptest.Server, roomID, deviceID string) *websocket.Conn {
	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/rooms/" + roomID + "/events?device_id=" + deviceID
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	return conn
}

func (s *HandlerTestSuite) TestEventsStreamsView() {
	room := s.waitingRoom()
	slots := []*models.PlayerSlot{
		{ID: "slot-alice", PlayerName: "Alice", DeviceID: "device-alice", IsHost: true, IsAlive: true},
		{ID: "slot-bob", PlayerName: "Bob", DeviceID: "device-bob", IsAlive: true},
	}
	s.mockGameService.EXPECT().
		GetGame(gomock.Any(), &game.GetGameInput{RoomID: "room-1", DeviceID: "device-bob"}).
		Return(&game.GetGameOutput{Room: room, Slots: slots, Self: slots[1]}, nil).
		AnyTimes()

	server := httptest.NewServer(s.router)
	defer server.Close()

	conn := s.dial(server, "room-1", "device-bob")
	defer conn.Close()
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))

	var view ViewResponse
	s.Require().NoError(conn.ReadJSON(&view))
	s.Equal("update", view.Type)
	s.Equal("lobby", string(view.Screen))
	s.Len(view.Players, 2)
	s.Require().NotNil(view.Self)
	s.Equal("Bob", view.Self.PlayerName)
	s.False(view.IsHost)
}

func (s *HandlerTestSuite) TestEventsReportsClosedRoom() {
	s.mockGameService.EXPECT().
		GetGame(gomock.Any(), gomock.Any()).
		Return(nil, game.ErrRoomNotFound)

	server := httptest.NewServer(s.router)
	defer server.Close()

	conn := s.dial(server, "room-gone", "device-bob")
	defer conn.Close()
	s.Require().NoError(conn.SetReadDeadline(time.Now().Add(2 * time.Second)))

	// a final closed view may come first
	var closed ClosedResponse
	for closed.Type != "closed" {
		s.Require().NoError(conn.ReadJSON(&closed))
	}
	s.Equal("Game ended", closed.Title)
	s.Equal("The host has ended the game.", closed.Message)

	_, _, err := conn.ReadMessage()
	s.True(websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func (s *HandlerTestSuite) TestEventStreamKeepsLatestView() {
	stream := newEventStream()
	stream.update(&device.View{Screen: device.ScreenLobby})
	stream.update(&device.View{Screen: device.ScreenClosed})

	s.Equal(device.ScreenClosed, (<-stream.updates).Screen)
	select {
	case <-stream.updates:
		s.Fail("stale view kept")
	default:
	}
}
