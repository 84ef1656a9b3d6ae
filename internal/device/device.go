// Package device runs one device's view of a room: it mirrors the room from
// the change feed, walks the local reveal steps, and when the device hosts
// the room it commits the transitions the shared gates call for.
package device

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/KirkDiggler/secretmafia/internal/models"
	"github.com/KirkDiggler/secretmafia/internal/repositories/feed"
	"github.com/KirkDiggler/secretmafia/internal/services/game"
	"github.com/KirkDiggler/secretmafia/internal/services/history"
	"github.com/KirkDiggler/secretmafia/internal/services/messaging"
	"go.uber.org/zap"
)

// DefaultHidePhonesDuration is the countdown shown before a role is revealed
const DefaultHidePhonesDuration = 3 * time.Second

// Config holds configuration for a device
type Config struct {
	RoomID   string
	DeviceID string

	Subscriber  feed.Subscriber
	GameService game.Service

	// HistoryService records the finished game; optional
	HistoryService history.Service

	// Messaging words the closed-room notice; optional
	Messaging messaging.Service

	// HidePhonesDuration defaults to DefaultHidePhonesDuration
	HidePhonesDuration time.Duration

	// OnUpdate receives every new view, from the device loop
	OnUpdate func(view *View)

	// OnRoomClosed is called once when the room is deleted
	OnRoomClosed func(notice *messaging.GetRoomClosedMessageOutput)

	// Logger is optional
	Logger *zap.Logger
}

// View is what a device knows about its room at one point in time
type View struct {
	// Room is nil once the room is closed
	Room  *models.Room
	Slots []*models.PlayerSlot

	// State has the current gate's marks filled in; nil before play
	State *models.GameState

	// Self is the device's own slot
	Self *models.PlayerSlot

	Screen Screen

	ReadyCount  int
	ReadyTarget int

	// AllVoted is reported to the host once every alive player voted
	AllVoted bool

	// Recorded is true once the finished game is in the device's history
	Recorded bool

	Closed bool
}

// Device is a single-threaded client of one room
type Device struct {
	roomID             string
	deviceID           string
	subscriber         feed.Subscriber
	gameService        game.Service
	historyService     history.Service
	messaging          messaging.Service
	hidePhonesDuration time.Duration
	onUpdate           func(view *View)
	onRoomClosed       func(notice *messaging.GetRoomClosedMessageOutput)
	logger             *zap.Logger

	// loop state
	mirror       *mirror
	local        stage
	countdown    *time.Timer
	allVoted     bool
	recorded     bool
	closeHandled bool

	mu      sync.RWMutex
	view    *View
	running bool
}

// New creates a new device
func New(cfg *Config) (*Device, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.RoomID == "" {
		return nil, ErrInvalidRoomID
	}

	if cfg.DeviceID == "" {
		return nil, ErrInvalidDeviceID
	}

	if cfg.Subscriber == nil {
		return nil, ErrNilSubscriber
	}

	if cfg.GameService == nil {
		return nil, ErrNilGameService
	}

	hidePhonesDuration := cfg.HidePhonesDuration
	if hidePhonesDuration <= 0 {
		hidePhonesDuration = DefaultHidePhonesDuration
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Device{
		roomID:             cfg.RoomID,
		deviceID:           cfg.DeviceID,
		subscriber:         cfg.Subscriber,
		gameService:        cfg.GameService,
		historyService:     cfg.HistoryService,
		messaging:          cfg.Messaging,
		hidePhonesDuration: hidePhonesDuration,
		onUpdate:           cfg.OnUpdate,
		onRoomClosed:       cfg.OnRoomClosed,
		logger: logger.Named("device").With(
			zap.String("room_id", cfg.RoomID),
			zap.String("device_id", cfg.DeviceID)),
		mirror: newMirror(),
	}, nil
}

// View returns the latest view, or nil before the first snapshot is loaded
func (d *Device) View() *View {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.view
}

// Run follows the room until it is deleted, the feed closes or ctx is done.
// A deleted room ends the run without an error.
func (d *Device) Run(ctx context.Context) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return ErrAlreadyRunning
	}
	d.running = true
	d.mu.Unlock()

	// Subscribe before reading so nothing written after the read is missed
	sub, err := d.subscriber.Subscribe(ctx, &feed.SubscribeInput{RoomID: d.roomID})
	if err != nil {
		d.logger.Error("Failed to subscribe", zap.Error(err))
		return err
	}
	defer sub.Close()
	defer d.stopCountdown()

	if err := d.resync(ctx); err != nil {
		if errors.Is(err, game.ErrRoomNotFound) {
			d.closeRoom(ctx)
			return nil
		}
		return err
	}
	d.afterChange(ctx)

	events := sub.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-d.countdownC():
			d.stopCountdown()
			d.local = stageRoleReveal
			d.emit()

		case event, ok := <-events:
			if !ok {
				return ErrFeedClosed
			}
			switch d.mirror.apply(event) {
			case applyChanged:
				d.afterChange(ctx)
			case applyResync:
				if err := d.resync(ctx); err != nil {
					if errors.Is(err, game.ErrRoomNotFound) {
						d.closeRoom(ctx)
						return nil
					}
					d.logger.Warn("Failed to resync", zap.Error(err))
					continue
				}
				d.afterChange(ctx)
			case applyClosed:
				d.closeRoom(ctx)
				return nil
			}
		}
	}
}

// resync replaces the mirror with a fresh snapshot
func (d *Device) resync(ctx context.Context) error {
	output, err := d.gameService.GetGame(ctx, &game.GetGameInput{
		RoomID:   d.roomID,
		DeviceID: d.deviceID,
	})
	if err != nil {
		return err
	}
	d.mirror.load(output.Room, output.Slots, output.State)
	return nil
}

// afterChange runs the local and host reactions to a changed mirror
func (d *Device) afterChange(ctx context.Context) {
	room := d.mirror.room
	state := d.mirror.state()

	if room.Status.IsPlaying() && state.Phase.IsRevealStage() {
		if d.local == stageHidePhones && d.countdown == nil {
			d.countdown = time.NewTimer(d.hidePhonesDuration)
		}
	} else {
		d.stopCountdown()
	}

	d.allVoted = false
	if room.IsHost(d.deviceID) && room.Status.IsPlaying() && (state.Phase.IsRevealStage() || state.Phase == models.PhaseVoting) {
		output, err := d.gameService.Reconcile(ctx, &game.ReconcileInput{
			RoomID:   d.roomID,
			DeviceID: d.deviceID,
		})
		if err != nil {
			// Other devices keep waiting; the next change retries
			d.logger.Warn("Failed to reconcile", zap.Error(err))
		} else {
			d.allVoted = output.AllVoted
		}
	}

	if state.Phase == models.PhaseComplete && room.Status.IsPlaying() && !d.recorded && d.historyService != nil {
		if _, err := d.historyService.RecordGame(ctx, &history.RecordGameInput{
			DeviceID: d.deviceID,
			Room:     room,
			Slots:    d.mirror.sortedSlots(),
		}); err != nil {
			d.logger.Warn("Failed to record game", zap.Error(err))
		} else {
			d.recorded = true
		}
	}

	d.emit()
}

// closeRoom clears the mirror and notifies the user exactly once
func (d *Device) closeRoom(ctx context.Context) {
	d.mirror.clear()
	d.stopCountdown()
	if d.closeHandled {
		return
	}
	d.closeHandled = true

	d.logger.Info("Room closed")
	d.emit()

	if d.onRoomClosed == nil {
		return
	}
	notice := &messaging.GetRoomClosedMessageOutput{
		Title:   "Game ended",
		Message: "The host has ended the game.",
	}
	if d.messaging != nil {
		if output, err := d.messaging.GetRoomClosedMessage(ctx); err == nil {
			notice = output
		}
	}
	d.onRoomClosed(notice)
}

// emit publishes the view of the current mirror
func (d *Device) emit() {
	view := d.buildView()

	d.mu.Lock()
	d.view = view
	d.mu.Unlock()

	if d.onUpdate != nil {
		d.onUpdate(view)
	}
}

func (d *Device) buildView() *View {
	if d.mirror.closed || d.mirror.room == nil {
		return &View{Screen: ScreenClosed, Closed: true, Recorded: d.recorded}
	}

	room := d.mirror.room
	slots := d.mirror.sortedSlots()
	view := &View{
		Room:     room,
		Slots:    slots,
		Self:     d.mirror.self(d.deviceID),
		AllVoted: d.allVoted,
		Recorded: d.recorded,
	}

	if !room.Status.IsPlaying() {
		view.Screen = ScreenLobby
		return view
	}

	view.State = d.mirror.state()
	selfReady := view.Self != nil && view.State.IsReady(view.Self.ID)
	view.Screen = deriveScreen(room, view.State, d.local, selfReady)
	view.ReadyCount, view.ReadyTarget = game.Readiness(view.State, slots)
	return view
}

func (d *Device) countdownC() <-chan time.Time {
	if d.countdown == nil {
		return nil
	}
	return d.countdown.C
}

func (d *Device) stopCountdown() {
	if d.countdown != nil {
		d.countdown.Stop()
		d.countdown = nil
	}
}
