package device

import (
	"sort"

	"github.com/KirkDiggler/secretmafia/internal/models"
)

// mirror is a device's local readable copy of one room. It is only touched
// from the device loop.
type mirror struct {
	room   *models.Room
	slots  map[string]*models.PlayerSlot
	ready  map[string]bool
	votes  map[string]string
	closed bool
}

func newMirror() *mirror {
	return &mirror{
		slots: make(map[string]*models.PlayerSlot),
		ready: make(map[string]bool),
		votes: make(map[string]string),
	}
}

// gate returns the readiness gate of the mirrored state, zero before play starts
func (m *mirror) gate() int {
	if m.room == nil || !m.room.Status.IsPlaying() {
		return 0
	}
	return m.room.State().Gate
}

// load replaces the mirror with a snapshot read from the store
func (m *mirror) load(room *models.Room, slots []*models.PlayerSlot, state *models.GameState) {
	m.room = room
	m.slots = make(map[string]*models.PlayerSlot, len(slots))
	for _, slot := range slots {
		m.slots[slot.ID] = slot
	}
	m.ready = make(map[string]bool)
	m.votes = make(map[string]string)
	if state != nil {
		for _, slotID := range state.PlayersReady {
			m.ready[slotID] = true
		}
		for voter, target := range state.Votes {
			m.votes[voter] = target
		}
	}
}

// clear drops the room; a closed mirror ignores every later event
func (m *mirror) clear() {
	m.room = nil
	m.slots = make(map[string]*models.PlayerSlot)
	m.ready = make(map[string]bool)
	m.votes = make(map[string]string)
	m.closed = true
}

// applyResult tells the loop what an event did to the mirror
type applyResult int

const (
	// applyIgnored means the event was stale, a duplicate or for another room
	applyIgnored applyResult = iota

	// applyChanged means the mirror changed
	applyChanged

	// applyClosed means the room was deleted
	applyClosed

	// applyResync means the event is ahead of the mirror and a fresh snapshot is needed
	applyResync
)

// apply folds one change event into the mirror. Events delivered before a
// snapshot was loaded may be replayed, so every rule is idempotent and never
// moves a record backwards.
func (m *mirror) apply(event *models.ChangeEvent) applyResult {
	if m.closed || event == nil || m.room == nil || event.RoomID != m.room.ID {
		return applyIgnored
	}

	switch event.Collection {
	case models.CollectionRooms:
		return m.applyRoom(event)
	case models.CollectionPlayerSlots:
		return m.applySlot(event)
	case models.CollectionGameState:
		return m.applyMark(event)
	}
	return applyIgnored
}

func (m *mirror) applyRoom(event *models.ChangeEvent) applyResult {
	if event.Type == models.EventTypeDelete {
		m.clear()
		return applyClosed
	}
	if event.Room == nil || !newerRoom(event.Room, m.room) {
		return applyIgnored
	}

	previousGate := m.gate()
	m.room = event.Room
	if m.gate() != previousGate {
		m.ready = make(map[string]bool)
		m.votes = make(map[string]string)
	}
	return applyChanged
}

func (m *mirror) applySlot(event *models.ChangeEvent) applyResult {
	if event.Type == models.EventTypeDelete {
		if _, ok := m.slots[event.SlotID]; !ok {
			return applyIgnored
		}
		delete(m.slots, event.SlotID)
		delete(m.ready, event.SlotID)
		delete(m.votes, event.SlotID)
		return applyChanged
	}
	if event.Slot == nil {
		return applyIgnored
	}

	incoming := *event.Slot
	if existing, ok := m.slots[incoming.ID]; ok {
		// A role is dealt once and an elimination is final
		if incoming.Role == "" {
			incoming.Role = existing.Role
		}
		if existing.HasRole() && !existing.IsAlive {
			incoming.IsAlive = false
		}
		if *existing == incoming {
			return applyIgnored
		}
	}
	m.slots[incoming.ID] = &incoming
	return applyChanged
}

func (m *mirror) applyMark(event *models.ChangeEvent) applyResult {
	gate := m.gate()
	switch {
	case gate == 0 || event.Gate < gate:
		return applyIgnored
	case event.Gate > gate:
		return applyResync
	}
	if _, ok := m.slots[event.SlotID]; !ok {
		return applyIgnored
	}

	changed := !m.ready[event.SlotID]
	m.ready[event.SlotID] = true
	if event.Vote != nil && m.votes[event.SlotID] != *event.Vote {
		m.votes[event.SlotID] = *event.Vote
		changed = true
	}
	if !changed {
		return applyIgnored
	}
	return applyChanged
}

// newerRoom orders room versions: a started room beats a waiting one, a later
// gate beats an earlier one, and within a gate the later write wins
func newerRoom(incoming, current *models.Room) bool {
	if current == nil {
		return true
	}
	if incoming.Status.IsPlaying() != current.Status.IsPlaying() {
		return incoming.Status.IsPlaying()
	}
	if incoming.Status.IsPlaying() {
		in, cur := incoming.State(), current.State()
		if in.Gate != cur.Gate {
			return in.Gate > cur.Gate
		}
	}
	return incoming.UpdatedAt.After(current.UpdatedAt)
}

// sortedSlots returns the slots in join order
func (m *mirror) sortedSlots() []*models.PlayerSlot {
	slots := make([]*models.PlayerSlot, 0, len(m.slots))
	for _, slot := range m.slots {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool {
		if !slots[i].JoinedAt.Equal(slots[j].JoinedAt) {
			return slots[i].JoinedAt.Before(slots[j].JoinedAt)
		}
		return slots[i].ID < slots[j].ID
	})
	return slots
}

// state returns the mirrored game state with the current gate's marks filled in
func (m *mirror) state() *models.GameState {
	state := m.room.State()
	for _, slot := range m.sortedSlots() {
		if m.ready[slot.ID] {
			state.PlayersReady = append(state.PlayersReady, slot.ID)
		}
		if target, ok := m.votes[slot.ID]; ok {
			state.Votes[slot.ID] = target
		}
	}
	return state
}

// self returns the slot owned by the device
func (m *mirror) self(deviceID string) *models.PlayerSlot {
	for _, slot := range m.slots {
		if slot.DeviceID == deviceID {
			return slot
		}
	}
	return nil
}
