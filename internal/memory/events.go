package memory

import (
	"strings"

	"github.com/dungeonkeeper/dm-engine/internal/id"
)

// EventState is a ScheduledEvent's lifecycle.
type EventState string

const (
	EventScheduled EventState = "scheduled"
	EventFired     EventState = "fired"
	EventCancelled EventState = "cancelled"
)

// ScheduledEvent is a future narrative beat the DM intends to fire later.
type ScheduledEvent struct {
	ID          id.EventID `json:"id"`
	Name        string     `json:"name"`
	When        string     `json:"when"`
	Description string     `json:"description"`
	State       EventState `json:"state"`
}

// ScheduleEvent records a new Scheduled event, indexed by name so a later
// CancelEvent Intent (which only carries the name, not the id) can find it.
func (m *Memory) ScheduleEvent(name, when, description string) id.EventID {
	eid := id.NewEventID(m.gen)
	m.events[eid] = ScheduledEvent{ID: eid, Name: name, When: when, Description: description, State: EventScheduled}
	m.eventOrder = append(m.eventOrder, eid)
	m.eventsByName[lowerName(name)] = eid
	return eid
}

// CancelEvent finds the named event (case-insensitive) and moves it to
// Cancelled. Returns false if no such event is Scheduled.
func (m *Memory) CancelEvent(name string) bool {
	eid, ok := m.eventsByName[lowerName(name)]
	if !ok {
		return false
	}
	e := m.events[eid]
	if e.State != EventScheduled {
		return false
	}
	e.State = EventCancelled
	m.events[eid] = e
	return true
}

// Fire moves a Scheduled event to Fired.
func (m *Memory) Fire(eid id.EventID) bool {
	e, ok := m.events[eid]
	if !ok || e.State != EventScheduled {
		return false
	}
	e.State = EventFired
	m.events[eid] = e
	return true
}

// Events returns every scheduled event in registration order.
func (m *Memory) Events() []ScheduledEvent {
	out := make([]ScheduledEvent, 0, len(m.eventOrder))
	for _, eid := range m.eventOrder {
		out = append(out, m.events[eid])
	}
	return out
}

func lowerName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
