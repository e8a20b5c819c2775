// Package analytics keeps a small capped event log in local storage. It is
// best-effort telemetry: a failed write costs an event, never gameplay.
package analytics

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"pairplay/internal/storage"
)

type EventType string

const (
	EventLevelStart     EventType = "level_start"
	EventLevelComplete  EventType = "level_complete"
	EventCategorySelect EventType = "category_select"
	EventSettingsChange EventType = "settings_change"
	EventAdShow         EventType = "ad_show"
	EventAdReward       EventType = "ad_reward"
)

type Event struct {
	ID        string         `json:"id"`
	Type      EventType      `json:"eventType"`
	Timestamp int64          `json:"timestamp"`
	Data      map[string]any `json:"data,omitempty"`
}

// maxEvents caps the persisted log; the oldest entries roll off.
const maxEvents = 100

type Recorder struct {
	store *storage.Store
	now   func() time.Time

	mu     sync.Mutex
	events []Event
}

func NewRecorder(store *storage.Store) *Recorder {
	r := &Recorder{store: store, now: time.Now}
	var events []Event
	if store.Load(storage.KeyAnalytics, validEvents, &events) {
		r.events = events
	}
	return r
}

func validEvents(raw json.RawMessage) bool {
	var probe []json.RawMessage
	return json.Unmarshal(raw, &probe) == nil
}

func (r *Recorder) Track(t EventType, data map[string]any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Event{
		ID:        uuid.NewString(),
		Type:      t,
		Timestamp: r.now().UnixMilli(),
		Data:      data,
	})
	if len(r.events) > maxEvents {
		r.events = r.events[len(r.events)-maxEvents:]
	}
	r.store.Save(storage.KeyAnalytics, r.events)
}

func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
