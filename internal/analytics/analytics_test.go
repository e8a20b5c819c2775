package analytics

import (
	"fmt"
	"testing"

	"pairplay/internal/storage"
	"pairplay/internal/telemetry"
)

func testStore(t *testing.T) *storage.Store {
	t.Helper()
	logger, err := telemetry.NewJSONLogger("")
	if err != nil {
		t.Fatal(err)
	}
	return storage.NewStore(storage.NewMemoryKV(), logger)
}

func TestTrackAssignsIdentity(t *testing.T) {
	r := NewRecorder(testStore(t))
	r.Track(EventLevelStart, map[string]any{"level": "animals-1"})

	events := r.Events()
	if len(events) != 1 {
		t.Fatalf("events=%d", len(events))
	}
	e := events[0]
	if e.ID == "" || e.Timestamp == 0 || e.Type != EventLevelStart {
		t.Fatalf("incomplete event: %+v", e)
	}
}

func TestEventLogCapped(t *testing.T) {
	r := NewRecorder(testStore(t))
	for i := 0; i < 130; i++ {
		r.Track(EventLevelComplete, map[string]any{"n": i})
	}
	events := r.Events()
	if len(events) != 100 {
		t.Fatalf("log length=%d, want the 100 cap", len(events))
	}
	// Oldest entries rolled off.
	if got := events[0].Data["n"]; fmt.Sprint(got) != "30" {
		t.Fatalf("oldest surviving event n=%v, want 30", got)
	}
}

func TestRecorderReloadsPersistedEvents(t *testing.T) {
	store := testStore(t)
	r := NewRecorder(store)
	r.Track(EventAdShow, nil)
	r.Track(EventAdReward, map[string]any{"stars": 1})

	r2 := NewRecorder(store)
	events := r2.Events()
	if len(events) != 2 {
		t.Fatalf("reload lost events: %d", len(events))
	}
	if events[1].Type != EventAdReward {
		t.Fatalf("order lost: %+v", events[1])
	}
}

func TestRecorderIgnoresCorruptLog(t *testing.T) {
	logger, _ := telemetry.NewJSONLogger("")
	kv := storage.NewMemoryKV()
	if err := kv.SetItem(storage.KeyAnalytics, `{"not": "a list"}`); err != nil {
		t.Fatal(err)
	}
	r := NewRecorder(storage.NewStore(kv, logger))
	if len(r.Events()) != 0 {
		t.Fatalf("corrupt log must start empty")
	}
}
