package storage

// KV is the narrow durable key-value contract the game persists through.
// Implementations may fail on quota or availability; the Store wrapper above
// them is responsible for keeping those failures away from gameplay.
type KV interface {
	GetItem(key string) (value string, ok bool, err error)
	SetItem(key, value string) error
	RemoveItem(key string) error
	Close() error
}

// Well-known blob keys. Each is an independently loaded/saved JSON document;
// there is no cross-key transactionality.
const (
	KeySettings     = "settings"
	KeyProgress     = "progress"
	KeyAnalytics    = "analytics-events"
	KeyAchievements = "achievements"
	KeyTheme        = "theme"
)

func wellKnownKeys() []string {
	return []string{KeySettings, KeyProgress, KeyAnalytics, KeyAchievements, KeyTheme}
}
