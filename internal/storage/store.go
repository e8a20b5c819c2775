package storage

import (
	"encoding/json"

	"pairplay/internal/telemetry"
)

// Validator is a structural predicate applied to a decoded blob before it is
// trusted. A blob that parses but fails its predicate is treated exactly like
// an absent one.
type Validator func(raw json.RawMessage) bool

// Store is the defensive JSON layer over a KV. Load never fails outward and
// Save never panics the caller: corruption and storage errors degrade to
// defaults plus a logged warning.
type Store struct {
	kv     KV
	logger *telemetry.JSONLogger
}

func NewStore(kv KV, logger *telemetry.JSONLogger) *Store {
	return &Store{kv: kv, logger: logger}
}

// Load decodes the blob under key into v. The caller pre-fills v with the
// default value; on a missing key, decode error, storage error, or failed
// predicate v is left untouched and Load returns false. A nil validate skips
// the structural check.
func (s *Store) Load(key string, validate Validator, v any) bool {
	raw, ok, err := s.kv.GetItem(key)
	if err != nil {
		s.logger.Warn("storage.read_failed", map[string]any{"key": key, "error": err.Error()})
		return false
	}
	if !ok {
		return false
	}
	msg := json.RawMessage(raw)
	if validate != nil && !validate(msg) {
		s.logger.Warn("storage.blob_rejected", map[string]any{"key": key})
		return false
	}
	if err := json.Unmarshal(msg, v); err != nil {
		s.logger.Warn("storage.decode_failed", map[string]any{"key": key, "error": err.Error()})
		return false
	}
	return true
}

// Save marshals v under key. On failure the write is dropped and logged; the
// caller's in-memory state is not considered confirmed persisted.
func (s *Store) Save(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error("storage.encode_failed", map[string]any{"key": key, "error": err.Error()})
		return
	}
	if err := s.kv.SetItem(key, string(b)); err != nil {
		s.logger.Warn("storage.write_dropped", map[string]any{"key": key, "error": err.Error()})
	}
}

// Clear removes every well-known blob.
func (s *Store) Clear() {
	for _, key := range wellKnownKeys() {
		if err := s.kv.RemoveItem(key); err != nil {
			s.logger.Warn("storage.remove_failed", map[string]any{"key": key, "error": err.Error()})
		}
	}
}

// IsCorrupted reports whether any present blob fails its validator. Absent
// blobs are fine.
func (s *Store) IsCorrupted(validators map[string]Validator) bool {
	for key, validate := range validators {
		raw, ok, err := s.kv.GetItem(key)
		if err != nil || !ok {
			continue
		}
		if validate != nil && !validate(json.RawMessage(raw)) {
			return true
		}
	}
	return false
}
