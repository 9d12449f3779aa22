package kvstore

import (
	"encoding/base64"
	"encoding/json"
	"log"
	"time"
)

// envelope wraps a stored payload with its write time so reads can
// enforce the TTL.
type envelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// ExpiringStore wraps payloads with a write timestamp and treats entries
// older than ttl as absent, deleting them on read. With a Sealer attached
// the payload is additionally encrypted at rest; without one it is
// plaintext by design.
type ExpiringStore struct {
	db     *DB
	ttl    time.Duration
	sealer *Sealer
	now    func() time.Time
}

// NewExpiringStore returns an expiring store. ttl <= 0 disables expiry.
// sealer may be nil for plaintext storage.
func NewExpiringStore(db *DB, ttl time.Duration, sealer *Sealer) *ExpiringStore {
	return &ExpiringStore{
		db:     db,
		ttl:    ttl,
		sealer: sealer,
		now:    time.Now,
	}
}

func (s *ExpiringStore) Get(key string, dest interface{}) bool {
	raw, ok, err := s.db.getRaw(key)
	if err != nil {
		log.Printf("[kvstore] read %q failed, using default: %v", key, err)
		return false
	}
	if !ok {
		return false
	}

	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		log.Printf("[kvstore] decode %q failed, using default: %v", key, err)
		return false
	}

	if s.ttl > 0 && s.now().Sub(env.Timestamp) > s.ttl {
		log.Printf("[kvstore] key %q expired, removing", key)
		s.Remove(key)
		return false
	}

	payload := []byte(env.Data)
	if s.sealer != nil {
		var sealed string
		if err := json.Unmarshal(env.Data, &sealed); err != nil {
			log.Printf("[kvstore] decode %q failed, using default: %v", key, err)
			return false
		}
		ciphertext, err := base64.StdEncoding.DecodeString(sealed)
		if err != nil {
			log.Printf("[kvstore] decode %q failed, using default: %v", key, err)
			return false
		}
		payload, err = s.sealer.Open(ciphertext)
		if err != nil {
			log.Printf("[kvstore] unseal %q failed, using default: %v", key, err)
			return false
		}
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		log.Printf("[kvstore] decode %q failed, using default: %v", key, err)
		return false
	}
	return true
}

func (s *ExpiringStore) Set(key string, value interface{}) {
	payload, err := json.Marshal(value)
	if err != nil {
		log.Printf("[kvstore] encode %q failed, write dropped: %v", key, err)
		return
	}

	if s.sealer != nil {
		ciphertext, err := s.sealer.Seal(payload)
		if err != nil {
			log.Printf("[kvstore] seal %q failed, write dropped: %v", key, err)
			return
		}
		payload, err = json.Marshal(base64.StdEncoding.EncodeToString(ciphertext))
		if err != nil {
			log.Printf("[kvstore] encode %q failed, write dropped: %v", key, err)
			return
		}
	}

	env := envelope{Data: payload, Timestamp: s.now().UTC()}
	wrapped, err := json.Marshal(env)
	if err != nil {
		log.Printf("[kvstore] encode %q failed, write dropped: %v", key, err)
		return
	}

	if err := s.db.setRaw(key, string(wrapped)); err != nil {
		log.Printf("[kvstore] write %q failed: %v", key, err)
	}
}

func (s *ExpiringStore) Remove(key string) {
	if err := s.db.deleteRaw(key); err != nil {
		log.Printf("[kvstore] remove %q failed: %v", key, err)
	}
}
