package kvstore

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

type profile struct {
	Name  string   `json:"name"`
	Goals []string `json:"goals"`
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(openTestDB(t))

	want := profile{Name: "study", Goals: []string{"read", "write"}}
	store.Set("profile", want)

	var got profile
	if !store.Get("profile", &got) {
		t.Fatal("Get() = false, want true")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestStoreAbsentKeyKeepsDefault(t *testing.T) {
	store := NewStore(openTestDB(t))

	got := profile{Name: "default"}
	if store.Get("missing", &got) {
		t.Fatal("Get() = true for absent key, want false")
	}
	if got.Name != "default" {
		t.Errorf("default was clobbered: %+v", got)
	}
}

func TestStoreCorruptValueKeepsDefault(t *testing.T) {
	db := openTestDB(t)
	store := NewStore(db)

	if err := db.setRaw("broken", "{not json"); err != nil {
		t.Fatalf("setRaw() error = %v", err)
	}

	got := profile{Name: "default"}
	if store.Get("broken", &got) {
		t.Fatal("Get() = true for corrupt value, want false")
	}
	if got.Name != "default" {
		t.Errorf("default was clobbered: %+v", got)
	}
}

func TestStoreRemove(t *testing.T) {
	store := NewStore(openTestDB(t))

	store.Set("gone", profile{Name: "x"})
	store.Remove("gone")

	var got profile
	if store.Get("gone", &got) {
		t.Fatal("Get() = true after Remove, want false")
	}
}

func TestExpiringStoreRoundTripBeforeTTL(t *testing.T) {
	store := NewExpiringStore(openTestDB(t), time.Hour, nil)

	base := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	want := profile{Name: "study", Goals: []string{"read"}}
	store.Set("profile", want)

	store.now = func() time.Time { return base.Add(59 * time.Minute) }

	var got profile
	if !store.Get("profile", &got) {
		t.Fatal("Get() = false before TTL, want true")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestExpiringStoreExpiryRemovesEntry(t *testing.T) {
	db := openTestDB(t)
	store := NewExpiringStore(db, time.Hour, nil)

	base := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	store.Set("profile", profile{Name: "stale"})

	store.now = func() time.Time { return base.Add(61 * time.Minute) }

	got := profile{Name: "default"}
	if store.Get("profile", &got) {
		t.Fatal("Get() = true after TTL, want false")
	}
	if got.Name != "default" {
		t.Errorf("default was clobbered: %+v", got)
	}

	// The stale row must be gone, not just skipped.
	if _, ok, err := db.getRaw("profile"); err != nil || ok {
		t.Errorf("stale entry still present (ok=%v, err=%v)", ok, err)
	}
}

func TestExpiringStoreZeroTTLNeverExpires(t *testing.T) {
	store := NewExpiringStore(openTestDB(t), 0, nil)

	base := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	store.Set("profile", profile{Name: "keep"})

	store.now = func() time.Time { return base.AddDate(1, 0, 0) }

	var got profile
	if !store.Get("profile", &got) {
		t.Fatal("Get() = false with zero TTL, want true")
	}
}

func TestExpiringStoreSealedRoundTrip(t *testing.T) {
	key := "6368616e676520746869732070617373776f726420746f206120736563726574"
	sealer, err := NewSealer(key)
	if err != nil {
		t.Fatalf("NewSealer() error = %v", err)
	}

	db := openTestDB(t)
	store := NewExpiringStore(db, time.Hour, sealer)

	want := profile{Name: "secret", Goals: []string{"hide"}}
	store.Set("profile", want)

	var got profile
	if !store.Get("profile", &got) {
		t.Fatal("Get() = false, want true")
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}

	// Stored bytes must not contain the plaintext.
	raw, ok, err := db.getRaw("profile")
	if err != nil || !ok {
		t.Fatalf("getRaw() ok=%v err=%v", ok, err)
	}
	if strings.Contains(raw, "secret") {
		t.Error("sealed payload contains plaintext")
	}
}

func TestNewSealerRejectsBadKeys(t *testing.T) {
	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"not hex", "zz"},
		{"too short", "00112233"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSealer(tt.key); err == nil {
				t.Error("NewSealer() error = nil, want error")
			}
		})
	}
}

func TestSealerRejectsTamperedCiphertext(t *testing.T) {
	key := "6368616e676520746869732070617373776f726420746f206120736563726574"
	sealer, err := NewSealer(key)
	if err != nil {
		t.Fatalf("NewSealer() error = %v", err)
	}

	sealed, err := sealer.Seal([]byte(`{"a":1}`))
	if err != nil {
		t.Fatalf("Seal() error = %v", err)
	}
	sealed[len(sealed)-1] ^= 0xff

	if _, err := sealer.Open(sealed); err == nil {
		t.Error("Open() error = nil for tampered payload, want error")
	}
}
