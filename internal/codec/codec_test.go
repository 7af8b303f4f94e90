package codec

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/Rtur2003/Kognita/internal/tracker"
)

func newTestCodec(t *testing.T) *Codec {
	t.Helper()
	c, err := New(DeriveKey("test-machine"))
	if err != nil {
		t.Fatalf("creating codec: %v", err)
	}
	return c
}

func sampleSession() tracker.Session {
	start := time.Date(2025, 6, 2, 14, 30, 0, 0, time.Local)
	return tracker.Session{
		ProcessName: "code.exe",
		WindowTitle: "main.go — kognita",
		StartTime:   start,
		EndTime:     start.Add(95 * time.Second),
	}
}

func TestDeriveKey_StableAndKeyed(t *testing.T) {
	a := DeriveKey("machine-a")
	b := DeriveKey("machine-a")
	c := DeriveKey("machine-b")

	if !bytes.Equal(a, b) {
		t.Error("same identifier must derive the same key")
	}
	if bytes.Equal(a, c) {
		t.Error("different identifiers must derive different keys")
	}
	if len(a) != 32 {
		t.Errorf("key length = %d, want 32", len(a))
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	c := newTestCodec(t)
	want := sampleSession()

	blob, err := c.Seal(want)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	got, err := c.Open(blob)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	if got.ProcessName != want.ProcessName {
		t.Errorf("ProcessName = %q, want %q", got.ProcessName, want.ProcessName)
	}
	if got.WindowTitle != want.WindowTitle {
		t.Errorf("WindowTitle = %q, want %q", got.WindowTitle, want.WindowTitle)
	}
	if !got.StartTime.Equal(want.StartTime) || !got.EndTime.Equal(want.EndTime) {
		t.Errorf("times = %v..%v, want %v..%v", got.StartTime, got.EndTime, want.StartTime, want.EndTime)
	}
	if got.Duration() != want.Duration() {
		t.Errorf("Duration = %v, want %v", got.Duration(), want.Duration())
	}
}

func TestSeal_FreshNoncePerRecord(t *testing.T) {
	c := newTestCodec(t)
	s := sampleSession()

	first, err := c.Seal(s)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	second, err := c.Seal(s)
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	if bytes.Equal(first, second) {
		t.Error("two seals of the same session produced identical blobs")
	}
}

func TestOpen_CorruptBlobs(t *testing.T) {
	c := newTestCodec(t)
	blob, err := c.Seal(sampleSession())
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	tampered := append([]byte(nil), blob...)
	tampered[len(tampered)-1] ^= 0xff

	tests := []struct {
		name string
		blob []byte
	}{
		{"empty", nil},
		{"short", blob[:4]},
		{"truncated", blob[:len(blob)-8]},
		{"tampered", tampered},
	}

	for _, tt := range tests {
		if _, err := c.Open(tt.blob); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: Open error = %v, want ErrCorrupt", tt.name, err)
		}
	}
}

func TestOpen_WrongKeyFails(t *testing.T) {
	c := newTestCodec(t)
	blob, err := c.Seal(sampleSession())
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}

	other, err := New(DeriveKey("another-machine"))
	if err != nil {
		t.Fatalf("creating codec: %v", err)
	}
	if _, err := other.Open(blob); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Open with wrong key = %v, want ErrCorrupt", err)
	}
}
