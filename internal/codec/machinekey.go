package codec

import (
	"log/slog"

	"github.com/Rtur2003/Kognita/internal/probe"
)

// fallbackIdentifier keys the store when no machine identifier can be
// resolved at all. Explicitly insecure: anyone holding the binary can
// derive the same key.
const fallbackIdentifier = "kognita-fallback-insecure"

// MachineKey derives the store key once per process lifetime from the
// best available machine identifier.
func MachineKey(log *slog.Logger) []byte {
	id, ok := probe.MachineIdentifier()
	if !ok {
		log.Warn("no machine identifier available; falling back to a constant key — stored sessions are not protected against offline reads")
		id = fallbackIdentifier
	}
	return DeriveKey(id)
}
