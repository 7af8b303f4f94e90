package probe

import (
	"os"
	"strings"
)

// MachineIdentifier returns a stable identifier for this machine, used to
// derive the at-rest encryption key. The chain is best-effort:
// hardware identifiers first, then the OS machine id, then the hostname.
// When everything fails it returns ("", false) and the caller must fall
// back to a constant key, logging that the store is effectively unprotected.
func MachineIdentifier() (string, bool) {
	if id := hardwareIdentifier(); id != "" {
		return id, true
	}
	if data, err := os.ReadFile("/etc/machine-id"); err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, true
		}
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host, true
	}
	return "", false
}
