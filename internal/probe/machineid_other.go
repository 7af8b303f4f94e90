//go:build !windows

package probe

func hardwareIdentifier() string { return "" }
