//go:build !windows

package probe

func newPlatformProbe() (Probe, error) {
	return nil, ErrUnsupported
}
