//go:build !linux

package notify

import "errors"

// New reports that desktop notifications need D-Bus.
func New() (Notifier, error) {
	return nil, errors.New("desktop notifications are only supported on Linux")
}
