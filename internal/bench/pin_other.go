//go:build !linux

package bench

import "errors"

// pinThread is only implemented on Linux.
func pinThread() (release func(), cpu int, err error) {
	return nil, -1, errors.New("cpu pinning is only supported on linux")
}
