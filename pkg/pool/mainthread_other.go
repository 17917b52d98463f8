//go:build !linux

package pool

import "errors"

func ElevateCurrentThread(priority Priority) (restore func() error, err error) {
	return nil, errors.New("pool: ElevateCurrentThread unsupported on this platform")
}
