//go:build !linux

package pool

import "fmt"

func currentThreadID() int { return -1 }

func setThreadPriority(tid, priority int) error {
	return fmt.Errorf("pool: thread priority control is unsupported on this platform")
}

func setThreadAffinity(tid int, mask []uint64) error {
	return fmt.Errorf("pool: thread affinity control is unsupported on this platform")
}
