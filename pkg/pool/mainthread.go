//go:build linux

package pool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// ElevateCurrentThread raises the calling OS thread's scheduling
// priority per the same [0,255] scale as SetPriority. The caller must
// have pinned the current goroutine with runtime.LockOSThread() first,
// since the nice value is per-thread. The returned restore function
// puts the thread's priority back to what it was.
func ElevateCurrentThread(priority Priority) (restore func() error, err error) {
	tid := currentThreadID()
	prevNice, err := unix.Getpriority(unix.PRIO_PROCESS, tid)
	if err != nil {
		return nil, fmt.Errorf("getpriority(tid=%d): %w", tid, err)
	}
	// Getpriority returns 20-nice, per its man page.
	prevNice = 20 - prevNice

	if err := setThreadPriority(tid, int(priority)); err != nil {
		return nil, err
	}
	return func() error {
		if err := unix.Setpriority(unix.PRIO_PROCESS, tid, prevNice); err != nil {
			return fmt.Errorf("setpriority(tid=%d, nice=%d): %w", tid, prevNice, err)
		}
		return nil
	}, nil
}
