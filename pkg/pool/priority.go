//go:build linux

package pool

import (
	"fmt"

	"golang.org/x/sys/unix"
)

func currentThreadID() int {
	return unix.Gettid()
}

// translatePriority maps the [0,255] application scale to the kernel's
// nice range [-20,19], where 255 is the most favoured (nice -20) and 0
// the least (nice 19) — mirroring the teacher's renice-based priority
// wrapper, applied here to this process's own worker threads instead of
// a remote container's process.
func translatePriority(priority int) int {
	if priority < 0 {
		priority = 0
	}
	if priority > 255 {
		priority = 255
	}
	return 19 - (priority*39)/255
}

func setThreadPriority(tid, priority int) error {
	nice := translatePriority(priority)
	if err := unix.Setpriority(unix.PRIO_PROCESS, tid, nice); err != nil {
		return fmt.Errorf("setpriority(tid=%d, nice=%d): %w", tid, nice, err)
	}
	return nil
}

func setThreadAffinity(tid int, mask []uint64) error {
	var set unix.CPUSet
	set.Zero()
	for word, bits := range mask {
		for bit := 0; bit < 64; bit++ {
			if bits&(uint64(1)<<bit) != 0 {
				set.Set(word*64 + bit)
			}
		}
	}
	if err := unix.SchedSetaffinity(tid, &set); err != nil {
		return fmt.Errorf("sched_setaffinity(tid=%d): %w", tid, err)
	}
	return nil
}
