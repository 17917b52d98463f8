package pool

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/jihwankim/dregsplat/pkg/drrerr"
)

// Priority is the application-level scale applied to every worker
// thread: 0 is least favoured, 255 most favoured.
type Priority uint8

// SetPriority applies priority to every worker thread.
func (p *Pool) SetPriority(priority Priority) error {
	for _, tid := range p.threadIDs() {
		if err := setThreadPriority(tid, int(priority)); err != nil {
			return drrerr.Wrap(drrerr.SystemFailure, "pool: set priority", err)
		}
	}
	return nil
}

// SetAffinityMask restricts every worker thread to the CPUs whose bit
// is set in mask (bit i permits CPU i).
func (p *Pool) SetAffinityMask(mask *bitset.BitSet) error {
	words := mask.Bytes()
	for _, tid := range p.threadIDs() {
		if err := setThreadAffinity(tid, words); err != nil {
			return drrerr.Wrap(drrerr.SystemFailure, "pool: set affinity", err)
		}
	}
	return nil
}
