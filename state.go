// FILE: state.go
package drlogger

import "sync/atomic"

// Stats holds counters for rotation, retention and write activity of a listener
type Stats struct {
	Rotations        atomic.Uint64 // Successful index shifts
	RotationFailures atomic.Uint64 // Shifts whose final rename failed
	Deletions        atomic.Uint64 // Files removed by retention
	DeleteFailures   atomic.Uint64 // Files retention failed to remove
	Writes           atomic.Uint64 // Lines appended
	WriteFailures    atomic.Uint64 // Lines dropped after a failed append or resolve
	Cleanups         atomic.Uint64 // Completed retention passes
}

// StatsSnapshot is a point-in-time copy of Stats
type StatsSnapshot struct {
	Rotations        uint64
	RotationFailures uint64
	Deletions        uint64
	DeleteFailures   uint64
	Writes           uint64
	WriteFailures    uint64
	Cleanups         uint64
}

// Snapshot copies the current counter values
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Rotations:        s.Rotations.Load(),
		RotationFailures: s.RotationFailures.Load(),
		Deletions:        s.Deletions.Load(),
		DeleteFailures:   s.DeleteFailures.Load(),
		Writes:           s.Writes.Load(),
		WriteFailures:    s.WriteFailures.Load(),
		Cleanups:         s.Cleanups.Load(),
	}
}
