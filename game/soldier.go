package game

import "sync/atomic"

// Unit is a single soldier on the board, tracked by a session-unique ID.
type Unit struct {
	ID int
}

// SoldierAllocator hands out soldier IDs. IDs are never reused within a session.
type SoldierAllocator struct {
	next atomic.Int64
}

func (a *SoldierAllocator) Next() int {
	return int(a.next.Add(1) - 1)
}

// Issued returns how many IDs have been handed out so far.
func (a *SoldierAllocator) Issued() int {
	return int(a.next.Load())
}
