package buffer

// SaveToBuffer computes a ViewState snapshot from the live subsystem
// state in *live and stores it in b, per spec.md §4.5. The snapshot is
// stamped with the DataView version observed at save time, so a later
// RestoreFromBuffer can detect that the buffer's query changed
// underneath the snapshot (spec.md §4.5 "State-change discipline").
func SaveToBuffer(b *Buffer, live *ViewState) {
	snap := live.clone()
	snap.viewVersion = b.dataViewVersion()
	b.snapshot = &snap
}

// RestoreFromBuffer is the inverse of SaveToBuffer: it sets *live to
// b's saved snapshot. A buffer with no snapshot (freshly opened)
// initializes live to DefaultViewState, per spec.md §4.5. A snapshot
// that predates the buffer's current DataView (the query re-executed
// after the last save) is treated the same way a missing snapshot is:
// spec.md §7 specifies that restore failures "silently initialize
// defaults" rather than surface an error.
func RestoreFromBuffer(b *Buffer, live *ViewState) {
	if b.snapshot == nil || b.snapshot.viewVersion != b.dataViewVersion() {
		*live = DefaultViewState()
		return
	}
	*live = b.snapshot.clone()
}
