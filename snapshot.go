package cascade

import "strings"

// SnapshotFunc receives every snapshot label requested during a frame, once
// the frame has finished drawing.
type SnapshotFunc func(label string, step int)

// SetSnapshotHandler installs the receiver of snapshot requests. Requests
// made while no handler is installed are dropped.
func (w *World) SetSnapshotHandler(fn SnapshotFunc) { w.onSnapshot = fn }

// Snapshot requests a capture of the surface at the end of the current frame.
// Safe to call from handlers and scripts.
func (w *World) Snapshot(label string) {
	w.snapshots = append(w.snapshots, label)
}

// flushSnapshots hands every queued label to the snapshot handler. Called at
// the end of Frame.
func (w *World) flushSnapshots() {
	if len(w.snapshots) == 0 {
		return
	}
	for _, label := range w.snapshots {
		if w.onSnapshot == nil {
			Logger().Debug("snapshot dropped, no handler", "label", label)
			continue
		}
		w.onSnapshot(label, w.step)
	}
	w.snapshots = w.snapshots[:0]
}

// SanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
