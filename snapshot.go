package storycam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Snapshot is a labeled capture of everything the core decided in one
// frame. Snapshots are taken at the end of Update, after the compositor
// has applied the frame.
type Snapshot struct {
	Label      string          `yaml:"label"`
	Frame      uint64          `yaml:"frame"`
	Mode       string          `yaml:"mode"`
	Autoscroll AutoscrollState `yaml:"autoscroll"`
	Arbiter    ArbiterState    `yaml:"arbiter"`
	Position   Vec3            `yaml:"position"`
	Zoom       float64         `yaml:"zoom"`
	Focus      Vec3            `yaml:"focus"`
	Effects    []string        `yaml:"effects"`
}

// Snapshot queues a labeled capture of the current frame. Safe to call
// from callbacks and scripts.
func (d *Director) Snapshot(label string) {
	d.snapshotQueue = append(d.snapshotQueue, label)
}

// Snapshots returns the captures taken so far.
func (d *Director) Snapshots() []Snapshot {
	out := make([]Snapshot, len(d.snapshots))
	copy(out, d.snapshots)
	return out
}

// flushSnapshots captures the frame for every queued label. Called at the
// end of Director.Update.
func (d *Director) flushSnapshots() {
	if len(d.snapshotQueue) == 0 {
		return
	}
	effects := d.stack.Effects()
	ids := make([]string, len(effects))
	for i, e := range effects {
		ids[i] = e.ID
	}
	st := d.scroll.State()
	for _, label := range d.snapshotQueue {
		d.snapshots = append(d.snapshots, Snapshot{
			Label:      label,
			Frame:      d.frame,
			Mode:       st.Mode.String(),
			Autoscroll: st,
			Arbiter:    d.arbiter.State(),
			Position:   d.state.Position,
			Zoom:       d.state.Zoom,
			Focus:      d.state.Focus,
			Effects:    ids,
		})
	}
	d.snapshotQueue = d.snapshotQueue[:0]
}

// WriteSnapshots writes every capture as a YAML file in dir, named by frame
// and sanitized label.
func (d *Director) WriteSnapshots(dir string) error {
	if len(d.snapshots) == 0 {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	for _, s := range d.snapshots {
		path := filepath.Join(dir, fmt.Sprintf("%06d_%s.yaml", s.Frame, sanitizeLabel(s.Label)))
		if err := writeSnapshot(path, s); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshot(path string, s Snapshot) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// sanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func sanitizeLabel(label string) string {
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
