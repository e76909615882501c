package storycam

import (
	"fmt"
	"math"
)

// PhaseKind distinguishes story phases from the player's action phases.
type PhaseKind uint8

const (
	PhaseStory  PhaseKind = iota // narrative beat offering choices
	PhaseAction                  // the choice the player made
)

// Phase is one entry of the narrative history.
type Phase struct {
	ID   string
	Kind PhaseKind
	// Text is the narrative text of a story phase or the action text.
	Text string
	// Actions are the choices a story phase offers (left, center).
	Actions []string
	// Choice is the chosen column of an action phase: 0 left, 1 center,
	// 2 right.
	Choice int
	Custom bool
}

// Layout holds the world-space dimensions of the branch structure.
type Layout struct {
	PhaseHeight  float64
	ColumnWidth  float64
	BranchHeight float64
	LineHeight   float64
	TopOffset    float64
	ZOffset      float64
	// FocusZoom is the zoom requested by phase triggers.
	FocusZoom float64
	// OptionSize is the edge length of the cubic choice triggers.
	OptionSize float64
}

// DefaultLayout returns the dimensions the scene is built with.
func DefaultLayout() Layout {
	return Layout{
		PhaseHeight:  12,
		ColumnWidth:  4,
		BranchHeight: 5,
		LineHeight:   0.05,
		TopOffset:    0.5,
		ZOffset:      3,
		FocusZoom:    0.6,
		OptionSize:   3,
	}
}

// Story is the narrative history laid out in world space. Each phase
// occupies PhaseHeight of depth; action phases shift the column of every
// later phase by Choice-1. Story implements Content.
type Story struct {
	layout Layout
	phases []Phase
}

// NewStory creates an empty story with the given layout.
func NewStory(layout Layout) *Story {
	return &Story{layout: layout}
}

// Layout returns the story layout.
func (s *Story) Layout() Layout {
	return s.layout
}

// AppendStory adds a story phase offering the given actions.
func (s *Story) AppendStory(id, text string, actions ...string) {
	s.phases = append(s.phases, Phase{ID: id, Kind: PhaseStory, Text: text, Actions: actions})
}

// AppendAction adds the player's chosen action.
func (s *Story) AppendAction(id, text string, choice int, custom bool) {
	s.phases = append(s.phases, Phase{ID: id, Kind: PhaseAction, Text: text, Choice: choice, Custom: custom})
}

// Len returns the number of phases.
func (s *Story) Len() int {
	return len(s.phases)
}

// Phase returns the phase at index i.
func (s *Story) Phase(i int) Phase {
	return s.phases[i]
}

// Reset clears the history for a new session.
func (s *Story) Reset() {
	s.phases = s.phases[:0]
}

// Column returns the branch column of phase i.
func (s *Story) Column(i int) int {
	col := 0
	for j := 0; j <= i && j < len(s.phases); j++ {
		if s.phases[j].Kind == PhaseAction {
			col += s.phases[j].Choice - 1
		}
	}
	return col
}

// Offset returns the world-space origin of phase i.
func (s *Story) Offset(i int) Vec3 {
	return Vec3{
		float64(s.Column(i)) * s.layout.ColumnWidth,
		0,
		float64(i)*s.layout.PhaseHeight + s.layout.TopOffset,
	}
}

// ContentMax implements Content.
func (s *Story) ContentMax() float64 {
	return float64(len(s.phases))*s.layout.PhaseHeight + s.layout.ZOffset
}

// LateralOffsetAt implements Content. The depth row is mapped to the phase
// that spans it, clamped to the first and last phases.
func (s *Story) LateralOffsetAt(row int) float64 {
	if len(s.phases) == 0 {
		return 0
	}
	i := int(math.Floor((float64(row) - s.layout.TopOffset) / s.layout.PhaseHeight))
	i = max(0, min(i, len(s.phases)-1))
	return float64(s.Column(i)) * s.layout.ColumnWidth
}

// ChoiceOptions configures PhaseTriggers.
type ChoiceOptions struct {
	// Current mounts the phase-wide zoom trigger, which exists only for the
	// newest phase.
	Current bool
	// Policy and Dwell select how a choice fires.
	Policy FiringPolicy
	Dwell  float64
	// OnChoose is called with the chosen column when a choice fires.
	OnChoose func(choice int)
	// OnHover is called when the position enters or leaves a choice.
	OnHover func(choice int, hovering bool)
}

// choiceNames are the trigger ID suffixes for the three columns.
var choiceNames = [3]string{"left", "center", "right"}

// PhaseTriggers returns the volume configs for story phase i: the optional
// phase-wide zoom trigger followed by the left, center, and right choice
// triggers, each focusing the camera on its option. Action phases have no
// triggers.
func (s *Story) PhaseTriggers(i int, opts ChoiceOptions) []VolumeConfig {
	p := s.phases[i]
	if p.Kind != PhaseStory {
		return nil
	}
	l := s.layout
	origin := s.Offset(i)
	var out []VolumeConfig

	if opts.Current {
		out = append(out, VolumeConfig{
			ID:     p.ID + "-story",
			Center: origin.Add(Vec3{0, l.LineHeight, l.PhaseHeight - l.BranchHeight/2}),
			Size:   Vec3{l.ColumnWidth * 6, 5, l.BranchHeight + 4},
			Zoom:   ptr(l.FocusZoom),
		})
	}

	for c, name := range choiceNames {
		center := origin.Add(Vec3{float64(c-1) * l.ColumnWidth, l.LineHeight, l.PhaseHeight})
		cfg := VolumeConfig{
			ID:       fmt.Sprintf("%s-%s", p.ID, name),
			Center:   center,
			Size:     Vec3{l.OptionSize, l.OptionSize, l.OptionSize},
			Zoom:     ptr(l.FocusZoom),
			Target:   ptr(center),
			Policy:   opts.Policy,
			Duration: opts.Dwell,
		}
		if opts.Policy == PolicyClick {
			cfg.Label = choiceLabel(p, c)
		}
		if opts.OnChoose != nil {
			choice := c
			cfg.OnTrigger = func() { opts.OnChoose(choice) }
		}
		if opts.OnHover != nil {
			choice := c
			cfg.OnEnter = func() { opts.OnHover(choice, true) }
			cfg.OnExit = func() { opts.OnHover(choice, false) }
		}
		out = append(out, cfg)
	}
	return out
}

// choiceLabel returns the overlay prompt for column c of a story phase.
func choiceLabel(p Phase, c int) string {
	if c < len(p.Actions) && c < 2 {
		return p.Actions[c]
	}
	return "Make a choice..."
}
