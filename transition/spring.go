package transition

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/kastheco/fold/markup"
)

// Motion levels, mirroring the reduced-motion settings of the TUI.
const (
	MotionFull    = "full"
	MotionReduced = "reduced"
	MotionOff     = "off"
)

const settleEpsilon = 0.002

type springParams struct {
	frequency float64
	damping   float64
}

// Easing names map to spring parameters; unknown names fall back to "ease".
var easings = map[string]springParams{
	"ease":        {frequency: 8.0, damping: 1.0},
	"linear":      {frequency: 10.0, damping: 1.0},
	"ease-in":     {frequency: 6.0, damping: 1.0},
	"ease-out":    {frequency: 11.0, damping: 1.0},
	"ease-in-out": {frequency: 7.0, damping: 1.0},
	"bounce":      {frequency: 9.0, damping: 0.45},
}

type motion struct {
	pos, vel float64
	goal     float64
	spring   harmonica.Spring
	deadline time.Time
	active   bool
	done     func()
}

// Spring animates extents with harmonica springs. It is driven by Step from
// the UI's animation tick and must be used from that goroutine only.
type Spring struct {
	fps     int
	level   string
	now     func() time.Time
	motions map[*markup.Element]*motion
	order   []*markup.Element
	// orphans are completions of superseded motions, delivered on the next
	// Step.
	orphans []func()
}

func NewSpring(level string) *Spring {
	s := &Spring{
		fps:     60,
		level:   level,
		now:     time.Now,
		motions: make(map[*markup.Element]*motion),
	}
	if level == MotionReduced {
		s.fps = 30
	}
	return s
}

// FPS returns the frame rate Step expects to be called at.
func (s *Spring) FPS() int { return s.fps }

func (s *Spring) Reveal(target *markup.Element, d time.Duration, easing string, done func()) {
	s.start(target, 1, d, easing, done)
}

func (s *Spring) Collapse(target *markup.Element, d time.Duration, easing string, done func()) {
	s.start(target, 0, d, easing, done)
}

func (s *Spring) start(target *markup.Element, to float64, d time.Duration, easing string, done func()) {
	if done == nil {
		done = func() {}
	}
	m := s.motion(target)
	if m.active {
		s.orphans = append(s.orphans, m.done)
	}
	if s.level == MotionOff {
		d = 0
	}
	p, ok := easings[easing]
	if !ok {
		p = easings["ease"]
	}
	if s.level == MotionReduced {
		p.damping = math.Max(p.damping, 0.92)
	}
	m.spring = harmonica.NewSpring(harmonica.FPS(s.fps), p.frequency, p.damping)
	m.goal = to
	m.deadline = s.now().Add(d)
	m.active = true
	m.done = done
}

func (s *Spring) motion(target *markup.Element) *motion {
	m, ok := s.motions[target]
	if !ok {
		m = &motion{}
		s.motions[target] = m
		s.order = append(s.order, target)
	}
	return m
}

// Settle places target at its final extent. A motion in flight is
// superseded; its completion is still delivered on the next Step.
func (s *Spring) Settle(target *markup.Element, open bool) {
	m := s.motion(target)
	if m.active {
		s.orphans = append(s.orphans, m.done)
	}
	m.pos, m.vel, m.goal = goal(open), 0, goal(open)
	m.active = false
	m.done = nil
}

func (s *Spring) Extent(target *markup.Element) float64 {
	m, ok := s.motions[target]
	if !ok {
		return 0
	}
	return math.Min(1, math.Max(0, m.pos))
}

// Active reports whether Step still has work to do.
func (s *Spring) Active() bool {
	if len(s.orphans) > 0 {
		return true
	}
	for _, m := range s.motions {
		if m.active {
			return true
		}
	}
	return false
}

// Step advances every motion by one frame and delivers completions. It
// returns whether another Step is needed.
func (s *Spring) Step(now time.Time) bool {
	fire := s.orphans
	s.orphans = nil
	for _, target := range s.order {
		m := s.motions[target]
		if !m.active {
			continue
		}
		m.pos, m.vel = m.spring.Update(m.pos, m.vel, m.goal)
		settled := math.Abs(m.pos-m.goal) < settleEpsilon && math.Abs(m.vel) < settleEpsilon
		if settled || !now.Before(m.deadline) {
			m.pos, m.vel = m.goal, 0
			m.active = false
			fire = append(fire, m.done)
			m.done = nil
		}
	}
	// Completions may start new motions, so they run after the sweep.
	for _, fn := range fire {
		fn()
	}
	return s.Active()
}
