package app

import (
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerHandler receives pointer events in device pixels.
type PointerHandler interface {
	OnTouchesBegan(pointX, pointY float32)
	OnTouchesMoved(pointX, pointY float32)
	OnTouchesMovedPair(pointX1, pointY1, pointX2, pointY2 float32)
	OnTouchesEnded(pointX, pointY float32)
}

// PointerSource reads one input device once per frame.
type PointerSource interface {
	Poll(h PointerHandler)
}

type MouseState struct {
	X, Y         float32
	JustPressed  bool
	JustReleased bool
}

// MouseSource routes the left button as a single touch. Moves are only
// reported while the button is held.
type MouseSource struct {
	captured     bool
	lastX, lastY float32
}

func (s *MouseSource) Poll(h PointerHandler) {
	x, y := ebiten.CursorPosition()
	s.Handle(MouseState{
		X:            float32(x),
		Y:            float32(y),
		JustPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		JustReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
	}, h)
}

func (s *MouseSource) Handle(state MouseState, h PointerHandler) {
	if state.JustPressed {
		s.captured = true
		s.lastX, s.lastY = state.X, state.Y
		h.OnTouchesBegan(state.X, state.Y)
		return
	}
	if !s.captured {
		return
	}

	if state.JustReleased {
		s.captured = false
		h.OnTouchesEnded(state.X, state.Y)
		return
	}
	if state.X != s.lastX || state.Y != s.lastY {
		s.lastX, s.lastY = state.X, state.Y
		h.OnTouchesMoved(state.X, state.Y)
	}
}

type TouchPoint struct {
	ID   ebiten.TouchID
	X, Y float32
}

// TouchscreenSource routes one contact as a single touch and two or more
// contacts as a pair, using the two oldest contacts.
type TouchscreenSource struct {
	ids    []ebiten.TouchID
	points []TouchPoint
	prev   []TouchPoint
	active bool
}

func (s *TouchscreenSource) Poll(h PointerHandler) {
	s.ids = ebiten.AppendTouchIDs(s.ids[:0])
	s.points = s.points[:0]
	for _, id := range s.ids {
		x, y := ebiten.TouchPosition(id)
		s.points = append(s.points, TouchPoint{ID: id, X: float32(x), Y: float32(y)})
	}
	s.Handle(s.points, h)
}

func (s *TouchscreenSource) Handle(points []TouchPoint, h PointerHandler) {
	points = slices.Clone(points)
	slices.SortFunc(points, func(a, b TouchPoint) int {
		return int(a.ID) - int(b.ID)
	})

	switch {
	case len(points) == 0:
		if s.active {
			last := s.prev[0]
			s.active = false
			h.OnTouchesEnded(last.X, last.Y)
		}
	case !s.active:
		s.active = true
		h.OnTouchesBegan(points[0].X, points[0].Y)
	case len(points) >= 2:
		if len(s.prev) < 2 || points[0] != s.prev[0] || points[1] != s.prev[1] {
			h.OnTouchesMovedPair(points[0].X, points[0].Y, points[1].X, points[1].Y)
		}
	default:
		if points[0] != s.prev[0] {
			h.OnTouchesMoved(points[0].X, points[0].Y)
		}
	}

	if len(points) > 0 {
		s.prev = points
	}
}
