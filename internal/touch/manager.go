// Package touch derives drag, flick and pinch values from raw pointer
// positions in device coordinates.
package touch

import "github.com/go-gl/mathgl/mgl32"

// Manager tracks a single gesture. The caller decides whether an event is
// routed as a single or a two finger move.
type Manager struct {
	start mgl32.Vec2 // set on touch begin only
	last  mgl32.Vec2 // last single touch position

	last1, last2      mgl32.Vec2
	lastTouchDistance float32 // zero while unknown

	delta mgl32.Vec2
	scale float32

	touchSingle    bool
	flickAvailable bool
}

func NewManager() *Manager {
	return &Manager{scale: 1}
}

func (m *Manager) TouchesBegan(deviceX, deviceY float32) {
	m.start = mgl32.Vec2{deviceX, deviceY}
	m.last = m.start
	m.delta = mgl32.Vec2{}
	m.lastTouchDistance = 0
	m.touchSingle = true
	m.flickAvailable = true
}

func (m *Manager) TouchesMoved(deviceX, deviceY float32) {
	m.last = mgl32.Vec2{deviceX, deviceY}
	m.delta = m.last.Sub(m.start)
	m.lastTouchDistance = 0
}

// TouchesMovedPair handles a two finger move. The scale accumulates the
// ratio of consecutive finger distances.
func (m *Manager) TouchesMovedPair(deviceX1, deviceY1, deviceX2, deviceY2 float32) {
	p1 := mgl32.Vec2{deviceX1, deviceY1}
	p2 := mgl32.Vec2{deviceX2, deviceY2}
	distance := p1.Sub(p2).Len()

	if m.lastTouchDistance > 0 && distance > 0 {
		m.scale *= distance / m.lastTouchDistance
	}

	m.last1 = p1
	m.last2 = p2
	m.lastTouchDistance = distance
	m.touchSingle = false
	m.flickAvailable = false
}

// FlickDistance is the distance between the touch start and the last
// single touch position. Check IsFlickAvailable before relying on it.
func (m *Manager) FlickDistance() float32 {
	return m.last.Sub(m.start).Len()
}

func (m *Manager) IsFlickAvailable() bool {
	return m.flickAvailable
}

func (m *Manager) DisableFlick() {
	m.flickAvailable = false
}

func (m *Manager) IsSingleTouch() bool {
	return m.touchSingle
}

// Center is the last single touch position, or the midpoint of the last
// finger pair while a two finger gesture is active.
func (m *Manager) Center() mgl32.Vec2 {
	if m.touchSingle {
		return m.last
	}
	return m.last1.Add(m.last2).Mul(0.5)
}

func (m *Manager) Start() mgl32.Vec2 {
	return m.start
}

func (m *Manager) Last() mgl32.Vec2 {
	return m.last
}

func (m *Manager) Pair() (mgl32.Vec2, mgl32.Vec2) {
	return m.last1, m.last2
}

func (m *Manager) Delta() mgl32.Vec2 {
	return m.delta
}

func (m *Manager) Scale() float32 {
	return m.scale
}
