package app

import "math"

type MotionHandle int

const InvalidMotionHandle MotionHandle = -1

// FinishedMotionFunc is called once a started motion ran to its end.
type FinishedMotionFunc func(group string, no int)

type motionEntry struct {
	handle     MotionHandle
	group      string
	no         int
	motion     *MotionSetting
	elapsed    float32
	onFinished FinishedMotionFunc
}

// motionManager plays at most one motion and arbitrates start requests by
// priority. A start is first reserved, then started with the same priority.
type motionManager struct {
	currentPriority int
	reservePriority int

	current    *motionEntry
	nextHandle MotionHandle
}

// ReserveMotion claims the next start for priority. It fails while a
// motion of the same or higher priority plays or is reserved.
func (m *motionManager) ReserveMotion(priority int) bool {
	if priority <= m.reservePriority || priority <= m.currentPriority {
		return false
	}
	m.reservePriority = priority
	return true
}

func (m *motionManager) SetReservePriority(priority int) {
	m.reservePriority = priority
}

func (m *motionManager) StartMotionPriority(group string, no int, motion *MotionSetting, priority int, onFinished FinishedMotionFunc) MotionHandle {
	if priority == m.reservePriority {
		m.reservePriority = PriorityNone
	}
	m.currentPriority = priority

	m.nextHandle++
	m.current = &motionEntry{
		handle:     m.nextHandle,
		group:      group,
		no:         no,
		motion:     motion,
		onFinished: onFinished,
	}
	return m.current.handle
}

// Update advances the playing motion and reports whether one is playing.
func (m *motionManager) Update(deltaSeconds float32) bool {
	entry := m.current
	if entry == nil {
		return false
	}

	entry.elapsed += deltaSeconds
	if entry.elapsed >= entry.motion.Duration {
		if entry.motion.Loop {
			entry.elapsed = float32(math.Mod(float64(entry.elapsed), float64(entry.motion.Duration)))
			return true
		}

		m.current = nil
		m.currentPriority = PriorityNone
		if entry.onFinished != nil {
			entry.onFinished(entry.group, entry.no)
		}
	}
	return true
}

func (m *motionManager) IsFinished() bool {
	return m.current == nil
}

func (m *motionManager) Current() (group string, no int, ok bool) {
	if m.current == nil {
		return "", 0, false
	}
	return m.current.group, m.current.no, true
}

func (m *motionManager) StopAllMotions() {
	m.current = nil
	m.currentPriority = PriorityNone
	m.reservePriority = PriorityNone
}
