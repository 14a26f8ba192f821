package app

import "github.com/go-gl/mathgl/mgl32"

// ViewMatrix is the camera in logical screen coordinates. Zoom and pan are
// kept inside the max screen rect and the scale limits.
type ViewMatrix struct {
	tr mgl32.Mat4

	screenLeft, screenRight, screenBottom, screenTop float32
	maxLeft, maxRight, maxBottom, maxTop             float32

	maxScale, minScale float32
}

func NewViewMatrix() *ViewMatrix {
	return &ViewMatrix{tr: mgl32.Ident4(), maxScale: 1, minScale: 1}
}

func (m *ViewMatrix) SetScreenRect(left, right, bottom, top float32) {
	m.screenLeft, m.screenRight = left, right
	m.screenBottom, m.screenTop = bottom, top
}

func (m *ViewMatrix) SetMaxScreenRect(left, right, bottom, top float32) {
	m.maxLeft, m.maxRight = left, right
	m.maxBottom, m.maxTop = bottom, top
}

func (m *ViewMatrix) SetMaxScale(scale float32) { m.maxScale = scale }
func (m *ViewMatrix) SetMinScale(scale float32) { m.minScale = scale }

// Scale sets the absolute scale.
func (m *ViewMatrix) Scale(x, y float32) {
	m.tr[0] = x
	m.tr[5] = y
}

func (m *ViewMatrix) ScaleX() float32 { return m.tr[0] }

func (m *ViewMatrix) IsMaxScale() bool { return m.tr[0] >= m.maxScale }
func (m *ViewMatrix) IsMinScale() bool { return m.tr[0] <= m.minScale }

// AdjustTranslate moves the camera, stopping at the edges of the max
// screen rect.
func (m *ViewMatrix) AdjustTranslate(x, y float32) {
	if m.tr[0]*m.maxLeft+(m.tr[12]+x) > m.screenLeft {
		x = m.screenLeft - m.tr[0]*m.maxLeft - m.tr[12]
	}
	if m.tr[0]*m.maxRight+(m.tr[12]+x) < m.screenRight {
		x = m.screenRight - m.tr[0]*m.maxRight - m.tr[12]
	}
	if m.tr[5]*m.maxTop+(m.tr[13]+y) < m.screenTop {
		y = m.screenTop - m.tr[5]*m.maxTop - m.tr[13]
	}
	if m.tr[5]*m.maxBottom+(m.tr[13]+y) > m.screenBottom {
		y = m.screenBottom - m.tr[5]*m.maxBottom - m.tr[13]
	}

	m.tr = mgl32.Translate3D(x, y, 0).Mul4(m.tr)
}

// AdjustScale zooms by scale around (cx, cy). The resulting scale is
// clamped to [minScale, maxScale].
func (m *ViewMatrix) AdjustScale(cx, cy, scale float32) {
	targetScale := scale * m.tr[0]
	if targetScale < m.minScale {
		if m.tr[0] > 0 {
			scale = m.minScale / m.tr[0]
		}
	} else if targetScale > m.maxScale {
		if m.tr[0] > 0 {
			scale = m.maxScale / m.tr[0]
		}
	}

	zoom := mgl32.Translate3D(cx, cy, 0).
		Mul4(mgl32.Scale3D(scale, scale, 1)).
		Mul4(mgl32.Translate3D(-cx, -cy, 0))
	m.tr = zoom.Mul4(m.tr)
}

func (m *ViewMatrix) TransformX(src float32) float32 { return m.tr[0]*src + m.tr[12] }
func (m *ViewMatrix) TransformY(src float32) float32 { return m.tr[5]*src + m.tr[13] }

func (m *ViewMatrix) InvertTransformX(src float32) float32 { return (src - m.tr[12]) / m.tr[0] }
func (m *ViewMatrix) InvertTransformY(src float32) float32 { return (src - m.tr[13]) / m.tr[5] }

func (m *ViewMatrix) Matrix() mgl32.Mat4 { return m.tr }

// ModelMatrix places a model of the given canvas size in logical
// coordinates. By default the model is two units high.
type ModelMatrix struct {
	tr            mgl32.Mat4
	width, height float32
}

func NewModelMatrix(width, height float32) *ModelMatrix {
	m := &ModelMatrix{tr: mgl32.Ident4(), width: width, height: height}
	m.SetHeight(2)
	return m
}

func (m *ModelMatrix) SetWidth(w float32) {
	s := w / m.width
	m.Scale(s, s)
}

func (m *ModelMatrix) SetHeight(h float32) {
	s := h / m.height
	m.Scale(s, s)
}

func (m *ModelMatrix) Scale(x, y float32) {
	m.tr[0] = x
	m.tr[5] = y
}

func (m *ModelMatrix) TranslateX(x float32) { m.tr[12] = x }
func (m *ModelMatrix) TranslateY(y float32) { m.tr[13] = y }

func (m *ModelMatrix) InvertTransformX(src float32) float32 { return (src - m.tr[12]) / m.tr[0] }
func (m *ModelMatrix) InvertTransformY(src float32) float32 { return (src - m.tr[13]) / m.tr[5] }

func (m *ModelMatrix) Matrix() mgl32.Mat4 { return m.tr }
