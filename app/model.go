package app

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// Model is what the host needs from a loaded character. Evaluation,
// motion blending and physics live behind it.
type Model interface {
	Update(deltaSeconds float32)
	Draw(dst *ebiten.Image, projection mgl32.Mat4)

	// HitTest checks a point in screen coordinates against a named hit area.
	HitTest(hitAreaName string, x, y float32) bool
	// SetDragging takes the drag point in view coordinates, -1..1.
	SetDragging(x, y float32)

	StartMotion(group string, no int, priority int, onFinished FinishedMotionFunc) MotionHandle
	StartRandomMotion(group string, priority int, onFinished FinishedMotionFunc) MotionHandle
	SetExpression(expressionID string)
	SetRandomExpression()

	CanvasWidth() float32
	ModelMatrix() *ModelMatrix

	Release()
}

// ModelLoader loads the model setting fileName found in dir.
type ModelLoader func(dir, fileName string) (Model, error)
