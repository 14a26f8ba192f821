package app

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

// ModelDrawHooks wraps the drawing of each model. PreModelDraw returns the
// image the model is drawn into.
type ModelDrawHooks interface {
	PreModelDraw(index int, model Model, screen *ebiten.Image) *ebiten.Image
	PostModelDraw(index int, model Model, screen *ebiten.Image)
}

// ModelManager owns the models of the current scene and forwards input
// and commands to them.
type ModelManager struct {
	loader ModelLoader
	logger *slog.Logger
	debug  debugLog

	models       []Model
	sceneIndex   int
	viewMatrix   mgl32.Mat4
	renderTarget RenderTarget
}

func NewModelManager(loader ModelLoader, logger *slog.Logger, debug bool) *ModelManager {
	return &ModelManager{
		loader:     loader,
		logger:     logger,
		debug:      debugLog{logger: logger, enabled: debug},
		viewMatrix: mgl32.Ident4(),
	}
}

// SetRenderTarget selects where models are drawn. Any target other than
// RenderTargetNone loads a second, shifted copy of the scene model on the
// next scene change.
func (m *ModelManager) SetRenderTarget(target RenderTarget) {
	m.renderTarget = target
}

func (m *ModelManager) SceneIndex() int {
	return m.sceneIndex
}

// ChangeScene loads the model of scene index. The previous models are kept
// when loading fails.
func (m *ModelManager) ChangeScene(index int) error {
	if index < 0 || index >= len(ModelDir) {
		return fmt.Errorf("scene %d out of range [0, %d)", index, len(ModelDir))
	}

	m.debug.Print("[APP]model index", slog.Int("index", index))

	dir := ModelDir[index]
	fileName := dir + ".model.json"

	count := 1
	if m.renderTarget != RenderTargetNone {
		count = 2
	}

	models := make([]Model, 0, count)
	for i := 0; i < count; i++ {
		model, err := m.loader(dir, fileName)
		if err != nil {
			for _, loaded := range models {
				loaded.Release()
			}
			return fmt.Errorf("change scene %d: %w", index, err)
		}
		models = append(models, model)
	}
	if len(models) > 1 {
		models[1].ModelMatrix().TranslateX(0.2)
	}

	m.ReleaseAllModel()
	m.models = models
	m.sceneIndex = index
	return nil
}

func (m *ModelManager) NextScene() error {
	return m.ChangeScene((m.sceneIndex + 1) % len(ModelDir))
}

func (m *ModelManager) ReleaseAllModel() {
	for _, model := range m.models {
		model.Release()
	}
	m.models = nil
}

// Model returns the model no of the scene, nil when out of range.
func (m *ModelManager) Model(no int) Model {
	if no < 0 || no >= len(m.models) {
		return nil
	}
	return m.models[no]
}

func (m *ModelManager) ModelCount() int {
	return len(m.models)
}

func (m *ModelManager) SetViewMatrix(view *ViewMatrix) {
	m.viewMatrix = view.Matrix()
}

func (m *ModelManager) OnDrag(x, y float32) {
	for _, model := range m.models {
		model.SetDragging(x, y)
	}
}

func (m *ModelManager) OnTap(x, y float32) {
	m.debug.Print("[APP]tap point", slog.Float64("x", float64(x)), slog.Float64("y", float64(y)))

	for _, model := range m.models {
		if model.HitTest(HitAreaNameHead, x, y) {
			m.debug.Print("[APP]hit area", slog.String("area", HitAreaNameHead))
			model.SetRandomExpression()
		} else if model.HitTest(HitAreaNameBody, x, y) {
			m.debug.Print("[APP]hit area", slog.String("area", HitAreaNameBody))
			model.StartRandomMotion(MotionGroupTapBody, PriorityNormal, m.finishedMotion)
		}
	}
}

func (m *ModelManager) finishedMotion(group string, no int) {
	m.logger.Info("Motion finished", slog.String("group", group), slog.Int("no", no))
}

// Projection is the projection of model for a width x height window,
// including the scene fix and the view matrix.
func (m *ModelManager) Projection(model Model, width, height int) mgl32.Mat4 {
	w, h := float32(width), float32(height)

	projection := mgl32.Ident4()
	if model.CanvasWidth() > 1 && w < h {
		// fit the model width to the window
		model.ModelMatrix().SetWidth(2)
		projection = projection.Mul4(mgl32.Scale3D(1, w/h, 1))
	} else {
		projection = projection.Mul4(mgl32.Scale3D(h/w, 1, 1))
	}

	if m.sceneIndex < len(ModelFix) {
		fix := ModelFix[m.sceneIndex]
		model.ModelMatrix().TranslateY(fix[0])
		model.ModelMatrix().Scale(fix[1], fix[2])
	}

	return projection.Mul4(m.viewMatrix)
}

// OnUpdate draws every model, width and height are the window size.
func (m *ModelManager) OnUpdate(screen *ebiten.Image, width, height int, hooks ModelDrawHooks) {
	if width <= 0 || height <= 0 {
		return
	}

	for i, model := range m.models {
		projection := m.Projection(model, width, height)

		dst := screen
		if hooks != nil {
			dst = hooks.PreModelDraw(i, model, screen)
		}
		model.Draw(dst, projection)
		if hooks != nil {
			hooks.PostModelDraw(i, model, screen)
		}
	}
}

// Update advances every model by deltaSeconds.
func (m *ModelManager) Update(deltaSeconds float32) {
	for _, model := range m.models {
		model.Update(deltaSeconds)
	}
}

func (m *ModelManager) StartMotion(group string, no int, priority int) MotionHandle {
	handle := InvalidMotionHandle
	for _, model := range m.models {
		handle = model.StartMotion(group, no, priority, nil)
	}
	return handle
}

func (m *ModelManager) StartRandomMotion(group string, priority int) MotionHandle {
	handle := InvalidMotionHandle
	for _, model := range m.models {
		handle = model.StartRandomMotion(group, priority, nil)
	}
	return handle
}

func (m *ModelManager) SetExpression(expressionID string) {
	for _, model := range m.models {
		model.SetExpression(expressionID)
	}
}

func (m *ModelManager) SetRandomExpression() {
	for _, model := range m.models {
		model.SetRandomExpression()
	}
}

// Dispatch applies a command received from outside the frame loop.
func (m *ModelManager) Dispatch(cmd Command) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	switch cmd.Kind {
	case CommandStartMotion:
		m.StartMotion(cmd.Group, cmd.No, cmd.Priority)
	case CommandStartRandomMotion:
		m.StartRandomMotion(cmd.Group, cmd.Priority)
	case CommandSetExpression:
		m.SetExpression(cmd.Expression)
	case CommandSetRandomExpression:
		m.SetRandomExpression()
	case CommandNextScene:
		return m.NextScene()
	}
	return nil
}
