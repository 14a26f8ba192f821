package app

import (
	"fmt"
	"image/color"
	"io/fs"
	"log/slog"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

const commandQueueSize = 64

// App runs the sample: one view with its sprites, the models of the current
// scene and the pointer devices feeding them.
type App struct {
	cfg    *Config
	logger *slog.Logger

	clock    *Clock
	textures *TextureManager
	manager  *ModelManager
	view     *View
	sources  []PointerSource
	commands *CommandQueue

	width, height int
	ended         bool
}

func New(cfg *Config, fsys fs.FS, logger *slog.Logger) (*App, error) {
	a := &App{
		cfg:      cfg,
		logger:   logger,
		clock:    NewClock(nil),
		textures: NewTextureManager(fsys, logger),
		sources:  []PointerSource{&MouseSource{}, &TouchscreenSource{}},
		commands: NewCommandQueue(commandQueueSize),
		width:    cfg.Width,
		height:   cfg.Height,
	}

	a.manager = NewModelManager(PuppetLoader(fsys, a.textures, logger, cfg.DebugLog), logger, cfg.DebugLog)
	a.manager.SetRenderTarget(cfg.RenderTarget)

	a.view = NewView(a.manager, logger, cfg.DebugTouchLog, a.End)
	a.view.Initialize(a.width, a.height)
	if err := a.view.InitializeSprites(a.textures); err != nil {
		a.Release()
		return nil, fmt.Errorf("initialize sprites: %w", err)
	}
	a.view.SwitchRenderingTarget(cfg.RenderTarget)
	a.view.SetRenderTargetClearColor(1, 1, 1)

	if err := a.manager.ChangeScene(0); err != nil {
		a.Release()
		return nil, err
	}

	logger.Info("App initialized",
		slog.Int("width", a.width),
		slog.Int("height", a.height),
		slog.String("renderTarget", cfg.RenderTarget.String()),
		slog.Int("models", a.manager.ModelCount()))
	return a, nil
}

// Commands is the queue other goroutines use to drive the models.
func (a *App) Commands() *CommandQueue {
	return a.commands
}

// End stops the game loop on the next update.
func (a *App) End() {
	a.ended = true
}

func (a *App) Update() error {
	if a.ended {
		return ebiten.Termination
	}

	a.clock.UpdateTime()

	a.commands.Drain(func(cmd Command) {
		if err := a.manager.Dispatch(cmd); err != nil {
			a.logger.Warn("Command failed", slog.String("type", string(cmd.Kind)), slog.Any("err", err))
		}
	})

	for _, source := range a.sources {
		source.Poll(a.view)
	}

	// wheel zoom stands in for pinching on desktop
	if _, wheelY := ebiten.Wheel(); wheelY != 0 {
		x, y := ebiten.CursorPosition()
		a.view.Zoom(float32(x), float32(y), float32(math.Pow(1.1, wheelY)))
	}

	a.manager.Update(a.clock.DeltaTime())
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	a.view.Render(screen)

	if a.cfg.DebugLog {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS %.0f FPS %.0f scale %.2f",
			ebiten.ActualTPS(), ebiten.ActualFPS(), a.view.ViewMatrix().ScaleX()))
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != a.width || outsideHeight != a.height) {
		a.width, a.height = outsideWidth, outsideHeight
		a.view.Initialize(a.width, a.height)
		a.view.ResizeSprites()
	}
	return a.width, a.height
}

func (a *App) Release() {
	a.manager.ReleaseAllModel()
	if a.view != nil {
		a.view.Release()
	}
	a.textures.ReleaseTextures()
}
