// Package l2dmobile is bound with ebitenmobile and exposes the sample to an
// Android or iOS host.
package l2dmobile

import (
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"my_l2d/app"
)

var (
	ErrNotStarted     = errors.New("l2dmobile: not started")
	ErrAlreadyStarted = errors.New("l2dmobile: already started")
)

var (
	mu      sync.Mutex
	current *app.App
)

// Start loads the sample from resourceDir and hands it to the mobile
// runner. The runner takes a single game, so Start succeeds only once.
func Start(resourceDir string) error {
	mu.Lock()
	defer mu.Unlock()
	if current != nil {
		return ErrAlreadyStarted
	}

	cfg := app.LoadConfig()
	cfg.ResourcesPath = resourceDir

	logger := app.NewLogger(cfg)
	a, err := app.New(cfg, os.DirFS(resourceDir), logger)
	if err != nil {
		return err
	}

	current = a
	mobile.SetGame(a, nil)
	logger.Info("Mobile sample started", slog.String("resources", resourceDir))
	return nil
}

func push(cmd app.Command) error {
	mu.Lock()
	a := current
	mu.Unlock()

	if a == nil {
		return ErrNotStarted
	}
	if err := cmd.Validate(); err != nil {
		return err
	}
	return a.Commands().Push(cmd)
}

func StartMotion(group string, no int, priority int) error {
	return push(app.Command{Kind: app.CommandStartMotion, Group: group, No: no, Priority: priority})
}

func StartRandomMotion(group string, priority int) error {
	return push(app.Command{Kind: app.CommandStartRandomMotion, Group: group, Priority: priority})
}

func SetExpression(expressionID string) error {
	return push(app.Command{Kind: app.CommandSetExpression, Expression: expressionID})
}

func SetRandomExpression() error {
	return push(app.Command{Kind: app.CommandSetRandomExpression})
}

func NextScene() error {
	return push(app.Command{Kind: app.CommandNextScene})
}

// Dummy is required by ebitenmobile to export the package.
func Dummy() {}
