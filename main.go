package main

import (
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/profile"

	"my_l2d/app"
	"my_l2d/internal/remote"
)

func HandleErr(err error) {
	if err != nil {
		panic(err)
	}
}

func main() {
	cfg := app.LoadConfig()

	logger := app.NewLogger(cfg)
	slog.SetDefault(logger)

	switch cfg.Profile {
	case "cpu":
		defer profile.Start(profile.CPUProfile).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile).Stop()
	}

	a, err := app.New(cfg, os.DirFS(cfg.ResourcesPath), logger)
	HandleErr(err)
	defer a.Release()

	if cfg.RemoteAddr != "" {
		server := remote.NewServer(func(message []byte) error {
			cmd, err := app.DecodeCommand(message)
			if err != nil {
				return err
			}
			return a.Commands().Push(cmd)
		}, logger)
		defer server.Close()

		go func() {
			if err := server.ListenAndServe(cfg.RemoteAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Remote control stopped", slog.Any("err", err))
			}
		}()
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	HandleErr(ebiten.RunGame(a))
}
