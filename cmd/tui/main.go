package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jhoicas/reciboo-portal/internal/app"
	"github.com/jhoicas/reciboo-portal/internal/interfaces/tui"
	"github.com/jhoicas/reciboo-portal/pkg/config"
	"github.com/jhoicas/reciboo-portal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	logFile, err := os.OpenFile(cfg.TUI.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		fmt.Fprintln(os.Stderr, "abrir log:", err)
		os.Exit(1)
	}
	defer logFile.Close()

	log := logger.New(logger.Config{
		Env:   "production", // JSON: el ConsoleWriter colorea y ensucia el archivo
		Level: cfg.App.LogLevel,
		Out:   logFile,
	})
	log.Info().Str("backend", cfg.Reciboo.BaseURL).Str("catalog", cfg.Reciboo.Catalog).Msg("iniciando TUI")

	portal, err := app.New(cfg, log.Zerolog())
	if err != nil {
		log.Error().Err(err).Msg("inicializar aplicación")
		fmt.Fprintln(os.Stderr, "inicializar aplicación:", err)
		os.Exit(1)
	}

	model := tui.New(tui.Deps{
		Auth:     portal.Auth,
		Logout:   portal.Logout,
		Wizard:   portal.Wizard,
		Notices:  portal.Notices,
		Acuse:    portal.Acuse,
		AcuseDir: cfg.TUI.AcuseDir,
	})
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		log.Error().Err(err).Msg("TUI finalizada con error")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	log.Info().Msg("TUI detenida")
}
