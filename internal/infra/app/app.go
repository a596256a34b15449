package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/ingberrio/erp-sub001/internal/infra/config"
	"github.com/ingberrio/erp-sub001/internal/infra/logger"
	"github.com/ingberrio/erp-sub001/internal/infra/security"
	"github.com/ingberrio/erp-sub001/internal/restapi"
	"github.com/ingberrio/erp-sub001/internal/tui"
)

// Application wires config, logging, the API client and the terminal UI.
type Application struct {
	cfg    *config.AppConfig
	logger *zap.Logger
	model  tui.Model
}

func New(cfg *config.AppConfig) (*Application, error) {
	log, err := logger.New(cfg.App.Env, cfg.App.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	actor, err := security.ActorFromToken(cfg.API.Token)
	if err != nil {
		return nil, fmt.Errorf("read access token: %w", err)
	}

	client, err := restapi.New(cfg.API.BaseURL, cfg.API.Token, cfg.API.Timeout, log)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	gateways := restapi.NewGateways(client)

	log.Info("console starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("api", cfg.API.BaseURL),
		zap.String("token", logger.MaskString(cfg.API.Token)),
		zap.Bool("global_admin", actor.IsGlobalAdmin),
	)

	return &Application{
		cfg:    cfg,
		logger: log,
		model:  tui.New(actor, gateways, cfg.UI.PageSize),
	}, nil
}

// Run blocks until the UI exits or ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	defer func() { _ = a.logger.Sync() }()

	program := tea.NewProgram(a.model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run console: %w", err)
	}

	a.logger.Info("console stopped")
	return nil
}
