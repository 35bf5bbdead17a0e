package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/content"
	portfoliomcp "github.com/Zachkp/portfolio/internal/mcp"
	"github.com/Zachkp/portfolio/internal/sections"
	"github.com/Zachkp/portfolio/internal/visits"
	"github.com/Zachkp/portfolio/internal/web"
)

// app is everything a command needs, built from the loaded config.
type app struct {
	store  *content.Store
	ledger *visits.Ledger
	server *web.Server
}

func (a *app) Close() error {
	if a.ledger != nil {
		return a.ledger.Close()
	}
	return nil
}

func newApp(cfg *config.Config, log *zap.Logger) (*app, error) {
	store, err := content.Open(cfg.ContentPath, log)
	if err != nil {
		return nil, fmt.Errorf("loading content: %w", err)
	}
	a := &app{store: store}

	deps := web.Deps{
		Store:   store,
		Builder: sections.NewBuilder(content.NewMarkdown()),
		Mailer: contact.NewMailer(contact.Config{
			Host: cfg.SMTP.Host,
			Port: cfg.SMTP.Port,
			User: cfg.SMTP.User,
			Pass: cfg.SMTP.Pass,
			To:   cfg.SMTP.To,
		}, nil),
		Log: log,
	}

	if cfg.Counter.Enabled {
		client := visits.NewClient(visits.ClientConfig{
			BaseURL:   cfg.Counter.BaseURL,
			RelayURL:  cfg.Counter.RelayURL,
			Namespace: cfg.Counter.Namespace,
			Key:       cfg.Counter.Key,
			Timeout:   cfg.Counter.Timeout,
		}, nil)
		deps.Tracker = visits.NewTracker(client, log.Named("visits"))
	}

	if cfg.Ledger.Path != "" {
		a.ledger, err = visits.OpenLedger(cfg.Ledger.Path, cfg.Ledger.Salt)
		if err != nil {
			return nil, err
		}
		deps.Ledger = a.ledger
		log.Info("privacy: visit ledger enabled with hashed IP addresses", zap.String("path", cfg.Ledger.Path))
	}

	if cfg.MCP.Enabled {
		deps.MCP = portfoliomcp.Handler(portfoliomcp.NewServer(store, Version))
	}

	token := cfg.Admin.Token
	if token == "" {
		token, err = web.GenerateAdminToken()
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("generating admin token: %w", err)
		}
		if cfg.Mode == "debug" {
			log.Info("admin token (dev only)", zap.String("token", token))
		}
	}

	a.server, err = web.New(deps, web.Options{
		Mode:           cfg.Mode,
		AdminToken:     token,
		TypingSpeed:    cfg.TypingSpeed,
		Retention:      cfg.Ledger.Retention,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}
