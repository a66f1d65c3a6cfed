package commands

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"tableflip.dev/diary/pkg/config"
	"tableflip.dev/diary/pkg/identity"
	"tableflip.dev/diary/pkg/journal"
	"tableflip.dev/diary/pkg/logging"
	"tableflip.dev/diary/pkg/session"
	"tableflip.dev/diary/pkg/store"
)

// env is everything a command needs once configuration has been read.
type env struct {
	Config  *config.Config
	Log     *zap.Logger
	Store   *store.Disk
	Session *session.Session

	flush func()
}

type envOptions struct {
	// quiet sends logs to the configured file only, for front-ends that own
	// the terminal.
	quiet bool
}

func loadConfig() (*config.Config, error) {
	if co.File != "" {
		return config.LoadFile(co.File)
	}
	return config.Load()
}

// openEnv reads configuration, opens the store and starts a session.
func openEnv(ctx context.Context, o envOptions) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, flush, err := logging.New(logging.Options{
		Debug:   co.Debug || cfg.Debug,
		Path:    cfg.Log,
		Discard: o.quiet,
	})
	if err != nil {
		return nil, err
	}
	if cfg.File != "" {
		log.Debug("config loaded", zap.String("file", cfg.File))
	}

	disk, err := store.Load(cfg, store.WithLogger(log.Named("store")))
	if err != nil {
		flush()
		return nil, fmt.Errorf("open store: %w", err)
	}

	provider, err := identity.NewLocal(identity.LocalOptions{
		Accounts:    cfg.Accounts,
		SessionPath: cfg.Session,
		Secret:      cfg.Secret,
		KeyPath:     cfg.Key,
		TTL:         cfg.SessionTTL,
		Logger:      log.Named("identity"),
	})
	if err != nil {
		flush()
		return nil, err
	}

	j := journal.New(disk, journal.WithLogger(log.Named("journal")))
	s := session.New(provider, j, session.WithLogger(log.Named("session")))
	if err := s.Start(ctx); err != nil {
		flush()
		return nil, err
	}

	return &env{
		Config:  cfg,
		Log:     log,
		Store:   disk,
		Session: s,
		flush:   flush,
	}, nil
}

func (e *env) Close() {
	e.Session.Stop()
	e.Session.Journal().Notifications().Close()
	e.flush()
}
