package command

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/fittrackhq/fittrack-go/internal/api"
	"github.com/fittrackhq/fittrack-go/internal/auth"
	"github.com/fittrackhq/fittrack-go/internal/cli/config"
	"github.com/fittrackhq/fittrack-go/internal/cli/output"
	"github.com/fittrackhq/fittrack-go/internal/fitness"
	"github.com/fittrackhq/fittrack-go/internal/session"
	"github.com/fittrackhq/fittrack-go/internal/store"
	"github.com/fittrackhq/fittrack-go/internal/telemetry/logger"
)

// Env is the assembled client stack for one command run (or one REPL
// session). Close releases the token store.
type Env struct {
	Config  *config.Config
	Log     logger.Logger
	Client  *api.Client
	Auth    *auth.Service
	Session *session.Store
	Fitness *fitness.Service
}

// NewEnv builds the stack from resolved configuration.
func NewEnv(cfg *config.Config) (*Env, error) {
	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	tokens, err := newTokenStore(cfg)
	if err != nil {
		return nil, err
	}

	opts := []api.Option{}
	if cfg.CAFile != "" {
		opts = append(opts, api.WithCAFile(cfg.CAFile))
	}
	if cfg.RateLimit > 0 {
		opts = append(opts, api.WithRateLimit(cfg.RateLimit))
	}
	client := api.NewClient(cfg.Server, opts...)

	authSvc := auth.NewService(client)
	sess := session.NewStore(authSvc, tokens, log)
	fetch := api.NewAuthedClient(client, sess)

	return &Env{
		Config:  cfg,
		Log:     log,
		Client:  client,
		Auth:    authSvc,
		Session: sess,
		Fitness: fitness.NewService(fetch),
	}, nil
}

// newEnv resolves config from the CLI context and builds the stack.
func newEnv(c *cli.Context) (*Env, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	return NewEnv(cfg)
}

// Close releases the underlying token store.
func (e *Env) Close() error {
	return e.Session.Close()
}

// Formatter returns the configured output formatter.
func (e *Env) Formatter() output.Formatter {
	return output.NewFormatter(output.Format(e.Config.Output))
}

func newTokenStore(cfg *config.Config) (store.TokenStore, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return store.NewMemStore(), nil
	case config.StoreBadger:
		return store.NewBadgerStore(filepath.Join(cfg.DataDir, "tokendb"))
	case config.StoreFile:
		return store.NewFileStore(cfg.DataDir)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store)
	}
}

// spin shows a spinner on stderr while fn runs, on interactive runs only.
func spin(message string, fn func() error) error {
	if fi, err := os.Stderr.Stat(); err == nil && fi.Mode()&os.ModeCharDevice != 0 {
		sp := output.NewSpinner(os.Stderr, message)
		sp.Start()
		defer sp.Stop()
	}
	return fn()
}
