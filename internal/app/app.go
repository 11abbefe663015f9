// Package app wires configuration into the running services shared by the
// HTTP server and the CLI.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/abhisek/tutor/internal/config"
	"github.com/abhisek/tutor/internal/lessons"
	"github.com/abhisek/tutor/internal/llm"
	"github.com/abhisek/tutor/internal/platform/logger"
	"github.com/abhisek/tutor/internal/quiz"
	"github.com/abhisek/tutor/internal/session"
	"github.com/abhisek/tutor/internal/store"
	"github.com/abhisek/tutor/internal/tutor"
)

// App holds the constructed services. Close releases the event database and
// any Redis connection.
type App struct {
	Config   *config.Config
	Log      *logger.Logger
	Provider llm.Provider
	Sessions session.Store
	Tutor    *tutor.Service
	Quiz     *quiz.Generator

	closers []func() error
}

// New builds every service from cfg. The event log is skipped when
// disabled; a missing LLM key is reported on first use, not here.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.Nop()
	}
	a := &App{Config: cfg, Log: log}

	var events store.EventRepo
	if cfg.EventLog {
		st, err := openEventStore(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, st.Close)
		events = st.EventRepo()
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, events, log.With("component", "llm"))
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("LLM provider: %w", err)
	}
	if verr := cfg.LLM.Validate(); verr != nil {
		log.Warn("LLM provider not configured; generation requests will fail", "provider", cfg.LLM.Provider, "error", verr)
	}
	a.Provider = provider

	sessions, err := a.newSessionStore(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Sessions = sessions

	a.Tutor = tutor.NewService(
		lessons.NewService(provider, lessons.DefaultConfig()),
		sessions,
		tutor.WithLogger(log.With("component", "tutor")),
	)
	a.Quiz = quiz.NewGenerator(provider, quiz.DefaultConfig())
	return a, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func openEventStore(path string) (*store.Store, error) {
	if path == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		path = p
	} else if err := store.EnsureDir(path); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open event store: %w", err)
	}
	return st, nil
}

func (a *App) newSessionStore(ctx context.Context) (session.Store, error) {
	sc := a.Config.Session
	switch strings.ToLower(sc.Backend) {
	case "", "memory":
		log := a.Log.With("component", "sessions")
		return session.NewMemoryStore(sc.Capacity, sc.TTL, session.WithEvictHook(func(id string) {
			log.Debug("session evicted", "session_id", id)
		})), nil
	case "redis":
		rdb, err := newRedisClient(ctx, a.Config.Redis, a.Log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		return session.NewRedisStore(rdb, a.Config.Redis.Prefix, sc.TTL), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", sc.Backend)
	}
}

func newRedisClient(ctx context.Context, cfg config.RedisConfig, log *logger.Logger) (*goredis.Client, error) {
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing TUTOR_REDIS_ADDR")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	log.With("service", "RedisSessions").Info("connected to redis", "addr", addr)
	return rdb, nil
}
