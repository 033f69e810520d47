package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/traintrack/traintrack/config"
	"github.com/traintrack/traintrack/database"
	"github.com/traintrack/traintrack/handlers"
	"github.com/traintrack/traintrack/server"
	authsvc "github.com/traintrack/traintrack/services/auth"
	"github.com/traintrack/traintrack/services/jwt"
	"github.com/traintrack/traintrack/services/logging"
	"github.com/traintrack/traintrack/services/stats"
	"github.com/traintrack/traintrack/services/tokens"
	"github.com/traintrack/traintrack/services/user"
	"github.com/traintrack/traintrack/services/workout"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

type App struct {
	fx *fx.App
}

// New wires the whole application. The token record model is migrated
// unconditionally; even with a cache-backed token store the relational
// tables for users and workouts are always present.
func New(cfg *config.Config) *App {
	fxApp := fx.New(
		config.NewProvider(cfg),
		fx.Supply(database.WithModels(
			&user.User{},
			&workout.Workout{},
			&tokens.Record{},
		)),
		logging.Module,
		database.Module,
		server.NewProvider(),
		jwt.Options,
		tokens.Module,
		authsvc.Module,
		user.Module,
		workout.Module,
		stats.Module,
		handlers.Module,
		fx.WithLogger(func(logger *logging.Service) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Logger()}
		}),
	)

	return &App{fx: fxApp}
}

func (a *App) Start(ctx context.Context) error {
	return a.fx.Start(ctx)
}

func (a *App) Stop(ctx context.Context) error {
	return a.fx.Stop(ctx)
}

func (a *App) Run() {
	if err := a.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	log.Printf("Received signal %v, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.Stop(ctx); err != nil {
		log.Printf("Failed to stop application gracefully: %v", err)
	}
}
