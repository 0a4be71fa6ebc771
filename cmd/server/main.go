package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"

	"github.com/quayside/entraportal/internal/config"
	applog "github.com/quayside/entraportal/internal/log"
	"github.com/quayside/entraportal/provider"
	"github.com/quayside/entraportal/server"
	"github.com/quayside/entraportal/server/authflow"
	"github.com/quayside/entraportal/sessions"
)

const janitorInterval = 5 * time.Minute

var logger = applog.New("main")

func main() {
	if err := run(); err != nil {
		logger.Fatal().Err(err).Msg("Error running server")
	}
	logger.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("Recovered from panic")
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c, err := config.New()
	if err != nil {
		return fmt.Errorf("config.New: %w", err)
	}
	displayAppname(c.GetAppName())

	sessionRepo, closeRepo, err := newSessionRepo(c)
	if err != nil {
		return fmt.Errorf("newSessionRepo: %w", err)
	}
	defer closeRepo()

	srv, err := server.New(c, provider.New(c), sessionRepo, authflow.NewInMemoryRepo())
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	janitorCtx, stopJanitor := context.WithCancel(context.Background())
	defer stopJanitor()
	srv.StartJanitor(janitorCtx, janitorInterval)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	return shutdown(httpServer)
}

// newSessionRepo picks the sqlite-backed store when a database path is
// configured, otherwise sessions live in memory.
func newSessionRepo(c config.Config) (sessions.Repo, func(), error) {
	path := c.GetDatabasePath()
	if path == "" {
		return sessions.NewInMemoryRepo(), func() {}, nil
	}

	db, err := sessions.OpenDB(path)
	if err != nil {
		return nil, nil, err
	}
	repo, err := sessions.NewBunRepo(context.Background(), db)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return repo, func() { db.Close() }, nil
}

func listenAndServe(httpServer *http.Server) {
	logger.Info().Str("addr", httpServer.Addr).Msg("Server listening")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Err(err).Msg("server.ListenAndServe")
	}
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
