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
	"github.com/jrsteele09/gcn-portal/circulars"
	"github.com/jrsteele09/gcn-portal/cognito"
	"github.com/jrsteele09/gcn-portal/datacite"
	"github.com/jrsteele09/gcn-portal/internal/config"
	"github.com/jrsteele09/gcn-portal/server"
	"github.com/jrsteele09/gcn-portal/server/authflowrepo"
	"github.com/jrsteele09/gcn-portal/sessions"
	"github.com/jrsteele09/gcn-portal/users"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Error running server")
	}
	log.Info().Msg("Server stopped")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Str("stack", string(debug.Stack())).Msgf("Recovered from panic: %v", r)
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	configureLogging(c)
	displayAppname(c.GetAppName())

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	ctx := context.Background()
	handler, err := newServer(ctx, c)
	if err != nil {
		return err
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler, ReadHeaderTimeout: 10 * time.Second}
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- listenAndServe(httpServer)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-waitForStopSignal():
	}
	return shutdown(httpServer)
}

func newServer(ctx context.Context, c config.Config) (*server.Server, error) {
	store, err := sessions.NewCookieStore(c)
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	idp, err := cognito.New(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("cognito client: %w", err)
	}

	registrar := datacite.New(c)
	s, err := server.New(c, server.Services{
		Sessions:  store,
		Circulars: circulars.NewService(circulars.NewInMemoryRepo(0), registrar),
		DOIs:      registrar,
		Profiles:  users.NewEditor(idp),
		AuthFlows: authflowrepo.NewCacheRepo(authflowrepo.DefaultTTL),
	})
	if err != nil {
		return nil, err
	}

	warmCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.Warm(warmCtx); err != nil {
		// Login retries discovery on first use.
		log.Warn().Err(err).Msg("OIDC discovery failed")
	}
	return s, nil
}

func configureLogging(c config.Config) {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.GetEnv() == config.EnvDevelopment {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

func listenAndServe(server *http.Server) error {
	log.Info().Str("addr", server.Addr).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() <-chan os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	return stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
