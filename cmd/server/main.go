package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/swiftship/courier-web/courierapi"
	"github.com/swiftship/courier-web/internal/config"
	"github.com/swiftship/courier-web/server"
	"github.com/swiftship/courier-web/session"
	"github.com/swiftship/courier-web/sessionstore"
	"github.com/swiftship/courier-web/token"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	repo, cleanup, err := newSessionRepo(c)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}
	defer cleanup()

	api := courierapi.New(c)
	sessions, err := session.NewManager(api, repo, token.NewUnverifiedDecoder(), c)
	if err != nil {
		return fmt.Errorf("session manager: %w", err)
	}

	handler, err := server.New(c, api, sessions)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	httpServer := &http.Server{Addr: c.GetPort(), Handler: handler}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

// newSessionRepo picks the session backing store. A configured db path gets
// the persistent bbolt store so logins survive restarts; otherwise sessions
// live in memory.
func newSessionRepo(c config.Config) (session.Repo, func(), error) {
	dbPath := c.GetSessionDBPath()
	if dbPath == "" {
		return sessionstore.NewInMemory(), func() {}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, nil, err
	}
	store, err := sessionstore.NewBolt(dbPath, c.GetMaxSessionAge())
	if err != nil {
		return nil, nil, err
	}
	return store, func() {
		if err := store.Close(); err != nil {
			log.Printf("Error closing session store: %v\n", err)
		}
	}, nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
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
