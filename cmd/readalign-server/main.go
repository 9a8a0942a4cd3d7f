// Command readalign-server provides a REST API for read alignment.
//
// Usage:
//
//	readalign-server [options]
//
// Options:
//
//	-port     Port to listen on (default: 8080)
//	-host     Host to bind to (default: localhost)
//	-matrix   Protein substitution matrix (default: BLOSUM62)
//	-profile  Write a cpu or mem profile to the working directory
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/aria-lang/readalign-go/api"
	"github.com/aria-lang/readalign-go/pkg/readalign"
)

func main() {
	port := flag.Int("port", 8080, "Port to listen on")
	host := flag.String("host", "localhost", "Host to bind to")
	matrix := flag.String("matrix", "BLOSUM62", "Protein substitution matrix")
	prof := flag.String("profile", "", "Profile mode: cpu or mem")
	flag.Parse()

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	switch *prof {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.Quiet).Stop()
	default:
		log.Fatal("unknown profile mode", zap.String("profile", *prof))
	}

	m, err := readalign.LoadMatrix(*matrix)
	if err != nil {
		log.Fatal("loading matrix", zap.Error(err))
	}
	p := readalign.DefaultParams()
	log.Info("parameters", zap.Stringer("params", p), zap.String("matrix", m.Name()))

	addr := fmt.Sprintf("%s:%d", *host, *port)
	server := &http.Server{
		Addr:         addr,
		Handler:      api.NewRouter(api.Config{Params: p, Matrix: m, Logger: log}),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	done := make(chan struct{})
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info("server is shutting down")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			log.Error("could not gracefully shut down", zap.Error(err))
		}
		close(done)
	}()

	log.Info("readalign server starting", zap.String("addr", "http://"+addr))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("could not listen", zap.String("addr", addr), zap.Error(err))
	}

	<-done
	log.Info("server stopped")
}
