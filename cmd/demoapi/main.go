// Package main runs the simulated demo API as a standalone server, useful
// for developing the console without a live backend.
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/antigravity/console/internal/demoapi"
	"github.com/antigravity/console/internal/logger"
	"go.uber.org/zap"
)

func main() {
	addr := flag.String("a", "localhost:8000", "listen address (ip:port)")
	level := flag.String("log-level", "Info", "log level")
	flag.Parse()

	log := logger.New()
	if err := log.Init(*level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	server := demoapi.NewServer(log.Log)

	log.Log.Info("starting demo API", zap.String("addr", *addr))
	if err := http.ListenAndServe(*addr, server.Router()); err != nil {
		log.Log.Fatal("demo API failed", zap.Error(err))
	}
}
