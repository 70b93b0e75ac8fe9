// Package main starts the Antigravity console: it wires configuration,
// logging, the credential store, the session machine, and the interactive
// shell.
package main

import (
	"cmp"
	"context"
	"fmt"
	"os"

	"github.com/antigravity/console/internal/api"
	"github.com/antigravity/console/internal/config"
	"github.com/antigravity/console/internal/console"
	"github.com/antigravity/console/internal/logger"
	"github.com/antigravity/console/internal/session"
	"github.com/antigravity/console/internal/tokenstore"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	options, err := config.Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("Antigravity Console %s (%s)\n", cmp.Or(version, "dev"), cmp.Or(buildDate, "N/A"))

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	store := tokenstore.New(options.TokenFile)
	client := api.New(options.APIBaseURL, nil, log.Log)
	machine := session.NewMachine(store, client, log.Log)

	machine.Subscribe(func(snap session.Snapshot) {
		log.Log.Debug("session transition", zap.Stringer("state", snap.State))
	})

	shell := console.New(options, machine, client, log.Log, os.Stdin, os.Stdout)
	shell.Run(context.Background())
}
