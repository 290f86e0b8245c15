// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-key-keeper/internal/adapter"
	"github.com/MKhiriev/go-key-keeper/internal/client"
	"github.com/MKhiriev/go-key-keeper/internal/config"
	"github.com/MKhiriev/go-key-keeper/internal/crypto"
	"github.com/MKhiriev/go-key-keeper/internal/logger"
	"github.com/MKhiriev/go-key-keeper/internal/service"
	"github.com/MKhiriev/go-key-keeper/internal/store"
	"github.com/MKhiriev/go-key-keeper/internal/tui"
	"github.com/MKhiriev/go-key-keeper/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg, err := config.GetStructuredConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error getting configs:", err)
		return 2
	}
	if cfg.Command() == "version" {
		printBuildInfo()
		return 0
	}

	log := logger.NewClientLogger("go-key-keeper", cfg.Log.File)
	if err = logger.SetLevel(cfg.Log.Level); err != nil {
		log.Warn().Err(err).Msg("unknown log level, keeping default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := store.NewSecretKeyRepository(ctx, cfg.Storage, log)
	if err != nil {
		log.Err(err).Msg("create secret key store")
		fmt.Fprintln(os.Stderr, client.Describe(err))
		return 1
	}
	defer repo.Close()

	vaultAdapter, err := adapter.NewHTTPVaultAdapter(cfg.Adapter, log)
	if err != nil {
		log.Err(err).Msg("create vault adapter")
		fmt.Fprintln(os.Stderr, client.Describe(err))
		return 1
	}

	engine := crypto.NewEngine(
		crypto.NewArgon2idKDF(crypto.WithLimits(cfg.Crypto.KDFLimits())),
		crypto.NewAESGCMCipher(),
		crypto.WithDefaultParams(cfg.Crypto.KDFParams()),
	)
	services := service.NewClientServices(repo, vaultAdapter, engine, workers.NewPool(cfg.Workers.DecryptConcurrency), log)
	ui := tui.New(services, log)

	app := client.NewApp(cfg, services, vaultAdapter, ui, log)
	if err = app.Run(ctx); err != nil {
		log.Err(err).Str("command", cfg.Command()).Msg("client run error")
		fmt.Fprintln(os.Stderr, client.Describe(err))
		return 1
	}
	return 0
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
