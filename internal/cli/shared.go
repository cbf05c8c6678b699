// Copyright 2025 Truthcrawl Contributors
//
// Package cli implements the truthcrawl command-line surface, one file
// per command group, following the teacher's cmd/cli package-per-group
// convention (each file exposes a Register<Group>(root) function, such as
// RegisterKeys, that the binary's main package wires in).
package cli

import (
	"log/slog"
	"os"
	"strings"

	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/errs"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/internal/obslog"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/config"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/signing"
	"github.com/RyanDickinsonDev/truthcrawl-sub000/pkg/store"
)

// DataDir and NodeKeyPath are bound to the root command's persistent
// flags in main; every subcommand reads them lazily through loadConfig
// and loadKeyPair rather than taking them as parameters.
var (
	DataDir     string
	NodeKeyPath string
)

func loadConfig() *config.Config {
	cfg := config.Load()
	if DataDir != "" {
		cfg.DataDir = DataDir
	}
	if NodeKeyPath != "" {
		cfg.NodeKeyPath = NodeKeyPath
	}
	return cfg
}

func loadStore() *store.Store {
	return store.New(loadConfig().DataDir)
}

// loadLogger builds the process logger from config. An unparseable log
// level falls back to info, and if obslog.New fails a Noop logger is
// returned, so logging configuration never blocks an otherwise valid
// command from running.
func loadLogger() *obslog.Logger {
	cfg := loadConfig()
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}
	logger, err := obslog.New(obslog.Config{Level: level, Format: cfg.LogFormat, Output: "stderr"})
	if err != nil {
		return obslog.Noop()
	}
	return logger
}

func loadKeyPair() (*signing.KeyPair, error) {
	cfg := loadConfig()
	if cfg.NodeKeyPath == "" {
		return nil, errs.New(errs.IllegalInput, "no node key configured: pass --node-key or set TRUTHCRAWL_NODE_KEY_PATH")
	}
	data, err := os.ReadFile(cfg.NodeKeyPath)
	if err != nil {
		return nil, errs.Wrapf(err, errs.IoError, "read node key file %s", cfg.NodeKeyPath)
	}
	return signing.FromPrivateKeyBase64(strings.TrimSpace(string(data)))
}
