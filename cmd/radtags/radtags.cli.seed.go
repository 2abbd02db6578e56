package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// seedConfig holds parsed seed command configuration
type seedConfig struct {
	configPath   string
	fixturesPath string
}

func runSeed(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseSeedFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFlags, err)
		return ExitCodeUsageError
	}

	conf, err := loadConfig(cfg.configPath)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgConfigFailed, err)
		return ExitCodeInputError
	}
	logger, err := newLogger(conf.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidLogLevel, err)
		return ExitCodeInputError
	}
	defer func() { _ = logger.Sync() }()

	store, err := conf.openStore(logger)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgOpenStoreFailed, err)
		return ExitCodeError
	}
	defer store.Close()

	if code := seedFromFile(context.Background(), cfg.fixturesPath, stdin, store, logger, stderr); code != ExitCodeSuccess {
		return code
	}

	logger.Info(LogMsgSeeded,
		zap.String(LogFieldDriver, conf.Store.Driver),
		zap.String(LogFieldFixtures, cfg.fixturesPath))
	return ExitCodeSuccess
}

func parseSeedFlags(args []string) (*seedConfig, error) {
	fs := flag.NewFlagSet(CmdNameSeed, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &seedConfig{}

	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.fixturesPath, FlagFixtures, "", "")
	fs.StringVar(&cfg.fixturesPath, FlagFixturesShort, "", "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.fixturesPath == "" {
		return nil, errors.New(ErrMsgMissingFixtures)
	}

	return cfg, nil
}
