package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-radtags"
	"go.uber.org/zap"
)

// renderConfig holds parsed render command configuration
type renderConfig struct {
	templatePath string
	configPath   string
	pageURL      string
	fixturesPath string
	outputPath   string
}

func runRender(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseRenderFlags(args)
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
	logger.Debug(LogMsgConfigLoaded, zap.String(LogFieldConfig, cfg.configPath))

	// Read template
	templateSource, err := readInput(cfg.templatePath, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}

	store, err := conf.openStore(logger)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgOpenStoreFailed, err)
		return ExitCodeError
	}
	defer store.Close()

	ctx := context.Background()
	if cfg.fixturesPath != "" {
		if code := seedFromFile(ctx, cfg.fixturesPath, stdin, store, logger, stderr); code != ExitCodeSuccess {
			return code
		}
	}

	engine, err := radtags.New(conf.engineOptions(store, logger)...)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgEngineFailed, err)
		return ExitCodeError
	}

	var env radtags.Env
	if cfg.pageURL != "" {
		page, err := store.PageByURL(ctx, cfg.pageURL)
		if err != nil {
			fmt.Fprintf(stderr, FmtErrorWithDetail, ErrMsgPageNotFound, cfg.pageURL)
			return ExitCodeInputError
		}
		env.Page = page
	}

	result, err := engine.Render(ctx, string(templateSource), env)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgRenderFailed, err)
		return ExitCodeError
	}

	if err := writeOutput(cfg.outputPath, []byte(result), stdout); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgWriteOutputFailed, err)
		return ExitCodeError
	}
	logger.Info(LogMsgRendered, zap.String(LogFieldPage, cfg.pageURL), zap.String(LogFieldOutput, cfg.outputPath))

	return ExitCodeSuccess
}

func parseRenderFlags(args []string) (*renderConfig, error) {
	fs := flag.NewFlagSet(CmdNameRender, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &renderConfig{}

	fs.StringVar(&cfg.templatePath, FlagTemplate, "", "")
	fs.StringVar(&cfg.templatePath, FlagTemplateShort, "", "")
	fs.StringVar(&cfg.configPath, FlagConfig, "", "")
	fs.StringVar(&cfg.configPath, FlagConfigShort, "", "")
	fs.StringVar(&cfg.pageURL, FlagPage, "", "")
	fs.StringVar(&cfg.pageURL, FlagPageShort, "", "")
	fs.StringVar(&cfg.fixturesPath, FlagFixtures, "", "")
	fs.StringVar(&cfg.fixturesPath, FlagFixturesShort, "", "")
	fs.StringVar(&cfg.outputPath, FlagOutput, FlagDefaultOutput, "")
	fs.StringVar(&cfg.outputPath, FlagOutputShort, FlagDefaultOutput, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.templatePath == "" {
		return nil, errors.New(ErrMsgMissingTemplate)
	}

	return cfg, nil
}

// seedFromFile loads a fixtures file into store, reporting failures on stderr.
func seedFromFile(ctx context.Context, path string, stdin io.Reader, store radtags.Store, logger *zap.Logger, stderr io.Writer) int {
	data, err := readInput(path, stdin)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgReadFileFailed, err)
		return ExitCodeInputError
	}
	fixtures, err := radtags.ParseFixtures(data)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSeedFailed, err)
		return ExitCodeInputError
	}
	if err := fixtures.Load(ctx, store, logger); err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgSeedFailed, err)
		return ExitCodeError
	}
	return ExitCodeSuccess
}

