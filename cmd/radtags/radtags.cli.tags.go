package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/itsatony/go-radtags"
)

// tagsConfig holds parsed tags command configuration
type tagsConfig struct {
	format string
}

func runTags(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseTagsFlags(args)
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgInvalidFormat, err)
		return ExitCodeUsageError
	}

	engine, err := radtags.New()
	if err != nil {
		fmt.Fprintf(stderr, FmtErrorWithCause, ErrMsgEngineFailed, err)
		return ExitCodeError
	}

	tags := engine.Tags()
	if cfg.format == OutputFormatJSON {
		jsonBytes, _ := json.MarshalIndent(tags, "", "  ")
		fmt.Fprintln(stdout, string(jsonBytes))
		return ExitCodeSuccess
	}
	for _, name := range tags {
		fmt.Fprintln(stdout, name)
	}
	return ExitCodeSuccess
}

func parseTagsFlags(args []string) (*tagsConfig, error) {
	fs := flag.NewFlagSet(CmdNameTags, flag.ContinueOnError)
	fs.SetOutput(io.Discard) // Suppress default error messages

	cfg := &tagsConfig{}
	fs.StringVar(&cfg.format, FlagFormat, FlagDefaultFormat, "")
	fs.StringVar(&cfg.format, FlagFormatShort, FlagDefaultFormat, "")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if cfg.format != OutputFormatText && cfg.format != OutputFormatJSON {
		return nil, errors.New(ErrMsgInvalidFormat)
	}

	return cfg, nil
}
