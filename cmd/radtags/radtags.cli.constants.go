package main

// Command names
const (
	CmdNameRender   = "render"
	CmdNameValidate = "validate"
	CmdNameSeed     = "seed"
	CmdNameTags     = "tags"
	CmdNameVersion  = "version"
	CmdNameHelp     = "help"
)

// Flag names - long form
const (
	FlagTemplate = "template"
	FlagConfig   = "config"
	FlagPage     = "page"
	FlagFixtures = "fixtures"
	FlagOutput   = "output"
	FlagFormat   = "format"
)

// Flag names - short form
const (
	FlagTemplateShort = "t"
	FlagConfigShort   = "c"
	FlagPageShort     = "p"
	FlagFixturesShort = "f"
	FlagOutputShort   = "o"
	FlagFormatShort   = "F"
)

// Flag default values
const (
	FlagDefaultOutput = "-" // stdout
	FlagDefaultFormat = "text"
)

// Output formats
const (
	OutputFormatText = "text"
	OutputFormatJSON = "json"
)

// Exit codes
const (
	ExitCodeSuccess         = 0
	ExitCodeError           = 1
	ExitCodeUsageError      = 2
	ExitCodeValidationError = 3
	ExitCodeInputError      = 4
)

// Input source indicators
const (
	InputSourceStdin = "-"
)

// Config defaults
const (
	ConfigDefaultDriver   = "memory"
	ConfigDefaultLogLevel = "warn"
)

// Error messages - ALL must be constants
const (
	ErrMsgUnknownCommand      = "unknown command"
	ErrMsgMissingTemplate     = "template source required"
	ErrMsgMissingFixtures     = "fixtures file required"
	ErrMsgInvalidFlags        = "invalid flags"
	ErrMsgReadFileFailed      = "failed to read file"
	ErrMsgWriteOutputFailed   = "failed to write output"
	ErrMsgParseTemplateFailed = "template parsing failed"
	ErrMsgRenderFailed        = "template rendering failed"
	ErrMsgInvalidFormat       = "invalid output format"
	ErrMsgConfigFailed        = "failed to load config"
	ErrMsgInvalidLogLevel     = "invalid log level"
	ErrMsgOpenStoreFailed     = "failed to open store"
	ErrMsgEngineFailed        = "failed to create engine"
	ErrMsgPageNotFound        = "page not found"
	ErrMsgSeedFailed          = "failed to load fixtures"
)

// Log messages
const (
	LogMsgConfigLoaded = "config loaded"
	LogMsgRendered     = "page rendered"
	LogMsgSeeded       = "store seeded"
)

// Log fields
const (
	LogFieldConfig   = "config"
	LogFieldDriver   = "driver"
	LogFieldPage     = "page"
	LogFieldOutput   = "output"
	LogFieldFixtures = "fixtures"
)

// Help text templates
const (
	HelpMainUsage = `radtags - author and blog tags for Radius-style page templates

Usage:
    radtags <command> [options]

Commands:
    render      Render a template for a page
    validate    Check template syntax without rendering
    seed        Load YAML fixtures into the configured store
    tags        List the available tags
    version     Show version information
    help        Show help for a command

Use "radtags help <command>" for more information about a command.`

	HelpRenderUsage = `Render a template for a page

Usage:
    radtags render [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -c, --config <file>     YAML config file (default: in-memory store)
    -p, --page <url>        URL of the page to render (optional)
    -f, --fixtures <file>   YAML fixtures loaded before rendering
    -o, --output <file>     Output file (default: stdout)

Examples:
    radtags render -t sidebar.html -c site.yaml -p /articles/
    radtags render -t byline.html -f site.fixtures.yaml -p /about/
    cat footer.html | radtags render -t - -c site.yaml -p / -o footer.out.html`

	HelpValidateUsage = `Check template syntax without rendering

Usage:
    radtags validate [options]

Options:
    -t, --template <file>   Template file (use "-" for stdin)
    -F, --format <format>   Output format: text, json (default: text)

Examples:
    radtags validate -t sidebar.html
    cat sidebar.html | radtags validate -t - -F json`

	HelpSeedUsage = `Load YAML fixtures into the configured store

Usage:
    radtags seed [options]

Options:
    -c, --config <file>     YAML config file
    -f, --fixtures <file>   YAML fixtures file (use "-" for stdin)

Examples:
    radtags seed -c site.yaml -f site.fixtures.yaml`

	HelpTagsUsage = `List the available tags

Usage:
    radtags tags [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpVersionUsage = `Show version information

Usage:
    radtags version [options]

Options:
    -F, --format <format>   Output format: text, json (default: text)`

	HelpHelpUsage = `Show help for a command

Usage:
    radtags help [command]

Commands:
    render      Show help for render command
    validate    Show help for validate command
    seed        Show help for seed command
    tags        Show help for tags command
    version     Show help for version command`
)

// Version output format templates
const (
	VersionTextTemplate = "go-radtags version %s\nCommit: %s\nBranch: %s\nBuilt: %s\nGo: %s"
	VersionUnknown      = "unknown"
)

// Validation output format templates
const (
	ValidationTextSuccess = "Template is valid"
	ValidationTextFailure = "Template is invalid: %s at line %s, column %s"
)

// CLI metadata
const (
	CLIName = "radtags"
)

// File permission constant
const (
	FilePermissions = 0644
)

// Format string constants
const (
	FmtErrorWithDetail = "%s: %s\n"
	FmtErrorWithCause  = "%s: %v\n"
	FmtNewline         = "\n"
)
