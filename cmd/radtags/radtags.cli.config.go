package main

import (
	"io"
	"os"

	"github.com/itsatony/go-radtags"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// cliConfig is the YAML configuration shared by the render and seed commands.
//
//	store:
//	  driver: sqlite
//	  dsn: file:site.db
//	site:
//	  scheme: https
//	  host: example.com
//	prefix: r
//	log_level: info
type cliConfig struct {
	Store struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"store"`
	Site struct {
		Scheme string `yaml:"scheme"`
		Host   string `yaml:"host"`
	} `yaml:"site"`
	Prefix   string `yaml:"prefix"`
	LogLevel string `yaml:"log_level"`
}

func defaultCLIConfig() *cliConfig {
	cfg := &cliConfig{LogLevel: ConfigDefaultLogLevel}
	cfg.Store.Driver = ConfigDefaultDriver
	return cfg
}

// loadConfig reads the config file; an empty path yields the defaults.
func loadConfig(path string) (*cliConfig, error) {
	cfg := defaultCLIConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Store.Driver == "" {
		cfg.Store.Driver = ConfigDefaultDriver
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = ConfigDefaultLogLevel
	}
	return cfg, nil
}

// newLogger builds a console logger at the configured level writing to w.
func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), lvl)
	return zap.New(core), nil
}

// openStore opens the configured store driver.
func (c *cliConfig) openStore(logger *zap.Logger) (radtags.Store, error) {
	store, err := radtags.OpenStore(c.Store.Driver, c.Store.DSN)
	if err != nil {
		return nil, err
	}
	logger.Debug(radtags.LogMsgStoreOpened, zap.String(LogFieldDriver, c.Store.Driver))
	return store, nil
}

// engineOptions maps the config onto engine options.
func (c *cliConfig) engineOptions(store radtags.Store, logger *zap.Logger) []radtags.Option {
	return []radtags.Option{
		radtags.WithStore(store),
		radtags.WithLogger(logger),
		radtags.WithPrefix(c.Prefix),
		radtags.WithRequest(radtags.Request{Scheme: c.Site.Scheme, Host: c.Site.Host}),
	}
}
