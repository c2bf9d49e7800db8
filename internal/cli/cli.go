// Package cli implements the archmap command-line interface.
//
// This package provides commands for computing component graph layouts,
// rendering them as DOT/SVG/PNG, inspecting clusters interactively, serving
// the HTTP API, and managing saved position overrides. The CLI is built
// using cobra and supports verbose logging via the charmbracelet/log
// library.
//
// # Commands
//
// The main commands are:
//   - layout: Compute a positioned node/edge graph from a components file
//   - render: Export a computed layout as DOT, SVG, or PNG
//   - inspect: Browse feature clusters and tiers interactively
//   - serve: Run the HTTP layout API
//   - positions: Manage saved position overrides
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/archmap-dev/archmap/pkg/buildinfo"
	"github.com/archmap-dev/archmap/pkg/config"
	"github.com/archmap-dev/archmap/pkg/store"
)

// appName is the application name used for directories and display.
const appName = "archmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	storeFlag  string // backend override from --store
	cfg        config.Config
	cfgLoaded  bool
}

// New creates a new CLI instance with a timestamped logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Archmap lays out component relationship graphs",
		Long:         `Archmap turns a set of typed components with relationships into a positioned, tiered graph: features become clusters, categories become vertical tiers, and relationships become styled edges ready for rendering.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: user config dir)")
	root.PersistentFlags().StringVar(&c.storeFlag, "store", "", "position store backend: memory, file, redis, mongo, null")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.positionsCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Config loads the configuration once, applying the --store override.
func (c *CLI) Config() (config.Config, error) {
	if c.cfgLoaded {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return cfg, err
	}
	if c.storeFlag != "" {
		cfg.Store.Backend = c.storeFlag
		if err := cfg.Validate(); err != nil {
			return cfg, err
		}
	}
	c.cfg = cfg
	c.cfgLoaded = true
	return cfg, nil
}

// openStore builds the configured position store.
func (c *CLI) openStore(ctx context.Context) (store.PositionStore, error) {
	cfg, err := c.Config()
	if err != nil {
		return nil, err
	}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return store.NewMemoryStore(), nil
	case config.BackendNull:
		return store.NewNullStore(), nil
	case config.BackendRedis:
		return store.NewRedisStore(ctx, store.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
	case config.BackendMongo:
		return store.NewMongoStore(ctx, store.MongoConfig{
			URI:      cfg.Store.Mongo.URI,
			Database: cfg.Store.Mongo.Database,
		})
	default: // file
		dir := cfg.Store.Dir
		if dir == "" {
			d, err := config.DefaultStoreDir()
			if err != nil {
				return nil, err
			}
			dir = d
		}
		return store.NewFileStore(dir)
	}
}
