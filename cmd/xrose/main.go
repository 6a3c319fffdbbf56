// Command xrose inspects rose diagram documents.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lychee-technology/xrosedb"
	"github.com/lychee-technology/xrosedb/factory"
	"github.com/lychee-technology/xrosedb/internal/store"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// CLI defines the command line.
var CLI struct {
	Document   string `name:"document" short:"d" env:"XROSE_DOCUMENT" type:"path" help:"Document file to open."`
	Config     string `name:"config" short:"c" env:"XROSE_CONFIG" type:"path" help:"JSON configuration file."`
	LogLevel   string `name:"log-level" env:"XROSE_LOG_LEVEL" help:"Log level (debug, info, warn, error). Overrides the configuration."`
	Dev        bool   `name:"dev" help:"Human readable development logging."`
	LogQueries bool   `name:"log-queries" env:"XROSE_LOG_QUERIES" help:"Log every statement."`
	Strict     bool   `name:"strict" help:"Fail on layers of unknown kind."`

	Tables   TablesCmd   `cmd:"" help:"List tables with row counts."`
	Schema   SchemaCmd   `cmd:"" help:"Print the CREATE statement of a table."`
	Columns  ColumnsCmd  `cmd:"" help:"Describe the columns of a table."`
	Colors   ColorsCmd   `cmd:"" help:"List the color palette."`
	Layers   LayersCmd   `cmd:"" help:"List the layers."`
	Geometry GeometryCmd `cmd:"" help:"Print the rose geometry."`
	Window   WindowCmd   `cmd:"" help:"Print the saved window size."`
	Datasets DatasetsCmd `cmd:"" help:"List dataset definitions."`
	Query    QueryCmd    `cmd:"" help:"Run a SQL statement."`
	Export   ExportCmd   `cmd:"" help:"Export the rows of a table as JSON."`
	Import   ImportCmd   `cmd:"" help:"Import a CSV file as a data table."`
	Digest   DigestCmd   `cmd:"" help:"Print the BLAKE3 digest of the document file."`
	Snapshot SnapshotCmd `cmd:"" help:"Write an xz compressed snapshot of the document."`
	Restore  RestoreCmd  `cmd:"" help:"Expand a snapshot into a document file."`
	Shell    ShellCmd    `cmd:"" help:"Interactive SQL shell."`
}

// App is the state shared by every command.
type App struct {
	ctx      context.Context
	store    *store.Store
	document string
	out      io.Writer
}

func newLogger(logging xrosedb.LoggingConfig, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(strings.ToLower(logging.Level))
	if err != nil {
		return nil, err
	}
	var cfg zap.Config
	if dev {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.Encoding = logging.Format
		if logging.Format == "console" {
			cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

func loadConfig() (*xrosedb.Config, error) {
	cfg := xrosedb.DefaultConfig()
	if CLI.Config != "" {
		loaded, err := xrosedb.LoadConfig(CLI.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.Store.DocumentPath = CLI.Document
	if CLI.LogLevel != "" {
		cfg.Logging.Level = CLI.LogLevel
	}
	cfg.Logging.LogQueries = cfg.Logging.LogQueries || CLI.LogQueries
	cfg.Layers.StrictVariants = cfg.Layers.StrictVariants || CLI.Strict
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("xrose"),
		kong.Description("Inspect and query rose diagram documents."),
		kong.UsageOnError(),
	)

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Logging, CLI.Dev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := factory.NewStoreWithConfig(ctx, cfg)
	if err != nil {
		zap.S().Errorw("failed to open document", "document", CLI.Document, "err", err)
		os.Exit(1)
	}
	defer s.Close()

	app := &App{ctx: ctx, store: s, document: CLI.Document, out: os.Stdout}
	if err := kctx.Run(app); err != nil {
		zap.S().Errorw("command failed", "command", kctx.Command(), "err", err)
		s.Close()
		os.Exit(1)
	}
}
