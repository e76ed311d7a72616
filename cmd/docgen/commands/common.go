package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI is the root command definition.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docgen.yaml"`
	Root    string           `help:"Repository root the configured paths are relative to" default:"."`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Process ProcessCmd `cmd:"" help:"Run the full pipeline and write updated documents back"`
	Check   CheckCmd   `cmd:"" help:"Validate all documents without writing anything"`
}

// AfterApply runs after flag parsing; sets up logging once and loads an
// optional .env file so CI can override the network switches.
func (c *CLI) AfterApply() error {
	_ = godotenv.Load()

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}
