package main

import (
	"context"
	"io"
	"time"

	"github.com/recipeclip/recipeclip"
	"github.com/recipeclip/recipeclip/pipeline"
	"github.com/recipeclip/recipeclip/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Patterns recipeclip.PatternService
	Selector *pipeline.Selector
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Import   ImportCmd   `cmd:"" help:"Extract a recipe from one or more URLs"`
	Patterns PatternsCmd `cmd:"" help:"List learned extraction patterns"`
	Attempts AttemptsCmd `cmd:"" help:"List logged extraction attempts"`
}

// ImportCmd is the "import" subcommand.
type ImportCmd struct {
	URLs      []string      `arg:"" help:"Post or recipe page URLs"`
	Timeout   time.Duration `default:"30s" help:"Per-URL extraction timeout"`
	Settle    time.Duration `default:"500ms" help:"Extra settle delay after page load"`
	NoBrowser bool          `help:"Skip browser rendering, fetch raw HTML only"`
	RPS       float64       `default:"1" help:"Max requests per second per domain"`
}

// PatternsCmd is the "patterns" subcommand.
type PatternsCmd struct {
	Site        string `help:"Filter by site type (tiktok, instagram, recipe_site, unknown)"`
	MinAttempts int    `default:"0" help:"Hide patterns with fewer attempts"`
	Limit       int    `default:"50" help:"Maximum rows"`
}

// AttemptsCmd is the "attempts" subcommand.
type AttemptsCmd struct {
	Site   string `help:"Filter by site type"`
	Failed bool   `help:"Show only failed attempts"`
	Limit  int    `default:"50" help:"Maximum rows"`
}
