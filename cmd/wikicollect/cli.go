package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/wikicollect"
	"github.com/fwojciec/wikicollect/export"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Config *Config

	Metadata     wikicollect.MetadataStore
	SearchWriter wikicollect.SearchResultWriter
	Searcher     wikicollect.Searcher
	Exporter     *export.Exporter
	Exports      wikicollect.ExportService
	Publisher    wikicollect.DatasetPublisher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Enable debug logging"`
	EnvFile string `name:"env-file" default:".env" help:"Load environment variables from this file when it exists"`

	Search  SearchCmd  `cmd:"" help:"Search Wikipedia and save the results for a term"`
	Fetch   FetchCmd   `cmd:"" help:"Fetch the filtered pages of a term into an NDJSON file"`
	Exports ExportsCmd `cmd:"" help:"List completed exports"`
	Dataset DatasetCmd `cmd:"" help:"Package all NDJSON files as a dataset"`
}

// SearchCmd is the "search" subcommand.
type SearchCmd struct {
	Query    string `arg:"" help:"Search query"`
	Limit    int    `short:"n" default:"100" help:"Maximum number of results (1-500)"`
	Language string `short:"l" help:"Wikipedia language edition (defaults to WIKI_LANGUAGE)"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	Term        string                    `arg:"" optional:"" help:"Search term to export"`
	All         bool                      `short:"a" help:"Export every searched term, skipping terms already exported"`
	Preview     bool                      `short:"p" help:"Show the filtered pages without fetching"`
	Language    string                    `short:"l" help:"Wikipedia language edition (defaults to WIKI_LANGUAGE)"`
	Format      wikicollect.ContentFormat `short:"f" default:"text" enum:"text,markdown" help:"Page body format (text or markdown)"`
	Concurrency int                       `short:"c" default:"1" help:"Concurrent fetch limit"`
}

// ExportsCmd is the "exports" subcommand.
type ExportsCmd struct {
	Term  string `short:"t" help:"Only show exports of this term"`
	Limit int    `short:"n" default:"20" help:"Maximum number of exports to show"`
}

// DatasetCmd is the "dataset" subcommand.
type DatasetCmd struct {
	Name string `arg:"" help:"Dataset name"`
	Push bool   `help:"Upload to the configured S3 bucket instead of the local datasets directory"`
}
