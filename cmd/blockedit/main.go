// Package main is the entry point for the blockedit document engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/blockedit/internal/config"
	"github.com/dshills/blockedit/internal/docfile"
	"github.com/dshills/blockedit/internal/engine"
	"github.com/dshills/blockedit/internal/plugin/lua"
	"github.com/dshills/blockedit/internal/registry"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	ConfigPath string
	ScriptPath string
	OutputPath string
	DocPath    string
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load registry: %v\n", err)
		return 1
	}

	sessionOpts := []engine.Option{
		engine.WithMaxUndoEntries(cfg.History.MaxEntries),
		engine.WithEdgeThreshold(cfg.DragDrop.EdgeThreshold),
	}
	if opts.DocPath != "" {
		doc, err := docfile.Load(opts.DocPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		sessionOpts = append(sessionOpts, engine.WithDocument(doc))
	}

	session := engine.New(reg, sessionOpts...)
	defer session.Close()

	if opts.ScriptPath != "" {
		ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		runtime := lua.NewRuntime(session)
		defer runtime.Close()

		if err := runtime.DoFile(ctx, opts.ScriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	out := opts.OutputPath
	if out == "" {
		out = opts.DocPath
	}
	if out != "" {
		if err := docfile.Save(out, session.Document()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
	}

	return 0
}

// loadRegistry builds the block-type registry from the configured TOML
// file, or falls back to the built-in types.
func loadRegistry(cfg config.Config) (*registry.Static, error) {
	if cfg.Registry.Path != "" {
		return registry.LoadFile(cfg.Registry.Path)
	}
	return registry.NewStatic(builtinTypes()...)
}

// builtinTypes is the default block vocabulary used when no registry
// file is configured.
func builtinTypes() []registry.TypeSpec {
	return []registry.TypeSpec{
		{Name: "page", DisplayName: "Page", Container: true},
		{Name: "section", DisplayName: "Section", Container: true},
		{Name: "columns", DisplayName: "Columns", Container: true, AllowedChildren: []string{"column"}},
		{Name: "column", DisplayName: "Column", Container: true},
		{Name: "list", DisplayName: "List", Container: true, AllowedChildren: []string{"list_item"}},
		{Name: "list_item", DisplayName: "List Item", Container: true},
		{Name: "paragraph", DisplayName: "Paragraph", Defaults: map[string]any{"text": ""}},
		{Name: "heading", DisplayName: "Heading", Defaults: map[string]any{"text": "", "level": 1}},
		{Name: "quote", DisplayName: "Quote", Defaults: map[string]any{"text": ""}},
		{Name: "divider", DisplayName: "Divider"},
		{Name: "image", DisplayName: "Image", Defaults: map[string]any{"url": "", "caption": ""}},
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.ScriptPath, "script", "", "Lua script to run against the document")
	flag.StringVar(&opts.ScriptPath, "s", "", "Lua script to run against the document (shorthand)")
	flag.StringVar(&opts.OutputPath, "output", "", "Write the resulting document here instead of in place")
	flag.StringVar(&opts.OutputPath, "o", "", "Write the resulting document here (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Blockedit - block document engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: blockedit [options] [document.json]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  blockedit doc.json                  Load and rewrite a document\n")
		fmt.Fprintf(os.Stderr, "  blockedit -s edit.lua doc.json      Run a script against a document\n")
		fmt.Fprintf(os.Stderr, "  blockedit -s new.lua -o out.json    Build a document from scratch\n")
	}

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("Blockedit %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	if flag.NArg() > 0 {
		opts.DocPath = flag.Arg(0)
	}

	return opts
}
