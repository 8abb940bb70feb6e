package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dotan-asm/mipsasm/config"
	"github.com/dotan-asm/mipsasm/diag"
	"github.com/dotan-asm/mipsasm/parser"
	"github.com/dotan-asm/mipsasm/scanner"
	"github.com/dotan-asm/mipsasm/writer"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		colorFlag   = flag.Bool("color", false, "Force colored diagnostic output")
		noColorFlag = flag.Bool("no-color", false, "Disable colored diagnostic output")
		configPath  = flag.String("config", "", "Path to a config.toml to use instead of the default location")
	)
	flag.Usage = printUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("mipsasm %s (%s)\n", Version, Commit)
		return
	}

	if flag.NArg() == 0 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsasm: %v\n", err)
		os.Exit(1)
	}
	if *colorFlag {
		cfg.Diagnostics.ColorOutput = true
	}
	if *noColorFlag {
		cfg.Diagnostics.ColorOutput = false
	}
	parser.SetLimits(parser.Limits{
		MaxProgLines: cfg.Limits.MaxProgLines,
		MaxLabelLen:  cfg.Limits.MaxLabelLen,
		MaxLineLen:   cfg.Limits.MaxLineLen,
		InitialIC:    cfg.Limits.InitialIC,
	})
	printer := diag.NewPrinter(os.Stderr, cfg.Diagnostics.ColorOutput, cfg.Diagnostics.ShowSourceLine)

	allOK := true
	for _, arg := range flag.Args() {
		if assembleFile(arg, printer) == statusFailed {
			allOK = false
		}
	}

	if !allOK {
		os.Exit(1)
	}
}

// fileStatus reports what became of one command-line argument. Per §6.1, a
// skipped or unopenable file is logged but does not affect the exit code —
// only a hard (non-warning) diagnostic on a processed file does.
type fileStatus int

const (
	statusOK fileStatus = iota
	statusSkipped
	statusFailed
)

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// assembleFile runs the full tokenizer -> parser -> scanner pass 1 -> scanner
// pass 2 -> diagnostics -> writer pipeline for one source file.
func assembleFile(path string, printer *diag.Printer) fileStatus {
	if filepath.Ext(path) != ".as" {
		fmt.Fprintf(os.Stderr, "mipsasm: %s: skipped, not a .as file\n", path)
		return statusSkipped
	}

	ctx, _, err := scanner.AssembleFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mipsasm: %s: %v\n", path, err)
		return statusSkipped
	}

	printer.PrintAll(ctx.Errors.Errors)
	if ctx.Errors.HasHardErrors() {
		return statusFailed
	}

	base := strings.TrimSuffix(path, filepath.Ext(path))
	if err := writer.WriteAll(base, ctx); err != nil {
		fmt.Fprintf(os.Stderr, "mipsasm: %s: %v\n", path, err)
		return statusFailed
	}
	return statusOK
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] file1.as [file2.as ...]\n", filepath.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "assembles each file into <name>.ob, <name>.ent and <name>.ext")
	flag.PrintDefaults()
}
