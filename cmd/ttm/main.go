// Command ttm drives the two-pass assembler.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cs6461/ttm/assembler"
	"github.com/cs6461/ttm/config"
	"github.com/cs6461/ttm/loadimage"
	"github.com/cs6461/ttm/ttmlog"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "assemble":
		os.Exit(runAssemble(os.Args[2:]))
	case "-version", "--version", "version":
		fmt.Printf("ttm %s (%s)\n", Version, Commit)
	case "-help", "--help", "help":
		printUsage()
	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `ttm assemble <source> [--out-list path] [--out-load path] [--config path]

Assembles <source> into a listing file and a load-image file.
Defaults: ListingFile.txt, LoadFile.txt (overridden by --config's
[assembler] section, then by the flags).
`)
}

func runAssemble(args []string) int {
	fs := flag.NewFlagSet("assemble", flag.ExitOnError)
	outList := fs.String("out-list", "", "listing output path (default: config's assembler.listing_file)")
	outLoad := fs.String("out-load", "", "load-image output path (default: config's assembler.load_file)")
	configPath := fs.String("config", "", "TOML config file (default: platform config path)")
	quiet := fs.Bool("quiet", false, "suppress warning/error echo to stderr")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		printUsage()
		return 2
	}
	sourcePath := fs.Arg(0)

	var cfg *config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.LoadFrom(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttm: loading config: %v\n", err)
		return 1
	}

	listPath := cfg.Assembler.ListingFile
	if *outList != "" {
		listPath = *outList
	}
	loadPath := cfg.Assembler.LoadFile
	if *outLoad != "" {
		loadPath = *outLoad
	}

	logger, logFile, err := ttmlog.Open(filepath.Join(config.GetLogPath(), "ttm.log"), *quiet)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttm: opening log: %v\n", err)
		return 1
	}
	defer logFile.Close()

	src, err := os.Open(sourcePath) // #nosec G304 -- user-supplied assembly source
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttm: %v\n", err)
		return 1
	}
	defer src.Close()

	logger.Info("assembling", "source", sourcePath)
	d := assembler.NewDriver(sourcePath)
	result, err := d.Assemble(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ttm: %v\n", err)
		logger.Error("assembly failed", "error", err.Error())
		return 1
	}

	if err := writeListing(listPath, result.Listing); err != nil {
		fmt.Fprintf(os.Stderr, "ttm: writing listing: %v\n", err)
		return 1
	}
	if err := writeLoadImage(loadPath, result.Records); err != nil {
		fmt.Fprintf(os.Stderr, "ttm: writing load image: %v\n", err)
		return 1
	}

	logger.Info("assembled", "records", len(result.Records), "listing", listPath, "load_image", loadPath)
	fmt.Printf("assembled %d word(s): %s, %s\n", len(result.Records), listPath, loadPath)
	return 0
}

func writeListing(path string, lines []string) error {
	f, err := os.Create(path) // #nosec G304 -- user-supplied output path
	if err != nil {
		return err
	}
	defer f.Close()
	for _, l := range lines {
		if _, err := fmt.Fprintln(f, l); err != nil {
			return err
		}
	}
	return nil
}

func writeLoadImage(path string, records []loadimage.Record) error {
	f, err := os.Create(path) // #nosec G304 -- user-supplied output path
	if err != nil {
		return err
	}
	defer f.Close()
	return loadimage.Write(f, records)
}
