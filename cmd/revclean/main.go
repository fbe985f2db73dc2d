package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/revclean/revclean/pkg/io/csvio"
	"github.com/revclean/revclean/pkg/job"
	"github.com/revclean/revclean/pkg/profile"
)

var version = "0.1.0-dev"

func main() {
	var (
		showVersion = flag.Bool("version", false, "Print version and exit")
		configPath  = flag.String("config", "", "Path to run config (json, toml or yaml)")
		inputPath   = flag.String("input", "", "Path to the raw review dataset (overrides config)")
		outputDir   = flag.String("output", "", "Output directory (overrides config)")
		format      = flag.String("format", "", "Output format: csv, jsonl or parquet (overrides config)")
		logJSON     = flag.Bool("log-json", false, "Emit logs as JSON")
		quiet       = flag.Bool("quiet", false, "Only log errors")
		doProfile   = flag.Bool("profile", false, "Log a per-column profile of the input before cleaning")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("revclean", version)
		return
	}

	level := slog.LevelInfo
	if *quiet {
		level = slog.LevelError
	}
	var handler slog.Handler
	if *logJSON {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
	log := slog.New(handler)

	cfg := job.Default()
	if *configPath != "" {
		if err := loadConfig(*configPath, &cfg); err != nil {
			log.Error("config", "err", err)
			os.Exit(1)
		}
	}
	if *inputPath != "" {
		cfg.InputPath = *inputPath
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}
	if *format != "" {
		cfg.OutputFormat = *format
	}
	if cfg.InputPath == "" || cfg.OutputDir == "" {
		fmt.Fprintln(os.Stderr, "input and output are required; try -input <file> -output <dir> or -config <file>")
		os.Exit(2)
	}

	ctx := context.Background()
	if *doProfile {
		f, _, err := csvio.Load(cfg.InputPath, csvio.ReaderOptions{})
		if err != nil {
			log.Error("profile", "err", err)
			os.Exit(1)
		}
		for _, cs := range profile.Collect(f) {
			log.LogAttrs(ctx, slog.LevelInfo, "column profile", cs.Attrs()...)
		}
	}

	if err := job.Run(ctx, cfg, job.Options{Logger: log}); err != nil {
		log.Error("run failed", "err", err)
		os.Exit(1)
	}
}
