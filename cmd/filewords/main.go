package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"github.com/joho/godotenv"

	"filewords/internal/config"
	"filewords/internal/corpus"
	"filewords/internal/export"
	"filewords/internal/labeler"
	"filewords/internal/logging"
	"filewords/internal/reducer"
	"filewords/internal/report"
	"filewords/internal/service"
	"filewords/internal/tagmatrix"
	"filewords/internal/tags"
)

const usage = `Usage:
    filewords [--config=path] [--threshold=<t>] [--num-tags=<n>] [--policy=threshold|greedy]
              [--on-missing=skip|error] [--output=<outdir>] [--style=plain|pretty] <path>

Options:
    -t --threshold=<t>    Required tag strength [default: 0.5].
    -n --num-tags=<n>     Number of tags to reduce to [default: 5].
    -o --output=<outdir>  Where to place file copies.
`

func main() {
	_ = godotenv.Load()
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfgPath, threshold, numTags, output, policy, onMissing, style string
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/filewords/config.yaml if not provided)")
	for _, name := range []string{"threshold", "t"} {
		flag.StringVar(&threshold, name, "", "Required tag strength")
	}
	for _, name := range []string{"num-tags", "n"} {
		flag.StringVar(&numTags, name, "", "Number of tags to reduce to")
	}
	for _, name := range []string{"output", "o"} {
		flag.StringVar(&output, name, "", "Where to place file copies")
	}
	flag.StringVar(&policy, "policy", "", "Label selection policy: threshold or greedy")
	flag.StringVar(&onMissing, "on-missing", "", "Threshold policy without a candidate tag: skip or error")
	flag.StringVar(&style, "style", "", "Report style: plain or pretty")
	flag.Usage = func() { fmt.Fprint(flag.CommandLine.Output(), usage) }
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	cfg.ApplyEnv()
	if err := applyFlags(cfg, threshold, numTags, output, policy, onMissing, style); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	logger := logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)

	docs, err := corpus.Load(path, corpus.Options{CaptionExt: cfg.Corpus.CaptionExt, Logger: logger})
	if err != nil {
		return fmt.Errorf("corpus: %w", err)
	}

	// Validate has already accepted these values.
	pol, _ := labeler.ParsePolicy(cfg.Selector.Policy)
	missing, _ := labeler.ParseOnMissing(cfg.Selector.OnMissing)
	order, _ := tagmatrix.ParseOrder(cfg.Vocabulary.Order)

	sel, err := labeler.New(pol, cfg.Selector.Threshold, labeler.WithOnMissing(missing), labeler.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	pipeline := service.NewPipeline(
		tags.NewExtractor(cfg.Corpus.Separator),
		reducer.New(),
		sel,
		service.Options{Components: cfg.Reducer.Components, Order: order},
		logger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := pipeline.Run(ctx, docs)
	if err != nil {
		return err
	}

	if err := report.Render(os.Stdout, res, report.Options{Style: cfg.Report.Style, TopTags: cfg.Report.TopTags}); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if cfg.Output.Dir == "" {
		return nil
	}
	assignments := res.Assignments
	if cfg.Output.NameFrom == config.NameFromTags {
		assignments = export.FromTagSets(res.Files, res.TagSets)
	}
	written, err := export.CopyFiles(path, cfg.Output.Dir, assignments, cfg.Output.Separator)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	logger.Info("files copied", "dir", cfg.Output.Dir, "count", len(written))
	return nil
}

// applyFlags overrides config values with the flags given on the command line.
func applyFlags(cfg *config.AppConfig, threshold, numTags, output, policy, onMissing, style string) error {
	if threshold != "" {
		v, err := strconv.ParseFloat(threshold, 64)
		if err != nil {
			return fmt.Errorf("--threshold: %w", err)
		}
		cfg.Selector.Threshold = v
	}
	if numTags != "" {
		v, err := strconv.Atoi(numTags)
		if err != nil {
			return fmt.Errorf("--num-tags: %w", err)
		}
		cfg.Reducer.Components = v
	}
	if output != "" {
		cfg.Output.Dir = output
	}
	if policy != "" {
		cfg.Selector.Policy = policy
	}
	if onMissing != "" {
		cfg.Selector.OnMissing = onMissing
	}
	if style != "" {
		cfg.Report.Style = style
	}
	return nil
}
