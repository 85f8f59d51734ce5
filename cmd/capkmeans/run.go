package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/capkmeans/config"
	"github.com/katalvlaran/capkmeans/kmeans"
	"github.com/katalvlaran/capkmeans/logging"
	"github.com/katalvlaran/capkmeans/metrics"
	"github.com/katalvlaran/capkmeans/pointio"
)

// runFlags are the command-line overrides of the run subcommand; unset
// flags leave the config untouched.
type runFlags struct {
	configPath string
	input      string
	output     string
	format     string
	xCol, yCol string
	clusters   int
	minPoints  int
	maxIter    int
	seed       int64
	restarts   int
	textfile   string
	verbose    bool
}

func runCmd(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	var f runFlags
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&f.configPath, "config", "", "config file (.yaml, .toml or .json)")
	fs.StringVar(&f.input, "input", "", "input points (.csv or .geojson, optionally .gz/.zst/.lz4)")
	fs.StringVar(&f.output, "output", "", "output file; stdout when empty")
	fs.StringVar(&f.format, "format", "", "input format: csv or geojson (default: from extension)")
	fs.StringVar(&f.xCol, "x", "", "CSV column holding x")
	fs.StringVar(&f.yCol, "y", "", "CSV column holding y")
	fs.IntVar(&f.clusters, "k", 0, "number of clusters")
	fs.IntVar(&f.minPoints, "min-points", 0, "minimum points per cluster")
	fs.IntVar(&f.maxIter, "max-iterations", 0, "maximum center updates")
	fs.Int64Var(&f.seed, "seed", 0, "random seed")
	fs.IntVar(&f.restarts, "restarts", 0, "independent restarts; the lowest inertia wins")
	fs.StringVar(&f.textfile, "metrics-textfile", "", "write Prometheus metrics to this file")
	fs.BoolVar(&f.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return err
	}
	applyRunFlags(fs, &f, cfg)
	if err = cfg.Validate(); err != nil {
		return err
	}
	if cfg.Input.Path == "" {
		return fmt.Errorf("no input: set -input or input.path")
	}

	log, cleanup, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer cleanup()
	log = log.With(zap.String("run_id", uuid.NewString()))

	return clusterFile(ctx, cfg, log, stdout)
}

func applyRunFlags(fs *flag.FlagSet, f *runFlags, cfg *config.Config) {
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "input":
			cfg.Input.Path = f.input
		case "output":
			cfg.Output.Path = f.output
		case "format":
			cfg.Input.Format = f.format
		case "x":
			cfg.Input.XColumn = f.xCol
		case "y":
			cfg.Input.YColumn = f.yCol
		case "k":
			cfg.Clustering.Clusters = f.clusters
			cfg.Clustering.Demand = nil
		case "min-points":
			cfg.Clustering.MinPoints = f.minPoints
			cfg.Clustering.Demand = nil
		case "max-iterations":
			cfg.Clustering.MaxIterations = f.maxIter
		case "seed":
			cfg.Clustering.Seed = f.seed
		case "restarts":
			cfg.Clustering.Restarts = f.restarts
		case "metrics-textfile":
			cfg.Metrics.Textfile = f.textfile
		case "v":
			if f.verbose {
				cfg.Log.Level = "debug"
			}
		}
	})
}

// clusterFile reads cfg.Input, clusters it and writes the labelled records.
func clusterFile(ctx context.Context, cfg *config.Config, log *zap.Logger, stdout io.Writer) error {
	format := cfg.Input.Format
	if format == "" {
		format = pointio.FormatOf(cfg.Input.Path)
	}

	log.Info("Collecting input points", zap.String("input", cfg.Input.Path), zap.String("format", format))
	in, err := pointio.Open(cfg.Input.Path)
	if err != nil {
		return err
	}
	ds, err := pointio.Read(in, format, cfg.Input.XColumn, cfg.Input.YColumn)
	in.Close()
	if err != nil {
		return err
	}

	kcfg, err := cfg.Clustering.KMeans()
	if err != nil {
		return err
	}
	collector := metrics.NewCollector()
	opts := []kmeans.Option{kmeans.WithLogger(log), kmeans.WithObserver(collector)}

	log.Info("Computing clusters",
		zap.Int("n", ds.Len()),
		zap.Int("k", kcfg.K),
		zap.Ints("demand", kcfg.Demand),
		zap.Int("restarts", cfg.Clustering.Restarts),
	)
	var res *kmeans.Result
	if cfg.Clustering.Restarts > 1 {
		res, err = kmeans.ClusterBest(ctx, ds.Points, kcfg, cfg.Clustering.Restarts, opts...)
	} else {
		res, err = kmeans.Cluster(ctx, ds.Points, kcfg, opts...)
	}
	if err != nil {
		collector.RunFailed()
		writeTextfile(cfg, collector, log)
		return err
	}

	if err = writeOutput(cfg.Output.Path, stdout, ds, res); err != nil {
		return err
	}
	log.Info("Clusters ready",
		zap.Stringer("state", res.State),
		zap.Int("iterations", res.Iterations),
		zap.Ints("sizes", res.Sizes),
		zap.Float64("inertia", res.Inertia),
		zap.String("output", cfg.Output.Path),
	)
	writeTextfile(cfg, collector, log)

	return nil
}

func writeOutput(path string, stdout io.Writer, ds *pointio.Dataset, res *kmeans.Result) error {
	if path == "" {
		return pointio.Write(stdout, ds, res)
	}
	out, err := pointio.Create(path)
	if err != nil {
		return err
	}
	if err = pointio.Write(out, ds, res); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func writeTextfile(cfg *config.Config, c *metrics.Collector, log *zap.Logger) {
	if cfg.Metrics.Textfile == "" {
		return
	}
	if err := c.WriteTextfile(cfg.Metrics.Textfile); err != nil {
		log.Warn("Writing metrics textfile failed", zap.Error(err))
	}
}
