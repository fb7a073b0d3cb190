// reckon runs dataset analyzers over JSON Lines input: ranked vocabularies of
// distinct column values, or generic combiner reductions.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/accumulators"
	"github.com/go-reckon/reckon/analysis"
	"github.com/go-reckon/reckon/datasource/jsonl"
	"github.com/go-reckon/reckon/logging"
	"github.com/go-reckon/reckon/stats"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "reckon",
		Usage: "compute dataset-wide statistics over JSONL data",
		Commands: []*cli.Command{
			vocabCommand(),
			combineCommand(),
			runCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func vocabCommand() *cli.Command {
	return &cli.Command{
		Name:  "vocab",
		Usage: "build a ranked vocabulary of a column's distinct values",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Usage: "JSONL input file", Required: true},
			&cli.StringFlag{Name: "column", Usage: "gjson path of the column to analyze", Required: true},
			&cli.StringFlag{Name: "kind", Usage: "element kind (string, int or float)", Value: "string"},
			&cli.StringFlag{Name: "name", Usage: "artifact file name", Value: "vocabulary.txt"},
			&cli.StringFlag{Name: "output-dir", Usage: "directory to write the artifact into", Value: "."},
			&cli.IntFlag{Name: "top-k", Usage: "retain only the K most frequent entries", Value: -1},
			&cli.Float64Flag{Name: "frequency-threshold", Usage: "discard entries with a lower count", Value: -1},
			&cli.BoolFlag{Name: "store-frequency", Usage: "prefix each line with its count"},
			&cli.IntFlag{Name: "batch-size", Usage: "rows per batch", Value: 128},
			&cli.IntFlag{Name: "workers", Usage: "parallel counting workers"},
		},
		Action: func(c *cli.Context) error {
			kind, err := parseKind(c.String("kind"))
			if err != nil {
				return err
			}
			spec := reckon.CreateUniquesSpec(c.String("name"))
			spec.TopK = c.Int("top-k")
			spec.FrequencyThreshold = c.Float64("frequency-threshold")
			spec.StoreFrequency = c.Bool("store-frequency")
			location, err := runVocab(c.Context, spec, &runConf{
				input:     c.String("input"),
				column:    c.String("column"),
				kind:      kind,
				outputDir: c.String("output-dir"),
				batchSize: c.Int("batch-size"),
				workers:   c.Int("workers"),
			})
			if err != nil {
				return err
			}
			fmt.Println(location)
			return nil
		},
	}
}

func combineCommand() *cli.Command {
	return &cli.Command{
		Name:  "combine",
		Usage: "run a built-in combiner over a numeric column",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Usage: "JSONL input file", Required: true},
			&cli.StringFlag{Name: "column", Usage: "gjson path of the column to analyze", Required: true},
			&cli.StringFlag{Name: "combiner", Usage: "one of sum, count, mean", Value: "sum"},
			&cli.IntFlag{Name: "batch-size", Usage: "rows per batch", Value: 128},
			&cli.IntFlag{Name: "workers", Usage: "parallel workers"},
		},
		Action: func(c *cli.Context) error {
			var comb reckon.Combiner
			switch c.String("combiner") {
			case "sum":
				comb = accumulators.Adder()
			case "count":
				comb = accumulators.Counter()
			case "mean":
				comb = accumulators.Meaner()
			default:
				return fmt.Errorf("unknown combiner %q (want sum, count or mean)", c.String("combiner"))
			}
			batches, err := openInput(c.String("input"), c.String("column"), reckon.KindFloat, c.Int("batch-size"))
			if err != nil {
				return err
			}
			result, err := analysis.Run(c.Context, &reckon.CombineSpec{Combiner: comb}, batches, &analysis.Options{
				NumWorkers: c.Int("workers"),
				Logger:     logging.CreateLogger(logging.InfoLevel, os.Stderr),
			})
			if err != nil {
				return err
			}
			fmt.Println(result)
			return nil
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run a set of analyzers described by a yaml config",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Usage: "yaml config file", Required: true},
		},
		Action: func(c *cli.Context) error {
			conf, err := loadConfig(c.String("config"))
			if err != nil {
				return err
			}
			metrics := stats.CreateRunStatistics()
			metrics.Start()
			for _, v := range conf.Vocabularies {
				kind, err := parseKind(v.Kind)
				if err != nil {
					return err
				}
				location, err := runVocab(c.Context, v.spec(), &runConf{
					input:     conf.Input,
					column:    v.Column,
					kind:      kind,
					outputDir: conf.OutputDir,
					batchSize: conf.BatchSize,
					workers:   conf.Workers,
					metrics:   metrics,
				})
				if err != nil {
					return fmt.Errorf("vocabulary %s: %w", v.Name, err)
				}
				fmt.Println(location)
			}
			metrics.Finish()
			if d, ok := metrics.GetDistribution("vocabulary_size"); ok {
				log.Printf("built %d vocabularies (sizes %d..%d) in %s", d.Count, d.Min, d.Max, metrics.GetRuntime())
			}
			return nil
		},
	}
}

// runConf gathers the per-analyzer knobs shared by the vocab and run commands
type runConf struct {
	input     string
	column    string
	kind      reckon.ElementKind
	outputDir string
	batchSize int
	workers   int
	metrics   reckon.MetricsSink
}

func runVocab(ctx context.Context, spec *reckon.UniquesSpec, conf *runConf) (string, error) {
	batches, err := openInput(conf.input, conf.column, conf.kind, conf.batchSize)
	if err != nil {
		return "", err
	}
	result, err := analysis.Run(ctx, spec, batches, &analysis.Options{
		OutputDir:  conf.outputDir,
		NumWorkers: conf.workers,
		Metrics:    conf.metrics,
		Logger:     logging.CreateLogger(logging.InfoLevel, os.Stderr),
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func openInput(path string, column string, kind reckon.ElementKind, batchSize int) (reckon.BatchIterator, error) {
	parser := jsonl.CreateParser(&jsonl.ParserConf{
		BatchSize: batchSize,
		Columns:   []jsonl.ColumnConf{{Path: column, Kind: kind}},
	})
	return parser.ParseFile(path)
}
