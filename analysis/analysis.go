// Package analysis runs Reckon's analyzers: dataset-wide statistics computed
// once over a partitioned stream of Batches. An AnalyzerSpec is dispatched
// either to the vocabulary builder (UniquesSpec) or to the combine engine
// (CombineSpec), and yields exactly one output value - an artifact location
// for vocabularies, or the combiner's extracted output.
package analysis

import (
	"context"
	"fmt"
	"runtime"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/artifact"
	"github.com/go-reckon/reckon/engine"
	"github.com/go-reckon/reckon/errors"
	"github.com/go-reckon/reckon/logging"
)

// Options configures analyzer execution
type Options struct {
	// Engine runs CombineSpec analyzers. Defaults to a local engine.
	Engine *engine.Engine
	// Writer persists vocabulary artifacts. Defaults to a FileWriter rooted
	// at OutputDir.
	Writer reckon.ArtifactWriter
	// OutputDir is where the default Writer places artifacts. Ignored when
	// Writer is set; required otherwise for UniquesSpec analyzers.
	OutputDir string
	// Metrics receives observability samples. Defaults to discarding them.
	Metrics reckon.MetricsSink
	// NumWorkers is the number of parallel counting workers for UniquesSpec
	// analyzers. Defaults to runtime.NumCPU().
	NumWorkers int
	// Logger receives analyzer diagnostics. Defaults to discarding them.
	Logger *logging.Logger
}

func ensureDefaultOptionsValues(opts *Options) *Options {
	if opts == nil {
		opts = &Options{}
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = runtime.NumCPU()
	}
	if opts.Logger == nil {
		opts.Logger = logging.CreateLogger(logging.FatalLevel, nil)
	}
	if opts.Metrics == nil {
		opts.Metrics = reckon.NullMetrics{}
	}
	if opts.Engine == nil {
		opts.Engine = engine.Create(&engine.Conf{
			NumWorkers: opts.NumWorkers,
			Logger:     opts.Logger,
		})
	}
	return opts
}

// Run executes a single analyzer over a stream of Batches, producing its
// single output value: the written artifact's location for a UniquesSpec, or
// the extracted combiner output for a CombineSpec. Run delegates to the
// component matching the spec's kind and has no other side effects.
func Run(ctx context.Context, spec reckon.AnalyzerSpec, batches reckon.BatchIterator, opts *Options) (interface{}, error) {
	opts = ensureDefaultOptionsValues(opts)
	switch s := spec.(type) {
	case *reckon.UniquesSpec:
		return buildVocabulary(ctx, s, batches, opts)
	case *reckon.CombineSpec:
		return opts.Engine.Combine(ctx, s.Combiner, batches)
	default:
		// AnalyzerSpec is a closed variant, so this arm is a defensive
		// assertion against specs smuggled in via embedding
		return nil, errors.UnsupportedAnalyzerKindError{Spec: spec}
	}
}

func resolveWriter(opts *Options) (reckon.ArtifactWriter, error) {
	if opts.Writer != nil {
		return opts.Writer, nil
	}
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("vocabulary analyzers need Options.Writer or Options.OutputDir")
	}
	return artifact.CreateFileWriter(opts.OutputDir)
}
