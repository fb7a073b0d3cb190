// Package engine provides a local, data-parallel combine engine which drives
// the accumulator protocol over a stream of Batches: every worker folds
// batches into its own Accumulator, partial results cross worker boundaries
// as serialized lz4 frames, and frames are merged in an engine-chosen tree.
// Correctness never depends on tree shape, worker count, or arrival order -
// only on the associativity and commutativity of Accumulator.Merge.
package engine

import (
	"context"
	"log"
	"runtime"
	"sync"
	"sync/atomic"

	uuid "github.com/gofrs/uuid"
	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/errors"
	"github.com/go-reckon/reckon/logging"
	"github.com/hashicorp/go-multierror"
)

// Conf configures an Engine
type Conf struct {
	NumWorkers int             // NumWorkers is the number of parallel accumulating workers. Defaults to runtime.NumCPU().
	FanIn      int             // FanIn is the maximum number of partial results merged in one tree step. Defaults to 8.
	Logger     *logging.Logger // Logger receives engine diagnostics. Defaults to discarding them.
}

func ensureDefaultConfValues(conf *Conf) *Conf {
	if conf == nil {
		conf = &Conf{}
	}
	if conf.NumWorkers <= 0 {
		conf.NumWorkers = runtime.NumCPU()
	}
	if conf.FanIn < 2 {
		conf.FanIn = 8
	}
	if conf.Logger == nil {
		conf.Logger = logging.CreateLogger(logging.FatalLevel, nil)
	}
	return conf
}

// An Engine runs accumulator-based reductions over Batch streams
type Engine struct {
	id   string
	conf *Conf
}

// Create is a factory for Engines
func Create(conf *Conf) *Engine {
	id, err := uuid.NewV4()
	if err != nil {
		log.Fatalf("failed to generate UUID: %v", err)
	}
	return &Engine{id: id.String(), conf: ensureDefaultConfValues(conf)}
}

// ID returns the ID of this Engine
func (e *Engine) ID() string {
	return e.id
}

// localState tracks the per-process initialization of a Combiner's local
// state for one reduction. The wrapped Do is idempotent and safe for
// concurrent workers; a replacement engine run simply initializes again.
type localState struct {
	once sync.Once
	err  error
}

func (ls *localState) ensure(e *Engine, comb reckon.Combiner) error {
	init, ok := comb.(reckon.LocalStateInitializer)
	if !ok {
		return nil
	}
	ls.once.Do(func() {
		ls.err = init.InitLocalState(&reckon.LocalStateConfig{
			WorkerID:   e.id,
			NumWorkers: e.conf.NumWorkers,
		})
	})
	return ls.err
}

// Combine folds every Batch from batches into Accumulators produced by comb,
// merges the partial results, and returns the extracted output. If zero
// Batches are observed, Combine fails with errors.EmptyInputError when comb
// requires non-empty input, and otherwise extracts a default output from a
// fresh Accumulator.
func (e *Engine) Combine(ctx context.Context, comb reckon.Combiner, batches reckon.BatchIterator) (interface{}, error) {
	conf := e.conf
	ls := &localState{}
	batchChan := make(chan *reckon.Batch)
	frameChan := make(chan []byte, conf.NumWorkers)
	errChan := make(chan error, conf.NumWorkers+1)
	workersDone := make(chan struct{})
	var observed int64

	// feed batches to workers, serializing access to the iterator
	var feederWg sync.WaitGroup
	feederWg.Add(1)
	go func() {
		defer feederWg.Done()
		defer close(batchChan)
		for batches.HasNextBatch() {
			batch, err := batches.NextBatch()
			if err != nil {
				if _, done := err.(errors.NoMoreBatchesError); done {
					return
				}
				errChan <- err
				return
			}
			// check cancellation first, so it wins over a ready worker
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			default:
			}
			select {
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			case <-workersDone:
				// all workers bailed out, a worker error is already queued
				return
			case batchChan <- batch:
				atomic.AddInt64(&observed, 1)
			}
		}
	}()

	// accumulate on workers
	var wg sync.WaitGroup
	for i := 0; i < conf.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ls.ensure(e, comb); err != nil {
				errChan <- err
				return
			}
			codec := newFrameCodec()
			var acc reckon.Accumulator
			for batch := range batchChan {
				if acc == nil {
					acc = comb.CreateAccumulator()
				}
				if err := acc.Add(batch); err != nil {
					errChan <- err
					return
				}
			}
			// a worker which saw no batches contributes no partial result
			if acc == nil {
				return
			}
			frame, err := codec.encode(acc)
			if err != nil {
				errChan <- err
				return
			}
			frameChan <- frame
		}()
	}
	go func() {
		wg.Wait()
		close(workersDone)
		close(frameChan)
	}()

	frames := make([][]byte, 0, conf.NumWorkers)
	for frame := range frameChan {
		frames = append(frames, frame)
	}
	feederWg.Wait()
	close(errChan)
	var merr *multierror.Error
	for err := range errChan {
		merr = multierror.Append(merr, err)
	}
	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}

	if atomic.LoadInt64(&observed) == 0 {
		if comb.RequiresNonEmptyInput() {
			return nil, errors.EmptyInputError{}
		}
		conf.Logger.Debugf("engine %s: empty input, extracting default output", e.id)
		return comb.ExtractOutput(comb.CreateAccumulator())
	}

	final, err := e.mergeFrames(comb, frames)
	if err != nil {
		return nil, err
	}
	return comb.ExtractOutput(final)
}

// mergeFrames reduces serialized partial results to a single Accumulator,
// merging at most FanIn frames per tree step. Each merge consumes its input
// Accumulators and re-serializes the result, so every partial remains a pure
// value until it is merged away.
func (e *Engine) mergeFrames(comb reckon.Combiner, frames [][]byte) (reckon.Accumulator, error) {
	codec := newFrameCodec()
	for len(frames) > 1 {
		n := e.conf.FanIn
		if n > len(frames) {
			n = len(frames)
		}
		group, rest := frames[:n], frames[n:]
		merged, err := codec.decode(comb.CreateAccumulator(), group[0])
		if err != nil {
			return nil, err
		}
		for _, frame := range group[1:] {
			acc, err := codec.decode(comb.CreateAccumulator(), frame)
			if err != nil {
				return nil, err
			}
			if err := merged.Merge(acc); err != nil {
				return nil, err
			}
		}
		frame, err := codec.encode(merged)
		if err != nil {
			return nil, err
		}
		frames = append(rest, frame)
	}
	return codec.decode(comb.CreateAccumulator(), frames[0])
}
