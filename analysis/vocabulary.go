package analysis

import (
	"container/heap"
	"context"
	"fmt"
	"sort"

	xxhash "github.com/cespare/xxhash/v2"
	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/errors"
	"golang.org/x/sync/errgroup"
)

// EmptyVocabularySentinel is the single entry written, with count 1, when no
// valid element survives filtering, so that a vocabulary artifact always
// contains at least one line. The token is a historical constant chosen not
// to collide with real data; downstream consumers are not expected to parse
// it specially.
const EmptyVocabularySentinel = "49d0cd50-04bb-48c0-bc6f-5b575dce351a"

// vocabularySizeMetric is the distribution sample recorded once per
// vocabulary build
const vocabularySizeMetric = "vocabulary_size"

// numCountShards bounds the fan-out of the per-shard count merge
const numCountShards = 32

// A CountEntry is one row of the ranked vocabulary table
type CountEntry struct {
	Count   int64
	Element reckon.Element
}

// rankLess returns true iff a ranks strictly below b in the vocabulary
// ordering: primarily by count, secondarily by the element's natural
// ordering. The final table lists highest-ranked entries first, so equal
// counts appear in reverse natural element order.
func rankLess(a CountEntry, b CountEntry) bool {
	if a.Count != b.Count {
		return a.Count < b.Count
	}
	return a.Element.Less(b.Element)
}

// buildVocabulary counts the distinct Elements across all Batches, then
// filters, ranks and serializes them into a line-oriented artifact. The
// artifact's location is returned only once the write has completed, so a
// caller holding the location may safely hand it to downstream consumers.
func buildVocabulary(ctx context.Context, spec *reckon.UniquesSpec, batches reckon.BatchIterator, opts *Options) (string, error) {
	writer, err := resolveWriter(opts)
	if err != nil {
		return "", err
	}
	shards, err := countElements(ctx, batches, opts.NumWorkers)
	if err != nil {
		return "", err
	}
	entries := collectEntries(shards, spec.FrequencyThreshold, spec.TopK)
	// sort descending: highest count first, ties in reverse element order
	sort.Slice(entries, func(i, j int) bool {
		return rankLess(entries[j], entries[i])
	})
	if len(entries) == 0 {
		entries = []CountEntry{{Count: 1, Element: reckon.StringElement(EmptyVocabularySentinel)}}
	}
	opts.Metrics.Distribution(vocabularySizeMetric, int64(len(entries)))
	opts.Logger.Debugf("vocabulary %s has %d entries", spec.OutputName, len(entries))

	lines := make([]string, len(entries))
	for i, entry := range entries {
		if spec.StoreFrequency {
			lines[i] = fmt.Sprintf("%d %s", entry.Count, entry.Element.String())
		} else {
			lines[i] = entry.Element.String()
		}
	}
	return writer.WriteLines(spec.OutputName, lines)
}

// countElements runs the distributed count-per-element reduction: workers
// fold Batches into private sharded count maps, then shards are summed across
// workers. Partial counts merge by integer addition, so the result is
// insensitive to batch order, worker count and merge grouping.
func countElements(ctx context.Context, batches reckon.BatchIterator, numWorkers int) ([]map[reckon.Element]int64, error) {
	g, gctx := errgroup.WithContext(ctx)
	batchChan := make(chan *reckon.Batch)

	// feed batches to workers, serializing access to the iterator
	g.Go(func() error {
		defer close(batchChan)
		for batches.HasNextBatch() {
			batch, err := batches.NextBatch()
			if err != nil {
				if _, done := err.(errors.NoMoreBatchesError); done {
					return nil
				}
				return err
			}
			select {
			case <-gctx.Done():
				return gctx.Err()
			case batchChan <- batch:
			}
		}
		return nil
	})

	workerShards := make([][]map[reckon.Element]int64, numWorkers)
	for w := 0; w < numWorkers; w++ {
		shards := make([]map[reckon.Element]int64, numCountShards)
		for s := range shards {
			shards[s] = make(map[reckon.Element]int64)
		}
		workerShards[w] = shards
		g.Go(func() error {
			for batch := range batchChan {
				for _, e := range batch.Flatten() {
					s := xxhash.Sum64String(e.String()) % numCountShards
					shards[s][e]++
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// sum each shard across workers
	merged := make([]map[reckon.Element]int64, numCountShards)
	var mg errgroup.Group
	for s := 0; s < numCountShards; s++ {
		s := s
		mg.Go(func() error {
			m := make(map[reckon.Element]int64)
			for _, shards := range workerShards {
				for e, count := range shards[s] {
					m[e] += count
				}
			}
			merged[s] = m
			return nil
		})
	}
	if err := mg.Wait(); err != nil {
		return nil, err
	}
	return merged, nil
}

// collectEntries filters the counted table and applies the optional top-K
// bound. Elements whose representation would corrupt a line-oriented
// artifact are always discarded; the frequency threshold runs before top-K
// selection because it is cheaper and the two commute. The top-K bound is
// enforced with a fixed-size min-heap so the full table is never
// materialized in ranked form.
func collectEntries(shards []map[reckon.Element]int64, threshold float64, topK int) []CountEntry {
	var entries []CountEntry
	var top *entryHeap
	if topK >= 0 {
		top = &entryHeap{}
		heap.Init(top)
	}
	for _, shard := range shards {
		for e, count := range shard {
			if !e.Valid() {
				continue
			}
			if threshold >= 0 && float64(count) < threshold {
				continue
			}
			entry := CountEntry{Count: count, Element: e}
			if top == nil {
				entries = append(entries, entry)
				continue
			}
			if top.Len() < topK {
				heap.Push(top, entry)
			} else if topK > 0 && rankLess((*top)[0], entry) {
				(*top)[0] = entry
				heap.Fix(top, 0)
			}
		}
	}
	if top != nil {
		return *top
	}
	return entries
}

// entryHeap is a min-heap under the vocabulary ranking, keeping the
// lowest-ranked retained entry at its root
type entryHeap []CountEntry

func (h entryHeap) Len() int            { return len(h) }
func (h entryHeap) Less(i, j int) bool  { return rankLess(h[i], h[j]) }
func (h entryHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x interface{}) { *h = append(*h, x.(CountEntry)) }
func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	entry := old[n-1]
	*h = old[:n-1]
	return entry
}
