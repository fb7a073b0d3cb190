package jsonl

import (
	"bufio"
	"sync"

	"github.com/go-reckon/reckon"
	"github.com/go-reckon/reckon/errors"
)

type jsonlBatchIterator struct {
	parser       *Parser
	scanner      *bufio.Scanner
	pending      string
	hasPending   bool
	ended        bool
	lock         sync.Mutex
	endListeners []func()
}

// OnEnd registers a listener which fires when this iterator runs out of Batches
func (jsonli *jsonlBatchIterator) OnEnd(onEnd func()) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	jsonli.endListeners = append(jsonli.endListeners, onEnd)
}

// HasNextBatch returns true iff this BatchIterator can produce another Batch
func (jsonli *jsonlBatchIterator) HasNextBatch() bool {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasPending {
		jsonli.end()
	}
	return jsonli.hasPending
}

// NextBatch returns the next Batch if one is available, or an error
func (jsonli *jsonlBatchIterator) NextBatch() (*reckon.Batch, error) {
	jsonli.lock.Lock()
	defer jsonli.lock.Unlock()
	if !jsonli.hasPending {
		jsonli.end()
		return nil, errors.NoMoreBatchesError{}
	}
	lines := make([]string, 0, jsonli.parser.BatchSize())
	for len(lines) < jsonli.parser.BatchSize() && jsonli.hasPending {
		lines = append(lines, jsonli.pending)
		jsonli.advance()
	}
	if err := jsonli.scanner.Err(); err != nil {
		return nil, err
	}
	if !jsonli.hasPending {
		jsonli.end()
	}
	return buildBatch(jsonli.parser.conf.Columns, lines)
}

// advance buffers the next line of input, so that exhaustion is detected
// before the final Batch is handed out
func (jsonli *jsonlBatchIterator) advance() {
	if jsonli.scanner.Scan() {
		jsonli.pending = jsonli.scanner.Text()
		jsonli.hasPending = true
		return
	}
	jsonli.pending = ""
	jsonli.hasPending = false
}

func (jsonli *jsonlBatchIterator) end() {
	if jsonli.ended {
		return
	}
	jsonli.ended = true
	for _, l := range jsonli.endListeners {
		l()
	}
	jsonli.endListeners = []func(){}
}
