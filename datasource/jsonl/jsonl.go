// Package jsonl produces Batches from JSON Lines data. Columns are extracted
// lazily from each line using their configured path, which should be a gjson
// path. Values within the JSON which do not correspond to a configured column
// are ignored.
package jsonl

import (
	"bufio"
	"io"
	"os"

	"github.com/go-reckon/reckon"
)

// ColumnConf declares one column to extract from each JSON line
type ColumnConf struct {
	Path string             // Path is the gjson path of the value within each line
	Kind reckon.ElementKind // Kind is the scalar type to extract
}

// ParserConf configures a JSONL Parser, suitable for JSON Lines data
type ParserConf struct {
	BatchSize     int          // The maximum number of rows per Batch. Defaults to 128.
	MaxBufferSize int          // Maximum size in bytes of the buffer used to read lines
	Columns       []ColumnConf // The columns to extract from each line
}

// Parser produces Batches from JSONL data
type Parser struct {
	conf *ParserConf
}

// CreateParser returns a new JSONL Parser
func CreateParser(conf *ParserConf) *Parser {
	if conf.BatchSize == 0 {
		conf.BatchSize = 128
	}
	if conf.MaxBufferSize == 0 {
		conf.MaxBufferSize = bufio.MaxScanTokenSize
	}
	return &Parser{conf: conf}
}

// BatchSize returns the maximum size in rows of Batches produced by this Parser
func (p *Parser) BatchSize() int {
	return p.conf.BatchSize
}

// Parse parses JSONL data to produce Batches
func (p *Parser) Parse(r io.Reader) (reckon.BatchIterator, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), p.conf.MaxBufferSize)
	iterator := &jsonlBatchIterator{
		parser:       p,
		scanner:      scanner,
		endListeners: []func(){},
	}
	// prime the first line so HasNextBatch is accurate
	iterator.advance()
	return iterator, nil
}

// ParseFile parses a JSONL file to produce Batches, closing the file when the
// iterator is exhausted
func (p *Parser) ParseFile(path string) (reckon.BatchIterator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	it, err := p.Parse(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	it.OnEnd(func() { f.Close() })
	return it, nil
}
