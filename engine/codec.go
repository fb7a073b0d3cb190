package engine

import (
	"bytes"

	"github.com/go-reckon/reckon"
	"github.com/pierrec/lz4"
)

// A frameCodec converts Accumulators to and from the serialized,
// lz4-compressed frames which cross worker boundaries. Workers share no
// memory, so a partial result leaves its worker only as a frame. A frameCodec
// reuses internal buffers and is not safe for concurrent use; each worker
// owns one.
type frameCodec struct {
	compressor         *lz4.Writer
	decompressor       *lz4.Reader
	reusableReadBuffer *bytes.Buffer
}

// newFrameCodec instantiates a new frameCodec
func newFrameCodec() *frameCodec {
	return &frameCodec{
		compressor:         lz4.NewWriter(new(bytes.Buffer)),
		decompressor:       lz4.NewReader(new(bytes.Buffer)),
		reusableReadBuffer: new(bytes.Buffer),
	}
}

// encode serializes and compresses an Accumulator into a frame
func (c *frameCodec) encode(acc reckon.Accumulator) ([]byte, error) {
	data, err := acc.ToBytes()
	if err != nil {
		return nil, err
	}
	var frame bytes.Buffer
	c.compressor.Reset(&frame)
	if _, err := c.compressor.Write(data); err != nil {
		return nil, err
	}
	if err := c.compressor.Close(); err != nil {
		return nil, err
	}
	return frame.Bytes(), nil
}

// decode decompresses and deserializes a frame, using proto to construct the
// resulting Accumulator
func (c *frameCodec) decode(proto reckon.Accumulator, frame []byte) (reckon.Accumulator, error) {
	c.decompressor.Reset(bytes.NewReader(frame))
	c.reusableReadBuffer.Reset()
	if _, err := c.reusableReadBuffer.ReadFrom(c.decompressor); err != nil {
		return nil, err
	}
	return proto.FromBytes(c.reusableReadBuffer.Bytes())
}
