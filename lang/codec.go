package lang

import "io"

// Codec serializes compiled chunks to a binary image stream.
//
// The compiler calls Begin once, then the Set methods as the corresponding
// chunks are compiled, then WriteRawChunk or WriteImage for each payload
// chunk, and finally Finalize after every end-of-input check has passed. Any
// returned error aborts the compile and is reported as a codec error.
type Codec interface {
	Begin(w io.Writer) error
	SetHeader(h Header) error
	SetPalette(p Palette) error
	SetPrimaries(p Primaries) error
	SetGamma(gamma float64) error
	SetStandardRGB(intent uint8) error
	WriteRawChunk(name string, data []byte) error
	WriteImage(rows [][]byte) error
	Finalize() error
}

// nopCodec accepts every call and writes nothing.
type nopCodec struct{}

func (nopCodec) Begin(io.Writer) error              { return nil }
func (nopCodec) SetHeader(Header) error             { return nil }
func (nopCodec) SetPalette(Palette) error           { return nil }
func (nopCodec) SetPrimaries(Primaries) error       { return nil }
func (nopCodec) SetGamma(float64) error             { return nil }
func (nopCodec) SetStandardRGB(uint8) error         { return nil }
func (nopCodec) WriteRawChunk(string, []byte) error { return nil }
func (nopCodec) WriteImage([][]byte) error          { return nil }
func (nopCodec) Finalize() error                    { return nil }
