// Package codec encodes compiled SNG units as PNG streams.
//
// [PNG] implements [lang.Codec]. Full images are filtered with filter type
// None, interlaced with Adam7 when the header asks for it, and compressed
// with zlib into IDAT chunks of at most [DefaultChunkSize] bytes. IDAT data
// given in source is written verbatim.
package codec
