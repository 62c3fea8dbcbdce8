// Package lang compiles SNG, an editable text rendering of PNG images, into
// an ordered sequence of typed chunk records.
//
// The compiler is a single pass over the input: a tokenizer with one slot of
// pushback, a static registry of chunk kinds, a pixel data decoder working
// below the tokenizer, and one interpreter per supported chunk kind. Every
// compiled chunk is handed to a [Codec] as soon as it is complete; the
// compiler itself never compresses, checksums or serializes image data.
//
// # Grammar
//
// Informal EBNF:
//
//	Unit     → Chunk* EOF
//	Chunk    → Name '{' Body '}'
//	Name     → IHDR | PLTE | IDAT | IMAGE | cHRM | gAMA | sRGB | ...
//	Comment  → '#' <text up to end of line>
//
// Bodies are chunk specific. IDAT and IMAGE bodies are raw data blocks read
// a character at a time: IDAT always as hexadecimal digit pairs, IMAGE either
// as hexadecimal or, when one sample fits a single character, in compact
// mode where 0-9, a-z and A-Z stand for the values 0 through 61.
//
// # Example
//
//	# 2x2 palette image
//	IHDR {
//	  width 2 height 2 bitdepth 8
//	  using palette color
//	}
//	gAMA { 0.45455 }
//	PLTE {
//	  (255, 0, 0)
//	  (0, 0, 255)
//	}
//	IMAGE {
//	  01
//	  10
//	}
//
// # Ordering
//
// IHDR comes first. cHRM, gAMA, iCCP, sBIT and sRGB come before PLTE and
// the image data; PLTE comes before bKGD, tRNS, hIST and the image data; IDAT
// chunks are contiguous and never mixed with IMAGE. A misplaced or repeated
// chunk aborts the compile at its position.
//
// # Diagnostics
//
// Compilation stops at the first error. Every error is an [*Error] whose
// message is the single line "<source>:<line>: <message>", with "EOF" in
// place of the line for checks made after the whole input was read.
package lang
