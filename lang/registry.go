package lang

import "github.com/sahilm/fuzzy"

// ChunkType enumerates the chunk kinds known to the compiler.
type ChunkType int

const noChunk ChunkType = -1

// The PNG 1.0 chunks in the order of their summary table (IEND is implicit),
// the PNG 1.2 special-purpose chunks, the IMAGE pseudo-chunk and the
// catch-all for private chunks.
const (
	ChunkIHDR ChunkType = iota
	ChunkPLTE
	ChunkIDAT
	ChunkCHRM
	ChunkGAMA
	ChunkICCP
	ChunkSBIT
	ChunkSRGB
	ChunkBKGD
	ChunkHIST
	ChunkTRNS
	ChunkPHYS
	ChunkSPLT
	ChunkTIME
	ChunkITXT
	ChunkTEXT
	ChunkZTXT
	ChunkOFFS
	ChunkPCAL
	ChunkSCAL
	ChunkGIFG
	ChunkGIFT
	ChunkGIFX
	ChunkFRAC
	ChunkIMAGE
	ChunkPrivate

	numChunkTypes
)

// ChunkKind describes one known chunk kind.
type ChunkKind struct {
	Type     ChunkType
	Name     string
	Multiple bool // may occur more than once
}

var registry = [numChunkTypes]ChunkKind{
	{ChunkIHDR, "IHDR", false},
	{ChunkPLTE, "PLTE", false},
	{ChunkIDAT, "IDAT", true},
	{ChunkCHRM, "cHRM", false},
	{ChunkGAMA, "gAMA", false},
	{ChunkICCP, "iCCP", false},
	{ChunkSBIT, "sBIT", false},
	{ChunkSRGB, "sRGB", false},
	{ChunkBKGD, "bKGD", false},
	{ChunkHIST, "hIST", false},
	{ChunkTRNS, "tRNS", false},
	{ChunkPHYS, "pHYs", false},
	{ChunkSPLT, "sPLT", true},
	{ChunkTIME, "tIME", false},
	{ChunkITXT, "iTXt", true},
	{ChunkTEXT, "tEXt", true},
	{ChunkZTXT, "zTXt", true},
	{ChunkOFFS, "oFFs", false},
	{ChunkPCAL, "pCAL", false},
	{ChunkSCAL, "sCAL", false},
	{ChunkGIFG, "gIFg", false},
	{ChunkGIFT, "gIFt", false},
	{ChunkGIFX, "gIFx", false},
	{ChunkFRAC, "fRAc", false},
	{ChunkIMAGE, "IMAGE", false},
	{ChunkPrivate, "private", true},
}

// aliases maps alternate spellings accepted in source to chunk types.
var aliases = map[string]ChunkType{
	"HEADER":  ChunkIHDR,
	"PALETTE": ChunkPLTE,
}

// String returns the chunk name of t.
func (t ChunkType) String() string {
	if t < 0 || t >= numChunkTypes {
		return "none"
	}

	return registry[t].Name
}

// Kind returns the registry entry of t.
func (t ChunkType) Kind() ChunkKind { return registry[t] }

// LookupChunk returns the registry entry named name, accepting aliases.
func LookupChunk(name string) (ChunkKind, bool) {
	for _, k := range registry {
		if k.Name == name {
			return k, true
		}
	}

	if t, ok := aliases[name]; ok {
		return registry[t], true
	}

	return ChunkKind{}, false
}

// ChunkNames returns the names of all known chunk kinds in registry order.
func ChunkNames() []string {
	names := make([]string, 0, len(registry))
	for _, k := range registry {
		names = append(names, k.Name)
	}

	return names
}

// suggestChunk returns the registered name that best matches an unknown
// chunk name, or "" if nothing is close. Matching ignores case.
func suggestChunk(name string) string {
	if name == "" {
		return ""
	}

	matches := fuzzy.Find(name, ChunkNames())
	if len(matches) == 0 {
		return ""
	}

	return matches[0].Str
}

// counters records how many chunks of each kind a compile has seen.
type counters [numChunkTypes]int

// payloads returns the number of IDAT and IMAGE chunks seen.
func (c *counters) payloads() int {
	return c[ChunkIDAT] + c[ChunkIMAGE]
}
