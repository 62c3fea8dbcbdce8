// Package cmd implements the sngc subcommands: compile, check, dump and init.
//
// Every command reads one SNG source file, or stdin when the source is "-".
// Compiler options shared by all commands travel in the context installed by
// [WithOptions], and the parsed kong context by [WithContext].
package cmd

var (
	// CacheIdentifier is the kong variable identifier containing the path to
	// the runtime cache directory.
	CacheIdentifier = "cache"

	// ConfigIdentifier is the kong variable identifier containing the path to
	// the YAML configuration file.
	ConfigIdentifier = "config"

	// ChunkSizeIdentifier is the kong variable identifier containing the
	// default image data chunk size.
	ChunkSizeIdentifier = "chunkSize"
)
