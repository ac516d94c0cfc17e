package main

// Exit codes shared by all wordsim commands.
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (no embeddings configured, cache missing)
	ExitDataError    = 3 // Data error (malformed embeddings file, corrupt cache)
	ExitWordNotFound = 4 // Queried word absent from the vocabulary
	ExitNoQueryTerms = 5 // No query term resolved against the vocabulary
	ExitCacheStale   = 6 // Vector cache no longer matches the source file
)
