package main

// Exit codes
const (
	ExitSuccess      = 0 // Success
	ExitError        = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError  = 2 // Configuration error (invalid config, missing data file)
	ExitDataError    = 3 // Data error (missing column, malformed row, population overlap)
	ExitInvalidParam = 4 // Invalid parameter (top-N bounds, weight range, unknown metric)
)
