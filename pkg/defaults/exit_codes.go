package defaults

// Exit codes for the CLI.
const (
	ExitSuccess       = 0 // Import or reimport completed
	ExitUserError     = 2 // Invalid arguments or configuration
	ExitNetworkError  = 3 // Remote request failed (non-2xx or transport error)
	ExitInternalError = 4 // Unexpected internal error
)
