package normhash

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Digest computed (and verified, if requested)
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration or options
	ExitInputNotFound    = 20 // Input file does not exist
	ExitInputUnreadable  = 21 // Input could not be opened or read
	ExitOutputUnwritable = 22 // Normalized output could not be created or written
	ExitEncodingError    = 23 // Input is not valid UTF-8 text
	ExitDigestMismatch   = 30 // verify: computed digest differs from the expected one
)

const (
	// DefaultEOL is the line separator used when none is configured.
	DefaultEOL = "\n"

	// DigestHexLength is the length of a rendered SHA-256 digest.
	DigestHexLength = 64

	// StdioPath stands for stdin (input) or stdout (output) on the command line.
	StdioPath = "-"

	// DigestFileSuffix is appended to a file name to form its sidecar digest file.
	DigestFileSuffix = ".sha256"
)
