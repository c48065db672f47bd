package define

const (
	// DefaultBufferLength is the default chunk size, in bytes, used when
	// streaming an archive out of a container.
	DefaultBufferLength = 2 * 1024 * 1024

	// DefaultLogLevel is used when neither the command line nor the
	// configuration file sets one.
	DefaultLogLevel = "warn"
)

// LogLevels supported by docker-cp
var LogLevels = []string{"trace", "debug", "info", "warn", "warning", "error", "fatal", "panic"}
