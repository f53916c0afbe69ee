package driven

// Configuration keys understood by the CLI.
const (
	ConfigSitemapPath = "sitemap.path"
	ConfigServeAddr   = "serve.addr"
	ConfigServeRoot   = "serve.root"
	ConfigServeRate   = "serve.rate"
	ConfigServeBurst  = "serve.burst"
	ConfigLogVerbose  = "log.verbose"
)

// ConfigStore provides access to application configuration.
// Implementations handle persistence (TOML files) and type conversion.
// Getters fall back to built-in defaults for known keys.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	// Returns the value and a boolean indicating if the key exists.
	Get(key string) (any, bool)

	// GetString retrieves a string configuration value.
	// Returns empty string if key doesn't exist or isn't a string.
	GetString(key string) string

	// GetInt retrieves an integer configuration value.
	// Returns 0 if key doesn't exist or isn't an integer.
	GetInt(key string) int

	// GetFloat retrieves a numeric configuration value as float64.
	// Returns 0 if key doesn't exist or isn't a number.
	GetFloat(key string) float64

	// GetBool retrieves a boolean configuration value.
	// Returns false if key doesn't exist or isn't a boolean.
	GetBool(key string) bool

	// Set stores a configuration value.
	// The value is persisted immediately.
	Set(key string, value any) error

	// Unset removes a stored value, restoring the default if there is one.
	Unset(key string) error

	// Keys returns the stored keys, sorted.
	Keys() []string

	// Save persists the current configuration to storage.
	Save() error

	// Load reads configuration from storage.
	Load() error

	// Path returns the configuration file path.
	Path() string
}
