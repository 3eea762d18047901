package logger

// Accepted LOG_LEVEL values
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Accepted LOG_FORMAT values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Fallback identity for DefaultConfig
const (
	DefaultServiceName = "huanyu"
	DefaultVersion     = "dev"
	EnvironmentDev     = "dev"
)

// Attribute keys shared by every record
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "env"
	AttrKeyRequestID   = "request_id"
)
