package event

// EventSchemaVersion is the current event schema version
const EventSchemaVersion = "1.0"

// Metadata keys
const (
	MetaKeyRequestID = "request_id"
	MetaKeyIsolation = "isolation"
)

// Log messages
const (
	// LogMsgHandlerErrorFormat reports handler failures for one publish
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"

	// ErrMsgNilPayload is returned when a payload is missing; %T names the wanted type
	ErrMsgNilPayload = "event payload is nil, want %T"
)
