package user

// Error messages
const (
	ErrMsgRegisterFailed = "failed to register %q: %w"
	ErrMsgGetFailed      = "failed to load account %s: %w"
	ErrMsgLookupFailed   = "failed to look up %q: %w"
)

// Log messages
const (
	LogMsgRegisterCalled   = "RegisterAccount called"
	LogMsgAccountCreated   = "Account registered"
	LogMsgRegisterRejected = "Account registration rejected"
)
