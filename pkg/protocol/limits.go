package protocol

const (
	// MaxMessageSize bounds one client message.
	MaxMessageSize = 64 << 10

	// MaxQueryValues bounds the number of values one params key may carry.
	MaxQueryValues = 64
)
