package fault

import "time"

// Mode is the fault-injection selector. It is fixed at process start from
// configuration and read-only afterwards, so downstream test suites get
// deterministic behavior for the whole run.
type Mode string

const (
	Normal      Mode = "normal"
	AuthFail    Mode = "auth_fail"
	ServerError Mode = "server_error"
	SizeLimit   Mode = "size_limit"
	Slow        Mode = "slow"
)

const (
	// SizeLimitBytes is the upload ceiling enforced in size_limit mode.
	SizeLimitBytes = 1024

	// SlowDelay is the unconditional upload delay in slow mode.
	SlowDelay = 2 * time.Second
)

// Parse maps a mode name to a Mode. Unknown names behave as normal.
func Parse(s string) Mode {
	switch Mode(s) {
	case AuthFail, ServerError, SizeLimit, Slow:
		return Mode(s)
	default:
		return Normal
	}
}
