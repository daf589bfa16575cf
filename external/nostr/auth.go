package nostr

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	n "github.com/nbd-wtf/go-nostr"
)

const HeaderScheme = "Nostr"

const (
	AuthKind = 24242

	ActionTag     = "t"
	HashTag       = "x"
	ExpirationTag = "expiration"
	ServerTag     = "server"
)

// blossom action tags
const (
	GET    = "get"
	UPLOAD = "upload"
	LIST   = "list"
	DELETE = "delete"
)

// Errors validating an auth event
var (
	ErrMissingAuth    = errors.New("No auth event provided")
	ErrMalformedAuth  = errors.New("Malformed auth event")
	ErrIncorrectKind  = errors.New("Incorrect event kind")
	ErrMissingPubkey  = errors.New("Missing pubkey in auth event")
	ErrActionMismatch = errors.New("Action mismatch")
	ErrHashMismatch   = errors.New("Hash mismatch")
	ErrEventExpired   = errors.New("Auth event expired")
)

// ParseNostrHeader decodes an Authorization header of the form
// "Nostr <base64-encoded-event-json>".
func ParseNostrHeader(authHeader string) (n.Event, error) {
	var event n.Event

	if authHeader == "" {
		return event, ErrMissingAuth
	}

	scheme, encoded, found := strings.Cut(authHeader, " ")
	if !found || scheme != HeaderScheme {
		return event, fmt.Errorf("%w: expected %q scheme", ErrMalformedAuth, HeaderScheme)
	}

	jsonBytes, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return event, fmt.Errorf("%w: base64.StdEncoding.DecodeString(encoded). %v", ErrMalformedAuth, err)
	}

	err = json.Unmarshal(jsonBytes, &event)
	if err != nil {
		return event, fmt.Errorf("%w: json.Unmarshal(jsonBytes, &event). %v", ErrMalformedAuth, err)
	}
	return event, nil
}

// ValidateBlossomAuth checks the structure of a kind 24242 event against the
// action the caller is attempting and, when targetHash is non-empty, the blob
// it targets. The signature is deliberately not verified; this validator is a
// structural and policy check only.
//
// The pubkey is returned even when validation fails, so a permissive caller
// can name the caller in its warning log.
func ValidateBlossomAuth(event n.Event, action string, targetHash string, now int64) (string, error) {
	if event.Kind != AuthKind {
		return "", fmt.Errorf("%w: expected %d, got %d", ErrIncorrectKind, AuthKind, event.Kind)
	}
	if event.PubKey == "" {
		return "", ErrMissingPubkey
	}

	var actionVal, hashVal, expirationVal string
	for _, tag := range event.Tags {
		if len(tag) < 2 {
			continue
		}
		switch tag.Key() {
		case ActionTag:
			actionVal = tag.Value()
		case HashTag:
			hashVal = tag.Value()
		case ExpirationTag:
			expirationVal = tag.Value()
		}
	}

	pubkey := event.PubKey

	if actionVal != action {
		return pubkey, fmt.Errorf("%w: expected %s, got %s", ErrActionMismatch, action, actionVal)
	}

	// An absent x tag is fine; a present one has to match.
	if targetHash != "" && hashVal != "" && hashVal != targetHash {
		return pubkey, fmt.Errorf("%w: expected %s, got %s", ErrHashMismatch, targetHash, hashVal)
	}

	if expirationVal != "" {
		exp, err := strconv.ParseInt(expirationVal, 10, 64)
		// An unparseable expiration tag is ignored, not an error.
		if err == nil && exp < now {
			return pubkey, fmt.Errorf("%w at %d, current time %d", ErrEventExpired, exp, now)
		}
	}

	return pubkey, nil
}

// Authorize parses and validates an Authorization header in one step.
func Authorize(authHeader string, action string, targetHash string, now int64) (string, error) {
	event, err := ParseNostrHeader(authHeader)
	if err != nil {
		return "", err
	}
	return ValidateBlossomAuth(event, action, targetHash, now)
}

type NotifMessage struct {
	Message string `json:"message"`
}

type ErrorMessage struct {
	Error string `json:"error"`
}
