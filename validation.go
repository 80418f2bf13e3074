package reactotron

import (
	"fmt"
	"regexp"
	"strings"
)

const (
	// MaxFeatureNameLen is the maximum length of a plugin feature name.
	MaxFeatureNameLen = 128

	// MaxClientInfoEntries is the maximum number of client info entries.
	MaxClientInfoEntries = 100

	// MaxClientInfoKeyLen is the maximum length of a client info key.
	MaxClientInfoKeyLen = 256

	// MaxClientInfoValueLen is the maximum length of a client info value.
	MaxClientInfoValueLen = 4096
)

// validNamePattern matches valid feature names and client info keys.
// Must start with letter, contain only alphanumeric, underscore, hyphen, dot.
var validNamePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9_.\-]*$`)

// ValidateFeatureName validates a feature name declared by a plugin.
// Returns an error if:
// - Empty or too long
// - Contains invalid characters
func ValidateFeatureName(name string) error {
	if name == "" {
		return fmt.Errorf("feature name cannot be empty")
	}

	if len(name) > MaxFeatureNameLen {
		return fmt.Errorf("feature name too long: %d bytes (max: %d)", len(name), MaxFeatureNameLen)
	}

	if !validNamePattern.MatchString(name) {
		return fmt.Errorf("feature name %q contains invalid characters (must match: %s)", name, validNamePattern.String())
	}

	// Check for null bytes
	if strings.Contains(name, "\x00") {
		return fmt.Errorf("feature name contains null bytes")
	}

	return nil
}

// ValidateClientInfo validates the client info map sent in the hello payload.
// Returns an error if:
// - Too many entries (> MaxClientInfoEntries)
// - Key is empty, too long, or contains invalid characters
// - Value is too long
func ValidateClientInfo(info map[string]string) error {
	if len(info) > MaxClientInfoEntries {
		return fmt.Errorf("too many client info entries: %d (max: %d)", len(info), MaxClientInfoEntries)
	}

	for key, value := range info {
		// Validate key
		if key == "" {
			return fmt.Errorf("client info key cannot be empty")
		}
		if len(key) > MaxClientInfoKeyLen {
			return fmt.Errorf("client info key too long: %d bytes (max: %d)", len(key), MaxClientInfoKeyLen)
		}
		if !validNamePattern.MatchString(key) {
			return fmt.Errorf("client info key %q contains invalid characters (must match: %s)", key, validNamePattern.String())
		}

		// Validate value
		if len(value) > MaxClientInfoValueLen {
			return fmt.Errorf("client info value for key %q too long: %d bytes (max: %d)", key, len(value), MaxClientInfoValueLen)
		}

		if strings.Contains(key, "\x00") || strings.Contains(value, "\x00") {
			return fmt.Errorf("client info contains null bytes")
		}
	}

	return nil
}
