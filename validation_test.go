package reactotron

import (
	"fmt"
	"strings"
	"testing"
)

// TestValidateFeatureName_Valid verifies valid feature names are accepted.
func TestValidateFeatureName_Valid(t *testing.T) {
	validNames := []string{
		"display",
		"log",
		"state.values.request",
		"my-feature_v2",
		"Benchmark",
		"api.v1",
	}

	for _, name := range validNames {
		if err := ValidateFeatureName(name); err != nil {
			t.Errorf("ValidateFeatureName(%q) should be valid: %v", name, err)
		}
	}
}

// TestValidateFeatureName_Invalid verifies invalid feature names are rejected.
func TestValidateFeatureName_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		feature   string
		wantError string
	}{
		{"empty", "", "cannot be empty"},
		{"too_long", strings.Repeat("a", 129), "too long"},
		{"starts_with_number", "1display", "invalid characters"},
		{"starts_with_dot", ".display", "invalid characters"},
		{"spaces", "my feature", "invalid characters"},
		{"slash", "a/b", "invalid characters"},
		{"special_chars", "feature@2", "invalid characters"},
		{"null_byte", "feature\x00", "invalid characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFeatureName(tt.feature)
			if err == nil {
				t.Errorf("ValidateFeatureName(%q) should return error", tt.feature)
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Error should contain %q, got: %v", tt.wantError, err)
			}
		})
	}
}

// TestValidateClientInfo_Valid verifies valid client info is accepted.
func TestValidateClientInfo_Valid(t *testing.T) {
	tests := []struct {
		name string
		info map[string]string
	}{
		{"nil", nil},
		{"empty", map[string]string{}},
		{"single_entry", map[string]string{"os": "linux"}},
		{"multiple_entries", map[string]string{
			"os":          "linux",
			"app.version": "1.2.3",
			"device":      "workstation",
		}},
		{"max_key_length", map[string]string{
			strings.Repeat("a", 256): "value",
		}},
		{"max_value_length", map[string]string{
			"key": strings.Repeat("x", 4096),
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateClientInfo(tt.info); err != nil {
				t.Errorf("ValidateClientInfo should be valid: %v", err)
			}
		})
	}
}

// TestValidateClientInfo_Invalid verifies invalid client info is rejected.
func TestValidateClientInfo_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		info      map[string]string
		wantError string
	}{
		{
			"too_many_entries",
			func() map[string]string {
				m := make(map[string]string)
				for i := 0; i < 101; i++ {
					m[fmt.Sprintf("key%d", i)] = "value"
				}
				return m
			}(),
			"too many client info entries",
		},
		{
			"empty_key",
			map[string]string{"": "value"},
			"cannot be empty",
		},
		{
			"key_too_long",
			map[string]string{strings.Repeat("a", 257): "value"},
			"key too long",
		},
		{
			"value_too_long",
			map[string]string{"key": strings.Repeat("x", 4097)},
			"value for key",
		},
		{
			"invalid_key_chars",
			map[string]string{"key@invalid": "value"},
			"invalid characters",
		},
		{
			"null_byte_in_value",
			map[string]string{"key": "value\x00admin"},
			"null bytes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClientInfo(tt.info)
			if err == nil {
				t.Error("ValidateClientInfo should return error")
			}
			if !strings.Contains(err.Error(), tt.wantError) {
				t.Errorf("Error should contain %q, got: %v", tt.wantError, err)
			}
		})
	}
}
