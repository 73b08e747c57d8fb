package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeFormat, "bad line: %s", "gid:aid")

	if err.Code != ErrCodeFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeFormat)
	}

	if err.Message != "bad line: gid:aid" {
		t.Errorf("Message = %v, want %v", err.Message, "bad line: gid:aid")
	}

	expected := "FORMAT_ERROR: bad line: gid:aid"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeIO, cause, "failed to read")

	if err.Code != ErrCodeIO {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeIO)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeSubstitution, "not enough substitutions"),
			code:     ErrCodeSubstitution,
			expected: true,
		},
		{
			name:     "different code",
			err:      New(ErrCodeSubstitution, "not enough substitutions"),
			code:     ErrCodeFormat,
			expected: false,
		},
		{
			name:     "wrapped structured error",
			err:      fmt.Errorf("parse fixture: %w", New(ErrCodeUnresolvedReference, "node id unknown")),
			code:     ErrCodeUnresolvedReference,
			expected: true,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			code:     ErrCodeFormat,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeFormat,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeResourceNotFound, "missing")); got != ErrCodeResourceNotFound {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeResourceNotFound)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	if got := UserMessage(New(ErrCodeFormat, "too few fields")); got != "too few fields" {
		t.Errorf("UserMessage() = %v, want %q", got, "too few fields")
	}
	if got := UserMessage(errors.New("plain")); got != "plain" {
		t.Errorf("UserMessage(plain) = %v, want %q", got, "plain")
	}
}

func TestValidateResourceName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "testResourceLoading.txt", false},
		{"nested", "fixtures/simple.txt", false},
		{"empty", "", true},
		{"traversal", "../secrets.txt", true},
		{"absolute", "/etc/passwd", true},
		{"double slash", "fixtures//a.txt", true},
		{"backslash", "fixtures\\a.txt", true},
		{"control char", "fix\x01ture.txt", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateResourceName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateResourceName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}
