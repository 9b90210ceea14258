package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestCodeOfWalksChain(t *testing.T) {
	base := New(CodeInvalidColor, "colors.text", errors.New("bad hex"))
	wrapped := fmt.Errorf("register teal: %w", base)

	if got := CodeOf(wrapped); got != CodeInvalidColor {
		t.Fatalf("CodeOf() = %q, want %q", got, CodeInvalidColor)
	}
	if !IsCode(wrapped, CodeInvalidColor) {
		t.Fatal("IsCode() = false, want true")
	}
	if IsCode(wrapped, CodeInvalidFont) {
		t.Fatal("IsCode() matched the wrong code")
	}
}

func TestCodeOfPlainError(t *testing.T) {
	if got := CodeOf(errors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf() = %q, want %q", got, CodeUnknown)
	}
	if got := CodeOf(nil); got != CodeUnknown {
		t.Fatalf("CodeOf(nil) = %q, want %q", got, CodeUnknown)
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  Error
		want string
	}{
		{name: "message and cause", err: New(CodeParseFailed, "parse ocean.yaml", errors.New("line 3")), want: "parse ocean.yaml: line 3"},
		{name: "message only", err: New(CodeUnknownTheme, "unknown theme: mystery", nil), want: "unknown theme: mystery"},
		{name: "cause only", err: New(CodeNotFound, "", errors.New("gone")), want: "gone"},
		{name: "code only", err: Error{Code: CodeMissingHighlight}, want: "missing_highlight"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Fatalf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := New(CodeConfigurationError, "load", cause)
	if !errors.Is(err, cause) {
		t.Fatal("errors.Is should find the wrapped cause")
	}
}
