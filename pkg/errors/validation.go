package errors

import "regexp"

// Lower bounds for tree configuration.
const (
	MinWidth      = 4
	MinLogicDepth = 3
)

// Upper bounds for tree configuration. A width-w tree needs at most w/2+1
// reduction levels, so MaxLogicDepth never rejects a depth a legal width needs.
const (
	MaxWidth      = 256
	MaxLogicDepth = MaxWidth/2 + 2
)

// ValidateWidth validates the multiplier operand width.
func ValidateWidth(width int) error {
	if width < MinWidth {
		return New(ErrCodeInvalidConfig, "width must be at least %d, got %d", MinWidth, width)
	}
	if width > MaxWidth {
		return New(ErrCodeInvalidConfig, "width must be at most %d, got %d", MaxWidth, width)
	}
	return nil
}

// ValidateLogicDepth validates the reduction level cap.
func ValidateLogicDepth(depth int) error {
	if depth < MinLogicDepth {
		return New(ErrCodeInvalidConfig, "logic depth must be at least %d, got %d", MinLogicDepth, depth)
	}
	if depth > MaxLogicDepth {
		return New(ErrCodeInvalidConfig, "logic depth must be at most %d, got %d", MaxLogicDepth, depth)
	}
	return nil
}

// identRegex matches identifiers accepted by Verilog and VHDL alike.
var identRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidatePrefix validates the naming prefix of partial-product signals.
// The prefix ends up verbatim in generated hardware descriptions, so it must
// be a plain identifier.
func ValidatePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidConfig, "signal prefix cannot be empty")
	}
	if len(prefix) > 64 {
		return New(ErrCodeInvalidConfig, "signal prefix too long (max 64 characters)")
	}
	if !identRegex.MatchString(prefix) {
		return New(ErrCodeInvalidConfig, "signal prefix %q is not a valid identifier", prefix)
	}
	return nil
}

// CheckIndex returns an OUT_OF_RANGE error when idx is outside [0, limit).
// The label names the kind of index (row, column) in the message.
func CheckIndex(label string, idx, limit int) error {
	if idx < 0 || idx >= limit {
		return New(ErrCodeOutOfRange, "%s %d out of range [0, %d)", label, idx, limit)
	}
	return nil
}
