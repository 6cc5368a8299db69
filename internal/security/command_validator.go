package security

import (
	"fmt"
	"strings"
)

// ValidationResult contains the result of command validation.
type ValidationResult struct {
	Valid   bool
	Reason  string
	Pattern string // The token or operator that decided the result, if any
}

// compositionOperators chain, pipe or substitute commands. Longer operators
// come first so the reported pattern is the most specific one.
var compositionOperators = []string{
	"&&",
	"||",
	"$(",
	"`",
	";",
	"|",
	"\n",
}

// ValidateComposition rejects commands that would run anything beyond their
// base command. It is the strict-mode complement to the first-token policy.
func ValidateComposition(command string) ValidationResult {
	trimmed := strings.TrimSpace(command)
	if trimmed == "" {
		return ValidationResult{
			Valid:  false,
			Reason: "empty command",
		}
	}

	for _, op := range compositionOperators {
		if strings.Contains(trimmed, op) {
			return ValidationResult{
				Valid:   false,
				Reason:  fmt.Sprintf("contains shell composition %q", op),
				Pattern: op,
			}
		}
	}

	return ValidationResult{
		Valid:  true,
		Reason: "single command",
	}
}
