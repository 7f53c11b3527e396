package flow

import (
	"regexp"
	"strconv"
	"strings"
)

// Mirrors the pattern used on the original intake form: word/dot/dash local
// part and domain, alphanumeric TLD.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// nonNumeric strips everything that cannot be part of a decimal number, so
// inputs like "$1,500.00" still parse.
var nonNumeric = regexp.MustCompile(`[^\d.]`)

const skipSentinel = "skip"

func validName(input string) bool {
	return len([]rune(input)) >= 3
}

func validEmail(input string) bool {
	return emailPattern.MatchString(input)
}

// parseUSD extracts a non-negative decimal from free text.
func parseUSD(input string) (float64, bool) {
	cleaned := nonNumeric.ReplaceAllString(input, "")
	if cleaned == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}

// isSkip reports whether the user opted out of an optional field.
func isSkip(input string) bool {
	return strings.EqualFold(input, skipSentinel)
}

// parseYesNo validates the strict Yes/No compliance answer.
func parseYesNo(input string) (yes bool, ok bool) {
	switch strings.ToLower(input) {
	case "yes":
		return true, true
	case "no":
		return false, true
	}
	return false, false
}
