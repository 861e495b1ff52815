package moderation

import "regexp"

// Redaction runs after classification, on clean messages only, so that
// candidate PII never reaches the prompt builder or the session store.
// Steps apply in a fixed order; placeholder tokens contain no characters that
// any later (or earlier) step matches, which makes Redact idempotent.

type redaction struct {
	pattern     *regexp.Regexp
	replacement string
}

var redactions = []redaction{
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`), "[EMAIL_REDACTED]"},
	{regexp.MustCompile(`\b(?:\+?1[-.\s]?)?\(?([0-9]{3})\)?[-.\s]?([0-9]{3})[-.\s]?([0-9]{4})\b`), "[PHONE_REDACTED]"},
	{regexp.MustCompile(`\b\d{3}[-.\s]?\d{3}[-.\s]?\d{4}\b`), "[PHONE_REDACTED]"},
	{regexp.MustCompile(`\b\d{3}[-\s]?\d{2}[-\s]?\d{4}\b`), "[SSN_REDACTED]"},
	{regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`), "[CARD_REDACTED]"},
	{regexp.MustCompile(`(?i)\b\d+\s+[A-Za-z\s]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Lane|Ln|Boulevard|Blvd|Court|Ct|Place|Pl)\b`), "[ADDRESS_REDACTED]"},
	{regexp.MustCompile(`(?i)\b(my name is|i'm|i am|call me)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\b`), "${1} [NAME_REDACTED]"},
}

// Redact replaces emails, phone numbers, SSNs, card numbers, street addresses
// and self-introduced names with placeholder tokens. The second return value
// reports whether anything was replaced.
func Redact(message string) (string, bool) {
	sanitized := message
	for _, r := range redactions {
		sanitized = r.pattern.ReplaceAllString(sanitized, r.replacement)
	}
	return sanitized, sanitized != message
}
