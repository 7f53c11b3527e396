// Package domain holds the core types of the trade-desk intake flow:
// questionnaire steps, per-user sessions, outbound prompts and the final
// submission record. It has no dependencies on transports or stores.
package domain
