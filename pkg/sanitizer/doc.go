// Package sanitizer provides string-level security helpers shared across
// the engine: detection of markup and SQL injection fragments in untrusted
// text, HTML escaping, and masking primitives used by field redaction.
//
// Detection functions answer yes/no; they never rewrite the payload.
// Rejecting suspicious input outright is safer than attempting to clean it,
// since stripped payloads can reassemble into working exploits.
package sanitizer
