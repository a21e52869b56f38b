package extraction

import "strings"

const (
	fenceOpen  = "```json"
	fenceClose = "```"
)

// fenced is the result of splitting model output into
// [fence-open] payload [fence-close].
type fenced struct {
	Payload string
	Opened  bool
	Closed  bool
}

// splitFence strips at most one leading "```json" token and at most one
// trailing "```" token. Only the outermost fence is removed; anything
// nested inside stays in the payload and fails the JSON parse.
func splitFence(raw string) fenced {
	var f fenced
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, fenceOpen) {
		s = s[len(fenceOpen):]
		f.Opened = true
	}
	if strings.HasSuffix(s, fenceClose) {
		s = s[:len(s)-len(fenceClose)]
		f.Closed = true
	}
	f.Payload = strings.TrimSpace(s)
	return f
}

// StripFence returns the JSON payload of a model response with any markdown
// code fence removed.
func StripFence(raw string) string {
	return splitFence(raw).Payload
}
