package api

import "fmt"

// User-facing lines, shared by the CLI and the terminal tool.
const (
	MsgHashFailed      = "Error generating hash"
	MsgMatchFailed     = "Error checking match"
	MsgNoMatch         = "No match found"
	MsgSubscribed      = "Subscribed successfully!"
	MsgUnknownError    = "Unknown error"
	MsgConnectFailed   = "Could not connect to server."
	MsgInvalidEmail    = "Invalid email format."
	MsgNeedText        = "Enter text to hash"
	MsgNeedTextAndHash = "Enter both text and hash"
)

// Line renders the reply the way the hash tool shows it: the digest, the
// server's error, or a generic failure.
func (r *HashResult) Line() string {
	switch {
	case r.Hash != "":
		return r.Hash
	case r.Error != "":
		return r.Error
	}
	return MsgHashFailed
}

func (r *MatchResult) Line() string {
	if r.Match {
		return fmt.Sprintf("Match found (%s)", r.Algorithm)
	}
	if r.Message != "" {
		return r.Message
	}
	if r.Error != "" {
		return r.Error
	}
	return MsgNoMatch
}

func (r *SubscribeResult) Line() string {
	if r.Success {
		return MsgSubscribed
	}
	reason := r.Error
	if reason == "" {
		reason = MsgUnknownError
	}
	return "Subscription failed: " + reason
}
