package mapping

import "strings"

// MapDMPolicy normalizes an OpenClaw direct-message policy to the OpenFang
// vocabulary. Unrecognized values fall back to "respond", the permissive
// default, so a typo never silences a channel.
func MapDMPolicy(policy string) string {
	switch strings.ToLower(policy) {
	case "open":
		return "respond"
	case "allowlist", "allow_list":
		return "allowed_only"
	case "pairing", "disabled":
		return "ignore"
	default:
		return "respond"
	}
}

// MapGroupPolicy normalizes an OpenClaw group-chat policy.
func MapGroupPolicy(policy string) string {
	switch strings.ToLower(policy) {
	case "open":
		return "respond"
	case "mention", "mention_only":
		return "mention_only"
	case "disabled":
		return "ignore"
	default:
		return "respond"
	}
}
