package mapping

// toolProfiles are the named tool bundles agents may reference instead of an
// explicit allow list. Unknown profile names resolve to the full wildcard.
var toolProfiles = map[string][]string{
	"minimal":    {"file_read", "file_list", "web_fetch"},
	"coding":     {"file_read", "file_write", "file_list", "shell_exec", "web_fetch", "web_search"},
	"research":   {"file_read", "file_list", "web_fetch", "web_search", "browser_navigate", "memory_search"},
	"messaging":  {"file_read", "file_list", "agent_send", "agent_list", "memory_search"},
	"automation": {"file_read", "file_write", "file_list", "shell_exec", "web_fetch", "schedule_create"},
}

// defaultToolSet is granted when neither the agent nor the process defaults
// name any tools.
var defaultToolSet = []string{"file_read", "file_list", "web_fetch"}

// ToolsForProfile resolves a profile name to its tool set. The returned slice
// is a copy; callers may append freely.
func ToolsForProfile(profile string) []string {
	if tools, ok := toolProfiles[profile]; ok {
		out := make([]string, len(tools))
		copy(out, tools)
		return out
	}
	return []string{"*"}
}

// DefaultToolSet returns a copy of the minimal fallback tool set.
func DefaultToolSet() []string {
	out := make([]string, len(defaultToolSet))
	copy(out, defaultToolSet)
	return out
}
