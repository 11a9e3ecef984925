package mapping

import "strings"

// canonicalTools is the closed set of OpenFang tool identifiers. "*" is the
// wildcard grant.
var canonicalTools = map[string]struct{}{
	"*":                {},
	"file_read":        {},
	"file_write":       {},
	"file_list":        {},
	"file_delete":      {},
	"shell_exec":       {},
	"web_fetch":        {},
	"web_search":       {},
	"browser_navigate": {},
	"agent_send":       {},
	"agent_list":       {},
	"memory_save":      {},
	"memory_search":    {},
	"schedule_create":  {},
}

// toolRenames maps lowercased OpenClaw tool spellings to canonical names.
var toolRenames = map[string]string{
	"read":            "file_read",
	"read_file":       "file_read",
	"view":            "file_read",
	"write":           "file_write",
	"write_file":      "file_write",
	"create_file":     "file_write",
	"edit":            "file_write",
	"str_replace":     "file_write",
	"apply_patch":     "file_write",
	"bash":            "shell_exec",
	"shell":           "shell_exec",
	"exec":            "shell_exec",
	"execute_command": "shell_exec",
	"run_command":     "shell_exec",
	"ls":              "file_list",
	"list":            "file_list",
	"list_files":      "file_list",
	"glob":            "file_list",
	"rm":              "file_delete",
	"delete_file":     "file_delete",
	"remove_file":     "file_delete",
	"webfetch":        "web_fetch",
	"fetch":           "web_fetch",
	"http_get":        "web_fetch",
	"curl":            "web_fetch",
	"websearch":       "web_search",
	"search":          "web_search",
	"brave_search":    "web_search",
	"browser":         "browser_navigate",
	"browse":          "browser_navigate",
	"playwright":      "browser_navigate",
	"sessions_send":   "agent_send",
	"send_message":    "agent_send",
	"message":         "agent_send",
	"sessions_list":   "agent_list",
	"list_agents":     "agent_list",
	"agents_list":     "agent_list",
	"remember":        "memory_save",
	"memory_write":    "memory_save",
	"recall":          "memory_search",
	"memory_read":     "memory_search",
	"cron":            "schedule_create",
	"schedule":        "schedule_create",
	"scheduler":       "schedule_create",
}

// IsCanonicalTool reports whether name is already a canonical identifier.
// The check is exact: canonical names are lowercase and case matters.
func IsCanonicalTool(name string) bool {
	_, ok := canonicalTools[name]
	return ok
}

// MapToolName translates one source tool name. Canonical names pass through
// unchanged; known aliases are looked up case-insensitively. The second
// return is false when the name has no OpenFang equivalent.
func MapToolName(name string) (string, bool) {
	if IsCanonicalTool(name) {
		return name, true
	}
	if mapped, ok := toolRenames[strings.ToLower(name)]; ok {
		return mapped, true
	}
	return "", false
}

// MapToolList translates a source tool list, deduplicating while preserving
// first-seen order. Names with no equivalent are returned separately so the
// caller can surface them as warnings.
func MapToolList(names []string) (mapped, unmapped []string) {
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		canonical, ok := MapToolName(name)
		if !ok {
			unmapped = append(unmapped, name)
			continue
		}
		if _, dup := seen[canonical]; dup {
			continue
		}
		seen[canonical] = struct{}{}
		mapped = append(mapped, canonical)
	}
	return mapped, unmapped
}
