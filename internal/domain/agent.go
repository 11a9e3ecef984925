// Package domain defines the canonical in-memory model built by the schema
// adapters and consumed by the emitter. It is adapter-independent: both the
// modern JSON5 config and the legacy YAML tree parse into these types.
package domain

// ModelRef is a resolved provider/model pair.
type ModelRef struct {
	Provider string
	Model    string
}

// IsZero reports whether the reference carries no model at all.
func (m ModelRef) IsZero() bool {
	return m.Provider == "" && m.Model == ""
}

// AgentSpec is one agent ready for manifest emission.
type AgentSpec struct {
	ID           string
	Name         string // display name; falls back to ID
	Description  string
	Model        ModelRef
	Fallbacks    []ModelRef // ordered fallback chain
	Tools        []string   // resolved canonical tool identifiers
	Capabilities Capabilities
	SystemPrompt string
	APIKeyEnv    string
	BaseURL      string
	Tags         []string
	Profile      string // tool-profile hint when the source named one

	// UnmappedTools are source tool names with no canonical equivalent.
	// They are dropped from Tools and surfaced as warnings.
	UnmappedTools []string
}

// Capabilities are the coarse permission grants derived from an agent's
// resolved tool list. Grants only accumulate during one resolution pass.
type Capabilities struct {
	Shell        []string
	Network      []string
	AgentMessage []string
	AgentSpawn   bool
}
