package domain

// Schema identifies which source layout an installation was parsed from.
type Schema string

const (
	// SchemaModern is the single-file JSON5 config (openclaw.json and
	// its legacy product-name aliases).
	SchemaModern Schema = "modern"
	// SchemaLegacy is the multi-file YAML tree used by very old installs.
	SchemaLegacy Schema = "legacy"
)

// Omission is a source feature recognized but intentionally not migrated.
// Each becomes exactly one skipped entry in the report.
type Omission struct {
	Kind   string // report item kind: "config", "channel", "skill", ...
	Name   string
	Reason string
}

// Installation is the full canonical model of a source workspace. It is
// rebuilt from scratch on every run; the emitter owns turning it into
// destination files.
type Installation struct {
	SourceDir string
	Schema    Schema

	// ConfigFile is the basename of the source config that was parsed,
	// e.g. "openclaw.json" or "config.yaml". Used for report naming.
	ConfigFile string

	// Process-wide defaults for the destination config.
	DefaultModel ModelRef
	APIKeyEnv    string
	BaseURL      string
	DecayRate    float64

	Agents    []AgentSpec
	Channels  []ChannelSpec
	Omissions []Omission

	// Warnings collected while parsing (malformed entries that were
	// tolerated rather than fatal).
	Warnings []string
}
