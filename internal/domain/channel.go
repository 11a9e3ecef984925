package domain

// Field is one key/value pair destined for a channel's config table.
// Fields are kept as an ordered slice so emission stays deterministic.
type Field struct {
	Key   string
	Value any
}

// SecretRecord is a credential value routed to the quarantine store
// instead of plaintext config.
type SecretRecord struct {
	Key   string
	Value string
}

// CredentialBundle is an opaque credential file or directory (WhatsApp auth
// dir, Google Chat service account) copied wholesale into the destination
// credentials area.
type CredentialBundle struct {
	Name    string // report name, e.g. "whatsapp/credentials"
	Source  string // absolute source path
	DestRel string // destination path relative to the target root
	IsDir   bool
	Warning string // emitted after a successful copy
}

// ChannelSpec is one source channel in canonical form. A spec either carries
// a SkipReason (reported as skipped, nothing emitted) or an emission payload:
// config fields, quarantined secrets, credential bundles, and policy inputs.
type ChannelSpec struct {
	Kind    string // canonical kind name, e.g. "telegram", "google_chat"
	Enabled bool
	Fields  []Field
	Secrets []SecretRecord
	Bundles []CredentialBundle

	// Policy inputs in their source spelling; normalization happens at
	// emission time. Empty string means "not specified".
	DMPolicy    string
	GroupPolicy string
	AllowFrom   []string

	// Extra preserves the raw config of unrecognized channel kinds so the
	// report can name what it could not migrate.
	Extra map[string]any

	// SkipReason, when non-empty, marks the channel as not migratable.
	SkipReason string
}

// HasOverrides reports whether the channel carries at least one explicit
// policy input. Only then is an overrides block emitted.
func (c *ChannelSpec) HasOverrides() bool {
	return c.DMPolicy != "" || c.GroupPolicy != "" || len(c.AllowFrom) > 0
}
