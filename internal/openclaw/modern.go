package openclaw

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"

	"github.com/wipal/openfang/internal/domain"
	"github.com/wipal/openfang/internal/mapping"
)

// ParseModern reads a modern JSON config and normalizes the installation.
// The file format is JWCC (JSON with comments and trailing commas); it is
// standardized to plain JSON before decoding.
func ParseModern(sourceDir, configPath string) (*domain.Installation, error) {
	root, err := decodeModernRoot(configPath)
	if err != nil {
		return nil, err
	}

	inst := &domain.Installation{
		SourceDir:  sourceDir,
		Schema:     domain.SchemaModern,
		ConfigFile: filepath.Base(configPath),
		DecayRate:  0.05,
	}

	var defaults *rawAgentDefaults
	if root.Agents != nil {
		defaults = root.Agents.Defaults
	}

	inst.DefaultModel = modernDefaultModel(defaults)
	inst.APIKeyEnv = mapping.DefaultAPIKeyEnv(inst.DefaultModel.Provider)

	if root.Agents == nil {
		inst.Warnings = append(inst.Warnings, fmt.Sprintf("No agents section found in %s", inst.ConfigFile))
	} else {
		for i := range root.Agents.List {
			entry := &root.Agents.List[i]
			if entry.ID == "" {
				continue
			}
			inst.Agents = append(inst.Agents, convertModernAgent(entry, defaults))
		}
	}

	if root.Channels != nil {
		inst.Channels = convertModernChannels(root.Channels)
	}

	inst.Omissions = modernOmissions(root)
	return inst, nil
}

// decodeModernRoot reads and standardizes a JWCC config file into the raw
// root structure.
func decodeModernRoot(configPath string) (*rawRoot, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", configPath, err)
	}
	plain, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(configPath), err)
	}
	var root rawRoot
	if err := json.Unmarshal(plain, &root); err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(configPath), err)
	}
	return &root, nil
}

// modernDefaultModel resolves the process default model from
// agents.defaults.model, falling back to the stock Anthropic model.
func modernDefaultModel(defaults *rawAgentDefaults) domain.ModelRef {
	if defaults != nil && defaults.Model != nil && defaults.Model.Primary != "" {
		return mapping.SplitModelRef(defaults.Model.Primary)
	}
	return domain.ModelRef{Provider: mapping.DefaultProvider, Model: mapping.DefaultModel}
}

func convertModernAgent(entry *rawAgentEntry, defaults *rawAgentDefaults) domain.AgentSpec {
	display := entry.Name
	if display == "" {
		display = entry.ID
	}

	primary := extractPrimaryModel(entry, defaults)
	if primary == "" {
		primary = mapping.DefaultProvider + "/" + mapping.DefaultModel
	}
	model := mapping.SplitModelRef(primary)

	var fallbacks []domain.ModelRef
	for _, fb := range extractFallbackModels(entry, defaults) {
		fallbacks = append(fallbacks, mapping.SplitModelRef(fb))
	}

	tools, unmapped, profile := resolveModernTools(entry, defaults)

	prompt := entry.Identity
	if prompt == "" && defaults != nil {
		prompt = defaults.Identity
	}
	if prompt == "" {
		prompt = fmt.Sprintf("You are %s, an AI agent running on the OpenFang Agent OS. You are helpful, concise, and accurate.", display)
	}

	return domain.AgentSpec{
		ID:            entry.ID,
		Name:          display,
		Description:   fmt.Sprintf("Migrated from OpenClaw agent '%s'", entry.ID),
		Model:         model,
		Fallbacks:     fallbacks,
		Tools:         tools,
		Capabilities:  mapping.DeriveCapabilities(tools),
		SystemPrompt:  prompt,
		APIKeyEnv:     mapping.DefaultAPIKeyEnv(model.Provider),
		Profile:       profile,
		UnmappedTools: unmapped,
	}
}

// extractPrimaryModel returns the agent's model reference, falling back to
// the installation defaults.
func extractPrimaryModel(entry *rawAgentEntry, defaults *rawAgentDefaults) string {
	if entry.Model != nil && entry.Model.Primary != "" {
		return entry.Model.Primary
	}
	if defaults != nil && defaults.Model != nil {
		return defaults.Model.Primary
	}
	return ""
}

func extractFallbackModels(entry *rawAgentEntry, defaults *rawAgentDefaults) []string {
	if entry.Model != nil && len(entry.Model.Fallbacks) > 0 {
		return entry.Model.Fallbacks
	}
	if defaults != nil && defaults.Model != nil && len(defaults.Model.Fallbacks) > 0 {
		return defaults.Model.Fallbacks
	}
	return nil
}

// resolveModernTools applies the tool resolution order: the agent's explicit
// allow list (plus alsoAllow), then the agent's profile, then the
// installation defaults, then the minimal fallback set.
func resolveModernTools(entry *rawAgentEntry, defaults *rawAgentDefaults) (tools, unmapped []string, profile string) {
	if entry.Tools != nil {
		profile = entry.Tools.Profile
		if entry.Tools.Allow != nil {
			names := append(append([]string{}, entry.Tools.Allow...), entry.Tools.AlsoAllow...)
			tools, unmapped = mapping.MapToolList(names)
			return tools, unmapped, profile
		}
		if entry.Tools.Profile != "" {
			return mapping.ToolsForProfile(entry.Tools.Profile), nil, profile
		}
	}
	return resolveDefaultTools(defaults), nil, profile
}

func resolveDefaultTools(defaults *rawAgentDefaults) []string {
	if defaults != nil && defaults.Tools != nil {
		if defaults.Tools.Profile != "" {
			return mapping.ToolsForProfile(defaults.Tools.Profile)
		}
		if len(defaults.Tools.Allow) > 0 {
			mapped, _ := mapping.MapToolList(defaults.Tools.Allow)
			if len(mapped) > 0 {
				return mapped
			}
		}
	}
	return mapping.DefaultToolSet()
}

// modernOmissions records config sections that have no OpenFang equivalent.
func modernOmissions(root *rawRoot) []domain.Omission {
	var out []domain.Omission
	if root.Cron != nil {
		out = append(out, domain.Omission{
			Kind:   "config",
			Name:   "cron",
			Reason: "Cron job scheduling not yet supported; use OpenFang's periodic schedule mode instead",
		})
	}
	if root.Hooks != nil {
		out = append(out, domain.Omission{
			Kind:   "config",
			Name:   "hooks",
			Reason: "Webhook hooks not supported; use OpenFang's event system instead",
		})
	}
	if root.Auth != nil && root.Auth.Profiles != nil {
		out = append(out, domain.Omission{
			Kind:   "config",
			Name:   "auth-profiles",
			Reason: "Auth profiles (API keys, OAuth tokens) not migrated for security; set env vars manually",
		})
	}
	if root.Skills != nil && len(root.Skills.Entries) > 0 {
		out = append(out, domain.Omission{
			Kind:   "skill",
			Name:   fmt.Sprintf("%d skill entries", len(root.Skills.Entries)),
			Reason: "Skills must be reinstalled via `openfang skill install`",
		})
	}
	if root.Session != nil {
		out = append(out, domain.Omission{
			Kind:   "config",
			Name:   "session",
			Reason: "Session scope config differs; OpenFang uses per-agent sessions by default",
		})
	}
	if root.Memory != nil {
		out = append(out, domain.Omission{
			Kind:   "config",
			Name:   "memory",
			Reason: "Memory backend config not migrated; OpenFang uses SQLite with vector embeddings",
		})
	}
	return out
}
