package emit

import (
	"fmt"

	"github.com/wipal/openfang/internal/domain"
	"github.com/wipal/openfang/internal/mapping"
)

// Manifest is one agents/<id>/agent.toml document.
type Manifest struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description"`
	Author      string `toml:"author"`
	Module      string `toml:"module"`

	Tags []string `toml:"tags,omitempty"`

	Model          ManifestModel        `toml:"model"`
	FallbackModels []ManifestModel      `toml:"fallback_models,omitempty"`
	Capabilities   ManifestCapabilities `toml:"capabilities"`
}

// ManifestModel is a [model] or [[fallback_models]] table. Only the primary
// model carries a system prompt.
type ManifestModel struct {
	Provider     string `toml:"provider"`
	Model        string `toml:"model"`
	SystemPrompt string `toml:"system_prompt,multiline,omitempty"`
	APIKeyEnv    string `toml:"api_key_env,omitempty"`
	BaseURL      string `toml:"base_url,omitempty"`
}

// ManifestCapabilities is the [capabilities] table. Memory access defaults
// are fixed: read everything, write only the agent's own namespace.
type ManifestCapabilities struct {
	Tools        []string `toml:"tools"`
	MemoryRead   []string `toml:"memory_read"`
	MemoryWrite  []string `toml:"memory_write"`
	Network      []string `toml:"network,omitempty"`
	Shell        []string `toml:"shell,omitempty"`
	AgentMessage []string `toml:"agent_message,omitempty"`
	AgentSpawn   bool     `toml:"agent_spawn,omitempty"`
	Profile      string   `toml:"profile,omitempty"`
}

// BuildManifest assembles the agent manifest document.
func BuildManifest(spec *domain.AgentSpec) Manifest {
	m := Manifest{
		Name:        spec.Name,
		Version:     "0.1.0",
		Description: spec.Description,
		Author:      "openfang",
		Module:      "builtin:chat",
		Tags:        spec.Tags,
		Model: ManifestModel{
			Provider:     spec.Model.Provider,
			Model:        spec.Model.Model,
			SystemPrompt: spec.SystemPrompt,
			APIKeyEnv:    spec.APIKeyEnv,
			BaseURL:      spec.BaseURL,
		},
		Capabilities: ManifestCapabilities{
			Tools:        spec.Tools,
			MemoryRead:   []string{"*"},
			MemoryWrite:  []string{"self.*"},
			Network:      spec.Capabilities.Network,
			Shell:        spec.Capabilities.Shell,
			AgentMessage: spec.Capabilities.AgentMessage,
			AgentSpawn:   spec.Capabilities.AgentSpawn,
			Profile:      spec.Profile,
		},
	}

	for _, fb := range spec.Fallbacks {
		m.FallbackModels = append(m.FallbackModels, ManifestModel{
			Provider:  fb.Provider,
			Model:     fb.Model,
			APIKeyEnv: mapping.DefaultAPIKeyEnv(fb.Provider),
		})
	}
	return m
}

// manifestHeader tops each generated agent manifest.
func manifestHeader(agentID string) string {
	return fmt.Sprintf("# OpenFang agent manifest\n# Migrated from OpenClaw agent '%s'\n\n", agentID)
}
