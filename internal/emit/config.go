// Package emit turns the canonical installation model into OpenFang's
// on-disk artifacts: config.toml and per-agent manifests. Output is
// deterministic so reruns produce byte-identical files.
package emit

import (
	"github.com/wipal/openfang/internal/domain"
	"github.com/wipal/openfang/internal/mapping"
)

// configHeader tops the generated config.toml. It carries no timestamp so
// repeated migrations do not churn the file.
const configHeader = "# OpenFang Agent OS configuration\n# Migrated from OpenClaw\n\n"

// Config is the config.toml document.
type Config struct {
	DefaultModel ModelSection              `toml:"default_model"`
	Memory       MemorySection             `toml:"memory"`
	Network      NetworkSection            `toml:"network"`
	Channels     map[string]map[string]any `toml:"channels,omitempty"`
}

// ModelSection is the [default_model] table.
type ModelSection struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	APIKeyEnv string `toml:"api_key_env"`
	BaseURL   string `toml:"base_url,omitempty"`
}

// MemorySection is the [memory] table.
type MemorySection struct {
	DecayRate float64 `toml:"decay_rate"`
}

// NetworkSection is the [network] table.
type NetworkSection struct {
	ListenAddr string `toml:"listen_addr"`
}

// defaultListenAddr is the loopback API endpoint OpenFang binds by default.
const defaultListenAddr = "127.0.0.1:4200"

// BuildConfig assembles the config.toml document from the installation's
// defaults and its migratable channels.
func BuildConfig(inst *domain.Installation) Config {
	cfg := Config{
		DefaultModel: ModelSection{
			Provider:  inst.DefaultModel.Provider,
			Model:     inst.DefaultModel.Model,
			APIKeyEnv: inst.APIKeyEnv,
			BaseURL:   inst.BaseURL,
		},
		Memory:  MemorySection{DecayRate: inst.DecayRate},
		Network: NetworkSection{ListenAddr: defaultListenAddr},
	}

	for i := range inst.Channels {
		ch := &inst.Channels[i]
		if ch.SkipReason != "" {
			continue
		}
		if cfg.Channels == nil {
			cfg.Channels = make(map[string]map[string]any)
		}
		cfg.Channels[ch.Kind] = ChannelTable(ch)
	}
	return cfg
}

// ChannelTable renders one channel's [channels.<kind>] table. Policy inputs
// are normalized here, at the emission boundary, and land in a nested
// overrides table only when the source set at least one of them.
func ChannelTable(ch *domain.ChannelSpec) map[string]any {
	table := make(map[string]any, len(ch.Fields)+1)
	for _, f := range ch.Fields {
		table[f.Key] = f.Value
	}

	if !ch.HasOverrides() {
		return table
	}
	overrides := make(map[string]any, 3)
	if ch.DMPolicy != "" {
		overrides["dm_policy"] = mapping.MapDMPolicy(ch.DMPolicy)
	}
	if ch.GroupPolicy != "" {
		overrides["group_policy"] = mapping.MapGroupPolicy(ch.GroupPolicy)
	}
	if len(ch.AllowFrom) > 0 {
		overrides["allowed_users"] = ch.AllowFrom
	}
	table["overrides"] = overrides
	return table
}
