package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipal/openfang/internal/domain"
)

func sampleInstallation() *domain.Installation {
	return &domain.Installation{
		Schema:       domain.SchemaModern,
		ConfigFile:   "openclaw.json",
		DefaultModel: domain.ModelRef{Provider: "anthropic", Model: "claude-sonnet-4-20250514"},
		APIKeyEnv:    "ANTHROPIC_API_KEY",
		DecayRate:    0.05,
		Channels: []domain.ChannelSpec{
			{
				Kind:    "telegram",
				Enabled: true,
				Fields: []domain.Field{
					{Key: "bot_token_env", Value: "TELEGRAM_BOT_TOKEN"},
					{Key: "allowed_users", Value: []string{"user1"}},
				},
				DMPolicy:    "allowlist",
				GroupPolicy: "open",
				AllowFrom:   []string{"user1"},
			},
			{Kind: "imessage", SkipReason: "macOS-only channel; requires manual setup on the target Mac"},
		},
	}
}

func TestBuildConfig(t *testing.T) {
	cfg := BuildConfig(sampleInstallation())

	assert.Equal(t, "anthropic", cfg.DefaultModel.Provider)
	assert.Equal(t, "127.0.0.1:4200", cfg.Network.ListenAddr)
	assert.InDelta(t, 0.05, cfg.Memory.DecayRate, 1e-9)

	require.Contains(t, cfg.Channels, "telegram")
	assert.NotContains(t, cfg.Channels, "imessage", "skipped channels are never emitted")

	tg := cfg.Channels["telegram"]
	assert.Equal(t, "TELEGRAM_BOT_TOKEN", tg["bot_token_env"])

	overrides, ok := tg["overrides"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "allowed_only", overrides["dm_policy"])
	assert.Equal(t, "respond", overrides["group_policy"])
	assert.Equal(t, []string{"user1"}, overrides["allowed_users"])
}

func TestChannelTable_NoOverrides(t *testing.T) {
	ch := domain.ChannelSpec{
		Kind:   "discord",
		Fields: []domain.Field{{Key: "bot_token_env", Value: "DISCORD_BOT_TOKEN"}},
	}
	table := ChannelTable(&ch)
	assert.NotContains(t, table, "overrides")
}

func TestBuildManifest(t *testing.T) {
	spec := domain.AgentSpec{
		ID:           "coder",
		Name:         "Coder",
		Description:  "Migrated from OpenClaw agent 'coder'",
		Model:        domain.ModelRef{Provider: "deepseek", Model: "deepseek-chat"},
		Fallbacks:    []domain.ModelRef{{Provider: "groq", Model: "llama-3.3-70b-versatile"}},
		Tools:        []string{"file_read", "shell_exec"},
		Capabilities: domain.Capabilities{Shell: []string{"*"}},
		SystemPrompt: "You are an expert software engineer.",
		APIKeyEnv:    "DEEPSEEK_API_KEY",
	}
	m := BuildManifest(&spec)

	assert.Equal(t, "Coder", m.Name)
	assert.Equal(t, "0.1.0", m.Version)
	assert.Equal(t, "openfang", m.Author)
	assert.Equal(t, "builtin:chat", m.Module)
	assert.Equal(t, []string{"*"}, m.Capabilities.MemoryRead)
	assert.Equal(t, []string{"self.*"}, m.Capabilities.MemoryWrite)
	assert.Equal(t, []string{"*"}, m.Capabilities.Shell)
	assert.Empty(t, m.Capabilities.Network)
	assert.False(t, m.Capabilities.AgentSpawn)

	require.Len(t, m.FallbackModels, 1)
	assert.Equal(t, "GROQ_API_KEY", m.FallbackModels[0].APIKeyEnv)
	assert.Empty(t, m.FallbackModels[0].SystemPrompt)
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	e := &Emitter{TargetDir: dir}

	rel, err := e.WriteConfig(sampleInstallation())
	require.NoError(t, err)
	assert.Equal(t, "config.toml", rel)

	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# OpenFang Agent OS configuration"))
	assert.NotContains(t, string(data), "123:ABC", "no raw secret may appear in config")

	var decoded Config
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, "anthropic", decoded.DefaultModel.Provider)
	assert.Contains(t, decoded.Channels, "telegram")
}

func TestWriteConfig_Idempotent(t *testing.T) {
	dir := t.TempDir()
	e := &Emitter{TargetDir: dir}
	inst := sampleInstallation()

	_, err := e.WriteConfig(inst)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	_, err = e.WriteConfig(inst)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)

	assert.Equal(t, first, second, "rerun must be byte-identical")
}

func TestWriteAgent(t *testing.T) {
	dir := t.TempDir()
	e := &Emitter{TargetDir: dir}

	spec := domain.AgentSpec{
		ID:           "helper",
		Name:         "helper",
		Description:  "Migrated from OpenClaw agent 'helper'",
		Model:        domain.ModelRef{Provider: "anthropic", Model: "claude-sonnet-4-20250514"},
		Tools:        []string{"file_read"},
		SystemPrompt: "You are helper, an AI agent running on the OpenFang Agent OS. You are helpful, concise, and accurate.",
		APIKeyEnv:    "ANTHROPIC_API_KEY",
	}
	rel, err := e.WriteAgent(&spec)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("agents", "helper", "agent.toml"), rel)

	data, err := os.ReadFile(filepath.Join(dir, rel))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Migrated from OpenClaw agent 'helper'")

	var decoded Manifest
	require.NoError(t, toml.Unmarshal(data, &decoded))
	assert.Equal(t, "helper", decoded.Name)
	assert.Contains(t, decoded.Model.SystemPrompt, "OpenFang Agent OS")
	assert.Equal(t, []string{"file_read"}, decoded.Capabilities.Tools)
}

func TestEmitter_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	e := &Emitter{TargetDir: dir, DryRun: true}

	_, err := e.WriteConfig(sampleInstallation())
	require.NoError(t, err)
	spec := domain.AgentSpec{ID: "a", Name: "a", Model: domain.ModelRef{Provider: "anthropic", Model: "x"}}
	_, err = e.WriteAgent(&spec)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
