package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wipal/openfang/internal/report"
)

const modernConfig = `{
  // migrated workspace
  agents: {
    defaults: {
      model: "anthropic/claude-sonnet-4-20250514",
      tools: { profile: "coding" },
    },
    list: [
      {
        id: "coder",
        name: "Coder",
        model: {
          primary: "deepseek/deepseek-chat",
          fallbacks: ["groq/llama-3.3-70b-versatile"],
        },
        tools: { allow: ["Read", "Write", "Bash", "quantum_entangle"] },
        identity: "You are an expert software engineer.",
      },
      { id: "researcher", tools: { profile: "research" } },
    ],
  },
  channels: {
    telegram: {
      botToken: "123:ABC",
      allowFrom: ["user1"],
      dmPolicy: "allowlist",
    },
    slack: { botToken: "xoxb-1", enabled: false },
    imessage: {},
    carrierpigeon: { coopUrl: "http://coop.local" },
  },
  cron: { jobs: [] },
}
`

func writeModernSource(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "openclaw.json"), []byte(modernConfig), 0o644))

	memDir := filepath.Join(src, "memory", "coder")
	require.NoError(t, os.MkdirAll(memDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(memDir, "MEMORY.md"), []byte("## Context\nnotes\n"), 0o644))

	sessDir := filepath.Join(src, "sessions")
	require.NoError(t, os.MkdirAll(sessDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(sessDir, "a.jsonl"), []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sessDir, "b.jsonl"), []byte("{}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(sessDir, "notes.txt"), []byte("not a session\n"), 0o644))

	wsDir := filepath.Join(src, "workspaces", "coder")
	require.NoError(t, os.MkdirAll(wsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(wsDir, "main.go"), []byte("package main\n"), 0o644))
	return src
}

func writeLegacySource(t *testing.T) string {
	t.Helper()
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "config.yaml"),
		[]byte("provider: anthropic\nmodel: claude-sonnet-4-20250514\n"), 0o644))

	agentDir := filepath.Join(src, "agents", "coder")
	require.NoError(t, os.MkdirAll(agentDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(agentDir, "agent.yaml"),
		[]byte("name: coder\ndescription: A coding assistant\ntools:\n  - read_file\n  - write_file\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(agentDir, "MEMORY.md"), []byte("remember this\n"), 0o644))

	msgDir := filepath.Join(src, "messaging")
	require.NoError(t, os.MkdirAll(msgDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(msgDir, "telegram.yaml"),
		[]byte("type: telegram\nbot_token_env: MY_TG_TOKEN\ndefault_agent: coder\n"), 0o644))
	return src
}

func TestRun_SourceMissing(t *testing.T) {
	_, err := Run(Options{SourceDir: filepath.Join(t.TempDir(), "nope"), TargetDir: t.TempDir()})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceNotFound)
}

func TestRun_Modern(t *testing.T) {
	src := writeModernSource(t)
	dst := t.TempDir()

	rep, err := Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)

	// config.toml carries channel tables but never a raw secret
	cfg, err := os.ReadFile(filepath.Join(dst, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "[channels.telegram]")
	assert.NotContains(t, string(cfg), "123:ABC")
	assert.NotContains(t, string(cfg), "[channels.slack]")

	// secrets land in the quarantine store
	env, err := os.ReadFile(filepath.Join(dst, "secrets.env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "TELEGRAM_BOT_TOKEN=123:ABC")

	// agent manifests
	coder, err := os.ReadFile(filepath.Join(dst, "agents", "coder", "agent.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(coder), "deepseek")
	assert.True(t, fileExists(filepath.Join(dst, "agents", "researcher", "agent.toml")))

	// auxiliary state
	assert.True(t, fileExists(filepath.Join(dst, "agents", "coder", "imported_memory.md")))
	assert.True(t, fileExists(filepath.Join(dst, "imported_sessions", "a.jsonl")))
	assert.True(t, fileExists(filepath.Join(dst, "imported_sessions", "b.jsonl")))
	assert.False(t, fileExists(filepath.Join(dst, "imported_sessions", "notes.txt")))
	assert.True(t, fileExists(filepath.Join(dst, "agents", "coder", "workspace", "main.go")))

	// report persisted
	assert.True(t, fileExists(filepath.Join(dst, "migration_report.md")))

	// unmapped tool surfaced as a warning, not an error
	foundWarning := false
	for _, w := range rep.Warnings {
		if strings.Contains(w, "quantum_entangle") {
			foundWarning = true
		}
	}
	assert.True(t, foundWarning)
}

func TestRun_EveryChannelAccountedOnce(t *testing.T) {
	src := writeModernSource(t)
	rep, err := Run(Options{SourceDir: src, TargetDir: t.TempDir()})
	require.NoError(t, err)

	counts := map[string]int{}
	for _, item := range rep.Imported {
		if item.Kind == report.KindChannel {
			counts[item.Name]++
		}
	}
	for _, item := range rep.Skipped {
		if item.Kind == report.KindChannel {
			counts[item.Name]++
		}
	}
	assert.Equal(t, map[string]int{
		"telegram":      1,
		"slack":         1,
		"imessage":      1,
		"carrierpigeon": 1,
	}, counts)
}

func TestRun_DisabledChannelSkipped(t *testing.T) {
	src := writeModernSource(t)
	dst := t.TempDir()
	rep, err := Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)

	var slackReason string
	for _, item := range rep.Skipped {
		if item.Kind == report.KindChannel && item.Name == "slack" {
			slackReason = item.Reason
		}
	}
	assert.Equal(t, "disabled in source config", slackReason)

	env, err := os.ReadFile(filepath.Join(dst, "secrets.env"))
	require.NoError(t, err)
	assert.NotContains(t, string(env), "SLACK", "disabled channel secrets are not extracted")
}

func TestRun_Idempotent(t *testing.T) {
	src := writeModernSource(t)
	dst := t.TempDir()

	_, err := Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)
	firstCfg, err := os.ReadFile(filepath.Join(dst, "config.toml"))
	require.NoError(t, err)
	firstAgent, err := os.ReadFile(filepath.Join(dst, "agents", "coder", "agent.toml"))
	require.NoError(t, err)

	// A user-added secret must survive the rerun.
	env, err := os.ReadFile(filepath.Join(dst, "secrets.env"))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dst, "secrets.env"),
		append(env, []byte("USER_ADDED=keepme\n")...), 0o600))

	_, err = Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)

	secondCfg, err := os.ReadFile(filepath.Join(dst, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, firstCfg, secondCfg)

	secondAgent, err := os.ReadFile(filepath.Join(dst, "agents", "coder", "agent.toml"))
	require.NoError(t, err)
	assert.Equal(t, firstAgent, secondAgent)

	env, err = os.ReadFile(filepath.Join(dst, "secrets.env"))
	require.NoError(t, err)
	assert.Contains(t, string(env), "USER_ADDED=keepme")
	assert.Equal(t, 1, strings.Count(string(env), "TELEGRAM_BOT_TOKEN="))
}

func TestRun_DryRun(t *testing.T) {
	src := writeModernSource(t)
	dst := t.TempDir()

	rep, err := Run(Options{SourceDir: src, TargetDir: dst, DryRun: true})
	require.NoError(t, err)

	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Empty(t, entries, "dry run must not touch the target")

	assert.True(t, rep.DryRun)
	assert.NotEmpty(t, rep.Imported, "dry run still accounts for everything")
	names := make([]string, 0, len(rep.Imported))
	for _, item := range rep.Imported {
		names = append(names, item.Name)
	}
	assert.Contains(t, names, "coder")
	assert.Contains(t, names, "TELEGRAM_BOT_TOKEN")
}

func TestRun_Legacy(t *testing.T) {
	src := writeLegacySource(t)
	dst := t.TempDir()

	rep, err := Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)

	cfg, err := os.ReadFile(filepath.Join(dst, "config.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "[channels.telegram]")
	assert.Contains(t, string(cfg), "MY_TG_TOKEN")
	assert.False(t, fileExists(filepath.Join(dst, "secrets.env")), "legacy channels carry no raw secrets")

	assert.True(t, fileExists(filepath.Join(dst, "agents", "coder", "agent.toml")))
	assert.True(t, fileExists(filepath.Join(dst, "agents", "coder", "imported_memory.md")))

	var configImported bool
	for _, item := range rep.Imported {
		if item.Kind == report.KindConfig && item.Name == "config.yaml" {
			configImported = true
		}
	}
	assert.True(t, configImported)
}

func TestRun_LegacyWithoutConfigYaml(t *testing.T) {
	src := t.TempDir()
	agentDir := filepath.Join(src, "agents", "solo")
	require.NoError(t, os.MkdirAll(agentDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(agentDir, "agent.yaml"), []byte("name: solo\n"), 0o644))

	dst := t.TempDir()
	rep, err := Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)

	cfg, err := os.ReadFile(filepath.Join(dst, "config.toml"))
	require.NoError(t, err, "config.toml is emitted even without a source config")
	assert.Contains(t, string(cfg), "claude-sonnet-4-20250514")
	assert.Contains(t, rep.Warnings, "No config.yaml found in OpenClaw workspace")
}

func TestRun_MemoryLayoutPrecedence(t *testing.T) {
	src := writeModernSource(t)
	// Same agent also has memory in the old location; the new one must win.
	oldDir := filepath.Join(src, "agents", "coder")
	require.NoError(t, os.MkdirAll(oldDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(oldDir, "MEMORY.md"), []byte("stale\n"), 0o644))

	dst := t.TempDir()
	_, err := Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dst, "agents", "coder", "imported_memory.md"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "notes")
	assert.NotContains(t, string(data), "stale")
}

func TestRun_EmptyMemorySkipped(t *testing.T) {
	src := writeModernSource(t)
	emptyDir := filepath.Join(src, "memory", "researcher")
	require.NoError(t, os.MkdirAll(emptyDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(emptyDir, "MEMORY.md"), []byte("   \n\n"), 0o644))

	dst := t.TempDir()
	_, err := Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)
	assert.False(t, fileExists(filepath.Join(dst, "agents", "researcher", "imported_memory.md")))
}

func TestRun_DuplicateAgentID(t *testing.T) {
	src := t.TempDir()
	cfg := `{
  agents: {
    list: [
      { id: "twin", name: "First" },
      { id: "twin", name: "Second" },
    ],
  },
}
`
	require.NoError(t, os.WriteFile(filepath.Join(src, "openclaw.json"), []byte(cfg), 0o644))

	dst := t.TempDir()
	rep, err := Run(Options{SourceDir: src, TargetDir: dst})
	require.NoError(t, err)

	var imported, skipped int
	for _, item := range rep.Imported {
		if item.Kind == report.KindAgent && item.Name == "twin" {
			imported++
		}
	}
	for _, item := range rep.Skipped {
		if item.Kind == report.KindAgent && item.Name == "twin" {
			skipped++
		}
	}
	assert.Equal(t, 1, imported)
	assert.Equal(t, 1, skipped)

	data, err := os.ReadFile(filepath.Join(dst, "agents", "twin", "agent.toml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "First", "first occurrence wins")
}

func TestRun_ArtifactsReported(t *testing.T) {
	src := writeModernSource(t)
	require.NoError(t, os.MkdirAll(filepath.Join(src, "cron"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "cron", "cron-store.json"), []byte("{}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "auth-profiles.json"), []byte("{}"), 0o644))

	rep, err := Run(Options{SourceDir: src, TargetDir: t.TempDir()})
	require.NoError(t, err)

	names := make([]string, 0, len(rep.Skipped))
	for _, item := range rep.Skipped {
		names = append(names, item.Name)
	}
	assert.Contains(t, names, "cron-store.json")
	assert.Contains(t, names, "auth-profiles.json")
	assert.Contains(t, names, "cron")
}
