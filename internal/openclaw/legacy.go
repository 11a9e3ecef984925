package openclaw

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/wipal/openfang/internal/domain"
	"github.com/wipal/openfang/internal/mapping"
)

// legacyChannelOrder fixes the channel scan sequence for the YAML tree.
var legacyChannelOrder = []string{
	"telegram", "discord", "slack", "whatsapp", "signal", "matrix",
	"irc", "mattermost", "feishu", "googlechat", "msteams",
	"imessage", "bluebubbles",
}

// ParseLegacy reads the multi-file YAML layout and normalizes the
// installation. A missing config.yaml is tolerated with defaults; an
// unparsable one is fatal.
func ParseLegacy(sourceDir string) (*domain.Installation, error) {
	inst := &domain.Installation{
		SourceDir:  sourceDir,
		Schema:     domain.SchemaLegacy,
		ConfigFile: legacyConfigName,
		DecayRate:  0.05,
	}

	if err := parseLegacyConfig(sourceDir, inst); err != nil {
		return nil, err
	}
	if err := parseLegacyAgents(sourceDir, inst); err != nil {
		return nil, err
	}
	inst.Channels = parseLegacyChannels(sourceDir)
	inst.Omissions = append(inst.Omissions, scanLegacySkills(sourceDir)...)
	return inst, nil
}

func parseLegacyConfig(sourceDir string, inst *domain.Installation) error {
	path := filepath.Join(sourceDir, legacyConfigName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		inst.Warnings = append(inst.Warnings, "No config.yaml found in OpenClaw workspace")
		inst.DefaultModel = domain.ModelRef{Provider: mapping.DefaultProvider, Model: mapping.DefaultModel}
		inst.APIKeyEnv = mapping.DefaultAPIKeyEnv(mapping.DefaultProvider)
		return nil
	}
	if err != nil {
		return fmt.Errorf("read config.yaml: %w", err)
	}

	cfg := legacyConfig{
		Provider: mapping.DefaultProvider,
		Model:    mapping.DefaultModel,
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("parse config.yaml: %w", err)
	}

	provider := mapping.MapProvider(cfg.Provider)
	inst.DefaultModel = domain.ModelRef{Provider: provider, Model: cfg.Model}
	inst.APIKeyEnv = cfg.APIKeyEnv
	if inst.APIKeyEnv == "" {
		inst.APIKeyEnv = mapping.DefaultAPIKeyEnv(provider)
	}
	inst.BaseURL = cfg.BaseURL
	if cfg.Memory != nil && cfg.Memory.DecayRate != nil {
		inst.DecayRate = *cfg.Memory.DecayRate
	}
	return nil
}

func parseLegacyAgents(sourceDir string, inst *domain.Installation) error {
	agentsDir := filepath.Join(sourceDir, "agents")
	entries, err := os.ReadDir(agentsDir)
	if os.IsNotExist(err) {
		inst.Warnings = append(inst.Warnings, "No agents/ directory found")
		return nil
	}
	if err != nil {
		return fmt.Errorf("read agents dir: %w", err)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		id := entry.Name()
		yamlPath := filepath.Join(agentsDir, id, "agent.yaml")
		if _, err := os.Stat(yamlPath); err != nil {
			continue
		}

		spec, err := convertLegacyAgent(yamlPath, id)
		if err != nil {
			inst.Omissions = append(inst.Omissions, domain.Omission{
				Kind:   "agent",
				Name:   id,
				Reason: err.Error(),
			})
			continue
		}
		inst.Agents = append(inst.Agents, spec)
	}
	return nil
}

func convertLegacyAgent(yamlPath, id string) (domain.AgentSpec, error) {
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		return domain.AgentSpec{}, fmt.Errorf("%s: %w", id, err)
	}
	oc := legacyAgent{Name: "unnamed"}
	if err := yaml.Unmarshal(data, &oc); err != nil {
		return domain.AgentSpec{}, fmt.Errorf("%s: %w", id, err)
	}

	var tools, unmapped []string
	switch {
	case len(oc.Tools) > 0:
		tools, unmapped = mapping.MapToolList(oc.Tools)
	case oc.ToolProfile != "":
		tools = mapping.ToolsForProfile(oc.ToolProfile)
	default:
		tools = mapping.DefaultToolSet()
	}

	provider := mapping.DefaultProvider
	if oc.Provider != "" {
		provider = mapping.MapProvider(oc.Provider)
	}
	model := oc.Model
	if model == "" {
		model = mapping.DefaultModel
	}

	prompt := oc.SystemPrompt
	if prompt == "" {
		tail := oc.Description
		if tail == "" {
			tail = "You are helpful, concise, and accurate."
		}
		prompt = fmt.Sprintf("You are %s, an AI agent running on the OpenFang Agent OS. %s", oc.Name, tail)
	}

	apiKeyEnv := oc.APIKeyEnv
	if apiKeyEnv == "" {
		apiKeyEnv = mapping.DefaultAPIKeyEnv(provider)
	}

	return domain.AgentSpec{
		ID:            id,
		Name:          oc.Name,
		Description:   oc.Description,
		Model:         domain.ModelRef{Provider: provider, Model: model},
		Tools:         tools,
		Capabilities:  mapping.DeriveCapabilities(tools),
		SystemPrompt:  prompt,
		APIKeyEnv:     apiKeyEnv,
		BaseURL:       oc.BaseURL,
		Tags:          oc.Tags,
		UnmappedTools: unmapped,
	}, nil
}

// parseLegacyChannels reads messaging/<kind>.yaml files. Legacy channel
// configs carry env var names rather than raw tokens, so no secrets are
// extracted and no policy overrides exist.
func parseLegacyChannels(sourceDir string) []domain.ChannelSpec {
	messagingDir := filepath.Join(sourceDir, "messaging")
	if !dirExists(messagingDir) {
		return nil
	}

	var specs []domain.ChannelSpec
	for _, name := range legacyChannelOrder {
		path := filepath.Join(messagingDir, name+".yaml")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var ch legacyChannelConfig
		// Tolerate malformed channel files; a zero config still maps.
		_ = yaml.Unmarshal(data, &ch)

		switch name {
		case "telegram":
			spec := domain.ChannelSpec{Kind: "telegram", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "bot_token_env", Value: envOr(ch.BotTokenEnv, "TELEGRAM_BOT_TOKEN")})
			if len(ch.AllowedUsers) > 0 {
				spec.Fields = append(spec.Fields, domain.Field{Key: "allowed_users", Value: ch.AllowedUsers})
			}
			if ch.DefaultAgent != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "default_agent", Value: ch.DefaultAgent})
			}
			specs = append(specs, spec)
		case "discord":
			spec := domain.ChannelSpec{Kind: "discord", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "bot_token_env", Value: envOr(ch.BotTokenEnv, "DISCORD_BOT_TOKEN")})
			if ch.DefaultAgent != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "default_agent", Value: ch.DefaultAgent})
			}
			specs = append(specs, spec)
		case "slack":
			spec := domain.ChannelSpec{Kind: "slack", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "bot_token_env", Value: envOr(ch.BotTokenEnv, "SLACK_BOT_TOKEN")})
			if ch.AppTokenEnv != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "app_token_env", Value: ch.AppTokenEnv})
			}
			if ch.DefaultAgent != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "default_agent", Value: ch.DefaultAgent})
			}
			specs = append(specs, spec)
		case "whatsapp":
			spec := domain.ChannelSpec{Kind: "whatsapp", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "access_token_env", Value: envOr(ch.AccessTokenEnv, "WHATSAPP_ACCESS_TOKEN")})
			specs = append(specs, spec)
		case "signal":
			spec := domain.ChannelSpec{Kind: "signal", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "api_url", Value: "http://localhost:8080"})
			specs = append(specs, spec)
		case "matrix":
			spec := domain.ChannelSpec{Kind: "matrix", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "access_token_env", Value: envOr(ch.AccessTokenEnv, "MATRIX_ACCESS_TOKEN")})
			specs = append(specs, spec)
		case "irc":
			spec := domain.ChannelSpec{Kind: "irc", Enabled: true}
			if ch.BotTokenEnv != "" {
				spec.Fields = append(spec.Fields, domain.Field{Key: "password_env", Value: ch.BotTokenEnv})
			}
			specs = append(specs, spec)
		case "mattermost":
			spec := domain.ChannelSpec{Kind: "mattermost", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "bot_token_env", Value: envOr(ch.BotTokenEnv, "MATTERMOST_TOKEN")})
			specs = append(specs, spec)
		case "feishu":
			spec := domain.ChannelSpec{Kind: "feishu", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "app_secret_env", Value: "FEISHU_APP_SECRET"})
			specs = append(specs, spec)
		case "googlechat":
			spec := domain.ChannelSpec{Kind: "google_chat", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "service_account_env", Value: "GOOGLE_CHAT_SA_FILE"})
			specs = append(specs, spec)
		case "msteams":
			spec := domain.ChannelSpec{Kind: "teams", Enabled: true}
			spec.Fields = append(spec.Fields, domain.Field{Key: "app_password_env", Value: "TEAMS_APP_PASSWORD"})
			specs = append(specs, spec)
		case "imessage":
			specs = append(specs, skipSpec("imessage", skipIMessage))
		case "bluebubbles":
			specs = append(specs, skipSpec("bluebubbles", skipBlueBubbles))
		}
	}
	return specs
}

func envOr(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

// scanLegacySkills classifies skill directories under skills/community and
// skills/custom. None are migratable; Node.js skills get a reinstall hint.
func scanLegacySkills(sourceDir string) []domain.Omission {
	skillsDir := filepath.Join(sourceDir, "skills")
	if !dirExists(skillsDir) {
		return nil
	}

	var out []domain.Omission
	for _, sub := range []string{"community", "custom"} {
		dir := filepath.Join(skillsDir, sub)
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.IsDir() {
				names = append(names, e.Name())
			}
		}
		sort.Strings(names)
		for _, name := range names {
			base := filepath.Join(dir, name)
			hasPackage := fileExists(filepath.Join(base, "package.json"))
			hasIndex := fileExists(filepath.Join(base, "index.ts")) || fileExists(filepath.Join(base, "index.js"))
			reason := "Unknown skill format"
			if hasPackage && hasIndex {
				reason = "Node.js skill; run with `openfang skill install` after migration"
			}
			out = append(out, domain.Omission{Kind: "skill", Name: name, Reason: reason})
		}
	}
	return out
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
