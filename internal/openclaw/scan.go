package openclaw

import (
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/wipal/openfang/internal/mapping"
)

// ScanResult is a read-only preview of what a workspace holds. Scanning
// never writes and tolerates unparsable configs.
type ScanResult struct {
	Path      string         `json:"path"`
	HasConfig bool           `json:"has_config"`
	Agents    []ScannedAgent `json:"agents"`
	Channels  []string       `json:"channels"`
	Skills    []string       `json:"skills"`
	HasMemory bool           `json:"has_memory"`
}

// ScannedAgent summarizes one agent found during a scan.
type ScannedAgent struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Provider     string `json:"provider"`
	Model        string `json:"model"`
	ToolCount    int    `json:"tool_count"`
	HasMemory    bool   `json:"has_memory"`
	HasSessions  bool   `json:"has_sessions"`
	HasWorkspace bool   `json:"has_workspace"`
}

// Scan inspects an OpenClaw workspace and reports what is available for
// migration.
func Scan(path string) ScanResult {
	result := ScanResult{Path: path}

	configPath, ok := FindConfigFile(path)
	result.HasConfig = ok

	if ok && IsModernConfig(configPath) {
		scanModern(path, configPath, &result)
	} else {
		scanLegacy(path, &result)
	}
	return result
}

func scanModern(base, configPath string, result *ScanResult) {
	root, err := decodeModernRoot(configPath)
	if err != nil {
		return
	}

	if root.Agents != nil {
		for i := range root.Agents.List {
			entry := &root.Agents.List[i]
			name := entry.Name
			if name == "" {
				name = entry.ID
			}

			model := mapping.SplitModelRef(extractPrimaryModel(entry, root.Agents.Defaults))

			toolCount := 3
			if entry.Tools != nil {
				if entry.Tools.Allow != nil {
					toolCount = len(entry.Tools.Allow)
				} else if entry.Tools.Profile != "" {
					toolCount = len(mapping.ToolsForProfile(entry.Tools.Profile))
				}
			}

			hasMemory := fileExists(filepath.Join(base, "memory", entry.ID, "MEMORY.md"))
			if hasMemory {
				result.HasMemory = true
			}

			result.Agents = append(result.Agents, ScannedAgent{
				Name:         name,
				Provider:     model.Provider,
				Model:        model.Model,
				ToolCount:    toolCount,
				HasMemory:    hasMemory,
				HasSessions:  dirExists(filepath.Join(base, "sessions")),
				HasWorkspace: dirExists(filepath.Join(base, "workspaces", entry.ID)),
			})
		}
	}

	if ch := root.Channels; ch != nil {
		appendIf := func(name string, present bool) {
			if present {
				result.Channels = append(result.Channels, name)
			}
		}
		appendIf("telegram", ch.Telegram != nil)
		appendIf("discord", ch.Discord != nil)
		appendIf("slack", ch.Slack != nil)
		appendIf("whatsapp", ch.WhatsApp != nil)
		appendIf("signal", ch.Signal != nil)
		appendIf("matrix", ch.Matrix != nil)
		appendIf("google_chat", ch.GoogleChat != nil)
		appendIf("teams", ch.Teams != nil)
		appendIf("irc", ch.IRC != nil)
		appendIf("mattermost", ch.Mattermost != nil)
		appendIf("feishu", ch.Feishu != nil)
		appendIf("imessage", ch.IMessage != nil)
		appendIf("bluebubbles", ch.BlueBubbles != nil)
		result.Channels = append(result.Channels, ch.otherKeys()...)
	}

	if root.Skills != nil {
		keys := make([]string, 0, len(root.Skills.Entries))
		for k := range root.Skills.Entries {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		result.Skills = append(result.Skills, keys...)
	}

	// Physical memory dirs may exist for agents the config no longer lists.
	if entries, err := os.ReadDir(filepath.Join(base, "memory")); err == nil {
		for _, e := range entries {
			if e.IsDir() && fileExists(filepath.Join(base, "memory", e.Name(), "MEMORY.md")) {
				result.HasMemory = true
				break
			}
		}
	}
}

// legacyScanChannels extends the migration order with kinds the scanner
// recognizes but the migrator never emitted.
var legacyScanChannels = append(append([]string{}, legacyChannelOrder...), "email")

func scanLegacy(base string, result *ScanResult) {
	agentsDir := filepath.Join(base, "agents")
	if entries, err := os.ReadDir(agentsDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			id := entry.Name()
			agentDir := filepath.Join(agentsDir, id)
			yamlPath := filepath.Join(agentDir, "agent.yaml")
			if !fileExists(yamlPath) {
				continue
			}

			scanned := ScannedAgent{
				Name:         id,
				HasMemory:    fileExists(filepath.Join(agentDir, "MEMORY.md")),
				HasSessions:  dirExists(filepath.Join(agentDir, "sessions")),
				HasWorkspace: dirExists(filepath.Join(agentDir, "workspace")),
			}
			if scanned.HasMemory {
				result.HasMemory = true
			}

			if data, err := os.ReadFile(yamlPath); err == nil {
				var oc legacyAgent
				if yaml.Unmarshal(data, &oc) == nil {
					scanned.Description = oc.Description
					scanned.Provider = oc.Provider
					scanned.Model = oc.Model
					switch {
					case len(oc.Tools) > 0:
						scanned.ToolCount = len(oc.Tools)
					case oc.ToolProfile != "":
						scanned.ToolCount = len(mapping.ToolsForProfile(oc.ToolProfile))
					default:
						scanned.ToolCount = 3
					}
				}
			}
			result.Agents = append(result.Agents, scanned)
		}
	}

	messagingDir := filepath.Join(base, "messaging")
	for _, name := range legacyScanChannels {
		if fileExists(filepath.Join(messagingDir, name+".yaml")) {
			result.Channels = append(result.Channels, name)
		}
	}

	skillsDir := filepath.Join(base, "skills")
	for _, sub := range []string{"community", "custom"} {
		entries, err := os.ReadDir(filepath.Join(skillsDir, sub))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				result.Skills = append(result.Skills, e.Name())
			}
		}
	}
}
