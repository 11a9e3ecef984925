// Package openclaw reads OpenClaw installations off disk and normalizes
// them into the canonical domain model. Two source layouts exist: the
// modern single-file JSON config and the legacy YAML tree. Each layout has
// its own adapter; everything downstream consumes domain.Installation.
package openclaw

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// configNames are the modern config filenames in priority order. The
// product was renamed several times; older installs still carry the old
// names.
var configNames = []string{
	"openclaw.json",
	"clawdbot.json",
	"moldbot.json",
	"moltbot.json",
}

// legacyConfigName is the very old YAML config, checked after every modern
// candidate.
const legacyConfigName = "config.yaml"

// FindConfigFile locates the installation's primary config inside dir.
// Modern JSON configs win over the legacy YAML when both exist.
func FindConfigFile(dir string) (string, bool) {
	for _, name := range configNames {
		p := filepath.Join(dir, name)
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	p := filepath.Join(dir, legacyConfigName)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return "", false
}

// IsModernConfig reports whether path is a modern JSON config rather than
// the legacy YAML.
func IsModernConfig(path string) bool {
	return filepath.Ext(path) == ".json"
}

// DetectHome searches the conventional OpenClaw state directories and
// returns the first that looks like a real installation. OPENCLAW_STATE_DIR
// overrides the search when it points at an existing directory.
func DetectHome() (string, bool) {
	if dir := os.Getenv("OPENCLAW_STATE_DIR"); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir, true
		}
	}

	var candidates []string
	if home, err := homedir.Dir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".openclaw"),
			filepath.Join(home, ".clawdbot"),
			filepath.Join(home, ".moldbot"),
			filepath.Join(home, ".moltbot"),
			filepath.Join(home, "openclaw"),
			filepath.Join(home, ".config", "openclaw"),
		)
	}
	if p := os.Getenv("APPDATA"); p != "" {
		candidates = append(candidates, filepath.Join(p, "openclaw"))
	}
	if p := os.Getenv("LOCALAPPDATA"); p != "" {
		candidates = append(candidates, filepath.Join(p, "openclaw"))
	}

	for _, dir := range candidates {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			continue
		}
		if _, ok := FindConfigFile(dir); ok {
			return dir, true
		}
		// A config-less dir still counts when it holds migratable state.
		if dirExists(filepath.Join(dir, "sessions")) || dirExists(filepath.Join(dir, "memory")) {
			return dir, true
		}
	}
	return "", false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
