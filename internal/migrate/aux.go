package migrate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wipal/openfang/internal/report"
)

// migrateMemory copies per-agent MEMORY.md files into the destination agent
// dirs. Two source layouts exist; memory/<agent>/ wins over the older
// agents/<agent>/ location when both hold a file for the same agent.
// Whitespace-only files are ignored. Copy failures degrade to warnings.
func (m *migration) migrateMemory() {
	migrated := make(map[string]bool)

	memoryDir := filepath.Join(m.source, "memory")
	if entries, err := os.ReadDir(memoryDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			agent := entry.Name()
			if m.copyMemoryFile(filepath.Join(memoryDir, agent, "MEMORY.md"), agent) {
				migrated[agent] = true
			}
		}
	}

	agentsDir := filepath.Join(m.source, "agents")
	if entries, err := os.ReadDir(agentsDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() || migrated[entry.Name()] {
				continue
			}
			agent := entry.Name()
			m.copyMemoryFile(filepath.Join(agentsDir, agent, "MEMORY.md"), agent)
		}
	}
}

func (m *migration) copyMemoryFile(src, agent string) bool {
	data, err := os.ReadFile(src)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		m.rep.Warnf("Failed to read memory for agent '%s': %v", agent, err)
		return false
	}
	if strings.TrimSpace(string(data)) == "" {
		return false
	}

	destRel := filepath.Join("agents", agent, "imported_memory.md")
	if !m.dryRun {
		dest := filepath.Join(m.target, destRel)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			m.rep.Warnf("Failed to copy memory for agent '%s': %v", agent, err)
			return false
		}
		if err := os.WriteFile(dest, data, 0o644); err != nil {
			m.rep.Warnf("Failed to copy memory for agent '%s': %v", agent, err)
			return false
		}
	}
	m.rep.AddImported(report.KindMemory, agent+"/MEMORY.md", destRel)
	return true
}

// migrateWorkspaces copies agent working directories. The dedicated
// workspaces/<agent>/ layout wins; the older agents/<agent>/workspace/
// layout fills in for agents the first pass did not cover. Empty trees are
// ignored.
func (m *migration) migrateWorkspaces() {
	copied := make(map[string]bool)

	workspacesDir := filepath.Join(m.source, "workspaces")
	if entries, err := os.ReadDir(workspacesDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			agent := entry.Name()
			if m.copyWorkspace(filepath.Join(workspacesDir, agent), agent) {
				copied[agent] = true
			}
		}
	}

	agentsDir := filepath.Join(m.source, "agents")
	if entries, err := os.ReadDir(agentsDir); err == nil {
		for _, entry := range entries {
			if !entry.IsDir() || copied[entry.Name()] {
				continue
			}
			agent := entry.Name()
			src := filepath.Join(agentsDir, agent, "workspace")
			if !dirExists(src) {
				continue
			}
			m.copyWorkspace(src, agent)
		}
	}
}

func (m *migration) copyWorkspace(src, agent string) bool {
	fileCount := countFiles(src)
	if fileCount == 0 {
		return false
	}
	destRel := filepath.Join("agents", agent, "workspace")
	if !m.dryRun {
		if err := copyDir(src, filepath.Join(m.target, destRel)); err != nil {
			m.rep.Warnf("Failed to copy workspace for agent '%s': %v", agent, err)
			return false
		}
	}
	m.rep.AddImported(report.KindSession, fmt.Sprintf("%s/workspace (%d files)", agent, fileCount), destRel)
	return true
}

// migrateSessions copies session transcripts. Only .jsonl files count; the
// whole batch gets one summary report entry.
func (m *migration) migrateSessions() {
	sessionsDir := filepath.Join(m.source, "sessions")
	entries, err := os.ReadDir(sessionsDir)
	if err != nil {
		return
	}

	const destRel = "imported_sessions"
	count := 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jsonl" {
			continue
		}
		if !m.dryRun {
			src := filepath.Join(sessionsDir, entry.Name())
			dst := filepath.Join(m.target, destRel, entry.Name())
			if err := copyFile(src, dst); err != nil {
				m.rep.Warnf("Failed to copy session file '%s': %v", entry.Name(), err)
				continue
			}
		}
		count++
	}

	if count > 0 {
		m.rep.AddImported(report.KindSession, fmt.Sprintf("%d session files", count), destRel)
	}
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
