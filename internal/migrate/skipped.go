package migrate

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/wipal/openfang/internal/report"
)

// reportArtifacts records on-disk state files that never port across: cron
// run state, the vector index, and the credential store.
func (m *migration) reportArtifacts() {
	if fileExists(filepath.Join(m.source, "cron", "cron-store.json")) {
		m.rep.AddSkipped(report.KindConfig, "cron-store.json", "Cron run state not portable")
	}

	indexPath := filepath.Join(m.source, "memory-search", "index.db")
	if fileExists(indexPath) {
		reason := "SQLite vector index not portable; OpenFang will rebuild embeddings"
		if tables, err := probeIndexTables(indexPath); err == nil {
			reason = fmt.Sprintf("SQLite vector index not portable (%d tables); OpenFang will rebuild embeddings", tables)
		}
		m.rep.AddSkipped(report.KindMemory, "memory-search/index.db", reason)
	}

	if fileExists(filepath.Join(m.source, "auth-profiles.json")) {
		m.rep.AddSkipped(report.KindConfig, "auth-profiles.json",
			"Credential file not migrated for security; set API keys as env vars")
	}
}

// probeIndexTables opens the vector index read-only and counts its tables,
// purely to enrich the skip reason.
func probeIndexTables(path string) (int, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var n int
	err = db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type = 'table'").Scan(&n)
	return n, err
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
