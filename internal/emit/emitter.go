package emit

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/wipal/openfang/internal/domain"
)

// Emitter writes destination files under the target root. With DryRun set
// every method goes through the same motions but touches nothing on disk.
type Emitter struct {
	TargetDir string
	DryRun    bool
}

// ConfigRel is where the main config lands, relative to the target root.
const ConfigRel = "config.toml"

// WriteConfig renders and writes config.toml. It returns the destination
// path relative to the target root.
func (e *Emitter) WriteConfig(inst *domain.Installation) (string, error) {
	cfg := BuildConfig(inst)
	body, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("marshal config: %w", err)
	}
	if err := e.write(ConfigRel, append([]byte(configHeader), body...)); err != nil {
		return "", err
	}
	return ConfigRel, nil
}

// WriteAgent renders and writes one agent manifest, returning its
// destination path relative to the target root.
func (e *Emitter) WriteAgent(spec *domain.AgentSpec) (string, error) {
	m := BuildManifest(spec)
	body, err := toml.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("marshal agent %s: %w", spec.ID, err)
	}
	rel := filepath.Join("agents", spec.ID, "agent.toml")
	if err := e.write(rel, append([]byte(manifestHeader(spec.ID)), body...)); err != nil {
		return "", err
	}
	return rel, nil
}

func (e *Emitter) write(rel string, data []byte) error {
	if e.DryRun {
		return nil
	}
	dest := filepath.Join(e.TargetDir, rel)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(rel), err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}
