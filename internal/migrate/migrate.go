// Package migrate orchestrates a full OpenClaw to OpenFang migration: parse
// the source installation, emit the destination layout, copy auxiliary
// state, and account for every artifact in the run report.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/wipal/openfang/internal/domain"
	"github.com/wipal/openfang/internal/emit"
	"github.com/wipal/openfang/internal/logging"
	"github.com/wipal/openfang/internal/openclaw"
	"github.com/wipal/openfang/internal/report"
	"github.com/wipal/openfang/internal/secrets"
)

// ErrSourceNotFound means the source directory does not exist.
var ErrSourceNotFound = errors.New("source directory not found")

// Options configures one migration run.
type Options struct {
	SourceDir string
	TargetDir string
	DryRun    bool
	Log       *logging.Logger
}

// migration carries the per-run state shared by the orchestration steps.
type migration struct {
	source  string
	target  string
	dryRun  bool
	log     *logging.Logger
	rep     *report.Report
	emitter *emit.Emitter
	store   *secrets.Store
}

// Run executes a migration and returns its report. The report is also
// persisted to <target>/migration_report.md unless this is a dry run.
func Run(opts Options) (*report.Report, error) {
	log := opts.Log
	if log == nil {
		log = logging.New(nil, "silent")
	}
	log = log.Sub("migrate")

	if !dirExists(opts.SourceDir) {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, opts.SourceDir)
	}

	log.Info().Str("source", opts.SourceDir).Str("target", opts.TargetDir).
		Bool("dry_run", opts.DryRun).Msg("migrating from OpenClaw")

	m := &migration{
		source:  opts.SourceDir,
		target:  opts.TargetDir,
		dryRun:  opts.DryRun,
		log:     log,
		rep:     report.New("OpenClaw", opts.DryRun),
		emitter: &emit.Emitter{TargetDir: opts.TargetDir, DryRun: opts.DryRun},
		store:   secrets.NewStore(filepath.Join(opts.TargetDir, "secrets.env")),
	}

	inst, err := m.parse()
	if err != nil {
		return nil, err
	}
	m.apply(inst)

	if !opts.DryRun {
		path := filepath.Join(opts.TargetDir, "migration_report.md")
		if err := os.WriteFile(path, []byte(m.rep.Markdown()), 0o644); err != nil {
			log.Warn().Err(err).Msg("could not persist migration report")
		}
	}
	return m.rep, nil
}

// parse picks the schema adapter based on which config file is present.
// Installations without any modern config fall through to the legacy
// adapter, which tolerates a missing config.yaml.
func (m *migration) parse() (*domain.Installation, error) {
	configPath, ok := openclaw.FindConfigFile(m.source)
	if ok && openclaw.IsModernConfig(configPath) {
		return openclaw.ParseModern(m.source, configPath)
	}
	return openclaw.ParseLegacy(m.source)
}

// apply walks the canonical model and produces the destination layout. Order
// matters only for report readability: config and channels first, then
// agents, then auxiliary state, then the skip accounting.
func (m *migration) apply(inst *domain.Installation) {
	m.rep.Warnings = append(m.rep.Warnings, inst.Warnings...)

	m.applyChannels(inst)

	if _, err := m.emitter.WriteConfig(inst); err != nil {
		m.rep.Warnf("Failed to write config.toml: %v", err)
	} else {
		m.rep.AddImported(report.KindConfig, inst.ConfigFile, emit.ConfigRel)
		m.log.Info().Str("config", inst.ConfigFile).Msg("migrated config")
	}

	m.applyAgents(inst)

	m.migrateMemory()
	m.migrateWorkspaces()
	if inst.Schema == domain.SchemaModern {
		m.migrateSessions()
	}

	for _, om := range inst.Omissions {
		m.rep.AddSkipped(report.ItemKind(om.Kind), om.Name, om.Reason)
	}
	if inst.Schema == domain.SchemaModern {
		m.reportArtifacts()
	}
}

// applyChannels quarantines channel secrets, copies credential bundles, and
// records one imported or skipped entry per source channel. The channel
// tables themselves are emitted with the config.
func (m *migration) applyChannels(inst *domain.Installation) {
	for i := range inst.Channels {
		ch := &inst.Channels[i]
		if ch.SkipReason != "" {
			m.rep.AddSkipped(report.KindChannel, ch.Kind, ch.SkipReason)
			continue
		}

		for _, secret := range ch.Secrets {
			if secret.Value == "" {
				continue
			}
			if !m.dryRun {
				if err := m.store.Upsert(secret.Key, secret.Value); err != nil {
					m.rep.Warnf("Failed to write %s to secrets.env: %v", secret.Key, err)
					continue
				}
			}
			m.rep.AddImported(report.KindSecret, secret.Key, "secrets.env")
		}

		for _, bundle := range ch.Bundles {
			if !m.dryRun {
				var err error
				if bundle.IsDir {
					err = copyDir(bundle.Source, filepath.Join(m.target, bundle.DestRel))
				} else {
					err = copyFile(bundle.Source, filepath.Join(m.target, bundle.DestRel))
				}
				if err != nil {
					m.rep.Warnf("Failed to copy %s: %v", bundle.Name, err)
					continue
				}
			}
			m.rep.AddImported(report.KindSecret, bundle.Name, bundle.DestRel)
			if bundle.Warning != "" {
				m.rep.Warnf("%s", bundle.Warning)
			}
		}

		m.rep.AddImported(report.KindChannel, ch.Kind, fmt.Sprintf("%s [channels.%s]", emit.ConfigRel, ch.Kind))
	}
}

// applyAgents writes one manifest per agent. A second agent with an already
// seen id is skipped rather than silently overwriting the first.
func (m *migration) applyAgents(inst *domain.Installation) {
	seen := make(map[string]bool, len(inst.Agents))
	for i := range inst.Agents {
		spec := &inst.Agents[i]
		if seen[spec.ID] {
			m.rep.AddSkipped(report.KindAgent, spec.ID, "duplicate agent id")
			continue
		}
		seen[spec.ID] = true

		rel, err := m.emitter.WriteAgent(spec)
		if err != nil {
			m.rep.AddSkipped(report.KindAgent, spec.ID, err.Error())
			continue
		}
		m.rep.AddImported(report.KindAgent, spec.ID, rel)
		m.log.Info().Str("agent", spec.ID).Msg("migrated agent")

		for _, tool := range spec.UnmappedTools {
			m.rep.Warnf("Agent '%s': tool '%s' has no OpenFang equivalent and was skipped", spec.ID, tool)
		}
	}
}
