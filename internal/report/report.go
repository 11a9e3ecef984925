// Package report accumulates the outcome of a migration run and renders it
// as markdown. Every source artifact the migrator touches ends up as exactly
// one imported or skipped entry.
package report

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ItemKind classifies report entries.
type ItemKind string

const (
	KindConfig  ItemKind = "config"
	KindAgent   ItemKind = "agent"
	KindChannel ItemKind = "channel"
	KindSecret  ItemKind = "secret"
	KindMemory  ItemKind = "memory"
	KindSession ItemKind = "session"
	KindSkill   ItemKind = "skill"
)

// ImportedItem is an artifact that was migrated, with its destination
// relative to the target root.
type ImportedItem struct {
	Kind        ItemKind
	Name        string
	Destination string
}

// SkippedItem is an artifact that was recognized but not migrated.
type SkippedItem struct {
	Kind   ItemKind
	Name   string
	Reason string
}

// Report is the append-only record of one migration run.
type Report struct {
	RunID    string
	Source   string
	DryRun   bool
	Imported []ImportedItem
	Skipped  []SkippedItem
	Warnings []string
}

// New returns an empty report for one run against the named source system.
func New(source string, dryRun bool) *Report {
	return &Report{
		RunID:  uuid.NewString(),
		Source: source,
		DryRun: dryRun,
	}
}

// AddImported records a successfully migrated artifact.
func (r *Report) AddImported(kind ItemKind, name, destination string) {
	r.Imported = append(r.Imported, ImportedItem{Kind: kind, Name: name, Destination: destination})
}

// AddSkipped records an artifact that was seen but not migrated.
func (r *Report) AddSkipped(kind ItemKind, name, reason string) {
	r.Skipped = append(r.Skipped, SkippedItem{Kind: kind, Name: name, Reason: reason})
}

// Warnf records a formatted warning.
func (r *Report) Warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Markdown renders the report for migration_report.md. Entries appear in
// insertion order so reruns produce identical output.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Migration Report\n\n")
	fmt.Fprintf(&b, "- Run ID: `%s`\n", r.RunID)
	fmt.Fprintf(&b, "- Source: %s\n", r.Source)
	if r.DryRun {
		b.WriteString("- Mode: dry run (no files were written)\n")
	}
	b.WriteString("\n")

	b.WriteString("## Imported\n\n")
	if len(r.Imported) == 0 {
		b.WriteString("Nothing was imported.\n")
	} else {
		for _, item := range r.Imported {
			fmt.Fprintf(&b, "- **%s** `%s` -> `%s`\n", item.Kind, item.Name, item.Destination)
		}
	}
	b.WriteString("\n")

	b.WriteString("## Skipped\n\n")
	if len(r.Skipped) == 0 {
		b.WriteString("Nothing was skipped.\n")
	} else {
		for _, item := range r.Skipped {
			fmt.Fprintf(&b, "- **%s** `%s`: %s\n", item.Kind, item.Name, item.Reason)
		}
	}
	b.WriteString("\n")

	if len(r.Warnings) > 0 {
		b.WriteString("## Warnings\n\n")
		for _, w := range r.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	return b.String()
}
