package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"

	"github.com/wipal/openfang/internal/migrate"
	"github.com/wipal/openfang/internal/openclaw"
)

func newMigrateCmd() *cobra.Command {
	var (
		sourceDir string
		targetDir string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate an OpenClaw workspace into an OpenFang home",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source := sourceDir
			if source == "" {
				detected, ok := openclaw.DetectHome()
				if !ok {
					return errors.New("no OpenClaw installation found; pass --source")
				}
				source = detected
				log.Info().Str("source", source).Msg("auto-detected OpenClaw home")
			}

			target := targetDir
			if target == "" {
				home, err := homedir.Dir()
				if err != nil {
					return fmt.Errorf("resolve home dir: %w", err)
				}
				target = filepath.Join(home, ".openfang")
			}

			rep, err := migrate.Run(migrate.Options{
				SourceDir: source,
				TargetDir: target,
				DryRun:    dryRun,
				Log:       log,
			})
			if err != nil {
				return err
			}

			fmt.Print(rep.Markdown())
			if dryRun {
				fmt.Println("Dry run: no files were written.")
			} else {
				fmt.Printf("Report saved to %s\n", filepath.Join(target, "migration_report.md"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", "", "OpenClaw workspace to migrate (default: auto-detect)")
	cmd.Flags().StringVar(&targetDir, "target", "", "OpenFang home to write (default ~/.openfang)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be migrated without writing")

	return cmd
}
