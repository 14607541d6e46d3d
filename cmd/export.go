package cmd

import (
	"context"
	"fmt"

	"github.com/theirongolddev/filmdesk/internal/export"

	"github.com/spf13/cobra"
)

var flagExportDir string

var exportCmd = &cobra.Command{
	Use:       "export [actors|movies|shootings|all]...",
	Short:     "Write tables as CSV files",
	Long:      "Write actors.csv, movies.csv and/or shootings.csv into a directory. With no arguments every table is exported.",
	ValidArgs: []string{"actors", "movies", "shootings", "all"},
	RunE:      runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportDir, "dir", "o", "", "Destination directory (default from config)")
	rootCmd.AddCommand(exportCmd)
}

// exportKinds resolves the arguments into kinds; nil means all.
func exportKinds(args []string) ([]export.Kind, error) {
	var kinds []export.Kind
	for _, arg := range args {
		if arg == "all" {
			return nil, nil
		}
		k, err := export.ParseKind(arg)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

func runExport(_ *cobra.Command, args []string) error {
	kinds, err := exportKinds(args)
	if err != nil {
		return err
	}
	return withStudio(func(ctx context.Context, s *studioSession) error {
		dir := flagExportDir
		if dir == "" {
			dir = s.cfg.General.ExportDir
		}

		var paths []string
		if len(kinds) == 0 {
			if paths, err = s.svc.ExportAll(ctx, dir); err != nil {
				return err
			}
		} else {
			for _, k := range kinds {
				path, err := s.svc.Export(ctx, k, dir)
				if err != nil {
					return err
				}
				paths = append(paths, path)
			}
		}

		for _, p := range paths {
			fmt.Printf("  Wrote %s\n", p)
		}
		return nil
	})
}
