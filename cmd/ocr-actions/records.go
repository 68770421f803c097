// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/ocr-actions/internal/render"
	"github.com/pdiddy/ocr-actions/internal/store"
	"github.com/pdiddy/ocr-actions/pkg/types"
)

var recordsCmd = &cobra.Command{
	Use:   "records [run-id]",
	Short: "Print the records of a stored run",
	Long: `Records loads a run from the record store and prints its records in the
chosen format. Without a run ID the latest run is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var runID string
		if len(args) == 1 {
			runID = args[0]
		}
		contains, _ := cmd.Flags().GetString("contains")
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(formatFlag)
		if err != nil {
			return err
		}

		s, err := store.Open(types.StoreConfig{DataDir: viper.GetString("store.data_dir")})
		if err != nil {
			return fmt.Errorf("opening record store: %w", err)
		}
		defer s.Close()

		results, err := s.Results(cmd.Context(), runID, contains)
		if err != nil {
			return err
		}
		return render.Write(cmd.OutOrStdout(), format, results)
	},
}

func init() {
	recordsCmd.Flags().String("contains", "", "only records with a field containing this text")
	recordsCmd.Flags().StringP("format", "f", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(recordsCmd)
}
