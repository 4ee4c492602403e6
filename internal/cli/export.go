package cli

import (
	"github.com/spf13/cobra"

	"github.com/cdfisher/osrs-tools/internal/app"
)

var (
	exportCategory string
	exportPNGPath  string
	exportCSVPath  string
)

var exportCmd = &cobra.Command{
	Use:   "export <player>",
	Short: "Export a player's highscores as CSV and/or a PNG chart of skill levels",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Export(cmd.Context(), app.ExportOptions{
			Player:   args[0],
			Category: exportCategory,
			PNGPath:  exportPNGPath,
			CSVPath:  exportCSVPath,
		})
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportCategory, "category", "c", "", "Highscores board (defaults to config)")
	exportCmd.Flags().StringVar(&exportPNGPath, "png", "", "Path to write PNG chart (relative to export.dir)")
	exportCmd.Flags().StringVar(&exportCSVPath, "csv", "", "Path to write CSV data (relative to export.dir)")
}
