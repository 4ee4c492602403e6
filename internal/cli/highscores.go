package cli

import (
	"github.com/spf13/cobra"

	"github.com/cdfisher/osrs-tools/internal/app"
)

var (
	hsCategory string
	hsAll      bool
)

var highscoresCmd = &cobra.Command{
	Use:     "highscores <player>",
	Aliases: []string{"hs", "show"},
	Short:   "Display a player's skills, activities and boss kill counts",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Highscores(cmd.Context(), app.HighscoresOptions{
			Player:   args[0],
			Category: hsCategory,
			All:      hsAll,
		})
	},
}

var ironmanCmd = &cobra.Command{
	Use:   "ironman <player>",
	Short: "Report whether a player is on the ironman highscores",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Ironman(cmd.Context(), args[0])
	},
}

var combatCategory string

var combatCmd = &cobra.Command{
	Use:   "combat <player>",
	Short: "Calculate a player's combat level",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Combat(cmd.Context(), args[0], combatCategory)
	},
}

var (
	ehbCategory string
	ehbAccount  string
)

var ehbCmd = &cobra.Command{
	Use:   "ehb <player>",
	Short: "Calculate a player's efficient hours bossed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().EHB(cmd.Context(), app.EHBOptions{
			Player:   args[0],
			Category: ehbCategory,
			Account:  ehbAccount,
		})
	},
}

func init() {
	highscoresCmd.Flags().StringVarP(&hsCategory, "category", "c", "", "Highscores board (defaults to config)")
	highscoresCmd.Flags().BoolVar(&hsAll, "all", false, "Include unranked activities and bosses")

	combatCmd.Flags().StringVarP(&combatCategory, "category", "c", "", "Highscores board (defaults to config)")

	ehbCmd.Flags().StringVarP(&ehbCategory, "category", "c", "", "Highscores board (defaults to config)")
	ehbCmd.Flags().StringVar(&ehbAccount, "account", "auto", "Account type: auto, main or ironman")
}
