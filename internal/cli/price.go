package cli

import (
	"github.com/spf13/cobra"

	"github.com/cdfisher/osrs-tools/internal/app"
)

var (
	priceMode    string
	priceWindow  string
	priceSuggest int
)

var priceCmd = &cobra.Command{
	Use:   "price <item>...",
	Short: "Look up Grand Exchange prices by item name prefix or id",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().Price(cmd.Context(), app.PriceOptions{
			Queries: args,
			Mode:    priceMode,
			Window:  priceWindow,
			Suggest: priceSuggest,
		})
	},
}

var (
	marginItems  []string
	marginMode   string
	marginWindow string
)

var marginCheckCmd = &cobra.Command{
	Use:   "margin-check",
	Short: "Check item margins once and alert on those above the ROI threshold",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().MarginCheck(cmd.Context(), app.MarginCheckOptions{
			Items:  marginItems,
			Mode:   marginMode,
			Window: marginWindow,
		})
	},
}

func init() {
	priceCmd.Flags().StringVar(&priceMode, "mode", "", "Price feed: latest or average (defaults to config)")
	priceCmd.Flags().StringVar(&priceWindow, "window", "", "Averaging window for --mode average: 5m or 1h")
	priceCmd.Flags().IntVar(&priceSuggest, "suggest", 3, "Similar names to list for unknown items")

	marginCheckCmd.Flags().StringSliceVar(&marginItems, "item", nil, "Item to check, repeatable (defaults to alerting.items)")
	marginCheckCmd.Flags().StringVar(&marginMode, "mode", "", "Price feed: latest or average (defaults to config)")
	marginCheckCmd.Flags().StringVar(&marginWindow, "window", "", "Averaging window for --mode average: 5m or 1h")
}
