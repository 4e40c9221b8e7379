package cmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/scenario-sim/scenario-sim/sim"
	"github.com/scenario-sim/scenario-sim/sim/scenario"
)

// listCmd prints what the binary ships: scenario definitions and the
// blueprint catalog.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available scenarios and vehicle blueprints",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Scenarios:")
		for _, name := range scenario.Names() {
			fmt.Printf("  %s\n", name)
		}

		blueprints := sim.BlueprintNames()
		sort.Strings(blueprints)
		fmt.Println("Blueprints:")
		for _, name := range blueprints {
			fmt.Printf("  %s\n", name)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
