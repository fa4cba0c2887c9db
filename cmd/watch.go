package cmd

import (
	"github.com/anisan-cli/vidman/key"
	"github.com/anisan-cli/vidman/sim"
	"github.com/anisan-cli/vidman/tui"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().Float64P("step", "s", 120, "Pixels scrolled per key press")
}

// watchCmd opens the interactive viewer on a scenario's page. Scenario steps are not replayed.
var watchCmd = &cobra.Command{
	Use:   "watch <scenario>",
	Short: "Interactively scroll, focus and click players on a scenario's page",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		scenario, err := loadScenario(args[0])
		handleErr(err)

		runner := sim.NewRunner(scenario, sim.RunnerOptions{Lite: viper.GetBool(key.AutoplayLiteViewer)})
		defer runner.Close()

		handleErr(tui.Run(&tui.Options{
			Runner:     runner,
			ScrollStep: lo.Must(cmd.Flags().GetFloat64("step")),
		}))
	},
}
