package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/anisan-cli/vidman/icon"
	"github.com/anisan-cli/vidman/key"
	"github.com/anisan-cli/vidman/log"
	"github.com/anisan-cli/vidman/manager"
	"github.com/anisan-cli/vidman/sim"
	"github.com/anisan-cli/vidman/style"
	"github.com/anisan-cli/vidman/util"
	"github.com/anisan-cli/vidman/where"
	"github.com/muesli/reflow/wrap"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().BoolP("metrics", "m", false, "Print coordinator metrics in the Prometheus text format after the run")
	simulateCmd.Flags().BoolP("json", "j", false, "Print the trace as JSON")
	simulateCmd.Flags().BoolP("verbose", "V", false, "Print coordinator logs to stderr")

	simulateCmd.SetOut(os.Stdout)
}

// simulateCmd runs a scenario and prints every capability call the coordinator made.
var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario>",
	Short: "Run a scenario against a simulated page and print the coordinator's decisions",
	Long: "Run a scenario against a simulated page and print the coordinator's decisions.\n" +
		"A scenario is a file path, or a name looked up in the scenarios directory (see `vidman where --scenarios`).",
	Example: "  vidman simulate feed\n  vidman simulate ./feed.toml --metrics",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("verbose")) {
			handleErr(log.Attach(os.Stderr, "debug"))
		}

		scenario, err := loadScenario(args[0])
		handleErr(err)

		runner := sim.NewRunner(scenario, sim.RunnerOptions{Lite: viper.GetBool(key.AutoplayLiteViewer)})
		defer runner.Close()

		trace, err := runner.Run()

		if lo.Must(cmd.Flags().GetBool("json")) {
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			handleErr(encoder.Encode(trace))
		} else {
			printTrace(cmd, scenario, trace)
			printEntries(cmd, runner.Manager().Entries())
		}
		handleErr(err)

		if lo.Must(cmd.Flags().GetBool("metrics")) {
			cmd.Println()
			handleErr(runner.WriteMetrics(cmd.OutOrStdout()))
		}
	},
}

func loadScenario(name string) (*sim.Scenario, error) {
	path, err := sim.ResolveScenario(name, where.Scenarios())
	if err != nil {
		return nil, err
	}
	return sim.LoadScenario(path)
}

func printTrace(cmd *cobra.Command, scenario *sim.Scenario, trace []sim.Event) {
	width := 0
	if util.IsTerminal() {
		if w, _, err := util.TerminalSize(); err == nil {
			width = w
		}
	}

	cmd.Println(style.Title(scenario.Name))
	cmd.Println()

	for _, event := range trace {
		var line string
		switch event.Kind {
		case sim.KindStep:
			line = style.Step(event.Detail)
		default:
			line = fmt.Sprintf("  %s %s", style.Faint(event.Video), style.Action(event.Detail))
		}
		if width > 0 {
			line = wrap.String(line, width)
		}
		cmd.Println(line)
	}
}

func printEntries(cmd *cobra.Command, entries []manager.EntryState) {
	cmd.Println()
	cmd.Printf("%s tracked\n", util.Quantify(len(entries), "player", "players"))

	for _, e := range entries {
		id := e.Player.Element().Tag()
		if v, ok := e.Player.(*sim.Video); ok {
			id = v.ID()
		}

		flags := []string{
			style.Flag("loaded", e.Loaded),
			style.Flag("visible", e.Visible),
			style.Flag("interacted", e.UserInteracted),
			style.Flag("overlays", e.Overlays),
		}

		state := icon.Get(icon.Paused)
		if v, ok := e.Player.(*sim.Video); ok && v.Playing() {
			state = icon.Get(icon.Playing)
		}

		cmd.Printf("%s %s %s\n", state, style.Bold(id), strings.Join(flags, " "))
	}
}
