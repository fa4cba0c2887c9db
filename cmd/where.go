package cmd

import (
	"os"

	"github.com/anisan-cli/vidman/color"
	"github.com/anisan-cli/vidman/style"
	"github.com/anisan-cli/vidman/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// wherePath is a directory vidman reads or writes, with the flag that selects it.
type wherePath struct {
	name  string
	flag  string
	short string
	path  func() string
}

var wherePaths = []wherePath{
	{name: "Config", flag: "config", short: "c", path: where.Config},
	{name: "Scenarios", flag: "scenarios", short: "s", path: where.Scenarios},
	{name: "Logs", flag: "logs", short: "l", path: where.Logs},
}

func init() {
	rootCmd.AddCommand(whereCmd)

	for _, p := range wherePaths {
		whereCmd.Flags().BoolP(p.flag, p.short, false, p.name+" path")
	}
	whereCmd.MarkFlagsMutuallyExclusive(lo.Map(wherePaths, func(p wherePath, _ int) string {
		return p.flag
	})...)

	whereCmd.SetOut(os.Stdout)
}

var whereCmd = &cobra.Command{
	Use:   "where",
	Short: "Display where vidman keeps its config, scenarios and logs",
	Run: func(cmd *cobra.Command, args []string) {
		if p, ok := lo.Find(wherePaths, func(p wherePath) bool {
			return lo.Must(cmd.Flags().GetBool(p.flag))
		}); ok {
			cmd.Println(p.path())
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		for i, p := range wherePaths {
			if i > 0 {
				cmd.Println()
			}
			cmd.Printf("%s %s\n", header(p.name+"?"), style.Fg(color.Yellow)("--"+p.flag))
			cmd.Println(p.path())
		}
	},
}
