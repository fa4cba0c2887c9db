package cmd

import (
	"os"
	"strings"

	"github.com/anisan-cli/vidman/color"
	"github.com/anisan-cli/vidman/config"
	"github.com/anisan-cli/vidman/style"
	"github.com/anisan-cli/vidman/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

// envVar is one supported environment variable and the config section it belongs to.
type envVar struct {
	section string
	name    string
	value   string
}

func supportedEnv() []envVar {
	vars := lo.MapToSlice(config.Default, func(k string, f config.Field) envVar {
		section, _, _ := strings.Cut(k, ".")
		return envVar{section: section, name: f.Env(), value: os.Getenv(f.Env())}
	})
	vars = append(vars, envVar{section: "paths", name: where.EnvConfigPath, value: os.Getenv(where.EnvConfigPath)})

	slices.SortFunc(vars, func(a, b envVar) int {
		return strings.Compare(a.name, b.name)
	})
	return vars
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Long: `Display the supported environment variables grouped by config section.
Every config key can be overridden by its variable.`,
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		vars := lo.Filter(supportedEnv(), func(v envVar, _ int) bool {
			present := v.value != ""
			return !(setOnly && !present) && !(unsetOnly && present)
		})

		groups := lo.GroupBy(vars, func(v envVar) string { return v.section })
		sections := lo.Keys(groups)
		slices.Sort(sections)

		for i, section := range sections {
			if i > 0 {
				cmd.Println()
			}
			cmd.Println(style.Faint("# " + section))

			for _, v := range groups[section] {
				cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(v.name))
				cmd.Print("=")

				if v.value != "" {
					cmd.Println(style.Fg(color.Green)(v.value))
				} else {
					cmd.Println(style.Fg(color.Red)("unset"))
				}
			}
		}
	},
}
