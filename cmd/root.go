// Package cmd implements the command-line interface for vidman.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anisan-cli/vidman/color"
	"github.com/anisan-cli/vidman/constant"
	"github.com/anisan-cli/vidman/icon"
	"github.com/anisan-cli/vidman/key"
	"github.com/anisan-cli/vidman/log"
	"github.com/anisan-cli/vidman/style"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().Bool("lite", false, "Treat the document as a lite viewer where muted autoplay is never attempted")
	lo.Must0(viper.BindPFlag(key.AutoplayLiteViewer, rootCmd.PersistentFlags().Lookup("lite")))

	rootCmd.PersistentFlags().String("user-agent", "", "User agent reported by the simulated document")
	lo.Must0(viper.BindPFlag(key.SimUserAgent, rootCmd.PersistentFlags().Lookup("user-agent")))
}

// rootCmd defines the entry point for vidman.
var rootCmd = &cobra.Command{
	Use:   constant.Vidman,
	Short: "Coordinate autoplay and visibility of video players on a simulated page",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - Muted autoplay, visibility and user interaction for every player on a page"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		_ = cmd.Help()
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
