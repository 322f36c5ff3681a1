package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var red = color.New(color.FgRed).SprintFunc()

var rootCmd = &cobra.Command{
	Use:   "nesc",
	Short: "Lower pynes programs into 6502 instruction sequences",
	Long: `nesc rewrites a parsed pynes program for the game collector and lowers
its arithmetic into accumulator instruction sequences.

Programs are read as JSON trees produced by an external parser.`,
	Version:       fmt.Sprintf("%s (%s, %s)", version, commit, date),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("no-color") || !isTerminal(os.Stdout) {
			color.NoColor = true
		}
	},
}

func init() {
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log compiler events to stderr")

	addLowerFlags()
	rootCmd.AddCommand(lowerCmd)
	bindConfig()
}

// bindConfig makes every flag readable through viper, overridable with a
// NESC_ environment variable (e.g. NESC_NO_COLOR=1).
func bindConfig() {
	viper.SetEnvPrefix("nesc")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.BindPFlag("no-color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("output", lowerCmd.Flags().Lookup("output"))
	viper.BindPFlag("all-import-errors", lowerCmd.Flags().Lookup("all-import-errors"))
	viper.BindPFlag("modules", lowerCmd.Flags().Lookup("modules"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal(err)
	}
}
