package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-json"
	"github.com/hokaccha/go-prettyjson"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/risor-io/nesc"
	"github.com/risor-io/nesc/astjson"
	"github.com/risor-io/nesc/compiler"
	"github.com/risor-io/nesc/dis"
)

var outputFormatsCompletion = []string{"text", "json"}

var lowerCmd = &cobra.Command{
	Use:   "lower [file]",
	Short: "Compile a program and print its lowered chunks",
	Long: `Compile a JSON program tree and print the instruction listing of every
registered chunk and function, or the rewritten tree with --output json.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, filename, err := getInput(cmd, args)
		if err != nil {
			return err
		}
		return lower(data, filename, newLogger(), cmd.OutOrStdout())
	},
}

func addLowerFlags() {
	flags := lowerCmd.Flags()
	flags.Bool("stdin", false, "Read the program from stdin")
	flags.StringP("output", "o", "text", "Output format (text or json)")
	flags.Bool("all-import-errors", false, "Report every unresolved import instead of the first")
	flags.StringSlice("modules", nil, "Module prefixes that imports may resolve to (default: any)")
	lowerCmd.RegisterFlagCompletionFunc("output",
		func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return outputFormatsCompletion, cobra.ShellCompDirectiveNoFileComp
		})
}

// getInput returns the program from --stdin or from the file named by
// args[0], along with the name used in error messages.
func getInput(cmd *cobra.Command, args []string) ([]byte, string, error) {
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	if pathSupplied && stdinFlagSet {
		return nil, "", errors.New("multiple input sources specified")
	}
	if stdinFlagSet {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, "<stdin>", err
	}
	if !pathSupplied {
		return nil, "", errors.New("no input provided")
	}
	data, err := os.ReadFile(args[0])
	return data, args[0], err
}

func nescOptions(filename string, logger zerolog.Logger) []nesc.Option {
	opts := []nesc.Option{
		nesc.WithFilename(filename),
		nesc.WithLogger(logger),
	}
	if viper.GetBool("all-import-errors") {
		opts = append(opts, nesc.WithAllImportErrors())
	}
	if prefixes := viper.GetStringSlice("modules"); len(prefixes) > 0 {
		opts = append(opts, nesc.WithModules(prefixes...))
	}
	return opts
}

func lower(data []byte, filename string, logger zerolog.Logger, out io.Writer) error {
	unit, err := nesc.Compile(data, nescOptions(filename, logger)...)
	if err != nil {
		return err
	}
	switch format := strings.ToLower(viper.GetString("output")); format {
	case "", "text":
		instructions, err := dis.Disassemble(unit.Program, unit.Collector)
		if err != nil {
			return err
		}
		return dis.Print(instructions, out)
	case "json":
		output, err := getOutputJSON(unit)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(output))
		return err
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
}

func getOutputJSON(unit *compiler.Unit) ([]byte, error) {
	data, err := astjson.Encode(unit.Program)
	if err != nil {
		return nil, err
	}
	if color.NoColor {
		var buf bytes.Buffer
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
	return prettyjson.Format(data)
}
