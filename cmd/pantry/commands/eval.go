package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/l3aro/pantry/pkg/graph"
)

var evalFormats = []string{"text", "json", "yaml", "msgpack"}

func newEvalCmd(a *app) *cobra.Command {
	var (
		input  int32
		trace  bool
		format string
	)

	cmd := &cobra.Command{
		Use:   "eval [flags]",
		Short: "Evaluate apple for one input",
		Long: `Evaluates apple(x) and prints the answer line.

With --trace every module call is listed in evaluation order, indented by
call depth. Structured formats (json, yaml, msgpack) encode the full result.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateFormat(format); err != nil {
				return err
			}
			if err := a.load(cmd); err != nil {
				return err
			}
			if !cmd.Flags().Changed("input") {
				input = a.cfg.Input
			}

			g, err := graph.Build(a.cfg.Recipe())
			if err != nil {
				return err
			}

			res, evalErr := g.Evaluate(input)
			if evalErr != nil {
				a.logger.Debug("evaluation failed", "input", input, "error", evalErr)
				if trace && format == "text" {
					writeTrace(cmd.OutOrStdout(), res.Steps)
				}
				return evalErr
			}
			if !trace {
				res.Steps = nil
			}
			return writeResult(cmd.OutOrStdout(), res, format)
		},
	}

	cmd.Flags().Int32VarP(&input, "input", "x", 0, "input value (default: config input, 5)")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "include the call trace")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: "+strings.Join(evalFormats, "|"))

	return cmd
}

func validateFormat(format string) error {
	for _, f := range evalFormats {
		if f == format {
			return nil
		}
	}
	return fmt.Errorf("invalid format %q: must be one of %s", format, strings.Join(evalFormats, ", "))
}

func writeResult(w io.Writer, res *graph.Result, format string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(res); err != nil {
			return err
		}
		return enc.Close()
	case "msgpack":
		return msgpack.NewEncoder(w).Encode(res)
	default:
		writeTrace(w, res.Steps)
		_, err := fmt.Fprintln(w, res.Line())
		return err
	}
}

// writeTrace prints one line per step, e.g. "    carrot(5) = 1".
func writeTrace(w io.Writer, steps []graph.Step) {
	for _, s := range steps {
		indent := strings.Repeat("  ", s.Depth)
		if s.Error != "" {
			fmt.Fprintf(w, "%s%s(%d) failed: %s\n", indent, s.Module, s.Input, s.Error)
			continue
		}
		fmt.Fprintf(w, "%s%s(%d) = %d\n", indent, s.Module, s.Input, s.Output)
	}
}
