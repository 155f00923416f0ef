package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/l3aro/pantry/internal/healthcheck"
)

func newDoctorCmd(a *app) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Run health checks on the configuration",
		Long: `Checks the configuration, builds the call graph and evaluates it at
the int32 boundaries, verifying that carrot, banana and apple agree with
their definitions at every probe.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}

			result, err := healthcheck.Check(a.cfg, a.src)
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}

			if jsonOutput {
				data, err := json.MarshalIndent(result, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			} else {
				displayDoctorResult(cmd.OutOrStdout(), result)
			}

			if !result.Healthy() {
				return fmt.Errorf("health check failed: composition identities do not hold")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "output as JSON")
	return cmd
}

func displayDoctorResult(w io.Writer, result *healthcheck.HealthCheckResult) {
	if result.EffectivePath != "" {
		fmt.Fprintf(w, "Using config: %s (%s)\n\n", result.EffectivePath, result.EffectiveScope)
	} else {
		fmt.Fprintf(w, "Using config: built-in defaults\n\n")
	}

	fmt.Fprintln(w, "Recipe:")
	fmt.Fprintf(w, "  egg(x)    = %s\n", result.Egg)
	fmt.Fprintf(w, "  durian(x) = %s\n", result.Durian)
	fmt.Fprintf(w, "  Overflow: %s\n", result.Policy)
	fmt.Fprintf(w, "  Fingerprint: %s\n", result.Fingerprint)

	fmt.Fprintln(w, "\nProbes:")
	for _, p := range result.Probes {
		icon := formatStatusIcon(p.Status)
		if p.Status == healthcheck.StatusOK {
			fmt.Fprintf(w, "  %s apple(%d) = %d\n", icon, p.Input, p.Answer)
			continue
		}
		fmt.Fprintf(w, "  %s apple(%d): %s\n", icon, p.Input, p.Error)
	}
}

func formatStatusIcon(status string) string {
	switch status {
	case healthcheck.StatusOK:
		return "✓"
	case healthcheck.StatusOverflow:
		return "◐"
	case healthcheck.StatusError:
		return "✗"
	default:
		return "?"
	}
}
