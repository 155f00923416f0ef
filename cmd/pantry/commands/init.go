package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/l3aro/pantry/internal/config"
	"github.com/l3aro/pantry/internal/healthcheck"
	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/pantry"
)

func newInitCmd(a *app) *cobra.Command {
	var (
		global   bool
		defaults bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize pantry configuration interactively",
		Long: `Guides you through setting up pantry configuration step by step:
the default input, the overflow policy and the egg and durian formulas.

The file is written to ./.pantry/config.yaml, or ~/.pantry/config.yaml with --global.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if !defaults {
				if err := runInitForm(cfg); err != nil {
					return err
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			path := config.ProjectConfigFilePath()
			scope := "project"
			if global {
				path = config.GlobalConfigFilePath()
				scope = "global"
			}
			if a.configPath != "" {
				path = a.configPath
				scope = "file"
			}

			if err := cfg.Save(path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration saved to %s (%s)\n", path, scope)

			result, err := healthcheck.Check(cfg, config.Source{Path: path, Scope: scope})
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintln(out)
			displayDoctorResult(out, result)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&global, "global", "g", false, "write the global config instead of the project config")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "write the defaults without prompting")

	return cmd
}

func runInitForm(cfg *config.Config) error {
	input := strconv.Itoa(int(cfg.Input))
	policy := string(cfg.Overflow)
	eggScale := strconv.Itoa(int(cfg.Egg.Scale))
	eggOffset := strconv.Itoa(int(cfg.Egg.Offset))
	durianScale := strconv.Itoa(int(cfg.Durian.Scale))
	durianOffset := strconv.Itoa(int(cfg.Durian.Offset))
	useCache := cfg.Cache.Enabled

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Default input").
				Description("Value passed to apple when pantry runs without arguments").
				Placeholder("5").
				Validate(validateInt32).
				Value(&input),
			huh.NewSelect[string]().
				Title("Overflow policy").
				Description("How results outside the int32 range are handled").
				Options(
					huh.NewOption("Wrap around (two's complement)", string(arith.PolicyWrap)),
					huh.NewOption("Checked (report an error)", string(arith.PolicyChecked)),
				).
				Value(&policy),
		),
		huh.NewGroup(
			huh.NewInput().Title("egg scale").Description("egg(x) = scale*x + offset").Validate(validateInt32).Value(&eggScale),
			huh.NewInput().Title("egg offset").Validate(validateInt32).Value(&eggOffset),
			huh.NewInput().Title("durian scale").Description("durian(x) = scale*x + offset").Validate(validateInt32).Value(&durianScale),
			huh.NewInput().Title("durian offset").Validate(validateInt32).Value(&durianOffset),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Cache table results?").
				Affirmative("Yes").
				Negative("No").
				Value(&useCache),
		),
	)
	if err := form.Run(); err != nil {
		return fmt.Errorf("interactive prompt failed: %w", err)
	}

	var err error
	if cfg.Input, err = parseInt32(input); err != nil {
		return err
	}
	cfg.Overflow = arith.Policy(policy)
	if cfg.Egg, err = parseLinear(eggScale, eggOffset); err != nil {
		return err
	}
	if cfg.Durian, err = parseLinear(durianScale, durianOffset); err != nil {
		return err
	}
	cfg.Cache.Enabled = useCache
	return nil
}

func validateInt32(s string) error {
	_, err := parseInt32(s)
	return err
}

func parseInt32(s string) (int32, error) {
	i, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 32-bit integer", s)
	}
	return int32(i), nil
}

func parseLinear(scale, offset string) (pantry.Linear, error) {
	s, err := parseInt32(scale)
	if err != nil {
		return pantry.Linear{}, err
	}
	o, err := parseInt32(offset)
	if err != nil {
		return pantry.Linear{}, err
	}
	return pantry.Linear{Scale: s, Offset: o}, nil
}
