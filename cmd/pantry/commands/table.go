package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/l3aro/pantry/pkg/arith"
	"github.com/l3aro/pantry/pkg/cache"
	"github.com/l3aro/pantry/pkg/graph"
)

// maxTableRows bounds a single table invocation.
const maxTableRows = 100000

// TableRow is one evaluated input
type TableRow struct {
	Input  int32  `json:"input"`
	Answer int32  `json:"answer"`
	Cached bool   `json:"cached"`
	Error  string `json:"error,omitempty"`
}

func newTableCmd(a *app) *cobra.Command {
	var (
		from, to, step int32
		jsonOutput     bool
		noCache        bool
	)

	cmd := &cobra.Command{
		Use:   "table --from A --to B [flags]",
		Short: "Evaluate apple over a range of inputs",
		Long: `Evaluates apple(x) for x = from, from+step, ..., to (inclusive).

Answers are memoised in the result cache, keyed by the recipe fingerprint,
so changing a leaf formula or the overflow policy never reuses stale answers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if step <= 0 {
				return fmt.Errorf("--step must be positive")
			}
			if from > to {
				return fmt.Errorf("--from (%d) must not exceed --to (%d)", from, to)
			}
			if rows := (int64(to)-int64(from))/int64(step) + 1; rows > maxTableRows {
				return fmt.Errorf("range has %d rows, limit is %d", rows, maxTableRows)
			}
			if err := a.load(cmd); err != nil {
				return err
			}

			recipe := a.cfg.Recipe()
			g, err := graph.Build(recipe)
			if err != nil {
				return err
			}
			fp, err := recipe.Fingerprint()
			if err != nil {
				return err
			}

			useCache := a.cfg.Cache.Enabled && !noCache
			rc := cache.New(cache.Options{MaxEntries: a.cfg.Cache.MaxEntries})
			if useCache {
				if err := rc.LoadFile(a.cfg.Cache.Path); err != nil {
					a.logger.Warn("ignoring unreadable cache", "path", a.cfg.Cache.Path, "error", err)
					rc.Clear()
				}
			}

			var rows []TableRow
			for x := int64(from); x <= int64(to); x += int64(step) {
				rows = append(rows, evalRow(g, rc, fp, int32(x), useCache))
			}

			if useCache {
				stats := rc.Stats()
				a.logger.Debug("cache", "hits", stats.Hits, "misses", stats.Misses, "entries", stats.Entries)
				if err := rc.SaveFile(a.cfg.Cache.Path); err != nil {
					a.logger.Warn("failed to persist cache", "path", a.cfg.Cache.Path, "error", err)
				}
			}

			out := cmd.OutOrStdout()
			if jsonOutput {
				data, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}

			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "INPUT\tANSWER")
			for _, r := range rows {
				if r.Error != "" {
					fmt.Fprintf(tw, "%d\t%s\n", r.Input, r.Error)
					continue
				}
				fmt.Fprintf(tw, "%d\t%d\n", r.Input, r.Answer)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().Int32Var(&from, "from", 0, "first input")
	cmd.Flags().Int32Var(&to, "to", 10, "last input (inclusive)")
	cmd.Flags().Int32Var(&step, "step", 1, "distance between inputs")
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "output as JSON")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the result cache")

	return cmd
}

func evalRow(g *graph.Graph, rc *cache.ResultCache, fp string, x int32, useCache bool) TableRow {
	row := TableRow{Input: x}

	var (
		v   int32
		hit bool
		err error
	)
	if useCache {
		v, hit, err = rc.GetOrCompute(cache.Key(fp, x), func() (int32, error) { return g.Answer(x) })
	} else {
		v, err = g.Answer(x)
	}

	if err != nil {
		if errors.Is(err, arith.ErrOverflow) {
			row.Error = "overflow"
		} else {
			row.Error = err.Error()
		}
		return row
	}
	row.Answer = v
	row.Cached = hit
	return row
}

