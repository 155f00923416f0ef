package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/l3aro/pantry/pkg/cache"
)

func newCacheCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the result cache",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "stats",
		Short: "Show the number of cached answers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			rc := cache.New(cache.Options{MaxEntries: a.cfg.Cache.MaxEntries})
			if err := rc.LoadFile(a.cfg.Cache.Path); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Path: %s\n", a.cfg.Cache.Path)
			fmt.Fprintf(out, "Enabled: %t\n", a.cfg.Cache.Enabled)
			fmt.Fprintf(out, "Entries: %d/%d\n", rc.Len(), a.cfg.Cache.MaxEntries)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the cache file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			if err := os.Remove(a.cfg.Cache.Path); err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("removing cache: %w", err)
			}
			a.logger.Debug("cache cleared", "path", a.cfg.Cache.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Cache cleared: %s\n", a.cfg.Cache.Path)
			return nil
		},
	})

	return cmd
}
