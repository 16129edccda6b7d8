package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newSweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Run one expiry and lateness pass, then exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			a, err := newApp(ctx)
			if err != nil {
				return err
			}
			defer a.Close()

			report := a.sweeper.Sweep(ctx)
			report.LateNotices = a.sweeper.MonitorLateness(ctx)
			fmt.Fprintf(os.Stdout, "candidates=%d expired=%d failed=%d late_notices=%d\n",
				report.Candidates, report.Expired, report.Failed, report.LateNotices)
			return nil
		},
	}
}
