package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

// newSchedulerCommand polls every active feed on the configured interval
// until interrupted.
func newSchedulerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scheduler",
		Short: "Run the feed scheduler",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := buildApp(ctx)
			if err != nil {
				return err
			}
			defer a.close()

			interval := a.cfg.Crawler.FeedInterval
			run := func() {
				count, runErr := a.engine.ProcessAllFeeds(ctx)
				if runErr != nil {
					a.log.Error("scheduled run failed", "error", runErr)
					return
				}
				a.log.Info("scheduled run complete", "entries", count)
			}

			c := cron.New()
			if _, err := c.AddFunc(fmt.Sprintf("@every %s", interval), run); err != nil {
				return fmt.Errorf("schedule feeds: %w", err)
			}

			a.log.Info("scheduler started", "interval", interval.String())
			run()
			c.Start()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			select {
			case sig := <-sigCh:
				a.log.Info("scheduler stopping", "signal", sig.String())
			case <-ctx.Done():
			}

			stopCtx := c.Stop()
			<-stopCtx.Done()
			return nil
		},
	}
}
