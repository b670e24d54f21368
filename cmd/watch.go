package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sw33tLie/freedrops/internal/utils"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the tracker on a cron schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, _ := cmd.Flags().GetString("schedule")
		if schedule == "" {
			schedule = viper.GetString("schedule")
		}
		now, _ := cmd.Flags().GetBool("now")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := cron.New(
			cron.WithLocation(location()),
			cron.WithLogger(cron.PrintfLogger(utils.Log)),
		)
		if _, err := c.AddFunc(schedule, func() {
			if _, err := runOnce(ctx, cmd); err != nil {
				utils.Log.Errorf("Scheduled run failed: %v", err)
			}
		}); err != nil {
			return err
		}

		if now {
			if _, err := runOnce(ctx, cmd); err != nil {
				utils.Log.Errorf("Initial run failed: %v", err)
			}
		}

		utils.Log.Infof("Watching with schedule %q (%s)", schedule, location())
		c.Start()
		<-ctx.Done()

		utils.Log.Info("Stopping scheduler, waiting for a running pass to finish...")
		<-c.Stop().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("schedule", "", "Cron expression (default: schedule from config, 0 */6 * * *)")
	watchCmd.Flags().Bool("now", false, "Run once immediately before waiting for the schedule")
	watchCmd.Flags().String("sources", "all", "Sources to scrape: epic, gog, steam, humble, ubisoft, prime or all")
	watchCmd.Flags().Int("concurrency", 4, "Number of sources fetched at once")
	watchCmd.Flags().Bool("mail", false, "Also mail the summary to subscribers")
}
