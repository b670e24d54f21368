package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sw33tLie/freedrops/internal/utils"
	"github.com/sw33tLie/freedrops/pkg/notify"
	"github.com/sw33tLie/freedrops/pkg/storage"
	"github.com/sw33tLie/freedrops/pkg/tracker"
)

// runCmd implements: freedrops run
//
//	--sources string    Comma-separated sources or "all" (default)
//	--concurrency int   Number of sources fetched at once
//	--mail              Also mail the summary to subscribers
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Scrape every source once, diff against the last run and announce changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := runOnce(cmd.Context(), cmd)
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().String("sources", "all", "Sources to scrape: epic, gog, steam, humble, ubisoft, prime or all")
	runCmd.Flags().Int("concurrency", 4, "Number of sources fetched at once")
	runCmd.Flags().Bool("mail", false, "Also mail the summary to subscribers")
}

// runOnce performs a full tracker pass under the data directory lock.
func runOnce(ctx context.Context, cmd *cobra.Command) (*tracker.Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	sourceList, _ := cmd.Flags().GetString("sources")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	withMail, _ := cmd.Flags().GetBool("mail")

	client, err := httpClient(cmd)
	if err != nil {
		return nil, err
	}
	sources, err := selectSources(sourceList, client)
	if err != nil {
		return nil, err
	}

	dir := dataDir(cmd)
	notifiers := []notify.Notifier{newTelegram(client)}

	var result *tracker.Result
	err = withLock(dir, func() error {
		if withMail {
			subs, err := openSubscribers(dir)
			if err != nil {
				return err
			}
			defer subs.Close()
			notifiers = append(notifiers, newMailer(subs))
		}

		result, err = tracker.Run(ctx, tracker.Config{
			Sources:     sources,
			Concurrency: concurrency,
			Store:       storage.New(dir),
			Location:    location(),
			Formatter:   notify.Formatter{DashboardURL: viper.GetString("dashboard.link")},
			Notifiers:   notifiers,
			Dashboard:   dashboardOptions(),
			Log:         utils.Log,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	if result.Message != nil {
		utils.Log.Infof("%d changes, delivered via %v", len(result.Events), result.Notified)
	}
	return result, nil
}
