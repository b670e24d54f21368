package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/freedrops/internal/utils"
	"github.com/sw33tLie/freedrops/pkg/notify"
	"github.com/sw33tLie/freedrops/pkg/storage"
)

var mailCmd = &cobra.Command{
	Use:   "mail",
	Short: "Mail the last run summary to every subscriber",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := dataDir(cmd)
		return withLock(dir, func() error {
			summary, err := storage.New(dir).ReadSummary()
			if err != nil {
				if errors.Is(err, os.ErrNotExist) {
					utils.Log.Info("No summary found. Nothing to send.")
					return nil
				}
				return err
			}

			subs, err := openSubscribers(dir)
			if err != nil {
				return err
			}
			defer subs.Close()

			mailer := newMailer(subs)
			recipients, err := subscriberEmails(cmd.Context(), subs, mailer.MaxRecipients)
			if err != nil {
				return err
			}
			if len(recipients) == 0 {
				utils.Log.Info("No subscribers found.")
				return nil
			}

			report, err := mailer.SendSummary(cmd.Context(), recipients, summary)
			if errors.Is(err, notify.ErrNotConfigured) {
				utils.Log.Warn("Mail credentials missing (GMAIL_USER / GMAIL_APP_PASSWORD). Skipping.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Printf("Sent: %d, failed: %d\n", report.Sent, report.Failed)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(mailCmd)
}
