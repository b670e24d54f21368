package cmd

import (
	"context"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sw33tLie/freedrops/internal/utils"
	"github.com/sw33tLie/freedrops/pkg/dashboard"
	"github.com/sw33tLie/freedrops/pkg/notify"
	"github.com/sw33tLie/freedrops/pkg/storage"
	"github.com/sw33tLie/freedrops/pkg/whttp"
)

const SUBSCRIBERS_DB = "subscribers.sqlite"

// dataDir is the --datadir flag, falling back to data.dir from the config.
func dataDir(cmd *cobra.Command) string {
	if dir, _ := cmd.Flags().GetString("datadir"); dir != "" {
		return dir
	}
	return viper.GetString("data.dir")
}

func httpClient(cmd *cobra.Command) (*retryablehttp.Client, error) {
	proxy, _ := cmd.Flags().GetString("proxy")
	return whttp.NewClient(proxy)
}

func location() *time.Location {
	return utils.LoadLocation(viper.GetString("timezone"))
}

func dashboardOptions() *dashboard.Options {
	return &dashboard.Options{
		TemplatePath: viper.GetString("dashboard.template"),
		OutputPath:   viper.GetString("dashboard.output"),
	}
}

func openSubscribers(dir string) (*storage.SubscriberDB, error) {
	return storage.OpenSubscribers(filepath.Join(dir, SUBSCRIBERS_DB))
}

func newTelegram(client *retryablehttp.Client) *notify.Telegram {
	return &notify.Telegram{
		Token:     viper.GetString("telegram.token"),
		ChannelID: viper.GetString("telegram.channel"),
		Client:    client,
	}
}

// newMailer builds the subscriber mailer. subs may be nil when the mailer is
// only used through SendSummary.
func newMailer(subs *storage.SubscriberDB) *notify.Mailer {
	m := &notify.Mailer{
		Host:          viper.GetString("mail.host"),
		Port:          viper.GetInt("mail.port"),
		Username:      viper.GetString("mail.username"),
		Password:      viper.GetString("mail.password"),
		FromName:      viper.GetString("mail.fromname"),
		Subject:       viper.GetString("mail.subject"),
		DashboardURL:  viper.GetString("dashboard.link"),
		MaxRecipients: viper.GetInt("mail.maxsubs"),
	}
	if subs != nil {
		m.Recipients = func(ctx context.Context) ([]string, error) {
			return subscriberEmails(ctx, subs, m.MaxRecipients)
		}
	}
	return m
}

func subscriberEmails(ctx context.Context, subs *storage.SubscriberDB, limit int) ([]string, error) {
	list, err := subs.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	emails := make([]string, 0, len(list))
	for _, s := range list {
		emails = append(emails, s.Email)
	}
	return emails, nil
}

// withLock runs fn while holding the data directory lock.
func withLock(dir string, fn func() error) error {
	lock, err := utils.NewRunLock(dir)
	if err != nil {
		return err
	}
	if err := lock.Lock(); err != nil {
		return err
	}
	defer lock.Unlock()
	return fn()
}
