package cmd

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/sw33tLie/freedrops/internal/server"
	"github.com/sw33tLie/freedrops/pkg/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard, the current drops and the subscribe API",
	RunE: func(cmd *cobra.Command, args []string) error {
		listenAddr, _ := cmd.Flags().GetString("listen")
		dir := dataDir(cmd)

		subs, err := openSubscribers(dir)
		if err != nil {
			return err
		}
		defer subs.Close()

		static, _ := cmd.Flags().GetString("static")
		if static == "" {
			static = filepath.Dir(viper.GetString("dashboard.output"))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(subs, storage.New(dir), static).Start(ctx, listenAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("listen", ":8080", "HTTP listen address")
	serveCmd.Flags().String("static", "", "Directory served at / (default: directory of dashboard.output)")
}
