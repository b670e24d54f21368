package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/sw33tLie/freedrops/internal/utils"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

var cfgFile string

const (
	LOGO = `	 __                    _                     
	/ _|_ __ ___  ___  __| |_ __ ___  _ __  ___ 
	| |_| '__/ _ \/ _ \/ _' | '__/ _ \| '_ \/ __|
	|  _| | |  __/  __/ (_| | | | (_) | |_) \__ \
	|_| |_|  \___|\___|\__,_|_|  \___/| .__/|___/
	                                  |_|        
`
	PLACEHOLDER_TOKEN   = "PLACEHOLDER_TOKEN"
	PLACEHOLDER_CHANNEL = "PLACEHOLDER_CHANNEL"
	DEFAULT_DASHBOARD   = "https://example.com/dashboard.html"
	DEFAULT_TIMEZONE    = "Asia/Kolkata"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "freedrops",
	Short: "Track free game giveaways across storefronts.",
	Long: LOGO + `freedrops scrapes the Epic Games Store, GOG, Steam, Humble, Ubisoft and Prime Gaming
for limited-time free games, remembers what it saw last time and announces what changed.`,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.freedrops.yaml)")

	// Global flags
	rootCmd.PersistentFlags().StringP("proxy", "", "", "HTTP Proxy (Useful for debugging. Example: http://127.0.0.1:8080)")
	rootCmd.PersistentFlags().StringP("loglevel", "l", "info", "Set log level. Available: debug, info, warn, error, fatal")
	rootCmd.PersistentFlags().String("datadir", "", "Directory holding the snapshot, archive and summary files (default: data.dir from config)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".freedrops")
		viper.SetConfigType("yaml")
	}

	setDefaults()

	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindEnv("telegram.token", "TELEGRAM_BOT_TOKEN")
	bindEnv("telegram.channel", "TELEGRAM_CHANNEL_ID")
	bindEnv("dashboard.link", "DASHBOARD_LINK")
	bindEnv("timezone", "FREEDROPS_TIMEZONE")
	bindEnv("mail.username", "GMAIL_USER")
	bindEnv("mail.password", "GMAIL_APP_PASSWORD")
	bindEnv("mail.fromname", "FROM_NAME")
	bindEnv("mail.subject", "EMAIL_SUBJECT")
	bindEnv("mail.maxsubs", "MAX_SUBS")

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; create it with defaults.
			home, _ := homedir.Dir()
			configPath := filepath.Join(home, ".freedrops.yaml")
			if err := viper.SafeWriteConfigAs(configPath); err != nil {
				fmt.Printf("Error creating config file: %s", err)
			}
		}
	}

	// Init log library
	levelString, _ := rootCmd.PersistentFlags().GetString("loglevel")
	utils.SetLogLevel(levelString)
}

func setDefaults() {
	viper.SetDefault("data.dir", ".")
	viper.SetDefault("timezone", DEFAULT_TIMEZONE)
	viper.SetDefault("telegram.token", PLACEHOLDER_TOKEN)
	viper.SetDefault("telegram.channel", PLACEHOLDER_CHANNEL)
	viper.SetDefault("dashboard.link", DEFAULT_DASHBOARD)
	viper.SetDefault("dashboard.template", "dashboard/template_dashboard.html")
	viper.SetDefault("dashboard.output", "dashboard/dashboard.html")
	viper.SetDefault("mail.host", "smtp.gmail.com")
	viper.SetDefault("mail.port", 587)
	viper.SetDefault("mail.username", "")
	viper.SetDefault("mail.password", "")
	viper.SetDefault("mail.fromname", "Free Game Bot")
	viper.SetDefault("mail.subject", "🎁 New Free Games Alert!")
	viper.SetDefault("mail.maxsubs", 250)
	viper.SetDefault("schedule", "0 */6 * * *")
}

func bindEnv(key, env string) {
	if err := viper.BindEnv(key, env); err != nil {
		utils.Log.Warnf("Could not bind %s to %s: %v", env, key, err)
	}
}
