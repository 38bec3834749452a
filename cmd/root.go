// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/acikyardim/yardim-paneli/internal/config"
	"github.com/acikyardim/yardim-paneli/internal/database"
	"github.com/acikyardim/yardim-paneli/internal/messaging"
	"github.com/acikyardim/yardim-paneli/internal/server"
)

// Version is set at build time via -ldflags.
var Version = "dev"

var cfgFile string
var databasePath string
var databaseType string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "yardim-paneli",
	Short: "Aid management panel for NGOs",
	Long: `Yardım Yönetim Paneli tracks beneficiaries, donations and outgoing
messages for aid organizations, and serves the HTTP API the panel
frontend talks to.

Search is diacritic-insensitive, so "ayse" finds "Ayşe".`,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server for the aid management panel.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)

		// Reload AppConfig when the config file changes on disk.
		config.WatchConfig()

		sms := messaging.NewSMSProvider(config.AppConfig, nil)
		email := messaging.NewEmailProvider(config.AppConfig, nil)
		fmt.Printf("SMS provider: %s, email provider: %s\n", sms.Name(), email.Name())

		dispatcher := messaging.NewDispatcher(database.GlobalStore, sms, email, config.AppConfig.BulkSendPerSecond)

		srv := server.NewServer(database.GlobalStore, dispatcher)
		cfg := server.DefaultServerConfig()

		// Override with command line flags if provided
		if port := cmd.Flag("port").Value.String(); port != "" {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); host != "" {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		return srv.Start(cfg)
	},
}

// versionCmd prints the build version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("yardim-paneli %s\n", Version)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.yardim-paneli.yaml)")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "yardim.db", "path to database")
	rootCmd.PersistentFlags().StringVar(&databaseType, "db-type", "sqlite", "database type: sqlite (default) or pebble")

	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("database_type", rootCmd.PersistentFlags().Lookup("db-type"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(diagnosticsCmd)

	// Add serve command specific flags
	serveCmd.Flags().String("port", "", "port to run the API server on (default from config)")
	serveCmd.Flags().String("host", "0.0.0.0", "host to bind the API server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".yardim-paneli")
	}

	viper.SetEnvPrefix("YARDIM")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
