// file: internal/config/config.go
// version: 1.0.0
// guid: 00d25bd1-9c93-4685-a42e-fb2116310823

// Package config holds viper-backed application configuration.
package config

import (
	"log"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Port         int
	DatabasePath string
	DatabaseType string // "sqlite" (default) or "pebble"
	DefaultOrgID string

	RateLimitMax    int           // requests per window; <= 0 disables limiting
	RateLimitWindow time.Duration // window length

	SessionTTL time.Duration

	SMSProvider   string // "netgsm", "twilio" or "mock"
	EmailProvider string // "resend", "sendgrid" or "mock"

	SMS struct {
		NetGSMUsername string
		NetGSMPassword string
		NetGSMHeader   string
		NetGSMAPIURL   string

		TwilioAccountSID string
		TwilioAuthToken  string
		TwilioFromNumber string
	}
	Email struct {
		ResendAPIKey   string
		SendGridAPIKey string
		FromAddress    string
	}

	BulkSendPerSecond float64 // pacing for bulk message dispatch
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	viper.SetDefault("port", 8080)
	viper.SetDefault("database_type", "sqlite")
	viper.SetDefault("database_path", "yardim.db")
	viper.SetDefault("default_org_id", "default")
	viper.SetDefault("rate_limit_max", 100)
	viper.SetDefault("rate_limit_window_seconds", 60)
	viper.SetDefault("session_ttl_hours", 24)
	viper.SetDefault("sms_provider", "mock")
	viper.SetDefault("email_provider", "mock")
	viper.SetDefault("sms.netgsm_header", "YARDIM")
	viper.SetDefault("sms.netgsm_api_url", "https://api.netgsm.com.tr/sms/send/get")
	viper.SetDefault("bulk_send_per_second", 5.0)

	AppConfig = Config{
		Port:              viper.GetInt("port"),
		DatabasePath:      viper.GetString("database_path"),
		DatabaseType:      viper.GetString("database_type"),
		DefaultOrgID:      viper.GetString("default_org_id"),
		RateLimitMax:      viper.GetInt("rate_limit_max"),
		RateLimitWindow:   time.Duration(viper.GetInt("rate_limit_window_seconds")) * time.Second,
		SessionTTL:        time.Duration(viper.GetInt("session_ttl_hours")) * time.Hour,
		SMSProvider:       viper.GetString("sms_provider"),
		EmailProvider:     viper.GetString("email_provider"),
		BulkSendPerSecond: viper.GetFloat64("bulk_send_per_second"),
	}

	AppConfig.SMS.NetGSMUsername = viper.GetString("sms.netgsm_username")
	AppConfig.SMS.NetGSMPassword = viper.GetString("sms.netgsm_password")
	AppConfig.SMS.NetGSMHeader = viper.GetString("sms.netgsm_header")
	AppConfig.SMS.NetGSMAPIURL = viper.GetString("sms.netgsm_api_url")
	AppConfig.SMS.TwilioAccountSID = viper.GetString("sms.twilio_account_sid")
	AppConfig.SMS.TwilioAuthToken = viper.GetString("sms.twilio_auth_token")
	AppConfig.SMS.TwilioFromNumber = viper.GetString("sms.twilio_from_number")
	AppConfig.Email.ResendAPIKey = viper.GetString("email.resend_api_key")
	AppConfig.Email.SendGridAPIKey = viper.GetString("email.sendgrid_api_key")
	AppConfig.Email.FromAddress = viper.GetString("email.from_address")

	// Normalize database type
	if AppConfig.DatabaseType == "sqlite3" {
		AppConfig.DatabaseType = "sqlite"
	}
	if AppConfig.DatabaseType == "" {
		AppConfig.DatabaseType = "sqlite"
	}
}

// WatchConfig reloads AppConfig when the config file changes on disk.
func WatchConfig() {
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Printf("[INFO] config file changed: %s, reloading", e.Name)
		InitConfig()
	})
	viper.WatchConfig()
}
