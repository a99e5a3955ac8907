package config

import (
	"log"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string `mapstructure:"PORT"`
	DataFile                      string `mapstructure:"DATA_FILE"`
	DataDriver                    string `mapstructure:"DATA_DRIVER"`
	SQLitePath                    string `mapstructure:"SQLITE_PATH"`
	DatabaseURL                   string `mapstructure:"DATABASE_URL"`
	DatabaseServiceKey            string `mapstructure:"DATABASE_SERVICE_KEY"`
	EmailJSServiceID              string `mapstructure:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID             string `mapstructure:"EMAILJS_TEMPLATE_ID"`
	EmailJSPublicKey              string `mapstructure:"EMAILJS_PUBLIC_KEY"`
	EmailJSToEmail                string `mapstructure:"EMAILJS_TO_EMAIL"`
	EmailJSFromName               string `mapstructure:"EMAILJS_FROM_NAME"`
	DiscordBotToken               string `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	StaticDir                     string `mapstructure:"STATIC_DIR"`
	EnableCORS                    bool   `mapstructure:"ENABLE_CORS"`
	AdminBaseURL                  string `mapstructure:"ADMIN_BASE_URL"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATA_FILE", "data/rsvps.json")
	viper.SetDefault("DATA_DRIVER", "file")
	viper.SetDefault("SQLITE_PATH", "data/rsvps.db")
	viper.SetDefault("STATIC_DIR", "web")
	viper.SetDefault("ADMIN_BASE_URL", "http://127.0.0.1:8080")

	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("DATABASE_SERVICE_KEY")
	viper.BindEnv("EMAILJS_SERVICE_ID")
	viper.BindEnv("EMAILJS_TEMPLATE_ID")
	viper.BindEnv("EMAILJS_PUBLIC_KEY")
	viper.BindEnv("EMAILJS_TO_EMAIL")
	viper.BindEnv("EMAILJS_FROM_NAME")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("ENABLE_CORS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// HostedConfigured reports whether the hosted database backend should serve
// the current request. It reads the environment through viper on every call
// so the process follows whatever is configured right now instead of a
// decision frozen at startup.
func (c *Config) HostedConfigured() bool {
	return viper.GetString("DATABASE_URL") != "" && viper.GetString("DATABASE_SERVICE_KEY") != ""
}

// HostedCredentials returns the current endpoint URL and service credential
// for the hosted backend.
func (c *Config) HostedCredentials() (url, serviceKey string) {
	return viper.GetString("DATABASE_URL"), viper.GetString("DATABASE_SERVICE_KEY")
}
