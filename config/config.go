package config

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server         Server
	Database       Database
	Auth           Auth
	SMTP           SMTP
	FirstSuperuser FirstSuperuser

	UsersOpenRegistration bool

	EventStartTime *time.Time
	EventEndTime   *time.Time
}

type Server struct {
	Port string
	Host string // external base URL, used in password reset links
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type Auth struct {
	SecretKey                  string
	AccessTokenExpireMinutes   int
	EmailResetTokenExpireHours int
}

type SMTP struct {
	Host      string
	Port      int
	User      string
	Password  string
	FromEmail string
	FromName  string
}

type FirstSuperuser struct {
	FullName string
	Email    string
	Username string
	Password string
}

// EmailsEnabled reports whether enough SMTP configuration is present to send emails.
func (c *Config) EmailsEnabled() bool {
	return c.SMTP.Host != "" && c.SMTP.Port != 0 && c.SMTP.FromEmail != ""
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 60*24*8) // 8 days
	viper.SetDefault("EMAIL_RESET_TOKEN_EXPIRE_HOURS", 48)

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Server.Host = viper.GetString("SERVER_HOST")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.Auth.SecretKey = viper.GetString("SECRET_KEY")
	config.Auth.AccessTokenExpireMinutes = viper.GetInt("ACCESS_TOKEN_EXPIRE_MINUTES")
	config.Auth.EmailResetTokenExpireHours = viper.GetInt("EMAIL_RESET_TOKEN_EXPIRE_HOURS")

	config.SMTP.Host = viper.GetString("SMTP_HOST")
	config.SMTP.Port = viper.GetInt("SMTP_PORT")
	config.SMTP.User = viper.GetString("SMTP_USER")
	config.SMTP.Password = viper.GetString("SMTP_PASSWORD")
	config.SMTP.FromEmail = viper.GetString("EMAILS_FROM_EMAIL")
	config.SMTP.FromName = viper.GetString("EMAILS_FROM_NAME")

	config.FirstSuperuser.FullName = viper.GetString("FIRST_SUPERUSER_NAME")
	config.FirstSuperuser.Email = viper.GetString("FIRST_SUPERUSER_EMAIL")
	config.FirstSuperuser.Username = viper.GetString("FIRST_SUPERUSER_USERNAME")
	config.FirstSuperuser.Password = viper.GetString("FIRST_SUPERUSER_PASSWORD")

	config.UsersOpenRegistration = viper.GetBool("USERS_OPEN_REGISTRATION")

	if s := viper.GetString("EVENT_START_TIME"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			log.Error().Err(err).Str("value", s).Msg("Invalid EVENT_START_TIME")
			return nil, err
		}
		config.EventStartTime = &t
	}
	if s := viper.GetString("EVENT_END_TIME"); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			log.Error().Err(err).Str("value", s).Msg("Invalid EVENT_END_TIME")
			return nil, err
		}
		config.EventEndTime = &t
	}

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
