package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" validate:"required"`
	Database  DatabaseConfig  `mapstructure:"database" validate:"required"`
	Auth      AuthConfig      `mapstructure:"auth" validate:"required"`
	Review    ReviewConfig    `mapstructure:"review" validate:"required"`
	Scheduler SchedulerConfig `mapstructure:"scheduler" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// ReviewConfig tunes the review queue and upcoming-forecast behavior.
type ReviewConfig struct {
	// DueLimit caps the number of cards returned by the due queue.
	DueLimit int `mapstructure:"due_limit" validate:"required,gt=0"`
	// UpcomingHorizonDays bounds the week bucket of the upcoming forecast.
	UpcomingHorizonDays int `mapstructure:"upcoming_horizon_days" validate:"required,gt=0"`
}

// SchedulerConfig controls the background job that logs the daily
// due-card summary.
type SchedulerConfig struct {
	// DailySummaryTime is the local time of day ("HH:MM") at which the
	// daily due summary job runs.
	DailySummaryTime string `mapstructure:"daily_summary_time" validate:"required"`
}
