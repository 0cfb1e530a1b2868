package config

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	JWTSecret     string `env:"JWT_SECRET"`
	RatePerMinute string `env:"RATE_PER_MINUTE" default:"0.333333"`
	SweepInterval string `env:"BOOKING_SWEEP_INTERVAL" default:"1m"`
	Env           string `env:"APP_ENV" default:"dev"`
}
