package config

import "time"

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

// Auth holds the back-office login credentials. The password is stored as a
// bcrypt hash, never in the clear.
type Auth struct {
	Username     string `envconfig:"USERNAME" default:"backoffice"`
	PasswordHash string `envconfig:"PASSWORD_HASH"`
	Jwt          *Jwt   `envconfig:"JWT"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[bankcore]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

// Worker configures the scheduled-transfer materialization worker.
type Worker struct {
	// PollSpec is a cron expression controlling how often due definitions
	// are picked up.
	PollSpec string `envconfig:"POLL_SPEC" default:"* * * * *"`
	// BatchSize caps how many due definitions one tick materializes.
	BatchSize int `envconfig:"BATCH_SIZE" default:"100"`
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	DB        *DB        `envconfig:"DATABASE"`
	Auth      *Auth      `envconfig:"AUTH"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
	Worker    *Worker    `envconfig:"WORKER"`
}
