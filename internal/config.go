package internal

import "time"

type Config struct {
	Host                 string        `env:"HOST,default=0.0.0.0"`
	Port                 int           `env:"PORT,default=8080"`
	LogLevel             string        `env:"LOG_LEVEL,default=INFO"`
	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256"`
	MaxMessageSize       int64         `env:"MAX_MESSAGE_SIZE,default=4096"`
	WriteTimeout         time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	PongTimeout          time.Duration `env:"PONG_TIMEOUT,default=60s"`
	PingInterval         time.Duration `env:"PING_INTERVAL,default=54s"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=30s"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=200ms"`
	ShutdownTimeout      time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s"`
	AllowAllOrigins      bool          `env:"ALLOW_ALL_ORIGINS,default=true"`

	// Account pre-seeded at startup so a fresh process is usable without a
	// registration round first.
	SeedUsername string `env:"SEED_USERNAME,default=Admin"`
	SeedPassword string `env:"SEED_PASSWORD,default=Ensure12@"`
}
