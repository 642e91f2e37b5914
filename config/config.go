package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/qwertyczee/inbox-threads/mailbox"
)

type ServerConfig struct {
	Port int `toml:"port"`
}

type MailboxConfig struct {
	OwnerName  string `toml:"owner_name"`
	OwnerEmail string `toml:"owner_email"`
	Seed       bool   `toml:"seed"`
}

// LatencyConfig controls the simulated network delay per operation, in
// milliseconds.
type LatencyConfig struct {
	Enabled  bool `toml:"enabled"`
	ListMs   int  `toml:"list_ms"`
	GetMs    int  `toml:"get_ms"`
	CountsMs int  `toml:"counts_ms"`
	ReadMs   int  `toml:"read_ms"`
	StarMs   int  `toml:"star_ms"`
	MoveMs   int  `toml:"move_ms"`
	DeleteMs int  `toml:"delete_ms"`
	SendMs   int  `toml:"send_ms"`
	SearchMs int  `toml:"search_ms"`
}

type RateLimitConfig struct {
	Requests      int `toml:"requests"`
	WindowSeconds int `toml:"window_seconds"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Mailbox   MailboxConfig   `toml:"mailbox"`
	Latency   LatencyConfig   `toml:"latency"`
	RateLimit RateLimitConfig `toml:"ratelimit"`
}

// LoadConfig reads the TOML configuration. A missing file is not an
// error; defaults apply.
func LoadConfig(filepath string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(filepath); os.IsNotExist(err) {
		return config, nil
	}
	if _, err := toml.DecodeFile(filepath, config); err != nil {
		return nil, err
	}
	return config, nil
}

// Default returns the built-in configuration.
func Default() *Config {
	profile := mailbox.DefaultLatencyProfile()
	return &Config{
		Server: ServerConfig{Port: 3000},
		Mailbox: MailboxConfig{
			OwnerName:  "Alex Johnson",
			OwnerEmail: "alex.johnson@email.com",
			Seed:       true,
		},
		Latency: LatencyConfig{
			Enabled:  true,
			ListMs:   int(profile.List / time.Millisecond),
			GetMs:    int(profile.Get / time.Millisecond),
			CountsMs: int(profile.Counts / time.Millisecond),
			ReadMs:   int(profile.MarkRead / time.Millisecond),
			StarMs:   int(profile.Star / time.Millisecond),
			MoveMs:   int(profile.Move / time.Millisecond),
			DeleteMs: int(profile.Delete / time.Millisecond),
			SendMs:   int(profile.Send / time.Millisecond),
			SearchMs: int(profile.Search / time.Millisecond),
		},
		RateLimit: RateLimitConfig{Requests: 100, WindowSeconds: 60},
	}
}

// LatencyProfile converts the configured millisecond values into the
// service's latency profile.
func (c *Config) LatencyProfile() mailbox.LatencyProfile {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	return mailbox.LatencyProfile{
		Enabled:  c.Latency.Enabled,
		List:     ms(c.Latency.ListMs),
		Get:      ms(c.Latency.GetMs),
		Counts:   ms(c.Latency.CountsMs),
		MarkRead: ms(c.Latency.ReadMs),
		Star:     ms(c.Latency.StarMs),
		Move:     ms(c.Latency.MoveMs),
		Delete:   ms(c.Latency.DeleteMs),
		Send:     ms(c.Latency.SendMs),
		Search:   ms(c.Latency.SearchMs),
	}
}

// RateLimitWindow returns the rate limit window as a duration.
func (c *Config) RateLimitWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}
