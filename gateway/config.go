package gateway

import (
	"os"
	"time"

	"github.com/relaywire/relay-go/model"
	"github.com/rs/zerolog"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultGatewayURL is used when a caller has never connected before
	// and has not overridden it; real deployments discover this via the
	// REST "get gateway" route, which is out of scope here.
	DefaultGatewayURL = "wss://gateway.example.invalid"

	defaultReconnectBaseDelay = 1 * time.Second
	defaultReconnectMaxDelay  = 2 * time.Minute
	defaultLargeThreshold     = 250
)

// Config configures a Shard's connection, generalized from one
// daemon-wide config (compression, intents, large threshold, max
// heartbeat failures) to a per-shard value a caller constructs directly.
type Config struct {
	Token   string       `yaml:"token"`
	Intents model.Intents `yaml:"intents"`

	// ShardID and ShardCount identify this shard's partition of the total
	// guild space; sent verbatim in Identify.
	ShardID    int `yaml:"shard_id"`
	ShardCount int `yaml:"shard_count"`

	// GatewayURL is used for the initial connection and for every
	// subsequent reconnect that has no session to resume, or whose
	// caller-set value takes precedence over the session's
	// ResumeGatewayURL (see Config.OverrideResumeURL).
	GatewayURL        string `yaml:"gateway_url"`
	OverrideResumeURL bool   `yaml:"override_resume_url"`

	Compression    bool                  `yaml:"compression"`
	LargeThreshold int                   `yaml:"large_threshold"`
	Presence       *model.UpdatePresence `yaml:"presence"`

	// Session, if set, is used instead of a fresh Identify on the first
	// Connect — e.g. a caller persisting sessions across process
	// restarts. Not loaded from YAML; sessions are runtime state, not
	// static configuration.
	Session *model.Session `yaml:"-"`

	// RatelimitCommands enables the client-side outbound command token
	// bucket. Disabling it is only appropriate when a caller fronts the
	// shard with their own limiter.
	RatelimitCommands bool `yaml:"ratelimit_commands"`

	MaxHeartbeatFailures int `yaml:"max_heartbeat_failures"`

	ReconnectBaseDelay time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay  time.Duration `yaml:"reconnect_max_delay"`

	Logger zerolog.Logger `yaml:"-"`
}

// LoadConfigFile reads a YAML-encoded Config from path, applying
// WithDefaults to the result. A caller running several shards typically
// loads one file and overrides ShardID/ShardCount per Shard.
func LoadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, xerrors.Errorf("reading gateway config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, xerrors.Errorf("parsing gateway config: %w", err)
	}

	return cfg.WithDefaults(), nil
}

// WithDefaults returns a copy of cfg with zero-valued optional fields
// filled in.
func (cfg Config) WithDefaults() Config {
	if cfg.GatewayURL == "" {
		cfg.GatewayURL = DefaultGatewayURL
	}

	if cfg.LargeThreshold == 0 {
		cfg.LargeThreshold = defaultLargeThreshold
	}

	if cfg.MaxHeartbeatFailures == 0 {
		cfg.MaxHeartbeatFailures = 1
	}

	if cfg.ReconnectBaseDelay == 0 {
		cfg.ReconnectBaseDelay = defaultReconnectBaseDelay
	}

	if cfg.ReconnectMaxDelay == 0 {
		cfg.ReconnectMaxDelay = defaultReconnectMaxDelay
	}

	return cfg
}
