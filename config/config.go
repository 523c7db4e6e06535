package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Storage configuration for the local blob store
	Storage *StorageConfig `json:"storage" yaml:"storage"`

	// Relay configuration for the shared presence channel
	Relay *RelayConfig `json:"relay" yaml:"relay"`

	// Fence configuration for the geofence engine
	Fence *FenceConfig `json:"fence" yaml:"fence"`

	// Presence configuration for the peer registry
	Presence *PresenceConfig `json:"presence" yaml:"presence"`

	// Trigger configuration for outbound webhook calls
	Trigger *TriggerConfig `json:"trigger" yaml:"trigger"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// StorageConfig defines where persisted state lives on disk.
type StorageConfig struct {
	// Directory holding the JSON state blobs (zones, activity, identity).
	Path string `json:"path" yaml:"path"`
}

// RelayConfig defines the relay websocket connection behavior.
type RelayConfig struct {
	// Relay websocket endpoint, e.g. wss://socketsbay.com/wss/v2/1/demo/
	URL string `json:"url" yaml:"url"`

	// How often the current position is broadcast into the room.
	BroadcastInterval time.Duration `json:"broadcastInterval" yaml:"broadcastInterval"`

	// Fixed delay before a reconnect attempt after any disconnect.
	ReconnectBackoff time.Duration `json:"reconnectBackoff" yaml:"reconnectBackoff"`

	// Room codes shorter than this leave the relay disconnected.
	MinRoomCodeLength int `json:"minRoomCodeLength" yaml:"minRoomCodeLength"`

	// Websocket dial timeout.
	DialTimeout time.Duration `json:"dialTimeout" yaml:"dialTimeout"`
}

// FenceConfig defines geofence engine limits.
type FenceConfig struct {
	// Maximum retained activity entries; older ones are dropped silently.
	MaxLogEntries int `json:"maxLogEntries" yaml:"maxLogEntries"`

	// How long a transition notification stays visible.
	NotificationTTL time.Duration `json:"notificationTTL" yaml:"notificationTTL"`
}

// PresenceConfig defines peer registry housekeeping.
type PresenceConfig struct {
	// Peers unseen for longer than this are evicted from the registry.
	PeerTTL time.Duration `json:"peerTTL" yaml:"peerTTL"`

	// How often expired peers are swept.
	SweepInterval time.Duration `json:"sweepInterval" yaml:"sweepInterval"`
}

// TriggerConfig defines outbound webhook behavior.
type TriggerConfig struct {
	// Upper bound on a single fire-and-forget trigger call.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: RELAY_BROADCASTINTERVAL -> relay.broadcastInterval
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills in every tunable the YAML left unset so the rest
// of the code never has to nil-check config sections.
func (c *Config) applyDefaults() {
	if c.Storage == nil {
		c.Storage = &StorageConfig{}
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "./data"
	}

	if c.Relay == nil {
		c.Relay = &RelayConfig{}
	}
	if c.Relay.BroadcastInterval <= 0 {
		c.Relay.BroadcastInterval = 3 * time.Second
	}
	if c.Relay.ReconnectBackoff <= 0 {
		c.Relay.ReconnectBackoff = 10 * time.Second
	}
	if c.Relay.MinRoomCodeLength <= 0 {
		c.Relay.MinRoomCodeLength = 3
	}
	if c.Relay.DialTimeout <= 0 {
		c.Relay.DialTimeout = 15 * time.Second
	}

	if c.Fence == nil {
		c.Fence = &FenceConfig{}
	}
	if c.Fence.MaxLogEntries <= 0 {
		c.Fence.MaxLogEntries = 50
	}
	if c.Fence.NotificationTTL <= 0 {
		c.Fence.NotificationTTL = 4 * time.Second
	}

	if c.Presence == nil {
		c.Presence = &PresenceConfig{}
	}
	if c.Presence.PeerTTL <= 0 {
		c.Presence.PeerTTL = 30 * time.Second
	}
	if c.Presence.SweepInterval <= 0 {
		c.Presence.SweepInterval = 5 * time.Second
	}

	if c.Trigger == nil {
		c.Trigger = &TriggerConfig{}
	}
	if c.Trigger.Timeout <= 0 {
		c.Trigger.Timeout = 10 * time.Second
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
