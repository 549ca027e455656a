package willowdom

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hajimehoshi/ebiten/v2"
)

// Binding is one attribute binding read from a config file.
type Binding struct {
	Kind   Kind
	Field  string
	Parser Parser
}

// Config holds inspector settings that can be loaded from TOML.
type Config struct {
	UpdateInterval   time.Duration
	OriginX, OriginY float64
	Passthrough      ebiten.Key
	Bindings         []Binding
	Leaf             []Kind
	Hidden           []Kind
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		UpdateInterval: DefaultUpdateInterval,
		Passthrough:    ebiten.KeyControl,
	}
}

type fileBinding struct {
	Kind   string `toml:"kind"`
	Field  string `toml:"field"`
	Parser string `toml:"parser"`
}

type fileConfig struct {
	UpdateInterval string        `toml:"update_interval"`
	OriginX        float64       `toml:"origin_x"`
	OriginY        float64       `toml:"origin_y"`
	Passthrough    string        `toml:"passthrough"`
	Bind           []fileBinding `toml:"bind"`
	Leaf           []string      `toml:"leaf"`
	Hidden         []string      `toml:"hidden"`
}

// LoadConfig reads a TOML config file. Keys missing from the file keep their
// DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load inspector config: %w", err)
	}
	return buildConfig(raw, meta)
}

// ParseConfig is LoadConfig for in-memory TOML.
func ParseConfig(data string) (Config, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("parse inspector config: %w", err)
	}
	return buildConfig(raw, meta)
}

func buildConfig(raw fileConfig, meta toml.MetaData) (Config, error) {
	cfg := DefaultConfig()

	if meta.IsDefined("update_interval") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.UpdateInterval))
		if err != nil {
			return Config{}, fmt.Errorf("parse update_interval: %w", err)
		}
		if d <= 0 {
			return Config{}, fmt.Errorf("parse update_interval: must be positive, got %s", d)
		}
		cfg.UpdateInterval = d
	}

	if meta.IsDefined("origin_x") {
		cfg.OriginX = raw.OriginX
	}

	if meta.IsDefined("origin_y") {
		cfg.OriginY = raw.OriginY
	}

	if meta.IsDefined("passthrough") {
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(strings.TrimSpace(raw.Passthrough))); err != nil {
			return Config{}, fmt.Errorf("parse passthrough: %w", err)
		}
		cfg.Passthrough = k
	}

	for i, b := range raw.Bind {
		kind := strings.TrimSpace(b.Kind)
		field := strings.TrimSpace(b.Field)
		if kind == "" || field == "" {
			return Config{}, fmt.Errorf("parse bind[%d]: kind and field are required", i)
		}
		p, err := ParserByName(b.Parser)
		if err != nil {
			return Config{}, fmt.Errorf("parse bind[%d]: %w", i, err)
		}
		cfg.Bindings = append(cfg.Bindings, Binding{Kind: Kind(kind), Field: field, Parser: p})
	}

	if meta.IsDefined("leaf") {
		cfg.Leaf = normalizeKinds(raw.Leaf)
	}

	if meta.IsDefined("hidden") {
		cfg.Hidden = normalizeKinds(raw.Hidden)
	}

	return cfg, nil
}

func normalizeKinds(in []string) []Kind {
	out := make([]Kind, 0, len(in))
	for _, s := range in {
		v := strings.TrimSpace(s)
		if v == "" {
			continue
		}
		out = append(out, Kind(v))
	}
	return out
}

// Apply adds the configured bindings and flags to r.
func (c Config) Apply(r *Registry) {
	for _, b := range c.Bindings {
		r.Register(b.Kind, Attribute{Name: b.Field, Parser: b.Parser})
	}
	for _, k := range c.Leaf {
		r.MarkLeaf(k)
	}
	for _, k := range c.Hidden {
		r.MarkHidden(k)
	}
}

// Options returns the inspector options the config implies.
func (c Config) Options() []Option {
	return []Option{WithUpdateInterval(c.UpdateInterval)}
}
