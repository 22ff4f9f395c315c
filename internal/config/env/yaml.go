package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"velvet_bite/internal/config"
)

const originURLEnvName = "ORIGIN_URL"

type fileConfig struct {
	Promo   promoYAML   `yaml:"promo"`
	Offline offlineYAML `yaml:"offline"`
}

type promoYAML struct {
	Discounts      []int    `yaml:"discounts"`
	SpinDuration   string   `yaml:"spin_duration"`
	MinRounds      int      `yaml:"min_rounds"`
	MaxRounds      int      `yaml:"max_rounds"`
	JitterFraction float64  `yaml:"jitter_fraction"`
	Colors         []string `yaml:"colors"`
}

type offlineYAML struct {
	CacheVersion      string   `yaml:"cache_version"`
	Manifest          []string `yaml:"manifest"`
	MaxCacheableBytes int64    `yaml:"max_cacheable_bytes"`
	OriginURL         string   `yaml:"origin_url"`
}

func readFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

type promoConfig struct {
	discounts      []int
	spinDuration   time.Duration
	minRounds      int
	maxRounds      int
	jitterFraction float64
	colors         []string
}

// NewPromoConfigFromYAML - таблица колеса из секции promo
func NewPromoConfigFromYAML(path string) (config.PromoConfig, error) {
	fc, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}
	return NewPromoConfig(fc.Promo.Discounts, fc.Promo.SpinDuration, fc.Promo.MinRounds,
		fc.Promo.MaxRounds, fc.Promo.JitterFraction, fc.Promo.Colors)
}

// NewPromoConfig - проверяет значения и подставляет дефолты для пустых полей
func NewPromoConfig(discounts []int, spinDuration string, minRounds, maxRounds int, jitter float64, colors []string) (config.PromoConfig, error) {
	if len(discounts) == 0 {
		discounts = []int{5, 10, 15, 20, 25, 50}
	}
	for _, d := range discounts {
		if d <= 0 || d > 100 {
			return nil, fmt.Errorf("invalid discount %d", d)
		}
	}

	duration := 5 * time.Second
	if spinDuration != "" {
		parsed, err := time.ParseDuration(spinDuration)
		if err != nil {
			return nil, fmt.Errorf("invalid spin duration: %w", err)
		}
		duration = parsed
	}

	if minRounds == 0 && maxRounds == 0 {
		minRounds, maxRounds = 5, 8
	}
	if minRounds <= 0 || maxRounds < minRounds {
		return nil, errors.New("invalid rounds range")
	}

	if jitter == 0 {
		jitter = 0.3
	}
	// джиттер >= 0.5 сегмента может увести стрелку на границу
	if jitter < 0 || jitter >= 0.5 {
		return nil, fmt.Errorf("jitter fraction must be in [0, 0.5), got %v", jitter)
	}

	if len(colors) == 0 {
		colors = []string{"#f9c2c2", "#ffd9a8", "#d8f7d6", "#d0e9ff", "#e6d1ff", "#ffd7e6"}
	}

	return &promoConfig{
		discounts:      discounts,
		spinDuration:   duration,
		minRounds:      minRounds,
		maxRounds:      maxRounds,
		jitterFraction: jitter,
		colors:         colors,
	}, nil
}

func (c *promoConfig) Discounts() []int            { return c.discounts }
func (c *promoConfig) SpinDuration() time.Duration { return c.spinDuration }
func (c *promoConfig) MinRounds() int              { return c.minRounds }
func (c *promoConfig) MaxRounds() int              { return c.maxRounds }
func (c *promoConfig) JitterFraction() float64     { return c.jitterFraction }
func (c *promoConfig) Colors() []string            { return c.colors }

type offlineConfig struct {
	cacheVersion      string
	manifest          []string
	maxCacheableBytes int64
	originURL         string
}

// NewOfflineConfigFromYAML - версия кэша и манифест статики из секции offline.
// ORIGIN_URL из окружения перекрывает origin_url из файла
func NewOfflineConfigFromYAML(path string) (config.OfflineConfig, error) {
	fc, err := readFileConfig(path)
	if err != nil {
		return nil, err
	}
	o := fc.Offline
	if env := os.Getenv(originURLEnvName); len(env) != 0 {
		o.OriginURL = env
	}
	return NewOfflineConfig(o.CacheVersion, o.Manifest, o.MaxCacheableBytes, o.OriginURL)
}

func NewOfflineConfig(version string, manifest []string, maxBytes int64, origin string) (config.OfflineConfig, error) {
	if version == "" {
		version = "velvet-bite-v1"
	}
	if len(manifest) == 0 {
		manifest = []string{
			"/",
			"/static/style.css",
			"/static/script.js",
			"/static/performance.js",
			"/static/images/mini.jpg",
		}
	}
	if maxBytes <= 0 {
		maxBytes = 5 << 20
	}
	if origin == "" {
		return nil, errors.New("origin url not found")
	}
	return &offlineConfig{
		cacheVersion:      version,
		manifest:          manifest,
		maxCacheableBytes: maxBytes,
		originURL:         origin,
	}, nil
}

func (c *offlineConfig) CacheVersion() string     { return c.cacheVersion }
func (c *offlineConfig) Manifest() []string       { return c.manifest }
func (c *offlineConfig) MaxCacheableBytes() int64 { return c.maxCacheableBytes }
func (c *offlineConfig) OriginURL() string        { return c.originURL }
