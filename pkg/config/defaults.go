// Package config defines the roadmap settings, their defaults and validation.
package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config is the fully resolved application configuration.
type Config struct {
	Storage   StorageConfig   `mapstructure:"storage"`
	Log       LogConfig       `mapstructure:"log"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Canvas    CanvasConfig    `mapstructure:"canvas"`
	Export    ExportConfig    `mapstructure:"export"`
}

type StorageConfig struct {
	// URL is a directory path, file:// URL or s3://bucket/prefix.
	URL string `mapstructure:"url" validate:"required"`
	// Key is the object name of the persisted map.
	Key    string `mapstructure:"key" validate:"required"`
	Region string `mapstructure:"region" validate:"required"`
	// Endpoint overrides the S3 endpoint (localstack, minio).
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

type TelemetryConfig struct {
	// Endpoint is an OTLP/HTTP URL. Empty discards spans.
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"`
	Disabled bool   `mapstructure:"disabled"`
}

// CanvasConfig maps graph coordinates onto terminal cells.
type CanvasConfig struct {
	Width  float64 `mapstructure:"width" validate:"gt=0"`
	Height float64 `mapstructure:"height" validate:"gt=0"`
	ScaleX int     `mapstructure:"scale_x" validate:"gte=1"`
	ScaleY int     `mapstructure:"scale_y" validate:"gte=1"`
}

type ExportConfig struct {
	Dir    string `mapstructure:"dir" validate:"required"`
	Format string `mapstructure:"format" validate:"oneof=json yaml yml csv hcl"`
}

// Defaults.
const (
	DefaultRegion     = "us-east-1"
	DefaultStorageKey = "city-road-map-v1.json"
	DefaultConfigName = ".roadmap.yaml"
)

// DefaultStorageURL points at ~/.roadmap, or ./.roadmap when there is no home.
func DefaultStorageURL() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "file://.roadmap"
	}
	return "file://" + filepath.Join(home, ".roadmap")
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			URL:    DefaultStorageURL(),
			Key:    DefaultStorageKey,
			Region: DefaultRegion,
		},
		Log: LogConfig{
			Level: "info",
		},
		Canvas: CanvasConfig{
			Width:  1000,
			Height: 700,
			ScaleX: 10,
			ScaleY: 20,
		},
		Export: ExportConfig{
			Dir:    ".",
			Format: "json",
		},
	}
}

// SetDefaults registers every key of Default on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("storage.url", d.Storage.URL)
	v.SetDefault("storage.key", d.Storage.Key)
	v.SetDefault("storage.region", d.Storage.Region)
	v.SetDefault("storage.endpoint", d.Storage.Endpoint)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("telemetry.endpoint", d.Telemetry.Endpoint)
	v.SetDefault("telemetry.disabled", d.Telemetry.Disabled)
	v.SetDefault("canvas.width", d.Canvas.Width)
	v.SetDefault("canvas.height", d.Canvas.Height)
	v.SetDefault("canvas.scale_x", d.Canvas.ScaleX)
	v.SetDefault("canvas.scale_y", d.Canvas.ScaleY)
	v.SetDefault("export.dir", d.Export.Dir)
	v.SetDefault("export.format", d.Export.Format)
}
