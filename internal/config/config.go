// Package config handles loading the settings shared by the commands.
package config

import (
	"fmt"

	"github.com/unixpickle/plant-models/plants"
)

// Config holds all settings.
type Config struct {
	Mesh      MeshConfig      `yaml:"mesh"`
	Texture   TextureConfig   `yaml:"texture"`
	Package   PackageConfig   `yaml:"package"`
	Templates TemplatesConfig `yaml:"templates"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// MeshConfig holds mesh conversion settings.
type MeshConfig struct {
	PlantColor      [3]uint8 `yaml:"plant_color"`
	TextureSize     int      `yaml:"texture_size"`
	GroundTolerance float64  `yaml:"ground_tolerance"`
	GroundDeviation float64  `yaml:"ground_deviation"`
	Format          string   `yaml:"format"` // "dae" or "glb"
}

// TextureConfig holds texture perturbation settings.
type TextureConfig struct {
	NoiseScale [3]float64 `yaml:"noise_scale"` // R, G, B
}

// PackageConfig holds model package settings.
type PackageConfig struct {
	DefaultHeight     float64 `yaml:"default_height"`
	DefaultMass       float64 `yaml:"default_mass"`
	MinHeight         float64 `yaml:"min_height"`
	DryMatterFraction float64 `yaml:"dry_matter_fraction"`
	Thumbnails        bool    `yaml:"thumbnails"`
	ThumbnailSize     int     `yaml:"thumbnail_size"`
}

// TemplatesConfig holds template lookup settings.
type TemplatesConfig struct {
	Dir string `yaml:"dir"` // overrides for the built-in templates
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config matching the behavior of the GroIMP scripts.
func Default() *Config {
	mesh := plants.DefaultMeshOptions()
	physical := plants.DefaultPhysicalDefaults()
	return &Config{
		Mesh: MeshConfig{
			PlantColor:      mesh.Color,
			TextureSize:     mesh.TextureSize,
			GroundTolerance: mesh.GroundTolerance,
			GroundDeviation: mesh.GroundDeviation,
			Format:          "dae",
		},
		Texture: TextureConfig{
			NoiseScale: plants.DefaultNoiseScale,
		},
		Package: PackageConfig{
			DefaultHeight:     physical.Height,
			DefaultMass:       physical.Mass,
			MinHeight:         physical.MinHeight,
			DryMatterFraction: physical.DryMatterFraction,
			ThumbnailSize:     plants.DefaultThumbnailSize,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks that the settings are usable.
func (c *Config) Validate() error {
	if c.Mesh.Format != "dae" && c.Mesh.Format != "glb" {
		return fmt.Errorf("mesh.format must be dae or glb, got %q", c.Mesh.Format)
	}
	if c.Mesh.TextureSize <= 0 {
		return fmt.Errorf("mesh.texture_size must be positive, got %d", c.Mesh.TextureSize)
	}
	if c.Mesh.GroundTolerance < 0 || c.Mesh.GroundDeviation <= 0 {
		return fmt.Errorf("mesh.ground_tolerance must be non-negative and mesh.ground_deviation positive")
	}
	if c.Package.DryMatterFraction <= 0 || c.Package.DryMatterFraction > 1 {
		return fmt.Errorf("package.dry_matter_fraction must be in (0, 1], got %f",
			c.Package.DryMatterFraction)
	}
	if c.Package.ThumbnailSize <= 0 {
		return fmt.Errorf("package.thumbnail_size must be positive, got %d", c.Package.ThumbnailSize)
	}
	return nil
}

// MeshOptions converts the mesh settings for plants.Converter.
func (c *Config) MeshOptions() plants.MeshOptions {
	return plants.MeshOptions{
		Color:           c.Mesh.PlantColor,
		TextureSize:     c.Mesh.TextureSize,
		GroundTolerance: c.Mesh.GroundTolerance,
		GroundDeviation: c.Mesh.GroundDeviation,
	}
}

// PhysicalDefaults converts the package settings for plants.PlantDetails.
func (c *Config) PhysicalDefaults() plants.PhysicalDefaults {
	return plants.PhysicalDefaults{
		Height:            c.Package.DefaultHeight,
		Mass:              c.Package.DefaultMass,
		MinHeight:         c.Package.MinHeight,
		DryMatterFraction: c.Package.DryMatterFraction,
	}
}
