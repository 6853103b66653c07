package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/plant-models/internal/config"
	"github.com/unixpickle/plant-models/internal/logger"
	"github.com/unixpickle/plant-models/plants"
	"go.uber.org/zap"
)

func main() {
	var inputDir string
	var outputDir string
	var minDays int
	var maxDays int
	var increment int
	var meshFormat string
	var thumbnails bool
	var seed int64
	pflag.StringVar(&inputDir, "groimp_output_folder", "generated_groimp",
		"GroIMP output path with .obj files")
	pflag.StringVar(&outputDir, "model_output_folder", "generated", "output path for Gazebo models")
	pflag.IntVar(&minDays, "min_days", 25, "minimum day number")
	pflag.IntVar(&maxDays, "max_days", 100, "maximum day number")
	pflag.IntVar(&increment, "increment", 5, "increment in day numbers")
	pflag.StringVar(&meshFormat, "mesh_format", "", "mesh format, dae or glb (default from config)")
	pflag.BoolVar(&thumbnails, "thumbnails", false, "render a thumbnail for every model")
	pflag.Int64Var(&seed, "seed", 0, "seed for texture noise (0 uses the current time)")
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: groimp_to_gazebo_models [flags] <plant> [plant ...]")
		fmt.Fprintln(os.Stderr)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	plantNames := pflag.Args()
	if len(plantNames) == 0 {
		pflag.Usage()
		os.Exit(1)
	}
	if increment <= 0 {
		essentials.Die("--increment must be positive")
	}

	cfg, err := config.Load()
	if err != nil {
		essentials.Die("config error: " + err.Error())
	}
	if meshFormat != "" {
		cfg.Mesh.Format = meshFormat
	}
	if thumbnails {
		cfg.Package.Thumbnails = true
	}
	if err := cfg.Validate(); err != nil {
		essentials.Die("config error: " + err.Error())
	}
	essentials.Must(logger.Init(cfg.Logging.Level, cfg.Logging.LogFile))
	defer logger.Sync()
	logger.Debug("loaded config", zap.Any("config", cfg))

	if info, err := os.Stat(inputDir); err != nil || !info.IsDir() {
		logger.Fatal("cannot find the GroIMP output folder", zap.String("path", inputDir))
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	assembler := &plants.Assembler{
		InputDir:  inputDir,
		OutputDir: outputDir,
		Days: plants.DayRange{
			Min:       minDays,
			Max:       maxDays,
			Increment: increment,
		},
		MeshFormat:    cfg.Mesh.Format,
		MeshOptions:   cfg.MeshOptions(),
		NoiseScale:    cfg.Texture.NoiseScale,
		Physical:      cfg.PhysicalDefaults(),
		Thumbnails:    cfg.Package.Thumbnails,
		ThumbnailSize: cfg.Package.ThumbnailSize,
		Templates:     &plants.Templates{Dir: cfg.Templates.Dir},
		Prompter:      plants.NewLinePrompter(os.Stdin, os.Stdout),
		Rand:          rand.New(rand.NewSource(seed)),
		Logger:        logger.Log,
	}

	for _, plant := range plantNames {
		report, err := assembler.BuildPlant(plant)
		switch {
		case errors.Is(err, plants.ErrPlantNotFound):
			logger.Fatal("cannot find plant folder; did you specify the 'path' variable correctly in GroIMP?",
				zap.String("plant", plant))
		case errors.Is(err, plants.ErrPlantDetailsNotFound):
			logger.Fatal("cannot find plant.txt; did you specify the 'pathData' variable correctly in GroIMP?",
				zap.String("plant", plant))
		case err != nil:
			logger.Fatal("failed to build plant", zap.String("plant", plant), zap.Error(err))
		}
		if len(report.Skipped) > 0 {
			logger.Warn("kept existing models", zap.Strings("models", report.Skipped))
		}
		if len(report.Failed) > 0 {
			logger.Error("failed to generate models", zap.Strings("models", report.Failed))
		}
		logger.Info(
			"finished plant",
			zap.String("plant", plant),
			zap.Int("generated", len(report.Generated)),
			zap.Int("skipped", len(report.Skipped)),
			zap.Int("failed", len(report.Failed)),
		)
	}
}
