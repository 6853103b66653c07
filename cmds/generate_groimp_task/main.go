package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/plant-models/internal/config"
	"github.com/unixpickle/plant-models/internal/logger"
	"github.com/unixpickle/plant-models/plants"
	"go.uber.org/zap"
)

func main() {
	var groimpPath string
	var outputPath string
	var cropType string
	var saveConfig string
	pflag.StringVar(&groimpPath, "groimp_path", "groimp", "GroIMP folder path")
	pflag.StringVar(&outputPath, "groimp_output_path", "generated_groimp", "GroIMP output path")
	pflag.StringVar(&cropType, "crop_type", "maize",
		"crop type to generate a task for ("+strings.Join(plants.PlantTypes, ", ")+")")
	pflag.StringVar(&saveConfig, "save_config", "",
		"write the effective config to this path, e.g. to start a "+config.FileName)
	pflag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: generate_groimp_task [flags]")
		fmt.Fprintln(os.Stderr)
		pflag.PrintDefaults()
	}
	pflag.Parse()

	if len(pflag.Args()) != 0 {
		pflag.Usage()
		os.Exit(1)
	}
	if !plants.IsPlantType(cropType) {
		essentials.Die("invalid --crop_type " + cropType + "; choose from: " +
			strings.Join(plants.PlantTypes, ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		essentials.Die("config error: " + err.Error())
	}
	essentials.Must(logger.Init(cfg.Logging.Level, cfg.Logging.LogFile))
	defer logger.Sync()
	logger.Debug("loaded config", zap.Any("config", cfg))

	if saveConfig != "" {
		if err := cfg.SaveTo(saveConfig); err != nil {
			logger.Fatal("failed to save config", zap.Error(err))
		}
		logger.Info("saved config", zap.String("path", saveConfig))
	}

	runFolder, err := plants.NextRunFolder(outputPath, cropType)
	if err != nil {
		logger.Fatal("failed to create run folder", zap.Error(err))
	}
	logger.Info("created run folder", zap.String("path", runFolder))

	templates := &plants.Templates{Dir: cfg.Templates.Dir}
	parameterFile := filepath.Join(groimpPath, "parameters.rgg")
	err = templates.RenderFile(parameterFile, plants.ParametersTemplate, map[string]interface{}{
		"output_path": runFolder,
		"crop_type":   cropType,
	})
	if err != nil {
		logger.Fatal("failed to write parameter file", zap.Error(err))
	}
	logger.Info("wrote parameter file", zap.String("path", parameterFile),
		zap.String("crop_type", cropType))
}
