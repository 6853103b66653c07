package plants

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// File names inside a GroIMP plant folder.
const (
	ArtifactFile = "basic001.obj"
	DetailsFile  = "plant.txt"
)

const minCollisionRadius = 0.01

var (
	ErrPlantNotFound        = errors.New("plant folder not found")
	ErrPlantDetailsNotFound = errors.New("plant details file not found")
	ErrInvalidDayRange      = errors.New("day increment must be positive")
)

// A DayRange selects every Increment-th day from Min up to Max, inclusive.
type DayRange struct {
	Min       int
	Max       int
	Increment int
}

// Selected checks if day is part of the range.
// The Increment must be positive.
func (d DayRange) Selected(day int) bool {
	return day >= d.Min && day <= d.Max && (day-d.Min)%d.Increment == 0
}

// A Prompter asks the user yes/no questions.
type Prompter interface {
	Confirm(question string) (bool, error)
}

// LinePrompter asks questions on Out and reads one answer per line from In.
// Only "y" (in either case) counts as yes.
type LinePrompter struct {
	In  *bufio.Reader
	Out io.Writer
}

// NewLinePrompter creates a LinePrompter reading answers from in.
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{In: bufio.NewReader(in), Out: out}
}

// Confirm writes the question and reads one line as the answer.
func (l *LinePrompter) Confirm(question string) (bool, error) {
	if _, err := fmt.Fprint(l.Out, question); err != nil {
		return false, err
	}
	line, err := l.In.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return false, errors.Wrap(err, "read answer")
	}
	return strings.ToLower(strings.TrimRight(line, "\r\n")) == "y", nil
}

// PlantReport summarizes the models built for one plant.
type PlantReport struct {
	Plant     string
	Generated []string
	Skipped   []string
	Failed    []string
}

// An Assembler turns the GroIMP exports of plants into Gazebo model
// packages.
type Assembler struct {
	InputDir  string
	OutputDir string
	Days      DayRange

	// MeshFormat is the mesh file extension without dot, "dae" or "glb".
	MeshFormat  string
	MeshOptions MeshOptions
	NoiseScale  [3]float64
	Physical    PhysicalDefaults

	Thumbnails    bool
	ThumbnailSize int

	Templates *Templates
	Prompter  Prompter
	Rand      *rand.Rand
	Logger    *zap.Logger
}

// ModelName gets the name of the model package for a plant on a day.
func ModelName(plant string, day int) string {
	return fmt.Sprintf("%s_day_%03d", plant, day)
}

// BuildPlant creates the model packages for every selected day of a plant.
//
// Existing packages are only replaced if the Prompter confirms it. A mesh
// without plant vertices is logged and its package is not created.
func (a *Assembler) BuildPlant(plant string) (*PlantReport, error) {
	if a.Days.Increment <= 0 {
		return nil, errors.Wrapf(ErrInvalidDayRange, "build plant %s", plant)
	}
	log := a.logger().With(zap.String("plant", plant))
	plantDir := filepath.Join(a.InputDir, plant)
	if info, err := os.Stat(plantDir); err != nil || !info.IsDir() {
		return nil, errors.Wrapf(ErrPlantNotFound, "build plant %s", plant)
	}

	converter, err := NewConverter(filepath.Join(plantDir, ArtifactFile), a.MeshOptions)
	if err != nil {
		return nil, errors.Wrapf(err, "build plant %s", plant)
	}
	log.Debug("loaded artifact", zap.Int("vertices", converter.ArtifactVertices))

	detailsPath := filepath.Join(plantDir, DetailsFile)
	if info, err := os.Stat(detailsPath); err != nil || info.IsDir() {
		return nil, errors.Wrapf(ErrPlantDetailsNotFound, "build plant %s", plant)
	}
	details, err := LoadPlantDetails(detailsPath)
	if err != nil {
		return nil, errors.Wrapf(err, "build plant %s", plant)
	}
	log.Debug("loaded plant details", zap.Ints("days", details.Days()))

	meshes, err := plantMeshes(plantDir)
	if err != nil {
		return nil, errors.Wrapf(err, "build plant %s", plant)
	}

	report := &PlantReport{Plant: plant}
	for _, m := range meshes {
		if !a.Days.Selected(m.Day) {
			continue
		}
		name := ModelName(plant, m.Day)
		built, err := a.buildModel(log.With(zap.String("model", name)), name, m, converter, details)
		if err != nil {
			return report, errors.Wrapf(err, "build plant %s", plant)
		}
		switch built {
		case modelGenerated:
			report.Generated = append(report.Generated, name)
		case modelSkipped:
			report.Skipped = append(report.Skipped, name)
		case modelFailed:
			report.Failed = append(report.Failed, name)
		}
	}
	return report, nil
}

type modelResult int

const (
	modelGenerated modelResult = iota
	modelSkipped
	modelFailed
)

func (a *Assembler) buildModel(log *zap.Logger, name string, m dayMesh, converter *Converter,
	details PlantDetails) (modelResult, error) {
	modelDir := filepath.Join(a.OutputDir, name)
	if info, err := os.Stat(modelDir); err == nil && info.IsDir() {
		question := fmt.Sprintf("Model %s already exist. Do you want to overwrite it? [y/n] ", name)
		overwrite, err := a.Prompter.Confirm(question)
		if err != nil {
			return modelSkipped, err
		}
		if !overwrite {
			log.Info("skipping existing model")
			return modelSkipped, nil
		}
		if err := os.RemoveAll(modelDir); err != nil {
			return modelSkipped, errors.Wrap(err, "remove existing model")
		}
	}

	log.Info("generating model", zap.Int("day", m.Day))

	texturesDir := filepath.Join(modelDir, "materials", "textures")
	meshesDir := filepath.Join(modelDir, "meshes")
	for _, dir := range []string{texturesDir, meshesDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return modelFailed, err
		}
	}

	meshFile := name + "." + a.meshFormat()
	info, err := converter.MakeMesh(m.Path, filepath.Join(meshesDir, meshFile))
	if errors.Is(err, ErrNoVertices) {
		log.Error("cannot save mesh because there are no vertices left", zap.String("input", m.Path))
		if err := os.RemoveAll(modelDir); err != nil {
			return modelFailed, err
		}
		return modelFailed, nil
	} else if err != nil {
		return modelFailed, err
	}
	log.Debug(
		"converted mesh",
		zap.Int("vertices", info.Mesh.NumVertices()),
		zap.Int("faces", len(info.Mesh.Faces)),
		zap.Float64("height", info.Max.Y-info.Min.Y),
	)

	if err := PerturbTexture(info.TexturePath, a.NoiseScale, a.rand()); err != nil {
		return modelFailed, err
	}

	err = a.Templates.RenderFile(
		filepath.Join(modelDir, "model.config"),
		ModelConfigTemplate,
		map[string]interface{}{"model_name": name},
	)
	if err != nil {
		return modelFailed, err
	}

	height, mass, ok := details.Physical(m.Day, a.Physical)
	if !ok {
		log.Warn("missing plant details, using defaults", zap.Int("day", m.Day))
	}
	err = a.Templates.RenderFile(
		filepath.Join(modelDir, "model.sdf"),
		ModelSDFTemplate,
		map[string]interface{}{
			"model_name":    name,
			"mesh_file":     meshFile,
			"plant_height":  height,
			"center_height": height / 2,
			"mass":          mass,
			"radius":        math.Max(info.Mesh.HorizontalRadius(), minCollisionRadius),
		},
	)
	if err != nil {
		return modelFailed, err
	}

	if a.Thumbnails {
		thumbPath := filepath.Join(modelDir, "thumbnails", "1.png")
		err := RenderThumbnail(thumbPath, info.Mesh, a.MeshOptions.Color, a.thumbnailSize())
		if err != nil {
			log.Warn("failed to render thumbnail", zap.Error(err))
		}
	}

	return modelGenerated, nil
}

func (a *Assembler) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *Assembler) rand() *rand.Rand {
	if a.Rand == nil {
		a.Rand = rand.New(rand.NewSource(rand.Int63()))
	}
	return a.Rand
}

func (a *Assembler) meshFormat() string {
	if a.MeshFormat == "" {
		return "dae"
	}
	return a.MeshFormat
}

func (a *Assembler) thumbnailSize() int {
	if a.ThumbnailSize <= 0 {
		return DefaultThumbnailSize
	}
	return a.ThumbnailSize
}

type dayMesh struct {
	Day  int
	Path string
}

// plantMeshes finds the .obj files of a plant folder whose name ends in a
// day number, sorted by day.
func plantMeshes(dir string) ([]dayMesh, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var res []dayMesh
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".obj" || strings.HasPrefix(name, ".") {
			continue
		}
		day, ok := meshDay(name)
		if !ok {
			continue
		}
		res = append(res, dayMesh{Day: day, Path: filepath.Join(dir, name)})
	}
	slices.SortFunc(res, func(a, b dayMesh) bool {
		return a.Day < b.Day || (a.Day == b.Day && a.Path < b.Path)
	})
	return res, nil
}

// meshDay parses the last three characters of a file's stem as a day.
func meshDay(filename string) (int, bool) {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if len(stem) > 3 {
		stem = stem[len(stem)-3:]
	}
	day, err := strconv.Atoi(stem)
	return day, err == nil
}
