package plants

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Column names of the GroIMP plant.txt output.
const (
	DayColumn     = "time(d)"
	HeightColumn  = "Plant height"
	BiomassColumn = "aboveBiom(mg)"
)

// PlantDetails maps a day number to the raw fields of that day's row of a
// plant.txt file.
type PlantDetails map[int]map[string]string

// ReadPlantDetails parses a tab-separated table whose header contains a
// time(d) column.
//
// Rows with fewer fields than the header omit the trailing columns.
func ReadPlantDetails(r io.Reader) (PlantDetails, error) {
	reader := csv.NewReader(r)
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.New("read plant details: missing header")
	} else if err != nil {
		return nil, errors.Wrap(err, "read plant details")
	}
	dayIndex := slices.Index(header, DayColumn)
	if dayIndex < 0 {
		return nil, errors.Errorf("read plant details: missing %q column", DayColumn)
	}

	res := PlantDetails{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Wrap(err, "read plant details")
		}
		if dayIndex >= len(record) {
			line, _ := reader.FieldPos(0)
			return nil, errors.Errorf("read plant details: line %d: missing %q field", line, DayColumn)
		}
		day, err := strconv.Atoi(strings.TrimSpace(record[dayIndex]))
		if err != nil {
			line, _ := reader.FieldPos(0)
			return nil, errors.Wrapf(err, "read plant details: line %d", line)
		}
		row := make(map[string]string, len(header))
		for i, name := range header {
			if i < len(record) {
				row[name] = record[i]
			}
		}
		res[day] = row
	}
	return res, nil
}

// LoadPlantDetails reads a plant.txt file from disk.
func LoadPlantDetails(path string) (PlantDetails, error) {
	return Load(path, ReadPlantDetails)
}

// Days gets the sorted day numbers of p.
func (p PlantDetails) Days() []int {
	days := maps.Keys(p)
	slices.Sort(days)
	return days
}

// PhysicalDefaults configures how PlantDetails.Physical derives a plant's
// height and mass.
type PhysicalDefaults struct {
	// Height and Mass are used when a day's data is unavailable.
	Height float64
	Mass   float64

	// MinHeight is the lower bound on any reported height.
	MinHeight float64

	// DryMatterFraction is the assumed dry fraction of the fresh biomass.
	DryMatterFraction float64
}

// DefaultPhysicalDefaults gets the defaults used for Gazebo models.
func DefaultPhysicalDefaults() PhysicalDefaults {
	return PhysicalDefaults{
		Height:            0.5,
		Mass:              1.0,
		MinHeight:         0.10,
		DryMatterFraction: 0.25,
	}
}

// Physical computes the height (in meters) and mass (in kilograms) of the
// plant on the given day.
//
// The mass is the above-ground dry biomass (mg) converted to fresh biomass
// in kilograms. If the day, either column, or a parseable value is missing,
// the defaults are returned with ok set to false.
func (p PlantDetails) Physical(day int, d PhysicalDefaults) (height, mass float64, ok bool) {
	row, ok := p[day]
	if !ok {
		return d.Height, d.Mass, false
	}
	rawHeight, ok1 := row[HeightColumn]
	rawBiomass, ok2 := row[BiomassColumn]
	if !ok1 || !ok2 {
		return d.Height, d.Mass, false
	}
	h, err1 := strconv.ParseFloat(strings.TrimSpace(rawHeight), 64)
	b, err2 := strconv.ParseFloat(strings.TrimSpace(rawBiomass), 64)
	if err1 != nil || err2 != nil {
		return d.Height, d.Mass, false
	}
	return math.Max(h, d.MinHeight), b / 1e6 / d.DryMatterFraction, true
}
