package plants

import "golang.org/x/exp/slices"

// PlantTypes lists the crop types known to the GroIMP growth model.
var PlantTypes = []string{
	"dicot1",
	"dicot2",
	"cheno",
	"at",
	"cereal",
	"grass",
	"hemp",
	"weed",
	"sunflower",
	"maize",
	"quinoa",
	"tulip",
	"pea",
	"soy",
	"faba",
	"basil",
}

// IsPlantType checks if crop is one of PlantTypes.
func IsPlantType(crop string) bool {
	return slices.Contains(PlantTypes, crop)
}
