package order

import (
	"logistics/internal/pkg/errs"
)

// Default values applied to item fields the seller left blank.
// Weight is in kilograms, dimensions in centimeters, value in rupees.
const (
	defaultItemWeightKg = 1.0
	defaultItemDimCm    = 10.0
	defaultItemValue    = 0.0

	// volumetricDivisor converts cm3 to a billable kilogram equivalent.
	volumetricDivisor = 5000.0
)

// Dimensions is a length/width/height triple in centimeters.
type Dimensions struct {
	Length float64
	Width  float64
	Height float64
}

// Item is one line of a shipment's contents. Missing fields are filled with
// defaults by NormalizeItems; an item only needs a name to be accepted.
type Item struct {
	Name     string
	Quantity int
	WeightKg float64
	Dims     Dimensions
	Value    float64
}

// VolumeCm3 returns the volume of a single unit of the item.
func (i Item) VolumeCm3() float64 {
	return i.Dims.Length * i.Dims.Width * i.Dims.Height
}

// VolumetricWeightKg returns the billable kilogram equivalent of the
// item's volume for a single unit.
func (i Item) VolumetricWeightKg() float64 {
	return i.VolumeCm3() / volumetricDivisor
}

// NormalizeItems fills defaulted fields in place and validates the list.
// A wholly absent item list is an error; individual blank fields are not.
func NormalizeItems(items []Item) ([]Item, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}

	normalized := make([]Item, len(items))
	for i, item := range items {
		if item.Name == "" {
			return nil, errs.NewValueIsRequiredError("items[].name")
		}
		if item.Quantity <= 0 {
			item.Quantity = 1
		}
		if item.WeightKg <= 0 {
			item.WeightKg = defaultItemWeightKg
		}
		if item.Dims.Length <= 0 {
			item.Dims.Length = defaultItemDimCm
		}
		if item.Dims.Width <= 0 {
			item.Dims.Width = defaultItemDimCm
		}
		if item.Dims.Height <= 0 {
			item.Dims.Height = defaultItemDimCm
		}
		if item.Value < 0 {
			item.Value = defaultItemValue
		}
		normalized[i] = item
	}
	return normalized, nil
}

// TotalWeightKg sums the dead weight of all items.
func TotalWeightKg(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.WeightKg * float64(item.Quantity)
	}
	return total
}

// TotalVolumetricWeightKg sums the billable volumetric weight of all items.
func TotalVolumetricWeightKg(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.VolumetricWeightKg() * float64(item.Quantity)
	}
	return total
}

// ChargeableWeightKg is the greater of dead and volumetric weight.
func ChargeableWeightKg(items []Item) float64 {
	dead := TotalWeightKg(items)
	volumetric := TotalVolumetricWeightKg(items)
	if volumetric > dead {
		return volumetric
	}
	return dead
}

// TotalValue sums the declared value of all items.
func TotalValue(items []Item) float64 {
	var total float64
	for _, item := range items {
		total += item.Value * float64(item.Quantity)
	}
	return total
}

// TotalUnits counts the total item units across all lines.
func TotalUnits(items []Item) int {
	var total int
	for _, item := range items {
		total += item.Quantity
	}
	return total
}
