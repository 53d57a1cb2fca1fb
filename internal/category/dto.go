package category

import (
	"strings"

	"github.com/frahmantamala/budget-allocation/internal"
	categoryDatamodel "github.com/frahmantamala/budget-allocation/internal/core/datamodel/category"
)

// categoryWire is the backend shape. Tags are PascalCase for writes; reads
// match both casings through encoding/json's case-insensitive lookup.
type categoryWire struct {
	ID               int64   `json:"Id"`
	Name             string  `json:"Name"`
	Limit            float64 `json:"Limit"`
	Timeframe        string  `json:"Timeframe"`
	ThresholdPercent float64 `json:"ThresholdPercent"`
}

func (w categoryWire) toDomain() categoryDatamodel.Category {
	return categoryDatamodel.Category{
		ID:               w.ID,
		Name:             w.Name,
		Limit:            w.Limit,
		Timeframe:        categoryDatamodel.Timeframe(w.Timeframe),
		ThresholdPercent: w.ThresholdPercent,
	}
}

type CategoryDTO struct {
	Name             string                      `json:"name"`
	Limit            float64                     `json:"limit"`
	Timeframe        categoryDatamodel.Timeframe `json:"timeframe"`
	ThresholdPercent float64                     `json:"thresholdPercent"`
}

func (d CategoryDTO) Validate() error {
	if strings.TrimSpace(d.Name) == "" {
		return internal.NewValidationFieldError("name", "name is required", internal.ErrCodeMissingField)
	}
	if d.Limit < 0 {
		return internal.NewValidationFieldError("limit", "limit must be non-negative", internal.ErrCodeInvalidAmount)
	}
	if !d.Timeframe.IsValid() {
		return internal.NewValidationFieldError("timeframe", "timeframe must be one of Monthly, Quarterly, Yearly, Semi-Annual, Annual", internal.ErrCodeInvalidTimeframe)
	}
	if d.ThresholdPercent < 0 || d.ThresholdPercent > 100 {
		return internal.NewValidationFieldError("thresholdPercent", "threshold must be between 0 and 100", internal.ErrCodeInvalidThreshold)
	}
	return nil
}

func (d CategoryDTO) toWire(id int64) categoryWire {
	return categoryWire{
		ID:               id,
		Name:             d.Name,
		Limit:            d.Limit,
		Timeframe:        string(d.Timeframe),
		ThresholdPercent: d.ThresholdPercent,
	}
}
