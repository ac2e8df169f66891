package validator

import (
	"slices"

	"icogen/pkg/iconconv"

	goValidator "github.com/go-playground/validator/v10"
)

// Conversion holds the effective options of a conversion once flags and
// the config file have been merged.
type Conversion struct {
	Source string `validate:"required"`
	Output string `validate:"required,nefield=Source"`
	Sizes  []int  `validate:"required,min=1,dive,min=1,max=256"`
	Filter string `validate:"required,icon_filter"`
	Syso   string `validate:"omitempty,endswith=.syso"`
	Arch   string `validate:"omitempty,icon_arch"`
}

// Description of conversion fields.
var ConversionFieldDescriptions = map[string]string{
	"Source": "must name the image to convert. (required)",
	"Output": "must name the icon file to write and differ from the source. (required)",
	"Sizes":  "must list at least one edge length between 1 and 256.",
	"Filter": "must be one of: " + quoteList(iconconv.Filters()) + ".",
	"Syso":   "must end in .syso. (optional)",
	"Arch":   "must be one of: " + quoteList(iconconv.Arches()) + ". (optional)",
}

// NewValidator creates a new validator instance.
func NewValidator() (*goValidator.Validate, error) {
	validator := goValidator.New()
	if err := validator.RegisterValidation("icon_filter", oneOf(iconconv.Filters())); err != nil {
		return nil, err
	}
	if err := validator.RegisterValidation("icon_arch", oneOf(iconconv.Arches())); err != nil {
		return nil, err
	}

	return validator, nil
}

// ValidateConversion validates the conversion options.
func ValidateConversion(c Conversion, v *goValidator.Validate) error {
	errs := v.Struct(c)
	if errs != nil {
		return HandleValidatorError(errs)
	}

	return nil
}

func oneOf(allowed []string) goValidator.Func {
	return func(fl goValidator.FieldLevel) bool {
		return slices.Contains(allowed, fl.Field().String())
	}
}
