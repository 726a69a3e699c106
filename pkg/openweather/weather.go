package openweather

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	// Packages
	validator "github.com/go-playground/validator/v10"
	toolchat "github.com/mutablelogic/go-toolchat"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Weather is the subset of the current weather response which is used.
// Pointer fields are required: a field which is absent fails validation,
// a zero value does not.
type Weather struct {
	Conditions []Condition `json:"weather" validate:"required,min=1,dive"`
	Main       *Main       `json:"main" validate:"required"`
}

// Condition describes the weather, for example "scattered clouds"
type Condition struct {
	Description *string `json:"description" validate:"required"`
	Main        *string `json:"main" validate:"required"`
}

// Main holds temperatures in Kelvin, pressure in hPa and humidity in percent
type Main struct {
	Temp      *float64 `json:"temp" validate:"required"`
	FeelsLike *float64 `json:"feels_like" validate:"required"`
	TempMin   *float64 `json:"temp_min" validate:"required"`
	TempMax   *float64 `json:"temp_max" validate:"required"`
	Pressure  *int     `json:"pressure" validate:"required"`
	Humidity  *int     `json:"humidity" validate:"required"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	kelvinOffset = 273.15
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Description returns the description of the first condition. The provider
// returns the primary condition first; only that one is used.
func (w *Weather) Description() string {
	return *w.Conditions[0].Description
}

// Temperature returns the temperature in Kelvin
func (w *Weather) Temperature() float64 {
	return *w.Main.Temp
}

// KelvinToCelsius converts and formats with one decimal place
func KelvinToCelsius(kelvin float64) string {
	return fmt.Sprintf("%.1f", kelvin-kelvinOffset)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func decodeWeather(data []byte) (*Weather, error) {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})

	var weather Weather
	if err := json.Unmarshal(data, &weather); err != nil {
		return nil, toolchat.ErrBadParameter.With(err)
	}
	if err := validate.Struct(&weather); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return nil, toolchat.ErrBadParameter.With(err)
		}
		fields := make([]string, 0, len(fieldErrs))
		for _, fieldErr := range fieldErrs {
			fields = append(fields, fmt.Sprintf("%s failed %q", fieldErr.Namespace(), fieldErr.Tag()))
		}
		return nil, toolchat.ErrBadParameter.With(strings.Join(fields, ", "))
	}
	return &weather, nil
}
