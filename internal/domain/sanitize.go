package domain

// FahrenheitToCelsius converts °F to °C.
func FahrenheitToCelsius(f float64) float64 {
	return (f - 32) / 1.8
}

// CelsiusToFahrenheit converts °C to °F.
func CelsiusToFahrenheit(c float64) float64 {
	return c*1.8 + 32
}

// ValidValues drops the entries equal to MissingTemperature. The loader parses
// the sentinel from its literal text, so exact comparison is sound.
func ValidValues(raw []float64) []float64 {
	out := make([]float64, 0, len(raw))
	for _, v := range raw {
		if v == MissingTemperature {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Sanitize drops missing values and converts the rest to Celsius, keeping
// their order.
func Sanitize(raw []float64) []float64 {
	valid := ValidValues(raw)
	for i, v := range valid {
		valid[i] = FahrenheitToCelsius(v)
	}
	return valid
}
