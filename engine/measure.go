package engine

import "unicode/utf8"

// Measurer sizes item text in pixels. Hosts with a font plug in their own;
// returning ErrMeasurementUnavailable makes the engine use DefaultWidth.
type Measurer interface {
	MeasureText(text string) (float64, error)
}

// MeasureFunc adapts a function to Measurer.
type MeasureFunc func(text string) (float64, error)

func (f MeasureFunc) MeasureText(text string) (float64, error) {
	return f(text)
}

// RuneMeasurer estimates width as a fixed advance per rune plus padding.
type RuneMeasurer struct {
	CharWidth float64
	Padding   float64
}

func (m RuneMeasurer) MeasureText(text string) (float64, error) {
	if m.CharWidth <= 0 {
		return 0, ErrMeasurementUnavailable
	}
	return float64(utf8.RuneCountInString(text))*m.CharWidth + m.Padding, nil
}
