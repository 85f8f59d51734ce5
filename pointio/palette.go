package pointio

import "github.com/lucasb-eyer/go-colorful"

// Palette returns k hex colors with hues spread evenly around the HCL wheel
// at fixed chroma and luminance. The same k always yields the same colors.
func Palette(k int) []string {
	if k <= 0 {
		return nil
	}
	colors := make([]string, k)
	for j := range colors {
		h := 360 * float64(j) / float64(k)
		colors[j] = colorful.Hcl(h, 0.6, 0.65).Clamped().Hex()
	}
	return colors
}
