// Package palette maps color scheme identifiers to ordered color lists
// shared by every visualizer.
package palette

import "image/color"

var rainbow = []color.RGBA{
	{R: 255, G: 64, B: 64, A: 255},
	{R: 255, G: 160, B: 48, A: 255},
	{R: 255, G: 230, B: 64, A: 255},
	{R: 96, G: 230, B: 96, A: 255},
	{R: 64, G: 160, B: 255, A: 255},
	{R: 110, G: 96, B: 240, A: 255},
	{R: 190, G: 96, B: 240, A: 255},
}

var schemes = map[string][]color.RGBA{
	"rainbow": rainbow,
	"blue": {
		{R: 24, G: 80, B: 160, A: 255},
		{R: 40, G: 130, B: 220, A: 255},
		{R: 90, G: 180, B: 250, A: 255},
		{R: 160, G: 220, B: 255, A: 255},
	},
	"fire": {
		{R: 160, G: 24, B: 8, A: 255},
		{R: 230, G: 80, B: 16, A: 255},
		{R: 255, G: 150, B: 32, A: 255},
		{R: 255, G: 220, B: 96, A: 255},
	},
	"purple": {
		{R: 80, G: 24, B: 140, A: 255},
		{R: 130, G: 50, B: 200, A: 255},
		{R: 180, G: 100, B: 240, A: 255},
		{R: 230, G: 170, B: 255, A: 255},
	},
}

// Resolve returns the ordered color list for the given scheme id. Unknown ids
// resolve to the rainbow scheme. Callers must not mutate the returned slice.
func Resolve(schemeID string) []color.RGBA {
	if p, ok := schemes[schemeID]; ok {
		return p
	}
	return rainbow
}

// Names lists the built-in scheme ids in a stable order, for cycling in the UI.
func Names() []string {
	return []string{"rainbow", "blue", "fire", "purple"}
}
