// Package ui draws the overlay on top of the scene: title, toggle button,
// side buttons, credits and the optional debug panel.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Gold           rl.Color
	GoldDim        rl.Color
	Credit         rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
	TitleFontSize  int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 4, G: 14, B: 10, A: 220},
		PanelBorder:    rl.Color{R: 90, G: 76, B: 30, A: 255},
		SectionHeader:  rl.Color{R: 251, G: 191, B: 36, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 30, G: 40, B: 35, A: 255},
		BarFill:        rl.Color{R: 212, G: 175, B: 55, A: 255},
		Gold:           rl.Color{R: 251, G: 191, B: 36, A: 255},
		GoldDim:        rl.Color{R: 212, G: 175, B: 55, A: 255},
		Credit:         rl.Color{R: 160, G: 150, B: 120, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
		TitleFontSize:  56,
	}
}
