// Package fontcolor is the font color plugin. It allows fontColor attribute
// on text, converts it to and from color declaration of inline span style,
// normalizes configured palette and provides command to color text ranges.
//
// Attribute values are stored normalized (see color.Normalize), so
//
//	<span style="color: rgb(10, 20, 30)">o</span>
//
// becomes <$text fontColor="rgb(10,20,30)">o</$text> in the model and is
// written back as <span style="color:rgb(10,20,30);">o</span>.
package fontcolor

import (
	"fontcolor/config"
)

const (
	// Attribute is the text attribute holding color.
	Attribute = "fontColor"
	// StyleProperty is inline style property attribute is converted to.
	StyleProperty = "color"
	// ViewElement wraps colored text in markup.
	ViewElement = "span"

	PluginName = "FontColorEditing"
)

// DefaultColors returns default palette, the same as in embedded
// configuration.
func DefaultColors() []config.ColorDefinition {
	return []config.ColorDefinition{
		{Color: "hsl(0, 0%, 0%)", Label: "Black"},
		{Color: "hsl(0, 0%, 30%)", Label: "Dim grey"},
		{Color: "hsl(0, 0%, 60%)", Label: "Grey"},
		{Color: "hsl(0, 0%, 90%)", Label: "Light grey"},
		{Color: "hsl(0, 0%, 100%)", Label: "White", HasBorder: true},
		{Color: "hsl(0, 75%, 60%)", Label: "Red"},
		{Color: "hsl(30, 75%, 60%)", Label: "Orange"},
		{Color: "hsl(60, 75%, 60%)", Label: "Yellow"},
		{Color: "hsl(90, 75%, 60%)", Label: "Light green"},
		{Color: "hsl(120, 75%, 60%)", Label: "Green"},
		{Color: "hsl(150, 75%, 60%)", Label: "Aquamarine"},
		{Color: "hsl(180, 75%, 60%)", Label: "Turquoise"},
		{Color: "hsl(210, 75%, 60%)", Label: "Light blue"},
		{Color: "hsl(240, 75%, 60%)", Label: "Blue"},
		{Color: "hsl(270, 75%, 60%)", Label: "Purple"},
	}
}
