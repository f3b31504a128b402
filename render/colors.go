package render

import "github.com/gdamore/tcell/v2"

var (
	RgbBackground   = tcell.NewRGBColor(0, 0, 0)
	RgbPanel        = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbBorder       = tcell.NewRGBColor(120, 120, 140) // Muted blue-gray
	RgbPaddle       = tcell.NewRGBColor(255, 255, 255) // White
	RgbBall         = tcell.NewRGBColor(255, 0, 0)     // Red
	RgbText         = tcell.NewRGBColor(255, 255, 255)
	RgbTextDim      = tcell.NewRGBColor(150, 150, 160)
	RgbHand         = tcell.NewRGBColor(0, 200, 200) // Cyan marker
	RgbButton       = tcell.NewRGBColor(0, 128, 0)   // Green
	RgbButtonHover  = tcell.NewRGBColor(0, 200, 0)   // Bright green
	RgbButtonText   = tcell.NewRGBColor(255, 255, 255)
	RgbGameOverText = tcell.NewRGBColor(255, 255, 255)
)

// Base styles
var (
	StyleBackground = tcell.StyleDefault.Foreground(RgbText).Background(RgbBackground)
	StylePanel      = tcell.StyleDefault.Foreground(RgbTextDim).Background(RgbPanel)
)
