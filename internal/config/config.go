package config

import "time"

const (
	AppName = "neuralbg"

	WindowWidth  = 1024
	WindowHeight = 640

	// Theme button dimensions
	ButtonWidth  = 150
	ButtonHeight = 32
	ButtonX      = 20
	ButtonY      = 36

	// Graph parameters
	ParticleCount    = 80
	ParticleRadius   = 2
	ParticleSpeed    = 0.3
	ConnectionRadius = 150
	LineAlpha        = 0.25
	LineWidth        = 1.5

	// Toast parameters
	ToastEnterDelay   = 10 * time.Millisecond
	ToastDuration     = 4 * time.Second
	ToastExitDuration = 300 * time.Millisecond
	MaxToasts         = 8
	ToastWidth        = 300
	ToastHeight       = 44
	ToastGap          = 8
	ToastMargin       = 16

	WelcomeDelay = time.Second

	// ThemeKey is the preference key holding "dark" or "light".
	ThemeKey = "theme"
)
