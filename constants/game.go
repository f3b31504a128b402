package constants

// Window and playfield geometry in logical units
// The playfield takes the left three quarters of the window, the rest is the camera preview panel
const (
	WindowWidth  = 1920
	WindowHeight = 1080

	PlayfieldNumerator   = 3
	PlayfieldDenominator = 4
)

// Paddle
const (
	PaddleWidth        = 150
	PaddleHeight       = 20
	PaddleBottomMargin = 30
	PaddleSpeed        = 15
)

// Ball
const (
	BallRadius = 10
	BallSpeed  = 8 // canonical launch velocity is (+BallSpeed, -BallSpeed)
)

// Session rules
const (
	StartingLives  = 3
	StartingLevel  = 1
	PointsPerLevel = 5
)

// Game-over button layout, offsets from window center in logical units
const (
	ButtonWidth          = 240
	ButtonHeight         = 70
	RestartButtonOffsetY = 80
	QuitButtonOffsetY    = 160
)
