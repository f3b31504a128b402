package constants

// HUD and overlay text
const (
	TitleGameOver   = "Game Over"
	LabelRestart    = "Restart"
	LabelQuit       = "Quit"
	LabelNoHand     = "no hand"
	LabelPreview    = "camera"
	HUDScoreFormat  = "Score: %d"
	HUDLivesFormat  = "Lives: %d"
	HUDLevelFormat  = "Level: %d"
	HUDBestFormat   = "Best: %d"
	FinalScoreTitle = "Score: %d"
)

// Terminal glyphs
const (
	GlyphPaddle = '█'
	GlyphBall   = '●'
	GlyphHand   = '▲'
	GlyphBorder = '│'
)
