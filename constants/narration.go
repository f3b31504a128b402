package constants

// Narration lines spoken on session milestones
const (
	NarrationStart      = "Start the game"
	NarrationRestarting = "Restarting the game"
	NarrationQuitting   = "Quitting the game"
	NarrationGameOver   = "Game over"

	// NarrationFinalScoreFormat takes the final score
	NarrationFinalScoreFormat = "Your score is %d"
)
