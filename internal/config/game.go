package config

import "time"

// Board dimensions in logical units. Positions are multiples of CellSize.
const (
	BoardWidth  = 400
	BoardHeight = 400
	CellSize    = 10
)

// Loop timing
const (
	TickInterval = 150 * time.Millisecond
)

// Persistence
const (
	HighScoreSlot = "snakeHighScore" // Named slot for the persisted high score
)

// Session
const (
	IdleDisconnect = 5 * time.Minute // Close remote sessions without input for this long
)
