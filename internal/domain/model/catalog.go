package model

// Video is a relaxation video card.
type Video struct {
	Title     string `json:"title"`
	Duration  string `json:"duration"`
	Category  string `json:"category"`
	Thumbnail string `json:"thumbnail"`
}

// Difficulty of a game.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

// Valid reports whether d is a known difficulty.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Game is a mindfulness game card.
type Game struct {
	Name        string     `json:"name"`
	Icon        string     `json:"icon"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
}
