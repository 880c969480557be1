// Package catalog holds the static video and game listings.
package catalog

import (
	"strings"

	"github.com/okian/mindease/internal/domain/model"
)

var videos = []model.Video{
	{Title: "Guided Meditation", Duration: "10 min", Category: "Mindfulness", Thumbnail: "🧘‍♀"},
	{Title: "Nature Sounds", Duration: "15 min", Category: "Relaxation", Thumbnail: "🌲"},
	{Title: "Breathing Exercise", Duration: "5 min", Category: "Anxiety Relief", Thumbnail: "💨"},
	{Title: "Progressive Muscle Relaxation", Duration: "20 min", Category: "Stress Relief", Thumbnail: "💆‍♂"},
	{Title: "Calming Visualizations", Duration: "12 min", Category: "Sleep Aid", Thumbnail: "🌙"},
	{Title: "Positive Affirmations", Duration: "8 min", Category: "Motivation", Thumbnail: "✨"},
}

var games = []model.Game{
	{Name: "Bubble Pop Therapy", Icon: "🫧", Description: "Pop bubbles to release tension and anxiety", Difficulty: model.DifficultyEasy},
	{Name: "Pattern Matching", Icon: "🧩", Description: "Focus your mind with calming pattern games", Difficulty: model.DifficultyMedium},
	{Name: "Virtual Pet Care", Icon: "🐱", Description: "Take care of a digital companion", Difficulty: model.DifficultyEasy},
	{Name: "Zen Garden", Icon: "🍃", Description: "Create beautiful zen patterns in sand", Difficulty: model.DifficultyEasy},
	{Name: "Color Therapy", Icon: "🎨", Description: "Paint and color to express emotions", Difficulty: model.DifficultyEasy},
	{Name: "Memory Palace", Icon: "🏛", Description: "Build memory skills while relaxing", Difficulty: model.DifficultyHard},
}

// Videos returns a copy of all videos in display order.
func Videos() []model.Video {
	return append([]model.Video(nil), videos...)
}

// Games returns a copy of all games in display order.
func Games() []model.Game {
	return append([]model.Game(nil), games...)
}

// VideosByCategory filters videos by category, ignoring case. An empty
// category returns everything.
func VideosByCategory(category string) []model.Video {
	category = strings.TrimSpace(category)
	if category == "" {
		return Videos()
	}
	out := []model.Video{}
	for _, v := range videos {
		if strings.EqualFold(v.Category, category) {
			out = append(out, v)
		}
	}
	return out
}

// GamesByDifficulty filters games by difficulty, ignoring case. An empty
// difficulty returns everything.
func GamesByDifficulty(difficulty string) []model.Game {
	difficulty = strings.TrimSpace(difficulty)
	if difficulty == "" {
		return Games()
	}
	out := []model.Game{}
	for _, g := range games {
		if strings.EqualFold(string(g.Difficulty), difficulty) {
			out = append(out, g)
		}
	}
	return out
}
