package profile

import "github.com/okian/mindease/internal/domain/model"

// Chart palette.
const (
	ColorPrimary   = "#06b6d4"
	ColorSecondary = "#10b981"
	ColorAccent    = "#8b5cf6"
	ColorWarning   = "#f59e0b"
)

const wellnessMax = 10

// WeeklyPoint is one week of stress progress.
type WeeklyPoint struct {
	Week     string  `json:"week"`
	Stress   float64 `json:"stress"`
	Sessions int     `json:"sessions"`
}

// ActivitySlice is one slice of the activity distribution.
type ActivitySlice struct {
	Name     string `json:"name"`
	Sessions int    `json:"sessions"`
	Color    string `json:"color"`
}

// WellnessAxis is one axis of the wellness radar.
type WellnessAxis struct {
	Category string  `json:"category"`
	Current  float64 `json:"current"`
	Max      float64 `json:"max"`
}

// MonthlyPoint is one month of sessions and average stress.
type MonthlyPoint struct {
	Month     string  `json:"month"`
	Sessions  int     `json:"sessions"`
	AvgStress float64 `json:"avgStress"`
}

// Dashboard bundles every chart series.
type Dashboard struct {
	StressProgress []WeeklyPoint   `json:"stressProgress"`
	Activity       []ActivitySlice `json:"activity"`
	Wellness       []WellnessAxis  `json:"wellness"`
	Monthly        []MonthlyPoint  `json:"monthly"`
}

// Analytics returns the mock dashboard series. Only the stress level and
// consistency radar axes depend on the profile.
func Analytics(p model.UserProfile) Dashboard {
	return Dashboard{
		StressProgress: []WeeklyPoint{
			{Week: "Week 1", Stress: 0, Sessions: 3},
			{Week: "Week 2", Stress: 6.8, Sessions: 4},
			{Week: "Week 3", Stress: 4.1, Sessions: 5},
			{Week: "Week 4", Stress: 2.5, Sessions: 6},
			{Week: "Week 5", Stress: 4.9, Sessions: 7},
			{Week: "Week 6", Stress: 7.9, Sessions: 8},
		},
		Activity: []ActivitySlice{
			{Name: "Meditation", Sessions: 18, Color: ColorPrimary},
			{Name: "Chat AI", Sessions: 15, Color: ColorSecondary},
			{Name: "Videos", Sessions: 8, Color: ColorAccent},
			{Name: "Games", Sessions: 6, Color: ColorWarning},
		},
		Wellness: []WellnessAxis{
			{Category: "Stress Level", Current: p.AverageStressLevel, Max: wellnessMax},
			{Category: "Session Frequency", Current: 8, Max: wellnessMax},
			{Category: "Goal Progress", Current: 7, Max: wellnessMax},
			{Category: "Consistency", Current: float64(p.StreakDays) / 3, Max: wellnessMax},
			{Category: "Engagement", Current: 9, Max: wellnessMax},
		},
		Monthly: []MonthlyPoint{
			{Month: "Jan", Sessions: 12, AvgStress: 6.8},
			{Month: "Feb", Sessions: 15, AvgStress: 6.2},
			{Month: "Mar", Sessions: 18, AvgStress: 5.5},
			{Month: "Apr", Sessions: 22, AvgStress: 4.8},
			{Month: "May", Sessions: 20, AvgStress: 4.2},
			{Month: "Jun", Sessions: 25, AvgStress: 3.9},
		},
	}
}
