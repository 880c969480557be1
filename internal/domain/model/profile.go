package model

import (
	"encoding/json"
	"time"
)

// JoinDateLayout renders JoinDate in UTC with milliseconds, the shape a
// browser's Date.toJSON produces.
const JoinDateLayout = "2006-01-02T15:04:05.000Z07:00"

// UserProfile is the single local user. JSON names match the exported
// profile document.
type UserProfile struct {
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	JoinDate           time.Time `json:"joinDate"`
	TotalSessions      int       `json:"totalSessions"`
	AverageStressLevel float64   `json:"averageStressLevel"`
	StreakDays         int       `json:"streakDays"`
	FavoriteActivity   string    `json:"favoriteActivity"`
	Goals              []string  `json:"goals"`
	Achievements       []string  `json:"achievements"`
}

// MarshalJSON writes JoinDate with JoinDateLayout. Decoding keeps the
// default time.Time parsing, which accepts it.
func (p UserProfile) MarshalJSON() ([]byte, error) {
	type plain UserProfile
	return json.Marshal(struct {
		plain
		JoinDate string `json:"joinDate"`
	}{plain(p), p.JoinDate.UTC().Format(JoinDateLayout)})
}

// Clone returns a deep copy.
func (p UserProfile) Clone() UserProfile {
	p.Goals = append([]string(nil), p.Goals...)
	p.Achievements = append([]string(nil), p.Achievements...)
	return p
}
