// Package profile manages the local user profile: defaults, edits, export,
// share text and the mock analytics shown on the dashboard.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/okian/mindease/internal/domain/model"
)

// ExportFilename is the suggested name of the exported document.
const ExportFilename = "mindease-profile.json"

// ShareTitle is the title used by native share targets.
const ShareTitle = "My MindEase Progress"

// Sentinel errors for this package.
var (
	ErrInvalidProfile = errors.New("invalid profile")
	ErrUnknownTarget  = errors.New("unknown share target")
)

// Default returns the sample profile the app starts with.
func Default() model.UserProfile {
	return model.UserProfile{
		Name:               "Alex Johnson",
		Email:              "alex.johnson@example.com",
		JoinDate:           time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC),
		TotalSessions:      47,
		AverageStressLevel: 4.2,
		StreakDays:         12,
		FavoriteActivity:   "Meditation",
		Goals: []string{
			"Reduce daily stress to under 4/10",
			"Complete 50 total sessions",
			"Maintain 30-day streak",
			"Try all relaxation videos",
		},
		Achievements: []string{
			"First Session Complete",
			"7-Day Streak",
			"Stress Reducer",
			"Video Explorer",
			"Game Master",
		},
	}
}

// Edit carries the user-editable fields. Nil fields are left unchanged.
type Edit struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// ApplyEdit returns p with the edit applied. p itself is not modified.
func ApplyEdit(p model.UserProfile, e Edit) (model.UserProfile, error) {
	out := p.Clone()
	if e.Name != nil {
		name := strings.TrimSpace(*e.Name)
		if name == "" {
			return p, fmt.Errorf("%w: name must not be empty", ErrInvalidProfile)
		}
		out.Name = name
	}
	if e.Email != nil {
		email := strings.TrimSpace(*e.Email)
		if !strings.Contains(email, "@") {
			return p, fmt.Errorf("%w: email %q is not an address", ErrInvalidProfile, email)
		}
		out.Email = email
	}
	return out, nil
}

// Export renders p as an indented JSON document.
func Export(p model.UserProfile) ([]byte, error) {
	b, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal profile: %w", err)
	}
	return b, nil
}

// Target selects where shared progress goes.
type Target string

const (
	TargetNative    Target = "native"
	TargetClipboard Target = "clipboard"
)

// ParseTarget defaults an empty value to native.
func ParseTarget(s string) (Target, error) {
	switch Target(strings.ToLower(strings.TrimSpace(s))) {
	case "", TargetNative:
		return TargetNative, nil
	case TargetClipboard:
		return TargetClipboard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTarget, s)
}

// Share is the payload handed to a share surface.
type Share struct {
	Target Target `json:"target"`
	Title  string `json:"title,omitempty"`
	Text   string `json:"text"`
	URL    string `json:"url,omitempty"`
}

// ShareText formats the progress summary for target. The clipboard
// variant carries the link inside the text since there is no url field.
func ShareText(p model.UserProfile, url string, target Target) Share {
	text := fmt.Sprintf("I've completed %d mental health sessions with an average stress level of %s/10!",
		p.TotalSessions, strconv.FormatFloat(p.AverageStressLevel, 'f', -1, 64))
	if target == TargetClipboard {
		return Share{Target: target, Text: text + " Check out MindEase: " + url}
	}
	return Share{Target: TargetNative, Title: ShareTitle, Text: text, URL: url}
}
