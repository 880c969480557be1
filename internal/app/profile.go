package service

import (
	"context"

	"github.com/okian/mindease/internal/domain/catalog"
	"github.com/okian/mindease/internal/domain/model"
	"github.com/okian/mindease/internal/domain/profile"
	"github.com/okian/mindease/pkg/logger"
)

// Videos lists relaxation videos, optionally filtered by category.
func (s *Service) Videos(_ context.Context, category string) []model.Video {
	return catalog.VideosByCategory(category)
}

// Games lists mindfulness games, optionally filtered by difficulty.
func (s *Service) Games(_ context.Context, difficulty string) []model.Game {
	return catalog.GamesByDifficulty(difficulty)
}

// Profile returns a copy of the current profile.
func (s *Service) Profile(_ context.Context) model.UserProfile {
	s.profileMu.RLock()
	defer s.profileMu.RUnlock()
	return s.profile.Clone()
}

// UpdateProfile applies a user edit.
func (s *Service) UpdateProfile(ctx context.Context, e profile.Edit) (model.UserProfile, error) {
	s.profileMu.Lock()
	defer s.profileMu.Unlock()

	next, err := profile.ApplyEdit(s.profile, e)
	if err != nil {
		return model.UserProfile{}, err
	}
	s.profile = next
	if s.logger != nil {
		s.logger.Info(ctx, "profile updated", logger.String("name", next.Name))
	}
	return next.Clone(), nil
}

// ExportProfile renders the profile document and its download name.
func (s *Service) ExportProfile(ctx context.Context) ([]byte, string, error) {
	b, err := profile.Export(s.Profile(ctx))
	if err != nil {
		return nil, "", err
	}
	return b, profile.ExportFilename, nil
}

// ShareProfile builds the share payload for target ("native" or
// "clipboard").
func (s *Service) ShareProfile(ctx context.Context, target, url string) (profile.Share, error) {
	t, err := profile.ParseTarget(target)
	if err != nil {
		return profile.Share{}, err
	}
	return profile.ShareText(s.Profile(ctx), url, t), nil
}

// ProfileAnalytics returns the chart data for the profile page.
func (s *Service) ProfileAnalytics(ctx context.Context) profile.Dashboard {
	return profile.Analytics(s.Profile(ctx))
}
