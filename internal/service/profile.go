package service

import (
	"strings"

	"github.com/templui/goalpace/internal/model"
	"github.com/templui/goalpace/internal/repository"
	"github.com/templui/goalpace/internal/validation"
)

type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
	}
}

func (s *ProfileService) ByUserID(userID string) (*model.UserProfile, error) {
	return s.profileRepo.ByUserID(userID)
}

// Save creates or replaces the user's profile snapshot.
func (s *ProfileService) Save(profile *model.UserProfile) error {
	profile.Gender = strings.TrimSpace(profile.Gender)
	profile.HealthConditions = model.NewStringSet(profile.HealthConditions...)

	err := validation.ValidateProfile(profile)
	if err != nil {
		return err
	}

	return s.profileRepo.Upsert(profile)
}
