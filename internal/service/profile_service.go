package service

import (
	"context"
	"strings"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/github"
	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"

	"github.com/google/uuid"
)

const (
	noProfileMsg       = "There is no profile for this user"
	profileNotFoundMsg = "Profile not found"
	noGithubProfileMsg = "No Github profile found"
)

// RepoLister fetches public repositories for a GitHub login.
type RepoLister interface {
	ListRepos(ctx context.Context, username string) ([]github.Repo, error)
}

type ProfileService struct {
	profileRepo repository.ProfileRepository
	repos       RepoLister
}

// ProfileInput is the create-or-update payload. Blank optional fields leave
// the stored value unchanged; the social links are replaced as a set.
type ProfileInput struct {
	Company        string `json:"company"`
	Website        string `json:"website"`
	Location       string `json:"location"`
	Bio            string `json:"bio"`
	Status         string `json:"status" validate:"notblank" msg:"Status is required"`
	Skills         string `json:"skills" validate:"notblank" msg:"Skills is required"`
	GithubUsername string `json:"githubusername"`
	Youtube        string `json:"youtube"`
	Twitter        string `json:"twitter"`
	Facebook       string `json:"facebook"`
	Linkedin       string `json:"linkedin"`
	Instagram      string `json:"instagram"`
}

type ExperienceInput struct {
	Title       string `json:"title" validate:"notblank" msg:"Title is required"`
	Company     string `json:"company" validate:"notblank" msg:"Company is required"`
	Location    string `json:"location"`
	From        string `json:"from" validate:"notblank" msg:"From date is required"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationInput struct {
	School       string `json:"school" validate:"notblank" msg:"School is required"`
	Degree       string `json:"degree" validate:"notblank" msg:"Degree is required"`
	FieldOfStudy string `json:"fieldofstudy" validate:"notblank" msg:"Field of study is required"`
	From         string `json:"from" validate:"notblank" msg:"From date is required"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func NewProfileService(profileRepo repository.ProfileRepository, repos RepoLister) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, repos: repos}
}

func (s *ProfileService) GetOwn(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.requireProfile(ctx, userID, noProfileMsg)
}

func (s *ProfileService) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	return s.requireProfile(ctx, userID, profileNotFoundMsg)
}

func (s *ProfileService) List(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profileRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []models.Profile{}
	}
	return profiles, nil
}

func (s *ProfileService) requireProfile(ctx context.Context, userID uuid.UUID, missingMsg string) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, models.NewNotFoundMessage(missingMsg)
	}
	return profile, nil
}

// Upsert creates the caller's profile or updates it in place.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, in ProfileInput) (profile *models.Profile, err error) {
	ctx, span := observability.StartServiceSpan(ctx, "ProfileService", "Upsert")
	defer func() { observability.EndSpan(span, err) }()

	skills := validation.ParseSkills(in.Skills)
	verr := validation.Struct(&in)
	if verr == nil && len(skills) == 0 {
		verr = validation.Merge(nil, models.FieldError{Msg: "Skills is required", Param: "skills"})
	}
	if verr != nil {
		return nil, verr
	}

	p := &models.Profile{
		UserID:         userID,
		Status:         strings.TrimSpace(in.Status),
		Skills:         skills,
		Company:        strings.TrimSpace(in.Company),
		Website:        validation.NormalizeURL(in.Website),
		Location:       strings.TrimSpace(in.Location),
		Bio:            strings.TrimSpace(in.Bio),
		GithubUsername: strings.TrimSpace(in.GithubUsername),
		Social: models.Social{
			Youtube:   validation.NormalizeURL(in.Youtube),
			Twitter:   validation.NormalizeURL(in.Twitter),
			Instagram: validation.NormalizeURL(in.Instagram),
			Linkedin:  validation.NormalizeURL(in.Linkedin),
			Facebook:  validation.NormalizeURL(in.Facebook),
		},
	}

	var provided []string
	for col, val := range map[string]string{
		"company":         p.Company,
		"website":         p.Website,
		"location":        p.Location,
		"bio":             p.Bio,
		"github_username": p.GithubUsername,
	} {
		if val != "" {
			provided = append(provided, col)
		}
	}

	profile, err = s.profileRepo.Upsert(ctx, p, provided)
	if err != nil {
		return nil, err
	}
	observability.ProfileMutations.WithLabelValues("upsert").Inc()
	return profile, nil
}

func (s *ProfileService) AddExperience(ctx context.Context, userID uuid.UUID, in ExperienceInput) (*models.Profile, error) {
	from, to, err := parseRange(validation.Struct(&in), in.From, in.To)
	if err != nil {
		return nil, err
	}

	profile, err := s.requireProfile(ctx, userID, noProfileMsg)
	if err != nil {
		return nil, err
	}

	exp := &models.Experience{
		ProfileID:   profile.ID,
		Title:       strings.TrimSpace(in.Title),
		Company:     strings.TrimSpace(in.Company),
		Location:    strings.TrimSpace(in.Location),
		From:        from,
		To:          to,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, exp); err != nil {
		return nil, err
	}
	observability.ProfileMutations.WithLabelValues("add_experience").Inc()
	return s.requireProfile(ctx, userID, noProfileMsg)
}

func (s *ProfileService) AddEducation(ctx context.Context, userID uuid.UUID, in EducationInput) (*models.Profile, error) {
	from, to, err := parseRange(validation.Struct(&in), in.From, in.To)
	if err != nil {
		return nil, err
	}

	profile, err := s.requireProfile(ctx, userID, noProfileMsg)
	if err != nil {
		return nil, err
	}

	edu := &models.Education{
		ProfileID:    profile.ID,
		School:       strings.TrimSpace(in.School),
		Degree:       strings.TrimSpace(in.Degree),
		FieldOfStudy: strings.TrimSpace(in.FieldOfStudy),
		From:         from,
		To:           to,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, edu); err != nil {
		return nil, err
	}
	observability.ProfileMutations.WithLabelValues("add_education").Inc()
	return s.requireProfile(ctx, userID, noProfileMsg)
}

// parseRange folds date parse failures into the struct validation result so
// the client sees every problem at once.
func parseRange(verr error, rawFrom, rawTo string) (time.Time, *time.Time, error) {
	var extra []models.FieldError
	var from time.Time
	if strings.TrimSpace(rawFrom) != "" {
		parsed, err := validation.ParseDate(rawFrom)
		if err != nil {
			extra = append(extra, models.FieldError{Msg: "From date is invalid", Param: "from"})
		}
		from = parsed
	}
	to, err := validation.ParseOptionalDate(rawTo)
	if err != nil {
		extra = append(extra, models.FieldError{Msg: "To date is invalid", Param: "to"})
	}
	if err := validation.Merge(verr, extra...); err != nil {
		return time.Time{}, nil, err
	}
	return from, to, nil
}

// RemoveExperience deletes one of the caller's entries. Unknown ids are ignored.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uuid.UUID) (*models.Profile, error) {
	profile, err := s.requireProfile(ctx, userID, noProfileMsg)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, err
	}
	observability.ProfileMutations.WithLabelValues("remove_experience").Inc()
	return s.requireProfile(ctx, userID, noProfileMsg)
}

// RemoveEducation deletes one of the caller's entries. Unknown ids are ignored.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uuid.UUID) (*models.Profile, error) {
	profile, err := s.requireProfile(ctx, userID, noProfileMsg)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, err
	}
	observability.ProfileMutations.WithLabelValues("remove_education").Inc()
	return s.requireProfile(ctx, userID, noProfileMsg)
}

// DeleteAccount removes the caller's posts, profile and user record.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uuid.UUID) (err error) {
	ctx, span := observability.StartServiceSpan(ctx, "ProfileService", "DeleteAccount")
	defer func() { observability.EndSpan(span, err) }()

	if err := s.profileRepo.DeleteAccount(ctx, userID); err != nil {
		return err
	}
	observability.ProfileMutations.WithLabelValues("delete_account").Inc()
	return nil
}

// GithubRepos lists a user's repositories through the cache.
func (s *ProfileService) GithubRepos(ctx context.Context, username string) ([]github.Repo, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewUpstreamError(noGithubProfileMsg, nil)
	}

	var repos []github.Repo
	err := cache.Aside(ctx, cache.GithubReposKey(username), &repos, cache.GithubReposTTL, func() error {
		fetched, err := s.repos.ListRepos(ctx, username)
		if err != nil {
			return err
		}
		repos = fetched
		return nil
	})
	if err != nil {
		return nil, models.NewUpstreamError(noGithubProfileMsg, err)
	}
	return repos, nil
}
