package server

import (
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Profile lookups report a missing profile as 400, matching the public API.
const profileNotFoundStatus = fiber.StatusBadRequest

// GetMyProfile handles GET /api/profile/me.
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetOwn(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile.
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var in service.ProfileInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}

	profile, err := s.profileService.Upsert(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(profile)
}

// ListProfiles handles GET /api/profile.
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.List(c.UserContext())
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(profiles)
}

// GetProfileByUser handles GET /api/profile/user/:user_id. A malformed id
// reads as an unknown user.
func (s *Server) GetProfileByUser(c *fiber.Ctx) error {
	profile, err := s.profileService.GetByUserID(c.UserContext(), paramUUID(c, "user_id"))
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile.
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.UserContext(), currentUserID(c)); err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience.
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var in service.ExperienceInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id.
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	profile, err := s.profileService.RemoveExperience(c.UserContext(), currentUserID(c), paramUUID(c, "exp_id"))
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education.
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var in service.EducationInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), currentUserID(c), in)
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id.
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	profile, err := s.profileService.RemoveEducation(c.UserContext(), currentUserID(c), paramUUID(c, "edu_id"))
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(profile)
}

// GetGithubRepos handles GET /api/profile/github/:username.
func (s *Server) GetGithubRepos(c *fiber.Ctx) error {
	repos, err := s.profileService.GithubRepos(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err, profileNotFoundStatus)
	}
	return c.JSON(repos)
}
