package server

import (
	"devconnector/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/users.
func (s *Server) Register(c *fiber.Ctx) error {
	var in service.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}

	token, err := s.userService.Register(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}

	return c.JSON(fiber.Map{"token": token})
}

// Login handles POST /api/auth.
func (s *Server) Login(c *fiber.Ctx) error {
	var in service.LoginInput
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}

	token, err := s.userService.Authenticate(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, fiber.StatusBadRequest)
	}

	return c.JSON(fiber.Map{"token": token})
}

// GetAuthUser handles GET /api/auth and returns the caller without the password hash.
func (s *Server) GetAuthUser(c *fiber.Ctx) error {
	user, err := s.userService.GetSelf(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err, fiber.StatusNotFound)
	}
	return c.JSON(user)
}
