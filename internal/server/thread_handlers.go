package server

import (
	"forumapi/internal/service"

	"github.com/gofiber/fiber/v2"
)

// PostThread creates a thread owned by the caller (protected)
func (s *Server) PostThread(c *fiber.Ctx) error {
	payload, err := parsePayload(c)
	if err != nil {
		return respondError(c, err)
	}

	added, err := s.threadService.AddThread(c.UserContext(), service.AddThreadInput{
		Owner:   currentUserID(c),
		Payload: payload,
	})
	if err != nil {
		return respondError(c, err)
	}

	return respondSuccess(c, fiber.StatusCreated, fiber.Map{"addedThread": added})
}

// GetThread returns a thread with its comments and replies (public)
func (s *Server) GetThread(c *fiber.Ctx) error {
	detail, err := s.threadService.GetThreadDetail(c.UserContext(), c.Params("threadId"))
	if err != nil {
		return respondError(c, err)
	}
	return respondSuccess(c, fiber.StatusOK, fiber.Map{"thread": detail})
}
