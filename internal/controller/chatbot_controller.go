package controller

import (
	"errors"
	"time"

	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

const sessionCookie = "session_id"

type IChatbotController interface {
	RegisterRoutes(r fiber.Router)
	CreateSession(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
	GetHistory(ctx *fiber.Ctx) error
	GetQValues(ctx *fiber.Ctx) error
}

type chatbotController struct {
	service    service.IChatbotService
	sessionTTL time.Duration
}

func NewChatbotController(service service.IChatbotService, sessionTTL time.Duration) IChatbotController {
	return &chatbotController{service: service, sessionTTL: sessionTTL}
}

func (c *chatbotController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1")
	h.Post("/session", c.CreateSession)
	h.Post("/chat", c.SendChat)
	h.Get("/session/:id/history", c.GetHistory)
	h.Get("/q-values", c.GetQValues)
}

func (c *chatbotController) CreateSession(ctx *fiber.Ctx) error {
	res, err := c.service.CreateSession(ctx.UserContext())
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, res.Id)
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

// SendChat takes the session id from the body, then the cookie. Without
// either a new session is started and its id returned in the cookie.
func (c *chatbotController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.SessionId == "" {
		req.SessionId = ctx.Cookies(sessionCookie)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.UserContext(), &req)
	if err != nil {
		return err
	}

	c.setSessionCookie(ctx, res.SessionId)
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

func (c *chatbotController) GetHistory(ctx *fiber.Ctx) error {
	res, err := c.service.GetHistory(ctx.UserContext(), ctx.Params("id"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Session not found")
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatbotController) GetQValues(ctx *fiber.Ctx) error {
	res, err := c.service.GetQValues(ctx.UserContext())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get q-values", res))
}

func (c *chatbotController) setSessionCookie(ctx *fiber.Ctx, id string) {
	ctx.Cookie(&fiber.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		Expires:  time.Now().Add(c.sessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
