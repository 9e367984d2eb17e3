package controller

import (
	"mindcare-be/internal/dto"
	"mindcare-be/internal/pkg/serverutils"
	"mindcare-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuditController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type auditController struct {
	service service.IAuditService
}

func NewAuditController(service service.IAuditService) IAuditController {
	return &auditController{service: service}
}

func (c *auditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chatbot/v1/audit")
	h.Get("", c.List)
}

func (c *auditController) List(ctx *fiber.Ctx) error {
	var query dto.AuditQuery
	if err := ctx.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query")
	}
	if err := serverutils.ValidateRequest(query); err != nil {
		return err
	}

	res, err := c.service.List(ctx.UserContext(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get audit log", res))
}
