package controller

import (
	"strings"

	"telemed-be/internal/constant"
	"telemed-be/internal/dto"
	"telemed-be/internal/pkg/serverutils"
	"telemed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IKnowledgeController interface {
	RegisterRoutes(r fiber.Router)
}

type knowledgeController struct {
	knowledgeService service.IKnowledgeService
}

func NewKnowledgeController(knowledgeService service.IKnowledgeService) IKnowledgeController {
	return &knowledgeController{
		knowledgeService: knowledgeService,
	}
}

func (c *knowledgeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/knowledge/v1")
	h.Use(serverutils.JwtMiddleware)

	// Matching is open to any authenticated caller; curation is
	// restricted to admins.
	h.Post("/match", c.Match)
	h.Get("/diseases", c.ListDiseases)
	h.Get("/diseases/:id", c.ShowDisease)
	h.Get("/symptoms", c.ListSymptoms)
	h.Get("/symptoms/:id", c.ShowSymptom)

	admin := serverutils.RequireRoles(constant.RoleAdmin)
	h.Post("/diseases", admin, c.CreateDisease)
	h.Put("/diseases/:id", admin, c.UpdateDisease)
	h.Delete("/diseases/:id", admin, c.DeleteDisease)
	h.Post("/symptoms", admin, c.CreateSymptom)
	h.Put("/symptoms/:id", admin, c.UpdateSymptom)
	h.Delete("/symptoms/:id", admin, c.DeleteSymptom)
	h.Post("/links", admin, c.Link)
}

func (c *knowledgeController) CreateDisease(ctx *fiber.Ctx) error {
	var req dto.CreateDiseaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.CreateDisease(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create disease", res))
}

func (c *knowledgeController) UpdateDisease(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid disease id")
	}

	var req dto.UpdateDiseaseRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.UpdateDisease(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update disease", res))
}

func (c *knowledgeController) DeleteDisease(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid disease id")
	}

	if err := c.knowledgeService.DeleteDisease(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete disease", nil))
}

func (c *knowledgeController) ShowDisease(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid disease id")
	}

	res, err := c.knowledgeService.GetDisease(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show disease", res))
}

func (c *knowledgeController) ListDiseases(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)
	name := ctx.Query("name")

	res, total, err := c.knowledgeService.ListDiseases(ctx.Context(), name, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list diseases", fiber.Map{
		"items": res,
		"total": total,
	}))
}

func (c *knowledgeController) CreateSymptom(ctx *fiber.Ctx) error {
	var req dto.CreateSymptomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.CreateSymptom(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create symptom", res))
}

func (c *knowledgeController) UpdateSymptom(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid symptom id")
	}

	var req dto.UpdateSymptomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.knowledgeService.UpdateSymptom(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update symptom", res))
}

func (c *knowledgeController) DeleteSymptom(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid symptom id")
	}

	if err := c.knowledgeService.DeleteSymptom(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete symptom", nil))
}

func (c *knowledgeController) ShowSymptom(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid symptom id")
	}

	res, err := c.knowledgeService.GetSymptom(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show symptom", res))
}

func (c *knowledgeController) ListSymptoms(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)
	name := ctx.Query("name")

	res, total, err := c.knowledgeService.ListSymptoms(ctx.Context(), name, limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list symptoms", fiber.Map{
		"items": res,
		"total": total,
	}))
}

func (c *knowledgeController) Link(ctx *fiber.Ctx) error {
	var req dto.LinkDiseaseSymptomRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.knowledgeService.LinkDiseaseSymptom(ctx.Context(), &req); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse[any]("Success link disease and symptom", nil))
}

func (c *knowledgeController) Match(ctx *fiber.Ctx) error {
	var req struct {
		Symptoms []string `json:"symptomes" validate:"required,min=1"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	var cleaned []string
	for _, s := range req.Symptoms {
		if strings.TrimSpace(s) != "" {
			cleaned = append(cleaned, s)
		}
	}

	res, err := c.knowledgeService.MatchDiseases(ctx.Context(), cleaned)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success match diseases", res))
}
