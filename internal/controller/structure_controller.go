package controller

import (
	"strconv"

	"telemed-be/internal/constant"
	"telemed-be/internal/dto"
	"telemed-be/internal/pkg/serverutils"
	"telemed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IStructureController interface {
	RegisterRoutes(r fiber.Router)
}

type structureController struct {
	structureService service.IStructureService
}

func NewStructureController(structureService service.IStructureService) IStructureController {
	return &structureController{
		structureService: structureService,
	}
}

func (c *structureController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/structures/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Get("/nearby", c.Nearby)
	h.Get("/", c.List)
	h.Get("/:id", c.Show)

	admin := serverutils.RequireRoles(constant.RoleAdmin)
	h.Post("/", admin, c.Create)
	h.Put("/:id", admin, c.Update)
	h.Delete("/:id", admin, c.Delete)
	h.Post("/:id/stats-report", admin, c.StatsReport)
}

func (c *structureController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateStructureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.structureService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create structure", res))
}

func (c *structureController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid structure id")
	}

	res, err := c.structureService.GetByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show structure", res))
}

func (c *structureController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid structure id")
	}

	var req dto.UpdateStructureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.structureService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update structure", res))
}

func (c *structureController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid structure id")
	}

	if err := c.structureService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete structure", nil))
}

func (c *structureController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, total, err := c.structureService.List(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list structures", fiber.Map{
		"items": res,
		"total": total,
	}))
}

func (c *structureController) Nearby(ctx *fiber.Ctx) error {
	lat, err := strconv.ParseFloat(ctx.Query("lat"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid latitude")
	}
	lon, err := strconv.ParseFloat(ctx.Query("lon"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid longitude")
	}
	radiusKm, err := strconv.ParseFloat(ctx.Query("radius_km", "10"), 64)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid radius")
	}

	res, err := c.structureService.FindNearby(ctx.Context(), lat, lon, radiusKm, ctx.Query("type"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success find nearby structures", res))
}

func (c *structureController) StatsReport(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid structure id")
	}

	var req dto.StatsReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.structureService.GenerateStatsReport(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate stats report", res))
}
