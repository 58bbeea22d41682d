package controller

import (
	"telemed-be/internal/dto"
	"telemed-be/internal/pkg/serverutils"
	"telemed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPatientController interface {
	RegisterRoutes(r fiber.Router)
}

type patientController struct {
	patientService service.IPatientService
}

func NewPatientController(patientService service.IPatientService) IPatientController {
	return &patientController{
		patientService: patientService,
	}
}

func (c *patientController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/patients/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Post("/", c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)

	h.Post("/:id/health-status", c.LogHealthStatus)
	h.Post("/:id/wearable-data", c.PushWearableData)
	h.Post("/:id/health-summary", c.HealthSummary)
	h.Post("/:id/health-plan", c.HealthPlan)
}

func (c *patientController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePatientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.patientService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create patient", res))
}

func (c *patientController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	res, err := c.patientService.GetByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show patient", res))
}

func (c *patientController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	var req dto.UpdatePatientRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.patientService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update patient", res))
}

func (c *patientController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	if err := c.patientService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete patient", nil))
}

func (c *patientController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, total, err := c.patientService.List(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list patients", fiber.Map{
		"items": res,
		"total": total,
	}))
}

func (c *patientController) LogHealthStatus(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	var req dto.LogHealthStatusRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.patientService.LogHealthStatus(ctx.Context(), id, &req); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse[any]("Success log health status", nil))
}

func (c *patientController) PushWearableData(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	var req dto.PushWearableDataRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.patientService.PushWearableData(ctx.Context(), id, &req); err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse[any]("Success push wearable data", nil))
}

func (c *patientController) HealthSummary(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	var req dto.HealthSummaryRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.patientService.GenerateHealthSummary(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate health summary", res))
}

func (c *patientController) HealthPlan(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	var req dto.HealthPlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	res, err := c.patientService.GenerateHealthPlan(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate health plan", res))
}
