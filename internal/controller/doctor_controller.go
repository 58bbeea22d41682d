package controller

import (
	"telemed-be/internal/constant"
	"telemed-be/internal/dto"
	"telemed-be/internal/pkg/serverutils"
	"telemed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDoctorController interface {
	RegisterRoutes(r fiber.Router)
}

type doctorController struct {
	doctorService service.IDoctorService
}

func NewDoctorController(doctorService service.IDoctorService) IDoctorController {
	return &doctorController{
		doctorService: doctorService,
	}
}

func (c *doctorController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/doctors/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Post("/", serverutils.RequireRoles(constant.RoleAdmin), c.Create)
	h.Get("/", c.List)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", serverutils.RequireRoles(constant.RoleAdmin), c.Delete)

	reports := serverutils.RequireRoles(constant.RoleDoctor, constant.RoleAdmin)
	h.Post("/:id/reports", reports, c.GenerateReport)
	h.Get("/reports/:id", reports, c.ShowReport)
	h.Get("/reports/patient/:patient_id", reports, c.ReportsByPatient)
}

func (c *doctorController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateDoctorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.doctorService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create doctor", res))
}

func (c *doctorController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid doctor id")
	}

	res, err := c.doctorService.GetByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show doctor", res))
}

func (c *doctorController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid doctor id")
	}

	var req dto.UpdateDoctorRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.doctorService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update doctor", res))
}

func (c *doctorController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid doctor id")
	}

	if err := c.doctorService.Delete(ctx.Context(), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete doctor", nil))
}

func (c *doctorController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, total, err := c.doctorService.List(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list doctors", fiber.Map{
		"items": res,
		"total": total,
	}))
}

func (c *doctorController) GenerateReport(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid doctor id")
	}

	var req dto.GenerateReportRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.doctorService.GenerateReport(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success generate report", res))
}

func (c *doctorController) ShowReport(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid report id")
	}

	res, err := c.doctorService.GetReport(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show report", res))
}

func (c *doctorController) ReportsByPatient(ctx *fiber.Ctx) error {
	patientId, err := uuid.Parse(ctx.Params("patient_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	res, err := c.doctorService.GetReportsByPatient(ctx.Context(), patientId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list reports", res))
}
