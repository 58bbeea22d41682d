package controller

import (
	"telemed-be/internal/dto"
	"telemed-be/internal/pkg/serverutils"
	"telemed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAppointmentController interface {
	RegisterRoutes(r fiber.Router)
}

type appointmentController struct {
	appointmentService service.IAppointmentService
}

func NewAppointmentController(appointmentService service.IAppointmentService) IAppointmentController {
	return &appointmentController{
		appointmentService: appointmentService,
	}
}

func (c *appointmentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/appointments/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Post("/", c.Create)
	h.Get("/patient/:patient_id", c.ListByPatient)
	h.Get("/doctor/:doctor_id", c.ListByDoctor)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Post("/:id/cancel", c.Cancel)
}

func (c *appointmentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.appointmentService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create appointment", res))
}

func (c *appointmentController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid appointment id")
	}

	res, err := c.appointmentService.GetByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show appointment", res))
}

func (c *appointmentController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid appointment id")
	}

	var req dto.UpdateAppointmentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.appointmentService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update appointment", res))
}

func (c *appointmentController) Cancel(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid appointment id")
	}

	res, err := c.appointmentService.Cancel(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success cancel appointment", res))
}

func (c *appointmentController) ListByPatient(ctx *fiber.Ctx) error {
	patientId, err := uuid.Parse(ctx.Params("patient_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	res, err := c.appointmentService.ListByPatient(ctx.Context(), patientId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list appointments", res))
}

func (c *appointmentController) ListByDoctor(ctx *fiber.Ctx) error {
	doctorId, err := uuid.Parse(ctx.Params("doctor_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid doctor id")
	}

	res, err := c.appointmentService.ListByDoctor(ctx.Context(), doctorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list appointments", res))
}
