package controller

import (
	"telemed-be/internal/dto"
	"telemed-be/internal/pkg/serverutils"
	"telemed-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ITeleconsultationController interface {
	RegisterRoutes(r fiber.Router)
}

type teleconsultationController struct {
	teleconsultationService service.ITeleconsultationService
}

func NewTeleconsultationController(teleconsultationService service.ITeleconsultationService) ITeleconsultationController {
	return &teleconsultationController{
		teleconsultationService: teleconsultationService,
	}
}

func (c *teleconsultationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/teleconsultations/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Post("/", c.Create)
	h.Get("/patient/:patient_id", c.ListByPatient)
	h.Get("/doctor/:doctor_id", c.ListByDoctor)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Post("/:id/transcript", c.AppendTranscript)
}

func (c *teleconsultationController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateTeleconsultationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.teleconsultationService.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create teleconsultation", res))
}

func (c *teleconsultationController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid teleconsultation id")
	}

	res, err := c.teleconsultationService.GetByID(ctx.Context(), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show teleconsultation", res))
}

func (c *teleconsultationController) Update(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid teleconsultation id")
	}

	var req dto.UpdateTeleconsultationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.teleconsultationService.Update(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update teleconsultation", res))
}

func (c *teleconsultationController) AppendTranscript(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid teleconsultation id")
	}

	var req dto.AppendTranscriptRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.teleconsultationService.AppendTranscript(ctx.Context(), id, &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success append transcript", res))
}

func (c *teleconsultationController) ListByPatient(ctx *fiber.Ctx) error {
	patientId, err := uuid.Parse(ctx.Params("patient_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid patient id")
	}

	res, err := c.teleconsultationService.ListByPatient(ctx.Context(), patientId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list teleconsultations", res))
}

func (c *teleconsultationController) ListByDoctor(ctx *fiber.Ctx) error {
	doctorId, err := uuid.Parse(ctx.Params("doctor_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid doctor id")
	}

	res, err := c.teleconsultationService.ListByDoctor(ctx.Context(), doctorId)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success list teleconsultations", res))
}
