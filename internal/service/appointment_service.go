package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"telemed-be/internal/dto"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"
	"telemed-be/internal/pkg/logger"
	"telemed-be/internal/pkg/mailer"
	"telemed-be/internal/repository"
	"telemed-be/pkg/events"
	pktNats "telemed-be/pkg/nats"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Two appointments of the same doctor closer than this are considered
// double-booked.
const appointmentSlot = 30 * time.Minute

type IAppointmentService interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListByPatient(ctx context.Context, patientId uuid.UUID) ([]dto.AppointmentResponse, error)
	ListByDoctor(ctx context.Context, doctorId uuid.UUID) ([]dto.AppointmentResponse, error)
}

type appointmentService struct {
	appointments  repository.AppointmentRepository
	patients      repository.PatientRepository
	users         repository.UserRepository
	notifications repository.NotificationRepository
	delivery      NotificationDelivery
	emailService  mailer.IEmailService
	publisher     *pktNats.Publisher
	log           logger.ILogger
}

func NewAppointmentService(
	appointments repository.AppointmentRepository,
	patients repository.PatientRepository,
	users repository.UserRepository,
	notifications repository.NotificationRepository,
	delivery NotificationDelivery,
	emailService mailer.IEmailService,
	publisher *pktNats.Publisher,
	log logger.ILogger,
) IAppointmentService {
	return &appointmentService{
		appointments:  appointments,
		patients:      patients,
		users:         users,
		notifications: notifications,
		delivery:      delivery,
		emailService:  emailService,
		publisher:     publisher,
		log:           log,
	}
}

func (s *appointmentService) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if req.ScheduledAt.Before(time.Now()) {
		return nil, apperror.InvalidInput("appointment cannot be scheduled in the past", nil)
	}

	patient, err := s.patients.GetByID(ctx, req.PatientId)
	if err != nil {
		return nil, apperror.Internal("failed to look up patient", err)
	}
	if patient == nil {
		return nil, apperror.NotFound("patient not found", nil)
	}

	if req.DoctorId != nil {
		overlapping, err := s.appointments.FindOverlapping(ctx, *req.DoctorId,
			req.ScheduledAt.Add(-appointmentSlot), req.ScheduledAt.Add(appointmentSlot))
		if err != nil {
			return nil, apperror.Internal("failed to check doctor availability", err)
		}
		if len(overlapping) > 0 {
			return nil, apperror.Conflict("doctor is not available at this time", nil)
		}
	}

	appointment := &model.Appointment{
		PatientId:   req.PatientId,
		DoctorId:    req.DoctorId,
		StructureId: req.StructureId,
		ScheduledAt: req.ScheduledAt,
		Reason:      optional(req.Reason),
		Status:      model.AppointmentStatusPlanned,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, apperror.Internal("failed to create appointment", err)
	}

	s.notify(ctx, patient, appointment, events.TypeAppointmentScheduled,
		"Rendez-vous planifié",
		fmt.Sprintf("Votre rendez-vous du %s a été enregistré.", appointment.ScheduledAt.Format("02/01/2006 à 15h04")))

	res := appointmentToDTO(appointment)
	return &res, nil
}

func (s *appointmentService) GetByID(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up appointment", err)
	}
	if appointment == nil {
		return nil, apperror.NotFound("appointment not found", nil)
	}
	res := appointmentToDTO(appointment)
	return &res, nil
}

func (s *appointmentService) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to look up appointment", err)
	}
	if appointment == nil {
		return nil, apperror.NotFound("appointment not found", nil)
	}
	if appointment.Status == model.AppointmentStatusCancelled {
		return nil, apperror.Conflict("cancelled appointments cannot be modified", nil)
	}

	fields := map[string]interface{}{}
	if req.DoctorId != nil {
		fields["doctor_id"] = *req.DoctorId
	}
	if req.StructureId != nil {
		fields["structure_id"] = *req.StructureId
	}
	if req.ScheduledAt != nil {
		if req.ScheduledAt.Before(time.Now()) {
			return nil, apperror.InvalidInput("appointment cannot be moved to the past", nil)
		}
		fields["scheduled_at"] = *req.ScheduledAt
	}
	if req.Reason != nil {
		fields["reason"] = *req.Reason
	}
	if req.Status != nil {
		fields["status"] = *req.Status
	}

	if len(fields) > 0 {
		if err := s.appointments.UpdateFields(ctx, id, fields); err != nil {
			return nil, apperror.Internal("failed to update appointment", err)
		}
	}

	updated, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, apperror.Internal("failed to reload appointment", err)
	}

	if req.Status != nil && *req.Status != appointment.Status {
		s.onStatusChange(ctx, updated)
	}

	res := appointmentToDTO(updated)
	return &res, nil
}

func (s *appointmentService) Cancel(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	status := model.AppointmentStatusCancelled
	return s.Update(ctx, id, &dto.UpdateAppointmentRequest{Status: &status})
}

func (s *appointmentService) ListByPatient(ctx context.Context, patientId uuid.UUID) ([]dto.AppointmentResponse, error) {
	appointments, err := s.appointments.ListByPatient(ctx, patientId)
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	return appointmentsToDTO(appointments), nil
}

func (s *appointmentService) ListByDoctor(ctx context.Context, doctorId uuid.UUID) ([]dto.AppointmentResponse, error) {
	appointments, err := s.appointments.ListByDoctor(ctx, doctorId)
	if err != nil {
		return nil, apperror.Internal("failed to list appointments", err)
	}
	return appointmentsToDTO(appointments), nil
}

func (s *appointmentService) onStatusChange(ctx context.Context, appointment *model.Appointment) {
	patient, err := s.patients.GetByID(ctx, appointment.PatientId)
	if err != nil || patient == nil {
		s.log.Warn("service.appointment", "cannot notify status change, patient lookup failed", map[string]interface{}{
			"appointment_id": appointment.Id.String(),
		})
		return
	}

	user, _ := s.users.GetByID(ctx, patient.UserId)

	switch appointment.Status {
	case model.AppointmentStatusConfirmed:
		if user != nil && s.emailService != nil {
			if err := s.emailService.SendAppointmentConfirmation(user.Email, patient.FirstName, appointment.ScheduledAt, deref(appointment.Reason)); err != nil {
				s.log.Warn("service.appointment", "confirmation email failed", map[string]interface{}{
					"appointment_id": appointment.Id.String(),
					"error":          err.Error(),
				})
			}
		}
		s.notify(ctx, patient, appointment, events.TypeAppointmentStatusChanged,
			"Rendez-vous confirmé",
			fmt.Sprintf("Votre rendez-vous du %s est confirmé.", appointment.ScheduledAt.Format("02/01/2006 à 15h04")))
	case model.AppointmentStatusCancelled:
		if user != nil && s.emailService != nil {
			if err := s.emailService.SendAppointmentCancellation(user.Email, patient.FirstName, appointment.ScheduledAt); err != nil {
				s.log.Warn("service.appointment", "cancellation email failed", map[string]interface{}{
					"appointment_id": appointment.Id.String(),
					"error":          err.Error(),
				})
			}
		}
		s.notify(ctx, patient, appointment, events.TypeAppointmentStatusChanged,
			"Rendez-vous annulé",
			fmt.Sprintf("Votre rendez-vous du %s a été annulé.", appointment.ScheduledAt.Format("02/01/2006 à 15h04")))
	}
}

// notify records an in-app notification and publishes the event on the
// bus. Neither failure blocks the main flow.
func (s *appointmentService) notify(ctx context.Context, patient *model.Patient, appointment *model.Appointment, eventType, title, message string) {
	metadata, _ := json.Marshal(map[string]string{
		"appointment_id": appointment.Id.String(),
		"status":         appointment.Status,
	})
	notification := &model.Notification{
		UserId:   patient.UserId,
		TypeCode: eventType,
		Title:    title,
		Message:  message,
		Metadata: datatypes.JSON(metadata),
	}
	if err := s.notifications.CreateNotification(ctx, notification); err != nil {
		s.log.Warn("service.appointment", "failed to store notification", map[string]interface{}{
			"appointment_id": appointment.Id.String(),
			"error":          err.Error(),
		})
	} else if s.delivery != nil {
		s.delivery.Send(patient.UserId, *notification)
	}

	if s.publisher != nil {
		event := events.New(eventType, map[string]interface{}{
			"appointment_id": appointment.Id.String(),
			"patient_id":     appointment.PatientId.String(),
			"status":         appointment.Status,
			"scheduled_at":   appointment.ScheduledAt.Format(time.RFC3339),
		})
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.log.Warn("service.appointment", "failed to publish event", map[string]interface{}{
				"appointment_id": appointment.Id.String(),
				"error":          err.Error(),
			})
		}
	}
}

func appointmentToDTO(a *model.Appointment) dto.AppointmentResponse {
	return dto.AppointmentResponse{
		Id:          a.Id,
		PatientId:   a.PatientId,
		DoctorId:    a.DoctorId,
		StructureId: a.StructureId,
		ScheduledAt: a.ScheduledAt,
		Reason:      deref(a.Reason),
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
	}
}

func appointmentsToDTO(appointments []model.Appointment) []dto.AppointmentResponse {
	out := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		out[i] = appointmentToDTO(&appointments[i])
	}
	return out
}
