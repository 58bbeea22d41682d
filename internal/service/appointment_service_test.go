package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"telemed-be/internal/dto"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct{}

func (testLogger) Debug(module, message string, details map[string]interface{}) {}
func (testLogger) Info(module, message string, details map[string]interface{})  {}
func (testLogger) Warn(module, message string, details map[string]interface{})  {}
func (testLogger) Error(module, message string, details map[string]interface{}) {}
func (testLogger) Sync() error                                                  { return nil }

type fakeAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*model.Appointment
	overlapping  []model.Appointment
	overlapFrom  time.Time
	overlapTo    time.Time
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appointments: map[uuid.UUID]*model.Appointment{}}
}

func (r *fakeAppointmentRepo) Create(ctx context.Context, appointment *model.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if appointment.Id == uuid.Nil {
		appointment.Id = uuid.New()
	}
	copied := *appointment
	r.appointments[appointment.Id] = &copied
	return nil
}

func (r *fakeAppointmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return nil, nil
	}
	copied := *appointment
	return &copied, nil
}

func (r *fakeAppointmentRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	appointment, ok := r.appointments[id]
	if !ok {
		return errors.New("not found")
	}
	if v, ok := fields["scheduled_at"]; ok {
		appointment.ScheduledAt = v.(time.Time)
	}
	if v, ok := fields["status"]; ok {
		appointment.Status = v.(string)
	}
	if v, ok := fields["reason"]; ok {
		reason := v.(string)
		appointment.Reason = &reason
	}
	return nil
}

func (r *fakeAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.appointments, id)
	return nil
}

func (r *fakeAppointmentRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Appointment
	for _, appointment := range r.appointments {
		if appointment.PatientId == patientID {
			out = append(out, *appointment)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Appointment
	for _, appointment := range r.appointments {
		if appointment.DoctorId != nil && *appointment.DoctorId == doctorID {
			out = append(out, *appointment)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindOverlapping(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]model.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.overlapFrom = from
	r.overlapTo = to
	return r.overlapping, nil
}

type fakePatientRepo struct {
	patients map[uuid.UUID]*model.Patient
}

func newFakePatientRepo(patients ...*model.Patient) *fakePatientRepo {
	repo := &fakePatientRepo{patients: map[uuid.UUID]*model.Patient{}}
	for _, p := range patients {
		repo.patients[p.Id] = p
	}
	return repo
}

func (r *fakePatientRepo) Create(ctx context.Context, patient *model.Patient) error {
	if patient.Id == uuid.Nil {
		patient.Id = uuid.New()
	}
	r.patients[patient.Id] = patient
	return nil
}

func (r *fakePatientRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Patient, error) {
	return r.patients[id], nil
}

func (r *fakePatientRepo) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.Patient, error) {
	for _, p := range r.patients {
		if p.UserId == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (r *fakePatientRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	return nil
}

func (r *fakePatientRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) List(ctx context.Context, limit, offset int) ([]model.Patient, int64, error) {
	var out []model.Patient
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePatientRepo) CreateHealthStatusLog(ctx context.Context, log *model.HealthStatusLog) error {
	return nil
}

func (r *fakePatientRepo) GetHealthStatusLogs(ctx context.Context, patientID uuid.UUID, since time.Time) ([]model.HealthStatusLog, error) {
	return nil, nil
}

func (r *fakePatientRepo) CreateWearableData(ctx context.Context, data *model.WearableData) error {
	return nil
}

func (r *fakePatientRepo) GetWearableData(ctx context.Context, patientID uuid.UUID, since time.Time) ([]model.WearableData, error) {
	return nil, nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	for _, u := range users {
		repo.users[u.Id] = u
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	r.users[user.Id] = user
	return nil
}

func (r *fakeUserRepo) GetByRole(ctx context.Context, role string) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	mu      sync.Mutex
	created []model.Notification
}

func (r *fakeNotificationRepo) CreateNotification(ctx context.Context, notification *model.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification.Id == uuid.Nil {
		notification.Id = uuid.New()
	}
	r.created = append(r.created, *notification)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Notification
	for _, n := range r.created {
		if n.UserId == userID {
			out = append(out, n)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeNotificationRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, notificationID uuid.UUID) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type fakeDelivery struct {
	mu        sync.Mutex
	sent      []model.Notification
	broadcast []model.Notification
}

func (d *fakeDelivery) Send(userID uuid.UUID, notification model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, notification)
}

func (d *fakeDelivery) Broadcast(notification model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.broadcast = append(d.broadcast, notification)
}

type fakeMailer struct {
	confirmations []string
	cancellations []string
	summaries     []string
}

func (m *fakeMailer) SendAppointmentConfirmation(toEmail, patientName string, scheduledAt time.Time, reason string) error {
	m.confirmations = append(m.confirmations, toEmail)
	return nil
}

func (m *fakeMailer) SendAppointmentCancellation(toEmail, patientName string, scheduledAt time.Time) error {
	m.cancellations = append(m.cancellations, toEmail)
	return nil
}

func (m *fakeMailer) SendTeleconsultationSummary(toEmail, patientName, summary string) error {
	m.summaries = append(m.summaries, toEmail)
	return nil
}

type appointmentFixture struct {
	service       IAppointmentService
	appointments  *fakeAppointmentRepo
	notifications *fakeNotificationRepo
	delivery      *fakeDelivery
	mailer        *fakeMailer
	patient       *model.Patient
	user          *model.User
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()

	user := &model.User{Id: uuid.New(), Email: "patient@example.com", Role: "patient"}
	patient := &model.Patient{Id: uuid.New(), UserId: user.Id, FirstName: "Awa", LastName: "Diallo"}

	appointments := newFakeAppointmentRepo()
	notifications := &fakeNotificationRepo{}
	delivery := &fakeDelivery{}
	mailer := &fakeMailer{}

	svc := NewAppointmentService(
		appointments,
		newFakePatientRepo(patient),
		newFakeUserRepo(user),
		notifications,
		delivery,
		mailer,
		nil,
		testLogger{},
	)

	return &appointmentFixture{
		service:       svc,
		appointments:  appointments,
		notifications: notifications,
		delivery:      delivery,
		mailer:        mailer,
		patient:       patient,
		user:          user,
	}
}

func TestAppointmentCreateRejectsPastSlot(t *testing.T) {
	fx := newAppointmentFixture(t)

	_, err := fx.service.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientId:   fx.patient.Id,
		ScheduledAt: time.Now().Add(-time.Hour),
	})

	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
	assert.Empty(t, fx.appointments.appointments)
}

func TestAppointmentCreateUnknownPatient(t *testing.T) {
	fx := newAppointmentFixture(t)

	_, err := fx.service.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientId:   uuid.New(),
		ScheduledAt: time.Now().Add(time.Hour),
	})

	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestAppointmentCreateDoubleBooking(t *testing.T) {
	fx := newAppointmentFixture(t)
	doctorID := uuid.New()
	fx.appointments.overlapping = []model.Appointment{{Id: uuid.New(), DoctorId: &doctorID}}

	scheduledAt := time.Now().Add(2 * time.Hour)
	_, err := fx.service.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientId:   fx.patient.Id,
		DoctorId:    &doctorID,
		ScheduledAt: scheduledAt,
	})

	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.WithinDuration(t, scheduledAt.Add(-appointmentSlot), fx.appointments.overlapFrom, time.Second)
	assert.WithinDuration(t, scheduledAt.Add(appointmentSlot), fx.appointments.overlapTo, time.Second)
	assert.Empty(t, fx.appointments.appointments)
}

func TestAppointmentCreateNotifiesPatient(t *testing.T) {
	fx := newAppointmentFixture(t)

	res, err := fx.service.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientId:   fx.patient.Id,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Reason:      "Suivi tension",
	})

	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusPlanned, res.Status)
	assert.Equal(t, "Suivi tension", res.Reason)

	require.Len(t, fx.notifications.created, 1)
	assert.Equal(t, fx.patient.UserId, fx.notifications.created[0].UserId)
	assert.Equal(t, "Rendez-vous planifié", fx.notifications.created[0].Title)
	require.Len(t, fx.delivery.sent, 1)
}

func TestAppointmentUpdateCancelledIsImmutable(t *testing.T) {
	fx := newAppointmentFixture(t)

	res, err := fx.service.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientId:   fx.patient.Id,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	_, err = fx.service.Cancel(context.Background(), res.Id)
	require.NoError(t, err)

	newTime := time.Now().Add(48 * time.Hour)
	_, err = fx.service.Update(context.Background(), res.Id, &dto.UpdateAppointmentRequest{ScheduledAt: &newTime})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestAppointmentUpdateRejectsPastReschedule(t *testing.T) {
	fx := newAppointmentFixture(t)

	res, err := fx.service.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientId:   fx.patient.Id,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	_, err = fx.service.Update(context.Background(), res.Id, &dto.UpdateAppointmentRequest{ScheduledAt: &past})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
}

func TestAppointmentConfirmationSendsEmail(t *testing.T) {
	fx := newAppointmentFixture(t)

	res, err := fx.service.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientId:   fx.patient.Id,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	status := model.AppointmentStatusConfirmed
	updated, err := fx.service.Update(context.Background(), res.Id, &dto.UpdateAppointmentRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, updated.Status)

	require.Len(t, fx.mailer.confirmations, 1)
	assert.Equal(t, fx.user.Email, fx.mailer.confirmations[0])
}

func TestAppointmentCancellationSendsEmail(t *testing.T) {
	fx := newAppointmentFixture(t)

	res, err := fx.service.Create(context.Background(), &dto.CreateAppointmentRequest{
		PatientId:   fx.patient.Id,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	cancelled, err := fx.service.Cancel(context.Background(), res.Id)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusCancelled, cancelled.Status)

	require.Len(t, fx.mailer.cancellations, 1)

	// scheduling + cancellation
	assert.Len(t, fx.notifications.created, 2)
	assert.Equal(t, "Rendez-vous annulé", fx.notifications.created[1].Title)
}
