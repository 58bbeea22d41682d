package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"telemed-be/internal/dto"
	"telemed-be/internal/model"
	"telemed-be/internal/pkg/apperror"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTeleconsultationRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*model.TeleconsultationSession
}

func newFakeTeleconsultationRepo() *fakeTeleconsultationRepo {
	return &fakeTeleconsultationRepo{sessions: map[uuid.UUID]*model.TeleconsultationSession{}}
}

func (r *fakeTeleconsultationRepo) Create(ctx context.Context, session *model.TeleconsultationSession) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if session.Id == uuid.Nil {
		session.Id = uuid.New()
	}
	copied := *session
	r.sessions[session.Id] = &copied
	return nil
}

func (r *fakeTeleconsultationRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.TeleconsultationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (r *fakeTeleconsultationRepo) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[id]
	if !ok {
		return errors.New("not found")
	}
	if v, ok := fields["status"]; ok {
		session.Status = v.(string)
	}
	if v, ok := fields["notes"]; ok {
		notes := v.(string)
		session.Notes = &notes
	}
	if v, ok := fields["transcript"]; ok {
		transcript := v.(string)
		session.Transcript = &transcript
	}
	if v, ok := fields["summary"]; ok {
		summary := v.(string)
		session.Summary = &summary
	}
	return nil
}

func (r *fakeTeleconsultationRepo) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]model.TeleconsultationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TeleconsultationSession
	for _, session := range r.sessions {
		if session.PatientId == patientID {
			out = append(out, *session)
		}
	}
	return out, nil
}

func (r *fakeTeleconsultationRepo) ListByDoctor(ctx context.Context, doctorID uuid.UUID) ([]model.TeleconsultationSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.TeleconsultationSession
	for _, session := range r.sessions {
		if session.DoctorId == doctorID {
			out = append(out, *session)
		}
	}
	return out, nil
}

type teleconsultationFixture struct {
	service  ITeleconsultationService
	sessions *fakeTeleconsultationRepo
	pubSub   *gochannel.GoChannel
	patient  *model.Patient
}

func newTeleconsultationFixture(t *testing.T) *teleconsultationFixture {
	t.Helper()

	patient := &model.Patient{Id: uuid.New(), UserId: uuid.New(), FirstName: "Moussa"}
	sessions := newFakeTeleconsultationRepo()
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = pubSub.Close() })

	svc := NewTeleconsultationService(sessions, newFakePatientRepo(patient), pubSub, nil, testLogger{})

	return &teleconsultationFixture{service: svc, sessions: sessions, pubSub: pubSub, patient: patient}
}

func (fx *teleconsultationFixture) createSession(t *testing.T) *dto.TeleconsultationResponse {
	t.Helper()
	res, err := fx.service.Create(context.Background(), &dto.CreateTeleconsultationRequest{
		PatientId: fx.patient.Id,
		DoctorId:  uuid.New(),
		StartedAt: time.Now().Add(time.Hour),
	})
	require.NoError(t, err)
	return res
}

func (fx *teleconsultationFixture) setStatus(t *testing.T, id uuid.UUID, status string) (*dto.TeleconsultationResponse, error) {
	t.Helper()
	return fx.service.Update(context.Background(), id, &dto.UpdateTeleconsultationRequest{Status: &status})
}

func TestTeleconsultationStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		path    []string
		wantErr bool
	}{
		{name: "scheduled to ongoing", path: []string{model.TeleconsultationStatusOngoing}},
		{name: "scheduled to cancelled", path: []string{model.TeleconsultationStatusCancelled}},
		{name: "full consultation", path: []string{model.TeleconsultationStatusOngoing, model.TeleconsultationStatusFinished}},
		{name: "abandon mid call", path: []string{model.TeleconsultationStatusOngoing, model.TeleconsultationStatusCancelled}},
		{name: "scheduled straight to finished", path: []string{model.TeleconsultationStatusFinished}, wantErr: true},
		{name: "reopen finished", path: []string{model.TeleconsultationStatusOngoing, model.TeleconsultationStatusFinished, model.TeleconsultationStatusOngoing}, wantErr: true},
		{name: "revive cancelled", path: []string{model.TeleconsultationStatusCancelled, model.TeleconsultationStatusOngoing}, wantErr: true},
		{name: "same status is a no-op", path: []string{model.TeleconsultationStatusOngoing, model.TeleconsultationStatusOngoing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newTeleconsultationFixture(t)
			session := fx.createSession(t)

			var err error
			for _, status := range tt.path {
				_, err = fx.setStatus(t, session.Id, status)
				if err != nil {
					break
				}
			}

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestTeleconsultationAppendTranscript(t *testing.T) {
	fx := newTeleconsultationFixture(t)
	session := fx.createSession(t)

	res, err := fx.service.AppendTranscript(context.Background(), session.Id, &dto.AppendTranscriptRequest{
		Text: "Bonjour docteur, j'ai de la fièvre.",
	})
	require.NoError(t, err)
	assert.Equal(t, model.TeleconsultationStatusOngoing, res.Status)
	assert.Equal(t, "Bonjour docteur, j'ai de la fièvre.", res.Transcript)

	res, err = fx.service.AppendTranscript(context.Background(), session.Id, &dto.AppendTranscriptRequest{
		Text: "Depuis quand avez-vous ces symptômes ?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bonjour docteur, j'ai de la fièvre.\nDepuis quand avez-vous ces symptômes ?", res.Transcript)
}

func TestTeleconsultationAppendTranscriptClosedSession(t *testing.T) {
	fx := newTeleconsultationFixture(t)
	session := fx.createSession(t)

	_, err := fx.setStatus(t, session.Id, model.TeleconsultationStatusCancelled)
	require.NoError(t, err)

	_, err = fx.service.AppendTranscript(context.Background(), session.Id, &dto.AppendTranscriptRequest{Text: "trop tard"})
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
}

func TestTeleconsultationFinalTranscriptEnqueuesSummary(t *testing.T) {
	fx := newTeleconsultationFixture(t)
	session := fx.createSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	messages, err := fx.pubSub.Subscribe(ctx, SummarizeTopic)
	require.NoError(t, err)

	res, err := fx.service.AppendTranscript(context.Background(), session.Id, &dto.AppendTranscriptRequest{
		Text:    "Fin de la consultation.",
		IsFinal: true,
	})
	require.NoError(t, err)
	assert.Equal(t, model.TeleconsultationStatusFinished, res.Status)

	select {
	case msg := <-messages:
		var payload SummarizeSessionMessage
		require.NoError(t, json.Unmarshal(msg.Payload, &payload))
		assert.Equal(t, session.Id, payload.SessionId)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("no summarize message published")
	}
}

func TestTeleconsultationUnknownSession(t *testing.T) {
	fx := newTeleconsultationFixture(t)

	_, err := fx.service.GetByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}
