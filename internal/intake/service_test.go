package intake

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/romainfalanga/Romainflg/internal/mailer"
	"github.com/romainfalanga/Romainflg/internal/worker"
	"github.com/romainfalanga/Romainflg/models"
)

type memStore struct {
	rows []models.Application
	err  error
}

func (m *memStore) InsertApplication(app models.Application) (*models.Application, error) {
	if m.err != nil {
		return nil, m.err
	}
	app.ID = "app-1"
	app.CreatedAt = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	m.rows = append(m.rows, app)
	return &app, nil
}

type memDispatcher struct {
	jobs []worker.Job
	err  error
}

func (d *memDispatcher) Submit(job worker.Job) error {
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, job)
	return nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestService(store *memStore, dispatcher *memDispatcher) *Service {
	svc := NewService(store, dispatcher, &mailer.LogSender{Logger: quietLogger()}, Options{
		NotifyTo:   "owner@example.com",
		NotifyFrom: "noreply@romainflg.com",
	}, quietLogger())
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return svc
}

func validSubmission() Submission {
	return Submission{
		ProjectName: "Chess 13",
		Name:        "Alice",
		Email:       "alice@example.com",
		Position:    "CM",
		Telegram:    "@alice",
		Motivation:  "I love chess",
	}
}

func TestSubmit_StoresWithNullOptionalFields(t *testing.T) {
	store := &memStore{}
	dispatcher := &memDispatcher{}
	svc := newTestService(store, dispatcher)

	res, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)

	require.Len(t, store.rows, 1)
	row := store.rows[0]
	assert.Equal(t, models.PositionCM, row.Position)
	assert.Nil(t, row.TikTok)
	assert.Nil(t, row.Creativity)
	assert.Nil(t, row.UniverseModel)

	assert.True(t, res.EmailPrepared)
	assert.True(t, res.EmailQueued)
	require.Len(t, dispatcher.jobs, 1)

	job := dispatcher.jobs[0].(*mailer.DeliveryJob)
	assert.Equal(t, "notify-app-1", job.ID())
	assert.Equal(t, "Nouvelle candidature CM - Chess 13", job.Email.Subject)
	assert.Equal(t, []string{"owner@example.com"}, job.Email.To)
	assert.Contains(t, job.Email.HTML, "Pas de TikTok fourni")
	assert.Contains(t, job.Email.HTML, "01/03/2024 10:00:00")
}

func TestSubmit_TrimsAndKeepsOptionalFields(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, &memDispatcher{})

	sub := validSubmission()
	sub.Name = "  Alice  "
	sub.Position = " coo "
	sub.TikTok = "@alice.tt"
	sub.Creativity = "Making new links"

	_, err := svc.Submit(context.Background(), sub)
	require.NoError(t, err)

	row := store.rows[0]
	assert.Equal(t, "Alice", row.Name)
	assert.Equal(t, models.PositionCOO, row.Position)
	require.NotNil(t, row.TikTok)
	assert.Equal(t, "@alice.tt", *row.TikTok)
	require.NotNil(t, row.Creativity)
	assert.Nil(t, row.UniverseModel)
}

func TestSubmit_InvalidPositionIsRejectedBeforeStorage(t *testing.T) {
	store := &memStore{}
	dispatcher := &memDispatcher{}
	svc := newTestService(store, dispatcher)

	sub := validSubmission()
	sub.Position = "CTO"

	_, err := svc.Submit(context.Background(), sub)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidSubmission)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "Position", verrs[0].Field())
	assert.Empty(t, store.rows)
	assert.Empty(t, dispatcher.jobs)
}

func TestSubmit_MissingRequiredFields(t *testing.T) {
	svc := newTestService(&memStore{}, &memDispatcher{})

	_, err := svc.Submit(context.Background(), Submission{Position: "CM"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.GreaterOrEqual(t, len(verrs), 5)
}

func TestSubmit_StoreFailureSendsNoEmail(t *testing.T) {
	store := &memStore{err: errors.New("insert violates check constraint")}
	dispatcher := &memDispatcher{}
	svc := newTestService(store, dispatcher)

	_, err := svc.Submit(context.Background(), validSubmission())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidSubmission)
	assert.Empty(t, dispatcher.jobs)
}

func TestSubmit_CancelledContextStoresNothing(t *testing.T) {
	store := &memStore{}
	dispatcher := &memDispatcher{}
	svc := newTestService(store, dispatcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Submit(ctx, validSubmission())
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrInvalidSubmission)
	assert.Empty(t, store.rows)
	assert.Empty(t, dispatcher.jobs)
}

func TestSubmit_QueueFullStillSucceeds(t *testing.T) {
	store := &memStore{}
	svc := newTestService(store, &memDispatcher{err: worker.ErrQueueFull})

	res, err := svc.Submit(context.Background(), validSubmission())
	require.NoError(t, err)
	assert.Len(t, store.rows, 1)
	assert.True(t, res.EmailPrepared)
	assert.False(t, res.EmailQueued)
}

func TestRenderNotification_EscapesUserInput(t *testing.T) {
	tiktok := "@tt"
	universe := "A world of <b>pieces</b>"
	app := models.Application{
		ProjectName:   "Chess Value",
		Name:          "<script>alert(1)</script>",
		Email:         "bob@example.com",
		Position:      models.PositionCOO,
		Telegram:      "@bob",
		TikTok:        &tiktok,
		Motivation:    "line one\nline two",
		UniverseModel: &universe,
	}

	html, err := RenderNotification(app, time.Date(2024, 7, 14, 12, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "Consulter le TikTok")
	assert.Contains(t, html, "Modèle d'univers imaginé")
	assert.NotContains(t, html, "Définition de la créativité")
	assert.Contains(t, html, "position-badge coo")
	assert.Contains(t, html, "14/07/2024 14:30:00")
	assert.Equal(t, "Nouvelle candidature COO - Chess Value", Subject(app))
}
