package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEmail() Email {
	return Email{
		From:    "noreply@romainflg.com",
		To:      []string{"owner@example.com"},
		Subject: "Nouvelle candidature CM - Chess 13",
		HTML:    "<p>hello</p>",
	}
}

func TestLogSender_LogsEnvelope(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	err := (&LogSender{Logger: logger}).Send(context.Background(), testEmail())
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Nouvelle candidature CM - Chess 13", entry["subject"])
	assert.EqualValues(t, len("<p>hello</p>"), entry["html_bytes"])
}

func newTestResendSender(t *testing.T, baseURL string) *ResendSender {
	t.Helper()
	u, err := url.Parse(baseURL + "/")
	require.NoError(t, err)
	sender := NewResendSender("re_test")
	sender.Client().BaseURL = u
	return sender
}

func TestResendSender_PostsEmail(t *testing.T) {
	var got Email
	var auth, path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		path = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	sender := newTestResendSender(t, srv.URL)

	require.NoError(t, sender.Send(context.Background(), testEmail()))
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "/emails", path)
	assert.Equal(t, testEmail(), got)
}

func TestResendSender_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"domain not verified"}`))
	}))
	defer srv.Close()

	sender := newTestResendSender(t, srv.URL)

	err := sender.Send(context.Background(), testEmail())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "domain not verified")
}

type failingSender struct{}

func (failingSender) Send(ctx context.Context, email Email) error {
	return errors.New("smtp down")
}

func TestDeliveryJob_WrapsSenderError(t *testing.T) {
	job := &DeliveryJob{JobID: "notify-1", Email: testEmail(), Sender: failingSender{}}
	assert.Equal(t, "notify-1", job.ID())

	err := job.Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "notify-1")
	assert.Contains(t, err.Error(), "smtp down")
}
