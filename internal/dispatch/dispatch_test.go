package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/educonnect-backend/internal/config"
	"github.com/stemsi/educonnect-backend/internal/model"
)

func samplePayload() *model.DispatchPayload {
	date := "2024-03-10"
	return &model.DispatchPayload{
		Timestamp: "2024-03-01T12:00:00.000Z",
		School:    model.PayloadSchool{Name: "EduConnect School", System: "ProjectEduConnect"},
		Student:   model.PayloadStudent{ID: "A001", Name: "Ana", Serie: "6º A"},
		Guardian:  model.PayloadGuardian{Name: "Carla", Email: "carla@email.com", Phone: "(11) 98765-4321"},
		Message: model.PayloadMessage{
			Content:          "Reunião sobre Ana em 10/03/2024.",
			OriginalTemplate: "Reunião sobre [NOME_DO_ALUNO] em [DATA].",
			EventDate:        &date,
		},
		Metadata: model.PayloadMetadata{
			SystemUser: "Professor",
			Channels:   []string{"email", "whatsapp"},
			Priority:   "normal",
			Category:   "comunicacao_escolar",
		},
	}
}

func TestWebhookDispatchDelivered(t *testing.T) {
	var got map[string]interface{}
	var headers http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		headers = r.Header.Clone()
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(srv.URL, "ProjectEduConnect", time.Second)
	d.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	res, err := d.Dispatch(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)

	assert.Equal(t, "application/json", headers.Get("Content-Type"))
	assert.Equal(t, "ProjectEduConnect", headers.Get("X-Source"))
	assert.Equal(t, "2024-03-01T12:00:00.000Z", headers.Get("X-Timestamp"))

	aluno := got["aluno"].(map[string]interface{})
	assert.Equal(t, "A001", aluno["id"])
	mensagem := got["mensagem"].(map[string]interface{})
	assert.Equal(t, "2024-03-10", mensagem["data_evento"])
	metadados := got["metadados"].(map[string]interface{})
	assert.Equal(t, []interface{}{"email", "whatsapp"}, metadados["canal_envio"])
}

func TestWebhookDispatchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow not active", http.StatusNotFound)
	}))
	defer srv.Close()

	d := NewWebhookDispatcher(srv.URL, "ProjectEduConnect", time.Second)
	res, err := d.Dispatch(context.Background(), samplePayload())

	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRejected))

	var rejected *RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, http.StatusNotFound, rejected.StatusCode)
	assert.Contains(t, rejected.Body, "workflow not active")
}

func TestWebhookDispatchTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	d := NewWebhookDispatcher(url, "ProjectEduConnect", time.Second)
	_, err := d.Dispatch(context.Background(), samplePayload())
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrRejected))
}

func TestWebhookDispatchHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewWebhookDispatcher(srv.URL, "ProjectEduConnect", time.Second)
	_, err := d.Dispatch(ctx, samplePayload())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSendgridDispatch(t *testing.T) {
	var auth string
	var mail map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/mail/send", r.URL.Path)
		auth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &mail)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewSendgridDispatcher("SG.key", "EduConnect", "noreply@escola.edu.br", "EduConnect School", time.Second)
	d.host = srv.URL

	res, err := d.Dispatch(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, http.StatusAccepted, res.StatusCode)
	assert.Equal(t, "Bearer SG.key", auth)

	personalizations := mail["personalizations"].([]interface{})
	p := personalizations[0].(map[string]interface{})
	assert.Equal(t, "[EduConnect School] Comunicado sobre Ana", p["subject"])
	to := p["to"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "carla@email.com", to["email"])
}

func TestSendgridDispatchRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	d := NewSendgridDispatcher("bad", "EduConnect", "noreply@escola.edu.br", "EduConnect School", time.Second)
	d.host = srv.URL

	_, err := d.Dispatch(context.Background(), samplePayload())
	assert.ErrorIs(t, err, ErrRejected)
}

func TestSendgridDispatchRedirectIsNotDelivered(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotModified)
	}))
	defer srv.Close()

	d := NewSendgridDispatcher("SG.key", "EduConnect", "noreply@escola.edu.br", "EduConnect School", time.Second)
	d.host = srv.URL

	res, err := d.Dispatch(context.Background(), samplePayload())
	assert.Nil(t, res)
	var rejected *RejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, http.StatusNotModified, rejected.StatusCode)
}

func TestSendgridDispatchHonoursDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewSendgridDispatcher("SG.key", "EduConnect", "noreply@escola.edu.br", "EduConnect School", 5*time.Second)
	d.host = srv.URL

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	res, err := d.Dispatch(ctx, samplePayload())
	assert.Nil(t, res)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSendgridDispatchClientTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	d := NewSendgridDispatcher("SG.key", "EduConnect", "noreply@escola.edu.br", "EduConnect School", 100*time.Millisecond)
	d.host = srv.URL

	start := time.Now()
	_, err := d.Dispatch(context.Background(), samplePayload())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestSendgridDispatchNeedsGuardianEmail(t *testing.T) {
	d := NewSendgridDispatcher("SG.key", "EduConnect", "noreply@escola.edu.br", "EduConnect School", time.Second)
	payload := samplePayload()
	payload.Guardian.Email = ""

	_, err := d.Dispatch(context.Background(), payload)
	assert.Error(t, err)
}

func TestLogDispatcher(t *testing.T) {
	d := NewLogDispatcher(zerolog.Nop())
	res, err := d.Dispatch(context.Background(), samplePayload())
	require.NoError(t, err)
	assert.Equal(t, "dry run", res.Detail)
	assert.Equal(t, ChannelLog, d.Channel())
}

func TestNewSelectsDriver(t *testing.T) {
	base := config.Config{WebhookURL: "http://localhost", SchoolSystem: "ProjectEduConnect", WebhookTimeout: time.Second}

	tests := []struct {
		driver  string
		key     string
		channel string
		wantErr bool
	}{
		{driver: "", channel: ChannelWebhook},
		{driver: "webhook", channel: ChannelWebhook},
		{driver: "log", channel: ChannelLog},
		{driver: "sendgrid", key: "SG.key", channel: ChannelSendgrid},
		{driver: "sendgrid", wantErr: true},
		{driver: "carrier-pigeon", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			cfg := base
			cfg.DispatchDriver = tt.driver
			cfg.SendgridAPIKey = tt.key

			d, err := New(&cfg, zerolog.Nop())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.channel, d.Channel())
		})
	}
}
