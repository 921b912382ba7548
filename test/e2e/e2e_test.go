//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"github.com/stemsi/educonnect-backend/internal/model"
)

// The server under test should run with DISPATCH_DRIVER=log so sends never leave the host.
const (
	defaultBaseURL = "http://localhost:8080"
	staffEmail     = "e2e_prof@example.com"
	staffPass      = "password123"
)

var (
	baseURL    string
	addedClass string
)

func TestMain(m *testing.M) {
	// Load .env if present (ignore error)
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	addedClass = fmt.Sprintf("E2E %d", time.Now().UnixNano())

	if err := waitHealthy(30 * time.Second); err != nil {
		fmt.Printf("Setup failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func waitHealthy(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		resp, err := http.Get(baseURL + "/health")
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("server at %s not healthy: %v", baseURL, err)
		}
		time.Sleep(500 * time.Millisecond)
	}
}

func TestE2EFlow(t *testing.T) {
	// Step 1: Login
	t.Run("Login", func(t *testing.T) {
		resp, err := send(http.MethodPost, "/api/v1/auth/login", map[string]string{
			"email":    staffEmail,
			"password": staffPass,
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data model.LoginResult `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if body.Data.Redirect != "/cronograma" {
			t.Fatalf("unexpected redirect %q", body.Data.Redirect)
		}
	})

	// Step 2: Calendar for a known day
	t.Run("CalendarDay", func(t *testing.T) {
		resp, err := get("/api/v1/calendar/events?date=2024-03-10")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Data struct {
				Events []model.CalendarEvent `json:"events"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		for _, e := range body.Data.Events {
			if e.Data != "2024-03-10" {
				t.Errorf("event %s on %s leaked into 2024-03-10", e.ID, e.Data)
			}
		}
	})

	// Step 3: Add a class, then add it again (expect 409)
	t.Run("AddClass", func(t *testing.T) {
		resp, err := send(http.MethodPost, "/api/v1/classes", map[string]string{"serie": addedClass})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d", resp.StatusCode)
		}

		dup, err := send(http.MethodPost, "/api/v1/classes", map[string]string{"serie": addedClass})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer dup.Body.Close()
		if dup.StatusCode != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", dup.StatusCode, readBody(dup))
		}
	})

	// Step 4: Export the first class roster
	t.Run("ExportRoster", func(t *testing.T) {
		resp, err := get("/api/v1/classes")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var body struct {
			Data struct {
				Classes []model.ClassInfo `json:"classes"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		resp.Body.Close()
		if len(body.Data.Classes) == 0 {
			t.Skip("dataset has no classes")
		}

		export, err := get("/api/v1/classes/" + url.PathEscape(body.Data.Classes[0].Serie) + "/export")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer export.Body.Close()
		if export.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", export.StatusCode, readBody(export))
		}
		if !strings.Contains(export.Header.Get("Content-Type"), "spreadsheetml") {
			t.Errorf("unexpected content type %q", export.Header.Get("Content-Type"))
		}
	})

	// Step 5: Send with a missing series never dispatches
	t.Run("SendMissingSeries", func(t *testing.T) {
		resp, err := send(http.MethodPost, "/api/v1/messages/send", map[string]string{"student_id": "A001", "template_id": "M001"})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		var body struct {
			Error struct {
				Code string `json:"code"`
			} `json:"error"`
		}
		decodeJSON(t, resp, &body)
		if resp.StatusCode != http.StatusBadRequest || body.Error.Code != "SERIES_REQUIRED" {
			t.Fatalf("expected SERIES_REQUIRED, got %d %s", resp.StatusCode, body.Error.Code)
		}
	})

	// Step 6: Send to the first student of the first series and find it in the history
	t.Run("SendAndHistory", func(t *testing.T) {
		resp, err := get("/api/v1/students")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var students struct {
			Data struct {
				Students []model.Student `json:"students"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &students)
		resp.Body.Close()

		resp, err = get("/api/v1/templates")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		var templates struct {
			Data struct {
				Templates []model.MessageTemplate `json:"templates"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &templates)
		resp.Body.Close()

		if len(students.Data.Students) == 0 || len(templates.Data.Templates) == 0 {
			t.Skip("dataset has no students or templates")
		}
		st := students.Data.Students[0]
		tmpl := templates.Data.Templates[0]

		sendResp, err := send(http.MethodPost, "/api/v1/messages/send", map[string]string{
			"series":      st.Serie,
			"student_id":  st.ID,
			"template_id": tmpl.ID,
			"date":        "2024-03-15",
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer sendResp.Body.Close()
		if sendResp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", sendResp.StatusCode, readBody(sendResp))
		}

		var sent struct {
			Data struct {
				Delivery model.Delivery `json:"delivery"`
			} `json:"data"`
		}
		decodeJSON(t, sendResp, &sent)

		histResp, err := get("/api/v1/messages/history")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer histResp.Body.Close()

		var history struct {
			Data struct {
				Deliveries []model.Delivery `json:"deliveries"`
			} `json:"data"`
		}
		decodeJSON(t, histResp, &history)
		if len(history.Data.Deliveries) == 0 || history.Data.Deliveries[0].ID != sent.Data.Delivery.ID {
			t.Errorf("delivery %s is not the newest history entry", sent.Data.Delivery.ID)
		}
	})

	// Step 7: Password change rules
	t.Run("ChangePassword", func(t *testing.T) {
		resp, err := send(http.MethodPut, "/api/v1/settings/password", map[string]string{
			"current_password": staffPass,
			"new_password":     "12345",
			"confirm_password": "12345",
		})
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("expected 400 for short password, got %d", resp.StatusCode)
		}
	})
}

// Helpers

func send(method, path string, body interface{}) (*http.Response, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBytes)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func get(path string) (*http.Response, error) {
	req, err := http.NewRequest(http.MethodGet, baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	return client.Do(req)
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("json decode: %v", err)
	}
}
