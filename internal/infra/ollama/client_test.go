package ollama

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/erinmikailstaples/Agent-Adventures/internal/domain"
	"github.com/erinmikailstaples/Agent-Adventures/internal/ports"
)

func TestGenerate(t *testing.T) {
	var gotReq generateRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" || r.Method != http.MethodPost {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(generateResponse{
			Response:      "Partly cloudy and mild.",
			Done:          true,
			TotalDuration: 1_500_000_000,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	out, err := c.Generate(t.Context(), domain.GenerateRequest{
		Model:       "llama3.2",
		Prompt:      "Summarize the weather.",
		System:      "You are a weather reporter.",
		Temperature: 0.7,
		TopP:        0.9,
		MaxTokens:   300,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if out.Text != "Partly cloudy and mild." {
		t.Errorf("Text = %q", out.Text)
	}
	if out.DurationMS != 1500 {
		t.Errorf("DurationMS = %d", out.DurationMS)
	}

	if gotReq.Model != "llama3.2" || gotReq.Stream {
		t.Errorf("request = %+v", gotReq)
	}
	if gotReq.Options.NumPredict != 300 || gotReq.Options.Temperature != 0.7 {
		t.Errorf("options = %+v", gotReq.Options)
	}
	if gotReq.KeepAlive != defaultKeepAlive {
		t.Errorf("keep_alive = %q", gotReq.KeepAlive)
	}
}

func TestGenerateHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := New(srv.URL, srv.Client())
	_, err := c.Generate(t.Context(), domain.GenerateRequest{Model: "nope", Prompt: "hi"})
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestGenerateConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	c := New(srv.URL, http.DefaultClient)
	_, err := c.Generate(t.Context(), domain.GenerateRequest{Model: "llama3.2", Prompt: "hi"})
	if !domain.IsKind(err, domain.KindUnavailable) {
		t.Fatalf("got %v", err)
	}
}

func TestModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tags" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"models":[{"name":"llama3.2:latest","size":2019393189},{"name":"mistral:7b","size":4109865159}]}`))
	}))
	defer srv.Close()

	models, err := New(srv.URL, srv.Client()).Models(t.Context())
	if err != nil {
		t.Fatalf("Models: %v", err)
	}
	if len(models) != 2 || models[0].Name != "llama3.2:latest" {
		t.Errorf("models = %+v", models)
	}
	if models[1].SizeBytes != 4109865159 {
		t.Errorf("size = %d", models[1].SizeBytes)
	}
}

func TestPull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req pullRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Name != "llama3.2" || !req.Stream {
			t.Errorf("request = %+v", req)
		}
		lines := []string{
			`{"status":"pulling manifest"}`,
			`{"status":"downloading","total":100,"completed":40}`,
			`{"status":"downloading","total":100,"completed":100}`,
			`{"status":"success"}`,
		}
		for _, l := range lines {
			_, _ = w.Write([]byte(l + "\n"))
		}
	}))
	defer srv.Close()

	var events []ports.PullProgress
	err := New(srv.URL, srv.Client()).Pull(t.Context(), "llama3.2", func(p ports.PullProgress) {
		events = append(events, p)
	})
	if err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("events = %+v", events)
	}
	if events[1].Completed != 40 || events[1].Total != 100 {
		t.Errorf("progress = %+v", events[1])
	}
	if events[3].Status != "success" {
		t.Errorf("final status = %q", events[3].Status)
	}
}

func TestPullServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"pulling manifest"}` + "\n"))
		_, _ = w.Write([]byte(`{"error":"pull model manifest: file does not exist"}` + "\n"))
	}))
	defer srv.Close()

	err := New(srv.URL, srv.Client()).Pull(t.Context(), "nope", nil)
	if !domain.IsKind(err, domain.KindExecution) {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(err.Error(), "file does not exist") {
		t.Errorf("error should carry the server message: %v", err)
	}
}
