package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/amishk599/wellplan/internal/model"
)

func TestGeminiComplete_JoinsParts(t *testing.T) {
	var gotPath, gotKey string
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Day: Monday"},{"text":"\n\nDay: Tuesday"}]},"finishReason":"STOP"}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "g-key", "gemini-2.5-flash", 0.2, 512, srv.Client())
	got, err := p.Complete(context.Background(), "plan")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "Day: Monday\n\nDay: Tuesday" {
		t.Errorf("got %q", got)
	}
	if gotPath != "/models/gemini-2.5-flash:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "g-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if len(gotReq.Contents) != 1 || gotReq.Contents[0].Parts[0].Text != "plan" {
		t.Errorf("contents = %+v", gotReq.Contents)
	}
	if gotReq.GenerationConfig == nil || gotReq.GenerationConfig.MaxOutputTokens != 512 {
		t.Errorf("generation config = %+v", gotReq.GenerationConfig)
	}
	if gotReq.SystemInstruction != nil {
		t.Errorf("system instruction = %+v, want none by default", gotReq.SystemInstruction)
	}
}

func TestGeminiComplete_SystemPrompt(t *testing.T) {
	var gotReq geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "k", "m", 0, 0, srv.Client()).WithSystemPrompt("Answer in plain text.")
	if _, err := p.Complete(context.Background(), "plan"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if gotReq.SystemInstruction == nil || gotReq.SystemInstruction.Parts[0].Text != "Answer in plain text." {
		t.Errorf("system instruction = %+v", gotReq.SystemInstruction)
	}
}

func TestGeminiComplete_Blocked(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"promptFeedback":{"blockReason":"SAFETY"}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "k", "m", 0, 0, srv.Client())
	if _, err := p.Complete(context.Background(), "plan"); err == nil {
		t.Fatal("expected error for blocked prompt")
	}
}

func TestGeminiComplete_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"API key not valid"}}`))
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "bad", "m", 0, 0, srv.Client())
	_, err := p.Complete(context.Background(), "plan")
	var httpErr *model.HTTPError
	if !errors.As(err, &httpErr) || httpErr.StatusCode != http.StatusForbidden {
		t.Fatalf("expected HTTPError 403, got %v", err)
	}
	if httpErr.Temporary() {
		t.Error("403 should not be temporary")
	}
}
