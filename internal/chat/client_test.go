package chat

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAsk(t *testing.T) {
	var gotAuth string
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Maak een omelet."}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	answer, err := c.Ask(context.Background(), "Wat eten we vandaag?")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}

	if answer != "Maak een omelet." {
		t.Errorf("answer = %q", answer)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header = %q", gotAuth)
	}
	if gotReq.Model != defaultModel {
		t.Errorf("model = %q, want %q", gotReq.Model, defaultModel)
	}
	if len(gotReq.Messages) != 1 || gotReq.Messages[0].Role != "user" {
		t.Errorf("messages = %+v, want single user turn", gotReq.Messages)
	}
}

func TestAskErrorSurfacesBodyVerbatim(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Incorrect API key provided"}}`))
	}))
	defer srv.Close()

	c := NewClient("bad-key", WithBaseURL(srv.URL))
	_, err := c.Ask(context.Background(), "hoi")
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if !strings.Contains(err.Error(), "Incorrect API key provided") {
		t.Errorf("error %q does not carry the response body", err)
	}
}

func TestAskNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	_, err := c.Ask(context.Background(), "hoi")
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v, want ErrMalformedResponse", err)
	}
}

func TestAskUnconfigured(t *testing.T) {
	c := NewClient("")
	if _, err := c.Ask(context.Background(), "hoi"); err == nil {
		t.Fatal("expected error without API key")
	}
}

func TestSuggestFromListTranslatesProducts(t *testing.T) {
	var gotReq completionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		w.Write([]byte(`{"choices":[{"message":{"content":"..."}}]}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL))
	if _, err := c.SuggestFromList(context.Background(), []string{"kip", "rijst", "ui"}); err != nil {
		t.Fatalf("suggest: %v", err)
	}

	prompt := gotReq.Messages[0].Content
	if !strings.Contains(prompt, "chicken, rice, onion") {
		t.Errorf("prompt %q does not contain translated ingredients", prompt)
	}
}
