package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDeliver_SignsPayload(t *testing.T) {
	secret := "shared-secret"
	var gotSig string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-Proflens-Signature")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	event := &Event{Type: EventAnalysisCompleted, ProfileURL: "https://www.linkedin.com/in/someone", Timestamp: 1735689600}
	if err := Deliver(context.Background(), srv.URL, secret, event); err != nil {
		t.Fatalf("Deliver: %v", err)
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(gotBody)
	want := "sha256=" + hex.EncodeToString(mac.Sum(nil))
	if gotSig != want {
		t.Errorf("signature = %q, want %q", gotSig, want)
	}

	var decoded Event
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded.Type != EventAnalysisCompleted {
		t.Errorf("event type = %q", decoded.Type)
	}
}

func TestDeliver_NoSecretNoSignature(t *testing.T) {
	var gotSig string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSig = r.Header.Get("X-Proflens-Signature")
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "", &Event{Type: EventCaptureFailed}); err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if gotSig != "" {
		t.Errorf("unexpected signature header %q", gotSig)
	}
}

func TestDeliver_EndpointErrorIsReported(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := Deliver(context.Background(), srv.URL, "", &Event{Type: EventAnalysisFailed}); err == nil {
		t.Error("expected error for 5xx endpoint response")
	}
}
