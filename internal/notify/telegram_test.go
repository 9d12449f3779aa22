package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTelegramSendMessage(t *testing.T) {
	var gotPath string
	var gotReq telegramSendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(telegramResponse{OK: true})
	}))
	defer srv.Close()

	sender := NewTelegramSender("token123", "chat456")
	sender.baseURL = srv.URL

	if err := sender.SendMessage("<b>hello</b>"); err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}

	if !strings.Contains(gotPath, "bottoken123") {
		t.Errorf("path = %q, want bot token in URL", gotPath)
	}
	if gotReq.ChatID != "chat456" || gotReq.Text != "<b>hello</b>" || gotReq.ParseMode != "HTML" {
		t.Errorf("request = %+v", gotReq)
	}
}

func TestTelegramSendMessageAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(telegramResponse{OK: false, Description: "chat not found"})
	}))
	defer srv.Close()

	sender := NewTelegramSender("token", "chat")
	sender.baseURL = srv.URL

	err := sender.SendMessage("hi")
	if err == nil || !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("SendMessage() error = %v, want API error", err)
	}
}
