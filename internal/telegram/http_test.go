package telegram

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// testClient builds a client pointed at a test server
func testClient(serverURL string) *Client {
	return &Client{
		botToken:   "test-token",
		chatID:     "12345",
		baseURL:    serverURL + "/",
		httpClient: &http.Client{},
	}
}

func TestSendMessage_Success(t *testing.T) {
	var gotPath string
	var gotPayload map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type application/json, got %s", r.Header.Get("Content-Type"))
		}

		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotPayload); err != nil {
			t.Errorf("Decoding request payload: %v", err)
		}

		response := map[string]interface{}{
			"ok": true,
			"result": map[string]interface{}{
				"message_id": 123,
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := testClient(server.URL)

	if err := client.SendMessage("Nueva serie: MFX"); err != nil {
		t.Fatalf("SendMessage() unexpected error: %v", err)
	}

	if gotPath != "/test-token/sendMessage" {
		t.Errorf("Request path = %q, want %q", gotPath, "/test-token/sendMessage")
	}
	if gotPayload["chat_id"] != "12345" {
		t.Errorf("Payload chat_id = %v, want 12345", gotPayload["chat_id"])
	}
	if gotPayload["text"] != "Nueva serie: MFX" {
		t.Errorf("Payload text = %v, want message text", gotPayload["text"])
	}
	if gotPayload["parse_mode"] != "HTML" {
		t.Errorf("Payload parse_mode = %v, want HTML", gotPayload["parse_mode"])
	}
}

func TestSendMessage_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := map[string]interface{}{
			"ok":          false,
			"description": "Bad Request: chat not found",
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := testClient(server.URL)

	err := client.SendMessage("Test message")
	if err == nil {
		t.Fatal("SendMessage() expected error for API failure, got nil")
	}
	if !strings.Contains(err.Error(), "Bad Request") {
		t.Errorf("SendMessage() error = %v, want error containing 'Bad Request'", err)
	}
}

func TestSendMessage_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	}))
	defer server.Close()

	client := testClient(server.URL)

	err := client.SendMessage("Test message")
	if err == nil {
		t.Fatal("SendMessage() expected error for HTTP error, got nil")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("SendMessage() error = %v, want error containing 'status 500'", err)
	}
}

func TestSendMessage_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("Empty message should not reach the API")
	}))
	defer server.Close()

	client := testClient(server.URL)

	if err := client.SendMessage(""); err == nil {
		t.Error("SendMessage(\"\") expected error, got nil")
	}
}
