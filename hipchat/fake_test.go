// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package hipchat

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/hipchat/lib/secret"
)

const testToken = "test-token-abc"

// recordedRequest is one request seen by fakeAPI.
type recordedRequest struct {
	Method string
	Path   string
	Query  url.Values
	Form   url.Values
	Header http.Header
}

// fakeAPI is an httptest server speaking the v1 REST API. Endpoints
// are registered with handle or respond; every request is recorded.
type fakeAPI struct {
	t      *testing.T
	server *httptest.Server

	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	requests []recordedRequest
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	fake := &fakeAPI{t: t, handlers: make(map[string]http.HandlerFunc)}
	fake.server = httptest.NewServer(http.HandlerFunc(fake.serve))
	t.Cleanup(fake.server.Close)
	return fake
}

func (f *fakeAPI) serve(writer http.ResponseWriter, request *http.Request) {
	body, err := io.ReadAll(request.Body)
	if err != nil {
		f.t.Errorf("reading request body: %v", err)
	}
	form, err := url.ParseQuery(string(body))
	if err != nil {
		f.t.Errorf("request body is not form-encoded: %v", err)
	}
	request.Body = io.NopCloser(bytes.NewReader(body))

	path := strings.TrimPrefix(request.URL.Path, "/v1/")

	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: request.Method,
		Path:   path,
		Query:  request.URL.Query(),
		Form:   form,
		Header: request.Header.Clone(),
	})
	handler, ok := f.handlers[path]
	f.mu.Unlock()

	if !ok {
		writeJSON(writer, http.StatusNotFound, map[string]any{
			"error": map[string]any{"code": 404, "type": "Not Found", "message": "Unknown endpoint " + path},
		})
		return
	}
	handler(writer, request)
}

// handle registers handler for path (relative to /v1/).
func (f *fakeAPI) handle(path string, handler http.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[path] = handler
}

// respond registers a static 200 JSON response for path.
func (f *fakeAPI) respond(path string, body any) {
	f.handle(path, func(writer http.ResponseWriter, _ *http.Request) {
		writeJSON(writer, http.StatusOK, body)
	})
}

// requestsTo returns the recorded requests for path, in order.
func (f *fakeAPI) requestsTo(path string) []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	var matched []recordedRequest
	for _, request := range f.requests {
		if request.Path == path {
			matched = append(matched, request)
		}
	}
	return matched
}

// requestCount returns the total number of requests seen.
func (f *fakeAPI) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

// client returns a Client pointed at the fake with a discarded logger.
func (f *fakeAPI) client(t *testing.T) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{
		BaseURL: f.server.URL + "/v1/",
		Token:   testBuffer(t, testToken),
		Logger:  discardLogger(),
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeJSON(writer http.ResponseWriter, status int, body any) {
	writer.Header().Set("Content-Type", "application/json")
	writer.WriteHeader(status)
	json.NewEncoder(writer).Encode(body)
}

// testBuffer creates a secret.Buffer from a string for testing. The buffer
// is automatically closed when the test completes.
func testBuffer(t *testing.T, value string) *secret.Buffer {
	t.Helper()
	buffer, err := secret.NewFromString(value)
	if err != nil {
		t.Fatalf("creating test buffer: %v", err)
	}
	t.Cleanup(func() { buffer.Close() })
	return buffer
}

// Fixture data shaped like real rooms/list, rooms/show, and users/list
// responses.

func fixtureRooms() map[string]any {
	return map[string]any{"rooms": []map[string]any{
		{
			"room_id":          7,
			"name":             "Ops",
			"topic":            "Deploys and incidents",
			"last_active":      1360031425,
			"created":          1269010311,
			"owner_user_id":    1,
			"is_archived":      false,
			"is_private":       false,
			"xmpp_jid":         "7_ops@conf.hipchat.com",
			"guest_access_url": nil,
		},
		{
			"room_id":          9,
			"name":             "Secret",
			"topic":            "",
			"last_active":      0,
			"created":          1269010400,
			"owner_user_id":    2,
			"is_archived":      false,
			"is_private":       true,
			"xmpp_jid":         "9_secret@conf.hipchat.com",
			"guest_access_url": "https://www.hipchat.com/gSecret",
		},
	}}
}

func fixtureRoomShow(roomID int) map[string]any {
	rooms := fixtureRooms()["rooms"].([]map[string]any)
	for _, room := range rooms {
		if room["room_id"] != roomID {
			continue
		}
		full := make(map[string]any, len(room)+2)
		for key, value := range room {
			full[key] = value
		}
		full["member_user_ids"] = []int{1, 3}
		full["participants"] = []map[string]any{
			{"user_id": 1, "name": "Alice Admin"},
			{"user_id": 3, "name": "Carol Gone"},
		}
		return map[string]any{"room": full}
	}
	return nil
}

func fixtureUsers() map[string]any {
	return map[string]any{"users": []map[string]any{
		{
			"user_id":        1,
			"name":           "Alice Admin",
			"mention_name":   "alice",
			"email":          "alice@example.com",
			"title":          "Ops Lead",
			"photo_url":      "https://example.com/alice.png",
			"last_active":    "1360031425",
			"created":        1269010311,
			"status":         "available",
			"status_message": "on call",
			"is_group_admin": 1,
			"is_deleted":     0,
		},
		{
			"user_id":        2,
			"name":           "Bob Builder",
			"mention_name":   "bob",
			"email":          "bob@example.com",
			"title":          "",
			"photo_url":      "",
			"last_active":    "",
			"created":        1269010400,
			"status":         "offline",
			"status_message": "",
			"is_group_admin": 0,
			"is_deleted":     0,
		},
		{
			"user_id":        3,
			"name":           "Carol Gone",
			"mention_name":   "carol",
			"email":          "carol@example.com",
			"title":          "",
			"photo_url":      "",
			"last_active":    nil,
			"created":        1269010500,
			"status":         "offline",
			"status_message": "",
			"is_group_admin": 0,
			"is_deleted":     1,
		},
	}}
}

// newFixtureAPI returns a fake serving the list, show, and mutation
// endpoints with fixture data.
func newFixtureAPI(t *testing.T) *fakeAPI {
	t.Helper()
	fake := newFakeAPI(t)
	fake.respond("rooms/list", fixtureRooms())
	fake.respond("users/list", fixtureUsers())
	fake.handle("rooms/show", func(writer http.ResponseWriter, request *http.Request) {
		switch request.URL.Query().Get("room_id") {
		case "7":
			writeJSON(writer, http.StatusOK, fixtureRoomShow(7))
		case "9":
			writeJSON(writer, http.StatusOK, fixtureRoomShow(9))
		default:
			writeJSON(writer, http.StatusNotFound, map[string]any{
				"error": map[string]any{"code": 404, "type": "Not Found", "message": "Room not found"},
			})
		}
	})
	fake.respond("rooms/message", map[string]any{"status": "sent"})
	fake.respond("rooms/topic", map[string]any{"status": "ok"})
	fake.respond("rooms/delete", map[string]any{"deleted": true})
	return fake
}
