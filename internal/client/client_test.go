package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loom/internal/types"
)

func TestEnqueuePostsQueryWithAuth(t *testing.T) {
	var gotPath, gotAuth, gotRequestID string
	var gotBody EnqueueRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-Id")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	if err := c.Enqueue(context.Background(), "abc", "hello there"); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if gotPath != "/sessions/abc/enqueue" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer token" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotRequestID == "" {
		t.Fatal("expected X-Request-Id on enqueue")
	}
	if gotBody.Query != "hello there" || !gotBody.Stream {
		t.Fatalf("body = %+v", gotBody)
	}
}

func TestEnqueueSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "session is stopped"})
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	err := c.Enqueue(context.Background(), "abc", "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	apiErr := AsAPIError(err)
	if apiErr == nil || apiErr.StatusCode != http.StatusConflict || apiErr.Message != "session is stopped" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEnqueueRequiresSessionID(t *testing.T) {
	c := NewWithBaseURL("http://127.0.0.1:1", "token")
	if err := c.Enqueue(context.Background(), "  ", "hello"); err == nil {
		t.Fatal("expected precondition error")
	}
}

func TestMessagesDecodesTranscript(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sessions/s1/messages" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(MessagesResponse{Messages: []types.SessionMessage{
			{ID: "m1", InstanceID: "s1", Role: types.MessageRoleUser, Content: "hi"},
			{ID: "m2", InstanceID: "s1", Role: types.MessageRoleTool, ToolName: "search", ResponseID: "r1"},
		}})
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	messages, err := c.Messages(context.Background(), "s1")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(messages) != 2 || messages[0].ID != "m1" || messages[1].ToolName != "search" {
		t.Fatalf("unexpected messages: %+v", messages)
	}
}

func TestMissingTokenIsLocalError(t *testing.T) {
	c := NewWithBaseURL("http://127.0.0.1:1", "")
	c.tokenPath = "/nonexistent/loom/token"
	if _, err := c.ListInstances(context.Background()); err == nil {
		t.Fatal("expected token error")
	}
}

func TestBootstrapFansOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sessions":
			_ = json.NewEncoder(w).Encode(InstancesResponse{Instances: []*types.Instance{{ID: "s1"}}})
		case "/agents":
			_ = json.NewEncoder(w).Encode(AgentsResponse{Agents: []*types.Agent{{ID: "a1", Name: "Planner"}}})
		case "/skills":
			_ = json.NewEncoder(w).Encode(SkillsResponse{Skills: []*types.Skill{{ID: "k1"}}})
		case "/projects":
			_ = json.NewEncoder(w).Encode(ProjectsResponse{Projects: []*types.Project{{ID: "p1"}}})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	snap, err := c.Bootstrap(context.Background())
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if len(snap.Instances) != 1 || len(snap.Agents) != 1 || len(snap.Skills) != 1 || len(snap.Projects) != 1 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
}

func TestBootstrapPropagatesFirstError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/skills" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("{}"))
	}))
	defer server.Close()

	c := NewWithBaseURL(server.URL, "token")
	if _, err := c.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected error from failed fan-out leg")
	}
}
