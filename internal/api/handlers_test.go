package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"example.com/activities/internal/domain"
	"example.com/activities/internal/events"
	"example.com/activities/internal/registry"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()

	store := registry.NewStore()
	service := domain.NewService(store, events.NoopPublisher{}, zap.NewNop())
	handler := NewHandler(service)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func do(t *testing.T, mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return body
}

func listActivities(t *testing.T, mux *http.ServeMux) map[string]ActivityView {
	t.Helper()

	rr := do(t, mux, http.MethodGet, "/activities")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	var body map[string]ActivityView
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode activities: %v", err)
	}
	return body
}

func TestListActivities(t *testing.T) {
	mux := newTestMux(t)

	body := listActivities(t, mux)
	if len(body) == 0 {
		t.Fatal("expected at least one activity")
	}

	chess, ok := body["Chess Club"]
	if !ok {
		t.Fatal("expected Chess Club in response")
	}
	if chess.Description == "" || chess.Schedule == "" || chess.MaxParticipants <= 0 {
		t.Fatalf("incomplete activity payload: %+v", chess)
	}
	found := false
	for _, email := range chess.Participants {
		if email == "michael@mergington.edu" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected michael@mergington.edu in Chess Club, got %v", chess.Participants)
	}
}

func TestSignupSuccess(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, "/activities/Basketball%20Team/signup?email=test@mergington.edu")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	body := decode(t, rr)
	if !strings.Contains(body["message"], "test@mergington.edu") || !strings.Contains(body["message"], "Basketball Team") {
		t.Fatalf("unexpected message %q", body["message"])
	}

	activities := listActivities(t, mux)
	participants := activities["Basketball Team"].Participants
	if len(participants) != 1 || participants[0] != "test@mergington.edu" {
		t.Fatalf("unexpected participants %v", participants)
	}
}

func TestSignupActivityNotFound(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, "/activities/Nonexistent%20Activity/signup?email=test@mergington.edu")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
	if detail := decode(t, rr)["detail"]; !strings.Contains(strings.ToLower(detail), "not found") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestSignupDuplicateRegistration(t *testing.T) {
	mux := newTestMux(t)
	target := "/activities/Basketball%20Team/signup?email=duplicate@mergington.edu"

	if rr := do(t, mux, http.MethodPost, target); rr.Code != http.StatusOK {
		t.Fatalf("first signup failed: %d", rr.Code)
	}

	rr := do(t, mux, http.MethodPost, target)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if detail := decode(t, rr)["detail"]; !strings.Contains(strings.ToLower(detail), "already signed up") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestSignupActivityFull(t *testing.T) {
	mux := newTestMux(t)

	max := listActivities(t, mux)["Basketball Team"].MaxParticipants
	for i := 0; i < max; i++ {
		target := fmt.Sprintf("/activities/Basketball%%20Team/signup?email=student%d@mergington.edu", i)
		if rr := do(t, mux, http.MethodPost, target); rr.Code != http.StatusOK {
			t.Fatalf("signup %d failed: %d %s", i, rr.Code, rr.Body.String())
		}
	}

	rr := do(t, mux, http.MethodPost, "/activities/Basketball%20Team/signup?email=overflow@mergington.edu")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if detail := decode(t, rr)["detail"]; !strings.Contains(strings.ToLower(detail), "full") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestSignupMissingEmail(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, "/activities/Chess%20Club/signup")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestSignupMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodGet, "/activities/Chess%20Club/signup?email=test@mergington.edu")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", rr.Code)
	}
}

func TestSignupEncodedActivityName(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, "/activities/Chess%20Club/signup?email=newplayer@mergington.edu")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestUnregisterSuccess(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, "/activities/Chess%20Club/unregister?email=michael@mergington.edu")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}
	if msg := decode(t, rr)["message"]; !strings.Contains(msg, "michael@mergington.edu") {
		t.Fatalf("unexpected message %q", msg)
	}

	for _, email := range listActivities(t, mux)["Chess Club"].Participants {
		if email == "michael@mergington.edu" {
			t.Fatal("expected michael@mergington.edu to be removed")
		}
	}
}

func TestUnregisterActivityNotFound(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, "/activities/Nonexistent%20Activity/unregister?email=test@mergington.edu")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestUnregisterNotRegistered(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, "/activities/Basketball%20Team/unregister?email=notregistered@mergington.edu")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if detail := decode(t, rr)["detail"]; !strings.Contains(strings.ToLower(detail), "not registered") {
		t.Fatalf("unexpected detail %q", detail)
	}
}

func TestSignupThenUnregisterWorkflow(t *testing.T) {
	mux := newTestMux(t)
	email := "workflow@mergington.edu"

	if rr := do(t, mux, http.MethodPost, "/activities/Swimming%20Club/signup?email="+email); rr.Code != http.StatusOK {
		t.Fatalf("signup failed: %d", rr.Code)
	}

	participants := listActivities(t, mux)["Swimming Club"].Participants
	if participants[len(participants)-1] != email {
		t.Fatalf("expected %s appended, got %v", email, participants)
	}

	if rr := do(t, mux, http.MethodPost, "/activities/Swimming%20Club/unregister?email="+email); rr.Code != http.StatusOK {
		t.Fatalf("unregister failed: %d", rr.Code)
	}

	for _, p := range listActivities(t, mux)["Swimming Club"].Participants {
		if p == email {
			t.Fatalf("expected %s to be removed", email)
		}
	}
}

func TestStudentCanJoinMultipleActivities(t *testing.T) {
	mux := newTestMux(t)
	email := "multi@mergington.edu"

	for _, name := range []string{"Basketball Team", "Swimming Club", "Art Studio"} {
		target := "/activities/" + strings.ReplaceAll(name, " ", "%20") + "/signup?email=" + email
		if rr := do(t, mux, http.MethodPost, target); rr.Code != http.StatusOK {
			t.Fatalf("signup for %s failed: %d", name, rr.Code)
		}
	}

	activities := listActivities(t, mux)
	for _, name := range []string{"Basketball Team", "Swimming Club", "Art Studio"} {
		found := false
		for _, p := range activities[name].Participants {
			if p == email {
				found = true
			}
		}
		if !found {
			t.Fatalf("expected %s in %s", email, name)
		}
	}
}

func TestUnknownActionIsNotFound(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodPost, "/activities/Chess%20Club/promote?email=test@mergington.edu")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	mux := newTestMux(t)

	rr := do(t, mux, http.MethodGet, "/healthz")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rr.Code)
	}
}
