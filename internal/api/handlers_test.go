package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/lehmann314159/wordtrainer/internal/i18n"
	"github.com/lehmann314159/wordtrainer/internal/models"
	"github.com/lehmann314159/wordtrainer/internal/repository"
	"github.com/lehmann314159/wordtrainer/internal/services"
)

func setupTestRouter(t *testing.T, catalogSize int, apiToken string) (*chi.Mux, *repository.SQLStore) {
	t.Helper()

	store, err := repository.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	words := make([]models.Word, catalogSize)
	for i := range words {
		words[i] = models.Word{
			Word:    fmt.Sprintf("word%d", i),
			Meaning: fmt.Sprintf("meaning %d", i),
		}
	}

	catalog := services.NewCatalog(words)
	progress := services.NewProgressStore(store, services.DefaultProgressKey, catalog.Len())
	days := services.NewDayPartitioner(catalog.Len(), services.DefaultPageSize)
	ctrl := services.NewController(catalog, progress, days, func(int, func(i, j int)) {})
	ctrl.Start(context.Background())

	trainer := NewTrainer(ctrl)
	tr, err := i18n.New("en")
	if err != nil {
		t.Fatalf("i18n.New() error = %v", err)
	}
	wh, err := NewWebHandler(trainer, tr)
	if err != nil {
		t.Fatalf("NewWebHandler() error = %v", err)
	}

	return NewRouter(NewHandler(trainer), wh, apiToken), store
}

func postCommand(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/commands", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeState(t *testing.T, rec *httptest.ResponseRecorder) services.Snapshot {
	t.Helper()
	var state services.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&state); err != nil {
		t.Fatalf("failed to decode state: %v", err)
	}
	return state
}

func TestHandler_HealthCheck(t *testing.T) {
	router, _ := setupTestRouter(t, 5, "")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("HealthCheck() status = %v, want %v", rec.Code, http.StatusOK)
	}
}

func TestHandler_GetState(t *testing.T) {
	router, _ := setupTestRouter(t, 45, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GetState() status = %v, want %v", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", ct)
	}

	state := decodeState(t, rec)
	if state.View != services.ViewDashboard || len(state.Days) != 3 || state.TotalWords != 45 {
		t.Errorf("GetState() = %+v", state)
	}
}

func TestHandler_Dispatch(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "select valid day", body: `{"type":"select_day","day":1}`, wantStatus: http.StatusOK},
		{name: "select day zero", body: `{"type":"select_day","day":0}`, wantStatus: http.StatusNotFound},
		{name: "select day past end", body: `{"type":"select_day","day":3}`, wantStatus: http.StatusNotFound},
		{name: "next card on dashboard", body: `{"type":"next_card"}`, wantStatus: http.StatusConflict},
		{name: "submit on dashboard", body: `{"type":"submit_result","remembered":true}`, wantStatus: http.StatusConflict},
		{name: "unknown command", body: `{"type":"jump"}`, wantStatus: http.StatusConflict},
		{name: "missing type", body: `{"day":1}`, wantStatus: http.StatusBadRequest},
		{name: "invalid JSON", body: `{invalid}`, wantStatus: http.StatusBadRequest},
		{name: "go home", body: `{"type":"go_home"}`, wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter(t, 30, "")

			rec := postCommand(t, router, tt.body)
			if rec.Code != tt.wantStatus {
				t.Errorf("Dispatch() status = %v, want %v (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandler_FullDayOverAPI(t *testing.T) {
	router, store := setupTestRouter(t, 3, "")

	state := decodeState(t, postCommand(t, router, `{"type":"select_day","day":1}`))
	if state.View != services.ViewStudy || state.Study == nil || state.Study.Total != 3 {
		t.Fatalf("select_day state = %+v", state)
	}
	sessionID := state.Study.SessionID

	for i := 0; i < 2; i++ {
		rec := postCommand(t, router, fmt.Sprintf(`{"type":"next_card","session_id":%q}`, sessionID))
		if rec.Code != http.StatusOK {
			t.Fatalf("next_card status = %v", rec.Code)
		}
	}

	state = decodeState(t, postCommand(t, router, `{"type":"start_test"}`))
	if state.View != services.ViewTest || state.Test.Remaining != 3 {
		t.Fatalf("start_test state = %+v", state)
	}
	if state.Test.Card.Meaning != "" || len(state.Test.Card.Sections) != 0 {
		t.Errorf("unrevealed card exposes the answer: %+v", state.Test.Card)
	}

	// The study session was replaced by the test
	rec := postCommand(t, router, fmt.Sprintf(`{"type":"reveal_answer","session_id":%q}`, sessionID))
	if rec.Code != http.StatusConflict {
		t.Errorf("stale reveal status = %v, want %v", rec.Code, http.StatusConflict)
	}

	// Forget the first word once, then remember everything
	postCommand(t, router, `{"type":"reveal_answer"}`)
	state = decodeState(t, postCommand(t, router, `{"type":"submit_result","remembered":false}`))
	if state.Test.Remaining != 3 || state.Test.Card.Index != 1 {
		t.Fatalf("after forgot state = %+v", state.Test)
	}

	for i := 0; i < 3; i++ {
		postCommand(t, router, `{"type":"reveal_answer"}`)
		rec := postCommand(t, router, `{"type":"submit_result","remembered":true}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("submit_result status = %v, body %s", rec.Code, rec.Body.String())
		}
		state = decodeState(t, rec)
	}

	if state.View != services.ViewCompletion || state.TotalLearned != 3 || !state.Days[0].Completed {
		t.Errorf("final state = %+v", state)
	}

	rec = postCommand(t, router, `{"type":"submit_result","remembered":true}`)
	if rec.Code != http.StatusConflict {
		t.Errorf("submit after completion status = %v, want %v", rec.Code, http.StatusConflict)
	}

	stored, err := store.Get(context.Background(), services.DefaultProgressKey)
	if err != nil {
		t.Fatalf("store.Get() error = %v", err)
	}
	if stored != "[1,2,0]" {
		t.Errorf("stored progress = %s, want [1,2,0]", stored)
	}
}

func TestHandler_ListDays(t *testing.T) {
	router, _ := setupTestRouter(t, 41, "")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/days", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp DaysResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(resp.Days) != 3 {
		t.Fatalf("ListDays() got %d days, want 3", len(resp.Days))
	}
	last := resp.Days[2]
	if last.Range.Start != 40 || last.Range.End != 41 {
		t.Errorf("last day range = %+v, want [40,41)", last.Range)
	}
}

func TestHandler_GetWord(t *testing.T) {
	router, _ := setupTestRouter(t, 5, "")

	tests := []struct {
		name       string
		index      string
		wantStatus int
	}{
		{name: "existing word", index: "4", wantStatus: http.StatusOK},
		{name: "out of range", index: "5", wantStatus: http.StatusNotFound},
		{name: "negative", index: "-1", wantStatus: http.StatusNotFound},
		{name: "not a number", index: "abc", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/words/"+tt.index, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("GetWord() status = %v, want %v", rec.Code, tt.wantStatus)
			}
		})
	}
}

func TestBearerAuth(t *testing.T) {
	router, _ := setupTestRouter(t, 5, "secret")

	tests := []struct {
		name       string
		method     string
		auth       string
		wantStatus int
	}{
		{name: "GET needs no token", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "POST without token", method: http.MethodPost, wantStatus: http.StatusUnauthorized},
		{name: "POST with wrong token", method: http.MethodPost, auth: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "POST with wrong scheme", method: http.MethodPost, auth: "Basic secret", wantStatus: http.StatusUnauthorized},
		{name: "POST with token", method: http.MethodPost, auth: "Bearer secret", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := "/api/v1/state"
			body := bytes.NewBufferString("")
			if tt.method == http.MethodPost {
				path = "/api/v1/commands"
				body = bytes.NewBufferString(`{"type":"go_home"}`)
			}

			req := httptest.NewRequest(tt.method, path, body)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %v, want %v", rec.Code, tt.wantStatus)
			}
		})
	}
}

func postForm(router http.Handler, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func getPage(t *testing.T, router http.Handler) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("GET / status = %v, body %s", rec.Code, rec.Body.String())
	}
	return rec.Body.String()
}

func decodeStateFromAPI(t *testing.T, router http.Handler) services.Snapshot {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/state", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return decodeState(t, rec)
}

func TestWebHandler_Flow(t *testing.T) {
	router, _ := setupTestRouter(t, 2, "secret")

	page := getPage(t, router)
	if !strings.Contains(page, "Day 1") || !strings.Contains(page, "Words learned: 0 of 2") {
		t.Fatalf("dashboard page missing content:\n%s", page)
	}

	// Web forms are not behind the API token
	rec := postForm(router, "/days/1", nil)
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/" {
		t.Fatalf("POST /days/1 status = %v location = %q", rec.Code, rec.Header().Get("Location"))
	}

	page = getPage(t, router)
	if !strings.Contains(page, "word0") || !strings.Contains(page, "meaning 0") {
		t.Errorf("study page missing first card:\n%s", page)
	}
	if !strings.Contains(page, "None") {
		t.Errorf("study page should render empty sections as None")
	}

	for _, path := range []string{"/study/next", "/test/start"} {
		if rec := postForm(router, path, nil); rec.Code != http.StatusSeeOther {
			t.Fatalf("POST %s status = %v", path, rec.Code)
		}
	}

	page = getPage(t, router)
	if strings.Contains(page, "meaning 0") || !strings.Contains(page, "Show answer") {
		t.Errorf("test front should hide the meaning:\n%s", page)
	}

	if rec := postForm(router, "/test/reveal", nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /test/reveal status = %v", rec.Code)
	}
	if page = getPage(t, router); !strings.Contains(page, "meaning 0") {
		t.Errorf("revealed card should show the meaning")
	}

	sessionID := decodeStateFromAPI(t, router).Test.SessionID
	result := url.Values{"remembered": {"true"}, "session_id": {sessionID}}
	if rec := postForm(router, "/test/result", result); rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /test/result status = %v", rec.Code)
	}

	// The same form posted twice must not answer the next word
	if rec := postForm(router, "/test/result", result); rec.Code != http.StatusConflict {
		t.Errorf("repeated POST /test/result status = %v, want %v", rec.Code, http.StatusConflict)
	}
	if state := decodeStateFromAPI(t, router); state.TotalLearned != 1 || state.Test.Remaining != 1 {
		t.Fatalf("state after repeated result = %+v", state)
	}

	if rec := postForm(router, "/test/reveal", nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /test/reveal status = %v", rec.Code)
	}
	if rec := postForm(router, "/test/result", result); rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /test/result status = %v", rec.Code)
	}

	page = getPage(t, router)
	if !strings.Contains(page, "Day 1 complete") {
		t.Errorf("completion page missing title:\n%s", page)
	}

	if rec := postForm(router, "/home", nil); rec.Code != http.StatusSeeOther {
		t.Fatalf("POST /home status = %v", rec.Code)
	}
	if page = getPage(t, router); !strings.Contains(page, "Words learned: 2 of 2") {
		t.Errorf("dashboard should show progress:\n%s", page)
	}
}

func TestWebHandler_Errors(t *testing.T) {
	router, _ := setupTestRouter(t, 5, "")

	tests := []struct {
		name       string
		path       string
		form       url.Values
		wantStatus int
	}{
		{name: "day out of range", path: "/days/2", wantStatus: http.StatusNotFound},
		{name: "day not a number", path: "/days/abc", wantStatus: http.StatusBadRequest},
		{name: "prev on dashboard", path: "/study/prev", wantStatus: http.StatusConflict},
		{name: "result without value", path: "/test/result", wantStatus: http.StatusBadRequest},
		{name: "result on dashboard", path: "/test/result", form: url.Values{"remembered": {"false"}}, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postForm(router, tt.path, tt.form)
			if rec.Code != tt.wantStatus {
				t.Errorf("POST %s status = %v, want %v", tt.path, rec.Code, tt.wantStatus)
			}
		})
	}
}
