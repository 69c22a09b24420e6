package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vivelevelo/polarized/internal/plan"
	"github.com/vivelevelo/polarized/internal/sqlite"
	"github.com/vivelevelo/polarized/internal/testhelpers"
)

func newCookieJar() (http.CookieJar, error) {
	return cookiejar.New(nil)
}

// newTestServer starts the API on an in-memory database. The returned client
// keeps cookies, so consecutive requests share one athlete session.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()
	logger := testhelpers.NewLogger(testhelpers.NewWriter(t))

	db, err := sqlite.NewDatabase(context.Background(), ":memory:", logger)
	if err != nil {
		t.Fatalf("NewDatabase() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	catalog, err := plan.LoadCatalog("../../config/catalog.yaml")
	if err != nil {
		t.Fatalf("LoadCatalog() error = %v", err)
	}
	planService, err := plan.NewService(db, catalog, plan.DefaultProgram(), logger)
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	app := &application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		planService:    planService,
	}

	server := httptest.NewTLSServer(app.routes())
	t.Cleanup(server.Close)

	client := server.Client()
	jar, err := newCookieJar()
	if err != nil {
		t.Fatalf("new cookie jar: %v", err)
	}
	client.Jar = jar
	return server, client
}

func get(t *testing.T, client *http.Client, url string, v any) int {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if v != nil && resp.StatusCode < http.StatusBadRequest {
		if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode GET %s response: %v", url, err)
		}
	}
	return resp.StatusCode
}

func post(t *testing.T, client *http.Client, url string, body string, v any) int {
	t.Helper()
	resp, err := client.Post(url, "application/json", bytes.NewReader([]byte(body)))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if v != nil && resp.StatusCode < http.StatusBadRequest {
		if err = json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode POST %s response: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestHealthy(t *testing.T) {
	server, client := newTestServer(t)

	var body map[string]string
	if status := get(t, client, server.URL+"/api/healthy", &body); status != http.StatusOK {
		t.Fatalf("GET /api/healthy status = %d, want 200", status)
	}
	if body["status"] != "ok" {
		t.Errorf(`status field = %q, want "ok"`, body["status"])
	}
}

func TestPlanLifecycle(t *testing.T) {
	server, client := newTestServer(t)

	// No plan yet.
	if status := get(t, client, server.URL+"/api/plan", nil); status != http.StatusNotFound {
		t.Fatalf("GET /api/plan before generation status = %d, want 404", status)
	}

	var created struct {
		Schedule map[string]map[string]json.RawMessage `json:"schedule"`
		Program  struct {
			TotalWeeks int `json:"total_weeks"`
		} `json:"program"`
	}
	status := post(t, client, server.URL+"/api/plan",
		`{"goal":"ftp","time_commitment":"regular","preferred_days":["Tue","Thu","Sat"],"seed":7}`, &created)
	if status != http.StatusCreated {
		t.Fatalf("POST /api/plan status = %d, want 201", status)
	}
	if created.Program.TotalWeeks != 6 || len(created.Schedule) != 6 {
		t.Fatalf("created plan has %d weeks, program says %d, want 6",
			len(created.Schedule), created.Program.TotalWeeks)
	}

	if status = get(t, client, server.URL+"/api/plan", nil); status != http.StatusOK {
		t.Errorf("GET /api/plan status = %d, want 200", status)
	}
	if status = get(t, client, server.URL+"/api/weeks/1", nil); status != http.StatusOK {
		t.Errorf("GET /api/weeks/1 status = %d, want 200", status)
	}
	for _, path := range []string{"/api/weeks/0", "/api/weeks/7", "/api/weeks/abc"} {
		if status = get(t, client, server.URL+path, nil); status != http.StatusNotFound {
			t.Errorf("GET %s status = %d, want 404", path, status)
		}
	}
}

func TestPlanUnknownGoal(t *testing.T) {
	server, client := newTestServer(t)

	status := post(t, client, server.URL+"/api/plan",
		`{"goal":"triathlon","time_commitment":"regular"}`, nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("POST /api/plan with unknown goal status = %d, want 422", status)
	}
}

func TestPlanRejectsUnknownFields(t *testing.T) {
	server, client := newTestServer(t)

	status := post(t, client, server.URL+"/api/plan",
		`{"goal":"ftp","time_commitment":"regular","tier":"serious"}`, nil)
	if status != http.StatusBadRequest {
		t.Fatalf("POST /api/plan with unknown field status = %d, want 400", status)
	}
}

func TestWeekAdaptAndRestore(t *testing.T) {
	server, client := newTestServer(t)

	status := post(t, client, server.URL+"/api/plan",
		`{"goal":"climbing","time_commitment":"regular","seed":3}`, nil)
	if status != http.StatusCreated {
		t.Fatalf("POST /api/plan status = %d, want 201", status)
	}

	var adapted struct {
		Summary struct {
			AdaptedWorkouts int `json:"adapted_workouts"`
		} `json:"summary"`
		Strategies []string `json:"strategies"`
	}
	status = post(t, client, server.URL+"/api/weeks/2/adapt",
		`{"time_slots":{"Mon":45,"Wed":60,"Fri":40,"Sun":120}}`, &adapted)
	if status != http.StatusOK {
		t.Fatalf("POST /api/weeks/2/adapt status = %d, want 200", status)
	}
	if adapted.Summary.AdaptedWorkouts == 0 {
		t.Error("adaptation placed no workouts")
	}
	if len(adapted.Strategies) == 0 {
		t.Error("adaptation reported no strategies")
	}

	var weekView struct {
		Adaptation *json.RawMessage `json:"adaptation"`
	}
	if status = get(t, client, server.URL+"/api/weeks/2", &weekView); status != http.StatusOK {
		t.Fatalf("GET /api/weeks/2 status = %d, want 200", status)
	}
	if weekView.Adaptation == nil {
		t.Error("adapted week view carries no adaptation record")
	}

	if status = post(t, client, server.URL+"/api/weeks/2/restore", "", nil); status != http.StatusOK {
		t.Fatalf("POST /api/weeks/2/restore status = %d, want 200", status)
	}
	if status = post(t, client, server.URL+"/api/weeks/2/restore", "", nil); status != http.StatusNotFound {
		t.Errorf("second restore status = %d, want 404", status)
	}

	// Missing time slots are a client error.
	if status = post(t, client, server.URL+"/api/weeks/2/adapt", `{}`, nil); status != http.StatusBadRequest {
		t.Errorf("adapt without time_slots status = %d, want 400", status)
	}
}

func TestWeekVolume(t *testing.T) {
	server, client := newTestServer(t)

	status := post(t, client, server.URL+"/api/plan",
		`{"goal":"granfondo","time_commitment":"serious","seed":5}`, nil)
	if status != http.StatusCreated {
		t.Fatalf("POST /api/plan status = %d, want 201", status)
	}

	if status = post(t, client, server.URL+"/api/weeks/1/volume", `{"level":"reduced"}`, nil); status != http.StatusOK {
		t.Fatalf("POST /api/weeks/1/volume status = %d, want 200", status)
	}
	if status = post(t, client, server.URL+"/api/weeks/1/volume", `{"level":"heroic"}`, nil); status != http.StatusUnprocessableEntity {
		t.Errorf("unknown volume level status = %d, want 422", status)
	}
}

func TestWorkoutDetailCompleteAndRPE(t *testing.T) {
	server, client := newTestServer(t)

	status := post(t, client, server.URL+"/api/plan",
		`{"goal":"ftp","time_commitment":"regular","seed":9}`, nil)
	if status != http.StatusCreated {
		t.Fatalf("POST /api/plan status = %d, want 201", status)
	}

	var weekView struct {
		Schedule map[string]*json.RawMessage `json:"schedule"`
	}
	if status = get(t, client, server.URL+"/api/weeks/1", &weekView); status != http.StatusOK {
		t.Fatalf("GET /api/weeks/1 status = %d, want 200", status)
	}
	var workoutDay, restDay string
	for day, w := range weekView.Schedule {
		if w != nil && string(*w) != "null" {
			workoutDay = day
		} else if restDay == "" {
			restDay = day
		}
	}
	if workoutDay == "" || restDay == "" {
		t.Fatalf("week 1 misses a workout or rest day: %v", weekView.Schedule)
	}

	var detail struct {
		DescriptionHTML string `json:"description_html"`
		DetailsHTML     string `json:"details_html"`
	}
	if status = get(t, client, server.URL+"/api/weeks/1/days/"+workoutDay, &detail); status != http.StatusOK {
		t.Fatalf("GET workout detail status = %d, want 200", status)
	}
	if !strings.Contains(detail.DescriptionHTML, "<p>") {
		t.Errorf("description_html = %q, want rendered HTML", detail.DescriptionHTML)
	}

	if status = get(t, client, server.URL+"/api/weeks/1/days/"+restDay, nil); status != http.StatusNotFound {
		t.Errorf("GET rest day detail status = %d, want 404", status)
	}
	if status = get(t, client, server.URL+"/api/weeks/1/days/Funday", nil); status != http.StatusNotFound {
		t.Errorf("GET invalid day status = %d, want 404", status)
	}

	path := server.URL + "/api/weeks/1/days/" + workoutDay
	if status = post(t, client, path+"/complete", "", nil); status != http.StatusOK {
		t.Errorf("POST complete status = %d, want 200", status)
	}

	var rpeResponse struct {
		Advice struct {
			Type string `json:"type"`
		} `json:"advice"`
	}
	if status = post(t, client, path+"/rpe", `{"rpe":5}`, &rpeResponse); status != http.StatusOK {
		t.Fatalf("POST rpe status = %d, want 200", status)
	}
	if rpeResponse.Advice.Type == "" {
		t.Error("rpe advice has no type")
	}
	if status = post(t, client, path+"/rpe", `{"rpe":11}`, nil); status != http.StatusUnprocessableEntity {
		t.Errorf("POST rpe 11 status = %d, want 422", status)
	}

	var progress struct {
		CompletedWorkouts int `json:"completed_workouts"`
	}
	if status = get(t, client, server.URL+"/api/progress", &progress); status != http.StatusOK {
		t.Fatalf("GET /api/progress status = %d, want 200", status)
	}
	if progress.CompletedWorkouts != 1 {
		t.Errorf("completed_workouts = %d, want 1", progress.CompletedWorkouts)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	server, client := newTestServer(t)

	var prefs map[string]any
	if status := get(t, client, server.URL+"/api/preferences", &prefs); status != http.StatusOK {
		t.Fatalf("GET /api/preferences status = %d, want 200", status)
	}
	if prefs["athlete_name"] != "Rebel" {
		t.Errorf("default athlete_name = %v, want Rebel", prefs["athlete_name"])
	}

	status := post(t, client, server.URL+"/api/preferences",
		`{"goal":"ftp","time_commitment":"starter","preferred_days":["Mon","Fri"],"athlete_name":"Jo","ftp_watts":250}`,
		nil)
	if status != http.StatusOK {
		t.Fatalf("POST /api/preferences status = %d, want 200", status)
	}

	if status = get(t, client, server.URL+"/api/preferences", &prefs); status != http.StatusOK {
		t.Fatalf("GET /api/preferences status = %d, want 200", status)
	}
	if prefs["athlete_name"] != "Jo" || prefs["ftp_watts"] != float64(250) {
		t.Errorf("preferences did not persist: %v", prefs)
	}

	status = post(t, client, server.URL+"/api/preferences", `{"preferred_days":["Monday"]}`, nil)
	if status != http.StatusUnprocessableEntity {
		t.Errorf("POST invalid weekday status = %d, want 422", status)
	}
}

func TestSessionsIsolateAthletes(t *testing.T) {
	server, first := newTestServer(t)

	status := post(t, first, server.URL+"/api/plan",
		`{"goal":"ftp","time_commitment":"regular","seed":1}`, nil)
	if status != http.StatusCreated {
		t.Fatalf("POST /api/plan status = %d, want 201", status)
	}

	// A fresh client with its own cookie jar is a different athlete.
	jar, err := newCookieJar()
	if err != nil {
		t.Fatalf("new cookie jar: %v", err)
	}
	second := &http.Client{Transport: server.Client().Transport, Jar: jar}

	if status = get(t, second, server.URL+"/api/plan", nil); status != http.StatusNotFound {
		t.Errorf("GET /api/plan for new session status = %d, want 404", status)
	}
	if status = get(t, first, server.URL+"/api/plan", nil); status != http.StatusOK {
		t.Errorf("GET /api/plan for original session status = %d, want 200", status)
	}
}
