package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := envelopeData(t, rec.Body.Bytes())
	if data["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", data["status"])
	}
}

func TestGetCurrentWeek(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/week", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := envelopeData(t, rec.Body.Bytes())
	key, _ := data["week_key"].(string)
	if len(key) != 10 {
		t.Fatalf("expected YYYY-MM-DD week key, got %q", key)
	}
	if _, ok := data["locked"].(bool); !ok {
		t.Fatalf("expected locked flag, got %v", data["locked"])
	}
}

func TestGetWeekSchedule(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/week/"+testWeekKey+"/schedule", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec.Body.Bytes())
	games, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected games array, got %v", body["data"])
	}
	if len(games) != 41 {
		t.Fatalf("expected 41 scheduled games, got %d", len(games))
	}
}

func TestGetWeekSchedule_RejectsMalformedKey(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/week/not-a-week/schedule", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetWeekSlate(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/week/"+testWeekKey+"/slate", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	data := envelopeData(t, rec.Body.Bytes())
	ids, ok := data["game_ids"].([]any)
	if !ok {
		t.Fatalf("expected game_ids array, got %v", data["game_ids"])
	}
	if len(ids) != 30 {
		t.Fatalf("expected 30 slate games, got %d", len(ids))
	}
}

func TestPutTeamRoster_FullFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	payload := `{"player_ids":["p1","p2","p3","p4","p5","p6","p7","p8","p9","p10"]}`
	req := httptest.NewRequest(http.MethodPut, "/v1/teams/t1/roster?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := envelopeData(t, rec.Body.Bytes())
	forwards, _ := data["starter_forwards"].([]any)
	defense, _ := data["starter_defense"].([]any)
	bench, _ := data["bench"].([]any)
	if len(forwards) != 3 || len(defense) != 2 {
		t.Fatalf("expected 3F/2D starters, got %dF/%dD", len(forwards), len(defense))
	}
	if len(bench) != 5 {
		t.Fatalf("expected 5 bench players, got %d", len(bench))
	}

	getReq := httptest.NewRequest(http.MethodGet, "/v1/teams/t1/roster?week="+testWeekKey, nil)
	getRec := httptest.NewRecorder()
	router.ServeHTTP(getRec, getReq)
	if getRec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on read-back, got %d", getRec.Code)
	}
}

func TestPutTeamRoster_RejectsShortRoster(t *testing.T) {
	router := newTestRouter(t, nil)

	payload := `{"player_ids":["p1","p2","p3"]}`
	req := httptest.NewRequest(http.MethodPut, "/v1/teams/t1/roster?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}

	body := decodeEnvelope(t, rec.Body.Bytes())
	errBody, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object in response, got %v", body)
	}
	items, _ := errBody["errors"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected one error item, got %v", errBody["errors"])
	}
	item, _ := items[0].(map[string]any)
	if got, _ := item["reason"].(string); got != "invalidRoster" {
		t.Fatalf("expected reason invalidRoster, got %q", got)
	}
}

func TestPutTeamRoster_RejectsUnknownTeam(t *testing.T) {
	router := newTestRouter(t, nil)

	payload := `{"player_ids":["p1","p2","p3","p4","p5","p6","p7","p8","p9","p10"]}`
	req := httptest.NewRequest(http.MethodPut, "/v1/teams/t99/roster?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}

func TestPutTeamRoster_RejectsUnknownJSONField(t *testing.T) {
	router := newTestRouter(t, nil)

	payload := `{"player_ids":["p1"],"bogus":true}`
	req := httptest.NewRequest(http.MethodPut, "/v1/teams/t1/roster?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestSetTeamStarter_PromoteAndDemote(t *testing.T) {
	router := newTestRouter(t, nil)
	seedRoster(t, router, "t1")

	demote := `{"player_id":"p1","starter":false}`
	req := httptest.NewRequest(http.MethodPost, "/v1/teams/t1/starters?week="+testWeekKey, strings.NewReader(demote))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on demote, got %d: %s", rec.Code, rec.Body.String())
	}

	promote := `{"player_id":"p6","starter":true}`
	req = httptest.NewRequest(http.MethodPost, "/v1/teams/t1/starters?week="+testWeekKey, strings.NewReader(promote))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 on promote, got %d: %s", rec.Code, rec.Body.String())
	}

	data := envelopeData(t, rec.Body.Bytes())
	forwards, _ := data["starter_forwards"].([]any)
	found := false
	for _, f := range forwards {
		if f == "p6" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected p6 among starter forwards, got %v", forwards)
	}
}

func TestSetTeamAlternateDay(t *testing.T) {
	router := newTestRouter(t, nil)
	seedRoster(t, router, "t1")

	payload := `{"player_id":"p1","day":"Wed"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/teams/t1/alternate-day?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := envelopeData(t, rec.Body.Bytes())
	altDay, _ := data["alt_day"].(map[string]any)
	if altDay["p1"] != "Wed" {
		t.Fatalf("expected p1 alternate day Wed, got %v", altDay)
	}
}

func TestSetTeamAlternateDay_RejectsBenchPlayer(t *testing.T) {
	router := newTestRouter(t, nil)
	seedRoster(t, router, "t1")

	payload := `{"player_id":"p6","day":"Wed"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/teams/t1/alternate-day?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", rec.Code)
	}
}

func TestPutTeamPick_FullFlow(t *testing.T) {
	router := newTestRouter(t, nil)

	slateReq := httptest.NewRequest(http.MethodGet, "/v1/week/"+testWeekKey+"/slate", nil)
	slateRec := httptest.NewRecorder()
	router.ServeHTTP(slateRec, slateReq)
	if slateRec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for slate, got %d", slateRec.Code)
	}
	slate := envelopeData(t, slateRec.Body.Bytes())
	ids, _ := slate["game_ids"].([]any)
	if len(ids) == 0 {
		t.Fatalf("expected non-empty slate")
	}
	gameID, _ := ids[0].(string)

	payload := `{"outcome":"HOME"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/teams/t1/picks/"+gameID+"?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := envelopeData(t, rec.Body.Bytes())
	picks, _ := data["picks"].(map[string]any)
	if picks[gameID] != "HOME" {
		t.Fatalf("expected HOME pick for %s, got %v", gameID, picks)
	}
}

func TestPutTeamPick_RejectsBadOutcome(t *testing.T) {
	router := newTestRouter(t, nil)

	payload := `{"outcome":"TIE"}`
	req := httptest.NewRequest(http.MethodPut, "/v1/teams/t1/picks/g-x?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestGetWeekMatchups(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/week/"+testWeekKey+"/matchups", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeEnvelope(t, rec.Body.Bytes())
	matchups, ok := body["data"].([]any)
	if !ok {
		t.Fatalf("expected matchups array, got %v", body["data"])
	}
	// Four seeded teams pair into two head-to-head matchups.
	if len(matchups) != 2 {
		t.Fatalf("expected 2 matchups, got %d", len(matchups))
	}
}

func TestGetWeekStandings(t *testing.T) {
	router := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/week/"+testWeekKey+"/standings", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
}

func seedRoster(t *testing.T, router http.Handler, teamID string) {
	t.Helper()

	payload := `{"player_ids":["p1","p2","p3","p4","p5","p6","p7","p8","p9","p10"]}`
	req := httptest.NewRequest(http.MethodPut, "/v1/teams/"+teamID+"/roster?week="+testWeekKey, strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("seed roster for %s: status %d: %s", teamID, rec.Code, rec.Body.String())
	}
}
