package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/eightball/internal/game"
	"github.com/playmatatu/eightball/internal/models"
	"github.com/playmatatu/eightball/internal/session"
)

func setupRouter(t *testing.T) (*gin.Engine, *game.TableManager, *session.Issuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tm := game.NewTableManager(nil, game.ManagerConfig{Params: game.DefaultParams(), InputQueue: 16})
	t.Cleanup(tm.Shutdown)
	tokens := session.NewIssuer("test-secret", time.Hour)

	r := gin.New()
	r.GET("/health", HealthCheck(tm))
	r.GET("/physics", GetPhysics(tm))
	r.POST("/tables", CreateTable(tm, tokens))
	r.GET("/tables/:id", GetTable(tm, tokens))
	r.DELETE("/tables/:id", CloseTable(tm, tokens))
	return r, tm, tokens
}

func do(r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateAndFetchTable(t *testing.T) {
	r, tm, _ := setupRouter(t)

	w := do(r, http.MethodPost, "/tables", "", gin.H{"player1": "Ann", "player2": "Ben"})
	if w.Code != http.StatusCreated {
		t.Fatalf("Create status = %d: %s", w.Code, w.Body)
	}
	var summary models.TableSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatal(err)
	}
	if summary.TableID == "" || summary.Token == "" || summary.WSURL == "" {
		t.Fatalf("Incomplete summary: %+v", summary)
	}
	if tm.Count() != 1 {
		t.Errorf("Count = %d, want 1", tm.Count())
	}

	w = do(r, http.MethodGet, "/tables/"+summary.TableID, summary.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Get status = %d: %s", w.Code, w.Body)
	}
	var snap game.Snapshot
	if err := json.Unmarshal(w.Body.Bytes(), &snap); err != nil {
		t.Fatal(err)
	}
	if snap.HUD.Players[0].Name != "Ann" {
		t.Errorf("Unexpected HUD: %+v", snap.HUD)
	}

	w = do(r, http.MethodGet, "/tables/"+summary.TableID+"?token="+summary.Token, "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("Query token status = %d", w.Code)
	}

	w = do(r, http.MethodDelete, "/tables/"+summary.TableID, summary.Token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("Close status = %d", w.Code)
	}
	w = do(r, http.MethodGet, "/tables/"+summary.TableID, summary.Token, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("Get after close = %d, want 404", w.Code)
	}
}

func TestTableAuth(t *testing.T) {
	r, _, tokens := setupRouter(t)

	w := do(r, http.MethodPost, "/tables", "", gin.H{"player1": "Ann", "player2": "Ben"})
	var summary models.TableSummary
	json.Unmarshal(w.Body.Bytes(), &summary)

	other, _, _ := tokens.Issue("table_other")

	cases := map[string]string{
		"missing":     "",
		"other table": other,
		"garbage":     "abc",
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodGet, "/tables/"+summary.TableID, token, nil)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("Status = %d, want 401", w.Code)
			}
		})
	}
}

func TestCreateTableValidation(t *testing.T) {
	r, tm, _ := setupRouter(t)

	for _, body := range []interface{}{
		gin.H{"player1": "Ann"},
		gin.H{"player1": "  ", "player2": "Ben"},
		"not an object",
	} {
		if w := do(r, http.MethodPost, "/tables", "", body); w.Code != http.StatusBadRequest {
			t.Errorf("Body %v: status = %d, want 400", body, w.Code)
		}
	}
	if tm.Count() != 0 {
		t.Errorf("Count = %d, want 0", tm.Count())
	}
}

func TestHealthAndPhysics(t *testing.T) {
	r, _, _ := setupRouter(t)

	if w := do(r, http.MethodGet, "/health", "", nil); w.Code != http.StatusOK {
		t.Errorf("Health status = %d", w.Code)
	}

	w := do(r, http.MethodGet, "/physics", "", nil)
	var body struct {
		Params game.Params `json:"params"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Params != game.DefaultParams() {
		t.Errorf("Physics = %+v", body.Params)
	}
}
