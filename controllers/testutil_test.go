package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"greenhouse/config"
	"greenhouse/middlewares"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.JWTSecret = []byte("test-secret")
	os.Exit(m.Run())
}

func setupTestDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := MigrateModels(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
}

// newRouter wires the routes under test the same way main does.
func newRouter() *gin.Engine {
	r := gin.New()
	r.POST("/api/register", Signup)
	r.POST("/api/login", Login)
	r.GET("/api/plants", ListPlants)
	r.GET("/api/plants/:id", GetPlant)
	r.POST("/api/measurements", ReceiveData)

	auth := r.Group("/api")
	auth.Use(middlewares.AuthMiddleware())
	auth.GET("/profile", GetProfile)
	auth.GET("/user/device", GetPairing)
	auth.POST("/user/device", SetPairing)
	auth.DELETE("/user/device", ClearPairing)
	auth.GET("/user/device/status", GetDeviceStatus)
	auth.GET("/measurements/:device_id", GetHistory)
	auth.GET("/measurements/:device_id/latest", GetLatest)
	auth.GET("/measurements/:device_id/csv", DownloadCSV)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
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

func registerAndLogin(t *testing.T, r *gin.Engine, username string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/register", "", gin.H{"username": username, "password": "secret123"})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %s", username, w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, "/api/login", "", gin.H{"username": username, "password": "secret123"})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", username, w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	if resp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return resp.Token
}
