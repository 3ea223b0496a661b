package controllers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type pairingResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	DeviceName string    `json:"device_name"`
	DeviceUID  string    `json:"device_uid"`
	PlantID    *uint     `json:"plant_id"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func getPairingResponse(t *testing.T, r *gin.Engine, token string) pairingResponse {
	t.Helper()
	w := doJSON(t, r, http.MethodGet, "/api/user/device", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get pairing: status %d body %s", w.Code, w.Body.String())
	}
	var p pairingResponse
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("decode pairing: %v", err)
	}
	return p
}

func TestSetPairingFullReplace(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	token := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/user/device", token,
		gin.H{"deviceName": "Greenhouse A", "deviceUid": "dev-1", "plantId": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("set pairing: status %d body %s", w.Code, w.Body.String())
	}

	p := getPairingResponse(t, r, token)
	if p.DeviceName != "Greenhouse A" || p.DeviceUID != "dev-1" || p.PlantID == nil || *p.PlantID != 3 {
		t.Fatalf("unexpected pairing after first set: %+v", p)
	}

	// Second set replaces every field, never merges.
	w = doJSON(t, r, http.MethodPost, "/api/user/device", token,
		gin.H{"deviceName": "Greenhouse B", "deviceUid": "dev-2", "plantId": 5})
	if w.Code != http.StatusOK {
		t.Fatalf("second set pairing: status %d body %s", w.Code, w.Body.String())
	}

	p2 := getPairingResponse(t, r, token)
	if p2.DeviceName != "Greenhouse B" || p2.DeviceUID != "dev-2" || p2.PlantID == nil || *p2.PlantID != 5 {
		t.Fatalf("unexpected pairing after replace: %+v", p2)
	}
	if p2.UserID != p.UserID {
		t.Fatalf("pairing moved to another user: %d vs %d", p2.UserID, p.UserID)
	}
}

func TestSetPairingWithoutPlantClearsPlant(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	token := registerAndLogin(t, r, "alice")

	doJSON(t, r, http.MethodPost, "/api/user/device", token,
		gin.H{"deviceName": "Greenhouse A", "deviceUid": "dev-1", "plantId": 3})
	doJSON(t, r, http.MethodPost, "/api/user/device", token,
		gin.H{"deviceName": "Greenhouse A", "deviceUid": "dev-1"})

	p := getPairingResponse(t, r, token)
	if p.PlantID != nil {
		t.Fatalf("plant id survived a full-row replace: %+v", p)
	}
}

func TestSetPairingValidation(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	token := registerAndLogin(t, r, "alice")

	w := doJSON(t, r, http.MethodPost, "/api/user/device", token,
		gin.H{"deviceName": "  ", "deviceUid": "dev-1"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blank deviceName accepted: status %d", w.Code)
	}
}

func TestClearPairingKeepsMeasurements(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	token := registerAndLogin(t, r, "alice")

	doJSON(t, r, http.MethodPost, "/api/user/device", token,
		gin.H{"deviceName": "Greenhouse A", "deviceUid": "dev-1"})

	for _, soil := range []float64{10, 20} {
		w := doJSON(t, r, http.MethodPost, "/api/measurements", "",
			gin.H{"device_id": "dev-1", "soil": soil})
		if w.Code != http.StatusOK {
			t.Fatalf("ingest: status %d body %s", w.Code, w.Body.String())
		}
	}

	w := doJSON(t, r, http.MethodDelete, "/api/user/device", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("clear pairing: status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/user/device", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("pairing still present after clear: status %d", w.Code)
	}

	// History for the now-unpaired device remains queryable.
	w = doJSON(t, r, http.MethodGet, "/api/measurements/dev-1", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history after clear: status %d", w.Code)
	}
	var history []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &history); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 measurements after clear, got %d", len(history))
	}
}

func TestPairingScopedToAuthenticatedUser(t *testing.T) {
	setupTestDB(t)
	r := newRouter()
	aliceToken := registerAndLogin(t, r, "alice")
	bobToken := registerAndLogin(t, r, "bob")

	doJSON(t, r, http.MethodPost, "/api/user/device", aliceToken,
		gin.H{"deviceName": "Greenhouse A", "deviceUid": "dev-1"})

	w := doJSON(t, r, http.MethodGet, "/api/user/device", bobToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("bob sees alice's pairing: status %d body %s", w.Code, w.Body.String())
	}
}
