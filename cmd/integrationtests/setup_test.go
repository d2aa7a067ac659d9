package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	auction "veilmarket/internal/auctionService"
	register "veilmarket/internal/bidRegister"
	"veilmarket/internal/models"
	"veilmarket/internal/notify"
	"veilmarket/internal/repository"
	"veilmarket/internal/server"
	settlement "veilmarket/internal/settlementService"
	"veilmarket/internal/vault"
)

const (
	testJWTSecret      = "integration-test-secret"
	testCommissionRate = 0.05
)

// testVaultKey is a fixed 256-bit key for integration runs
var testVaultKey = bytes.Repeat([]byte{0x42}, 32)

// SetupTestRouter wires the full engine against the in-memory store and a
// log-only notifier.
func SetupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	v, err := vault.New(testVaultKey)
	if err != nil {
		t.Fatalf("failed to create vault: %v", err)
	}

	repo := repository.NewMemoryRepo()
	notifier := notify.NewLogNotifier()

	auctionSvc := auction.NewAuctionService(repo, v, notifier)
	reg := register.NewRegister(repo, v)
	settlementSvc := settlement.NewSettlementService(repo, v, notifier)

	return server.SetupRouter(auctionSvc, reg, settlementSvc, testJWTSecret, testCommissionRate)
}

// TokenFor mints a signed bearer token for the given account and role.
func TokenFor(t *testing.T, sub string, role models.Role) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": string(role),
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}
	return token
}

// ExecuteRequest executes an HTTP request with an optional bearer token and
// returns the response recorder.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeEntries parses the data array out of a list response envelope.
func decodeEntries(t *testing.T, body []byte) []map[string]any {
	t.Helper()

	var resp struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to unmarshal list response: %v", err)
	}
	return resp.Data
}

// ExecuteRequestAndParse executes a request and parses the JSON envelope,
// returning the data payload for 2xx responses.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := ExecuteRequest(t, router, method, url, token, body)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if w.Code >= 200 && w.Code < 300 {
			if data, ok := resp["data"].(map[string]any); ok {
				resp = data
			}
		}
	}
	return resp, w
}
