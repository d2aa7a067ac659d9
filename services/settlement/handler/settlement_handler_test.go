package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"veilmarket/internal/auctionerrors"
	"veilmarket/internal/models"
	"veilmarket/internal/server/middleware"
	settlement "veilmarket/internal/settlementService"
)

// asViewer injects the context the auth middleware would have set
func asViewer(viewerID string, role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxViewerID, viewerID)
		c.Set(middleware.CtxViewerRole, role)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// Test MaterializeHandler
func TestMaterializeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSettlementServiceInterface(ctrl)
	handler := NewSettlementHandler(mockService, 0.05)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/settlements", asViewer("admin-1", models.RoleAdmin), handler.MaterializeHandler)

	settled := models.Settlement{
		SettlementID: "s1",
		AuctionRef:   "a1",
		FinalAmount:  200,
		PlatformCut:  10,
		PayoutAmount: 190,
		EscrowState:  models.EscrowHeld,
	}

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func()
		expectedStatus int
	}{
		{
			name:        "default_commission_rate",
			requestBody: map[string]any{"auction_id": "a1"},
			mockSetup: func() {
				mockService.EXPECT().Materialize("a1", 0.05).Return(settled, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:        "explicit_commission_rate",
			requestBody: map[string]any{"auction_id": "a1", "commission_rate": 0.10},
			mockSetup: func() {
				mockService.EXPECT().Materialize("a1", 0.10).Return(settled, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "missing_auction_id",
			requestBody:    map[string]any{},
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid_json",
			requestBody:    `{not json}`,
			mockSetup:      func() {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "auction_not_ended",
			requestBody: map[string]any{"auction_id": "a1"},
			mockSetup: func() {
				mockService.EXPECT().Materialize("a1", 0.05).Return(models.Settlement{}, auctionerrors.ErrAuctionNotEnded)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "auction_without_winner",
			requestBody: map[string]any{"auction_id": "a1"},
			mockSetup: func() {
				mockService.EXPECT().Materialize("a1", 0.05).Return(models.Settlement{}, auctionerrors.ErrNoWinner)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "duplicate_settlement",
			requestBody: map[string]any{"auction_id": "a1"},
			mockSetup: func() {
				mockService.EXPECT().Materialize("a1", 0.05).Return(models.Settlement{}, auctionerrors.ErrSettlementExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:        "auction_not_found",
			requestBody: map[string]any{"auction_id": "missing"},
			mockSetup: func() {
				mockService.EXPECT().Materialize("missing", 0.05).Return(models.Settlement{}, auctionerrors.ErrAuctionNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.mockSetup()

			w := performJSON(t, router, http.MethodPost, "/settlements", tc.requestBody)
			require.Equal(t, tc.expectedStatus, w.Code)

			if tc.expectedStatus == http.StatusCreated {
				data := decodeBody(t, w)["data"].(map[string]any)
				require.Equal(t, "s1", data["settlement_id"])
				require.Equal(t, 190.0, data["payout_amount"])
				require.Equal(t, "held", data["escrow_state"])
			}
		})
	}
}

// Test GetSettlementHandler
func TestGetSettlementHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSettlementServiceInterface(ctrl)
	handler := NewSettlementHandler(mockService, 0.05)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/settlements/:settlement_id", asViewer("seller-1", models.RoleUser), handler.GetSettlementHandler)

	t.Run("party_view", func(t *testing.T) {
		mockService.EXPECT().
			GetSettlement("s1", models.RoleUser, "seller-1").
			Return(settlement.SettlementView{
				View:           "seller",
				SettlementID:   "s1",
				BuyerPseudonym: "BIDDER_AB12CD34",
				PayoutAmount:   190,
			}, nil)

		w := performJSON(t, router, http.MethodGet, "/settlements/s1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		require.Equal(t, "seller", data["view"])
		_, hasBuyer := data["buyer"]
		require.False(t, hasBuyer)
	})

	t.Run("stranger_forbidden", func(t *testing.T) {
		mockService.EXPECT().
			GetSettlement("s1", models.RoleUser, "seller-1").
			Return(settlement.SettlementView{}, auctionerrors.ErrNotAuthorized)

		w := performJSON(t, router, http.MethodGet, "/settlements/s1", nil)
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("not_found", func(t *testing.T) {
		mockService.EXPECT().
			GetSettlement("missing", models.RoleUser, "seller-1").
			Return(settlement.SettlementView{}, auctionerrors.ErrSettlementNotFound)

		w := performJSON(t, router, http.MethodGet, "/settlements/missing", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// Test ConfirmAppointmentHandler
func TestConfirmAppointmentHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSettlementServiceInterface(ctrl)
	handler := NewSettlementHandler(mockService, 0.05)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/settlements/:settlement_id/appointments/:side/confirm", asViewer("seller-1", models.RoleUser), handler.ConfirmAppointmentHandler)

	body := map[string]any{"date": "2026-09-01", "time_slot": "10:00-11:00"}

	t.Run("seller_confirms", func(t *testing.T) {
		mockService.EXPECT().
			ConfirmAppointment("s1", models.SideSeller, "2026-09-01", "10:00-11:00", "seller-1", models.RoleUser).
			Return(nil)

		w := performJSON(t, router, http.MethodPost, "/settlements/s1/appointments/seller/confirm", body)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unknown_side", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/settlements/s1/appointments/broker/confirm", body)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("missing_date", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/settlements/s1/appointments/seller/confirm", map[string]any{"time_slot": "10:00-11:00"})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non_party_forbidden", func(t *testing.T) {
		mockService.EXPECT().
			ConfirmAppointment("s1", models.SideBuyer, "2026-09-01", "10:00-11:00", "seller-1", models.RoleUser).
			Return(auctionerrors.ErrNotParty)

		w := performJSON(t, router, http.MethodPost, "/settlements/s1/appointments/buyer/confirm", body)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

// Test CompleteAppointmentHandler
func TestCompleteAppointmentHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSettlementServiceInterface(ctrl)
	handler := NewSettlementHandler(mockService, 0.05)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/settlements/:settlement_id/appointments/:side/complete", asViewer("buyer-1", models.RoleUser), handler.CompleteAppointmentHandler)

	t.Run("completion_reports_escrow_state", func(t *testing.T) {
		mockService.EXPECT().
			CompleteAppointment("s1", models.SideBuyer, "buyer-1", models.RoleUser).
			Return(models.Settlement{
				SettlementID: "s1",
				MeetingState: models.MeetingCompleted,
				EscrowState:  models.EscrowReleased,
			}, nil)

		w := performJSON(t, router, http.MethodPost, "/settlements/s1/appointments/buyer/complete", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		require.Equal(t, "released", data["escrow_state"])
		require.Equal(t, "completed", data["meeting_state"])
	})

	t.Run("unconfirmed_half_conflicts", func(t *testing.T) {
		mockService.EXPECT().
			CompleteAppointment("s1", models.SideBuyer, "buyer-1", models.RoleUser).
			Return(models.Settlement{}, auctionerrors.ErrInvalidTransition)

		w := performJSON(t, router, http.MethodPost, "/settlements/s1/appointments/buyer/complete", nil)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

// Test the admin escrow override handlers
func TestAdminEscrowHandlers(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockSettlementServiceInterface(ctrl)
	handler := NewSettlementHandler(mockService, 0.05)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/settlements/:settlement_id/force-release", asViewer("admin-1", models.RoleAdmin), handler.ForceReleaseHandler)
	router.POST("/settlements/:settlement_id/refund", asViewer("admin-1", models.RoleAdmin), handler.RefundHandler)

	t.Run("force_release", func(t *testing.T) {
		mockService.EXPECT().
			ForceRelease("s1", "admin-1", "dispute resolved in seller's favour").
			Return(models.Settlement{SettlementID: "s1", EscrowState: models.EscrowReleased}, nil)

		w := performJSON(t, router, http.MethodPost, "/settlements/s1/force-release", map[string]any{"reason": "dispute resolved in seller's favour"})
		require.Equal(t, http.StatusOK, w.Code)

		data := decodeBody(t, w)["data"].(map[string]any)
		require.Equal(t, "released", data["escrow_state"])
	})

	t.Run("refund", func(t *testing.T) {
		mockService.EXPECT().
			Refund("s1", "admin-1", "item was misrepresented").
			Return(models.Settlement{SettlementID: "s1", EscrowState: models.EscrowRefunded}, nil)

		w := performJSON(t, router, http.MethodPost, "/settlements/s1/refund", map[string]any{"reason": "item was misrepresented"})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("reason_is_mandatory", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/settlements/s1/force-release", map[string]any{})
		require.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("already_settled_conflicts", func(t *testing.T) {
		mockService.EXPECT().
			Refund("s1", "admin-1", "second attempt").
			Return(models.Settlement{}, auctionerrors.ErrInvalidTransition)

		w := performJSON(t, router, http.MethodPost, "/settlements/s1/refund", map[string]any{"reason": "second attempt"})
		require.Equal(t, http.StatusConflict, w.Code)
	})
}
