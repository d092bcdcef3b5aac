package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-transaction-service/internal/models"
	"github.com/sbilibin2017/gw-transaction-service/internal/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestListTransactionsHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	newer := models.TransactionDB{
		TransactionID: 2,
		Amount:        decimal.RequireFromString("20.00"),
		Type:          models.TypeWithdrawal,
		Status:        models.StatusPending,
		UserID:        1,
		Timestamp:     time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC),
	}
	older := models.TransactionDB{
		TransactionID: 1,
		Amount:        decimal.RequireFromString("10.00"),
		Type:          models.TypeDeposit,
		Status:        models.StatusCompleted,
		UserID:        1,
		Timestamp:     time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}

	tests := []struct {
		name          string
		target        string
		mockSetup     func(m *MockTransactionLister)
		expectedCode  int
		expectedIDs   []int64
		expectedError string
		wantValidation bool
	}{
		{
			name:   "returns transactions newest first",
			target: "/api/transactions?user_id=1",
			mockSetup: func(m *MockTransactionLister) {
				m.EXPECT().
					ListByUser(gomock.Any(), int64(1)).
					Return([]models.TransactionDB{newer, older}, nil)
			},
			expectedCode: http.StatusOK,
			expectedIDs:  []int64{2, 1},
		},
		{
			name:   "user without transactions yields empty array",
			target: "/api/transactions?user_id=1",
			mockSetup: func(m *MockTransactionLister) {
				m.EXPECT().
					ListByUser(gomock.Any(), int64(1)).
					Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedIDs:  []int64{},
		},
		{
			name:           "missing user_id",
			target:         "/api/transactions",
			expectedCode:   http.StatusBadRequest,
			wantValidation: true,
		},
		{
			name:           "non-numeric user_id",
			target:         "/api/transactions?user_id=abc",
			expectedCode:   http.StatusBadRequest,
			wantValidation: true,
		},
		{
			name:   "user not found",
			target: "/api/transactions?user_id=42",
			mockSetup: func(m *MockTransactionLister) {
				m.EXPECT().
					ListByUser(gomock.Any(), int64(42)).
					Return(nil, services.ErrUserNotFound)
			},
			expectedCode:  http.StatusNotFound,
			expectedError: "User not found",
		},
		{
			name:   "storage failure",
			target: "/api/transactions?user_id=1",
			mockSetup: func(m *MockTransactionLister) {
				m.EXPECT().
					ListByUser(gomock.Any(), int64(1)).
					Return(nil, errors.New("database failure"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := NewMockTransactionLister(ctrl)
			if tt.mockSetup != nil {
				tt.mockSetup(mockSvc)
			}

			handler := NewListTransactionsHandler(mockSvc)

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rr := httptest.NewRecorder()
			handler(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			switch {
			case tt.wantValidation:
				var resp ValidationErrorResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Len(t, resp.Errors, 1)
				assert.Equal(t, "user_id", resp.Errors[0].Param)
			case tt.expectedError != "":
				var resp map[string]string
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				assert.Equal(t, tt.expectedError, resp["error"])
			default:
				// The transactions key must always be a JSON array, never null.
				var raw map[string]json.RawMessage
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &raw))
				assert.NotEqual(t, "null", string(raw["transactions"]))

				var resp ListTransactionsResponse
				assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				ids := make([]int64, 0, len(resp.Transactions))
				for _, item := range resp.Transactions {
					ids = append(ids, item.TransactionID)
				}
				assert.Equal(t, tt.expectedIDs, ids)
			}
		})
	}
}
