package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crm_backoffice/internal/adapter/http/handlers/mocks"
	"crm_backoffice/internal/domain/entities"
	"crm_backoffice/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestLeaveHandler_ApplyLeave(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.POST("/v1/leaves", h.ApplyLeave)

		req := httptest.NewRequest(http.MethodPost, "/v1/leaves", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unparseable dates", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.POST("/v1/leaves", h.ApplyLeave)

		body := `{"employee_id":"emp-1","leave_type":"Vacation","from_date":"01/07/2024","to_date":"05/07/2024"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/leaves", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("overlap conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.POST("/v1/leaves", h.ApplyLeave)

		uc.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(entities.LeaveRequest{}, usecase.ErrOverlappingLeave)

		body := `{"employee_id":"emp-1","leave_type":"Vacation","from_date":"2024-07-01","to_date":"2024-07-05"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/leaves", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.POST("/v1/leaves", h.ApplyLeave)

		uc.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, in usecase.ApplyLeaveInput) (entities.LeaveRequest, error) {
				if in.EmployeeID != "emp-1" || in.LeaveType != "Vacation" {
					t.Fatalf("unexpected input: %+v", in)
				}
				return entities.LeaveRequest{
					ID:           "leave-1",
					EmployeeID:   in.EmployeeID,
					LeaveType:    in.LeaveType,
					FromDate:     in.FromDate,
					ToDate:       in.ToDate,
					NumberOfDays: 5,
					Status:       entities.LeaveStatusPending,
				}, nil
			},
		)

		body := `{"employee_id":"emp-1","leave_type":"Vacation","from_date":"2024-07-01","to_date":"2024-07-05","reason":"summer break"}`
		req := httptest.NewRequest(http.MethodPost, "/v1/leaves", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["id"] != "leave-1" || resp["number_of_days"] != 5.0 {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})
}

func TestLeaveHandler_GetLeaveByID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.GET("/v1/leaves/:id", h.GetLeaveByID)

		uc.EXPECT().GetByID(gomock.Any(), "missing").Return(entities.LeaveRequest{}, usecase.ErrLeaveRequestNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/leaves/missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}

func TestLeaveHandler_ListLeavesByEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("missing employee id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.GET("/v1/leaves", h.ListLeavesByEmployee)

		req := httptest.NewRequest(http.MethodGet, "/v1/leaves", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.GET("/v1/leaves", h.ListLeavesByEmployee)

		uc.EXPECT().ListByEmployeeID(gomock.Any(), "emp-1").Return([]entities.LeaveRequest{{ID: "leave-1"}}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/leaves?employee_id=emp-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("approve success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.PATCH("/v1/leaves/:id/approve", h.ApproveLeave)

		decidedAt := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
		uc.EXPECT().Approve(gomock.Any(), "leave-1", "mgr-1").Return(entities.LeaveRequest{
			ID:         "leave-1",
			Status:     entities.LeaveStatusApproved,
			ApprovedBy: "mgr-1",
			DecidedAt:  &decidedAt,
		}, nil)

		req := httptest.NewRequest(http.MethodPatch, "/v1/leaves/leave-1/approve", bytes.NewBufferString(`{"approver_id":"mgr-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var resp map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &resp)
		if resp["status"] != "Approved" || resp["approved_by"] != "mgr-1" {
			t.Fatalf("unexpected response body: %s", w.Body.String())
		}
	})

	t.Run("reject missing approver", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.PATCH("/v1/leaves/:id/reject", h.RejectLeave)

		req := httptest.NewRequest(http.MethodPatch, "/v1/leaves/leave-1/reject", bytes.NewBufferString(`{}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("already decided", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockILeaveUseCase(ctrl)
		h := NewLeaveHandler(uc)

		r := gin.New()
		r.PATCH("/v1/leaves/:id/reject", h.RejectLeave)

		uc.EXPECT().Reject(gomock.Any(), "leave-1", "mgr-1").Return(entities.LeaveRequest{}, usecase.ErrLeaveAlreadyDecided)

		req := httptest.NewRequest(http.MethodPatch, "/v1/leaves/leave-1/reject", bytes.NewBufferString(`{"approver_id":"mgr-1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})
}

func TestMapLeaveError(t *testing.T) {
	if got := mapLeaveError(usecase.ErrInvalidLeaveRange); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapLeaveError(usecase.ErrLeaveInPast); got.HTTPStatus != http.StatusBadRequest {
		t.Fatalf("expected 400")
	}
	if got := mapLeaveError(usecase.ErrOverlappingLeave); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapLeaveError(usecase.ErrLeaveRequestNotFound); got.HTTPStatus != http.StatusNotFound {
		t.Fatalf("expected 404")
	}
	if got := mapLeaveError(usecase.ErrLeaveAlreadyDecided); got.HTTPStatus != http.StatusConflict {
		t.Fatalf("expected 409")
	}
	if got := mapLeaveError(errors.New("x")); got.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("expected 500")
	}
}
