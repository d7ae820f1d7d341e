package settlement_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrm/internal/settlement"
	settlementerrors "go-hrm/internal/settlement/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeService struct {
	settlement.Service

	initiate func(ctx context.Context, req settlement.InitiateSettlementRequest) (settlement.SettlementResponse, error)
	approve  func(ctx context.Context, id, approverID string) (settlement.SettlementResponse, error)
	byEmp    func(ctx context.Context, employeeID string) (settlement.SettlementResponse, error)
}

func (f *fakeService) Initiate(ctx context.Context, req settlement.InitiateSettlementRequest) (settlement.SettlementResponse, error) {
	return f.initiate(ctx, req)
}

func (f *fakeService) Approve(ctx context.Context, id, approverID string) (settlement.SettlementResponse, error) {
	return f.approve(ctx, id, approverID)
}

func (f *fakeService) GetByEmployee(ctx context.Context, employeeID string) (settlement.SettlementResponse, error) {
	return f.byEmp(ctx, employeeID)
}

func TestHandler_Initiate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	svc := &fakeService{
		initiate: func(ctx context.Context, req settlement.InitiateSettlementRequest) (settlement.SettlementResponse, error) {
			assert.Equal(t, employeeID, req.EmployeeID)
			return settlement.SettlementResponse{
				ID:           uuid.New().String(),
				SettlementID: "STL202500001",
				EmployeeID:   req.EmployeeID,
				Status:       "INITIATED",
			}, nil
		},
	}
	h := settlement.NewHandler(svc)

	body := `{
		"employee_id": "` + employeeID + `",
		"exit_reason": "RESIGNATION",
		"last_working_date": "2025-09-30",
		"settlement_date": "2025-10-15",
		"required_notice_days": 30,
		"actual_notice_days": 30
	}`

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/settlement", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Initiate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "STL202500001")
}

func TestHandler_Initiate_ValidationFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := settlement.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/settlement", strings.NewReader(`{"exit_reason":"RESIGNATION"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	h.Initiate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_Approve_GuardErrorMapped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &fakeService{
		approve: func(ctx context.Context, id, approverID string) (settlement.SettlementResponse, error) {
			return settlement.SettlementResponse{}, settlementerrors.ErrInvalidStatusTransition
		},
	}
	h := settlement.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("user_id", uuid.New().String())
	c.Params = gin.Params{{Key: "id", Value: uuid.New().String()}}
	c.Request = httptest.NewRequest(http.MethodPost, "/settlement/x/approve", nil)
	h.Approve(c)

	assert.Equal(t, settlementerrors.ErrInvalidStatusTransition.HTTPStatus, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_STATE")
}

func TestHandler_Me_RequiresEmployeeProfile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := settlement.NewHandler(&fakeService{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/settlement/me", nil)
	h.Me(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
