package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Rdevang/Smart-Split-sub004/internal/audit"
	"github.com/Rdevang/Smart-Split-sub004/internal/domain"
	"github.com/Rdevang/Smart-Split-sub004/internal/lock"
	"github.com/Rdevang/Smart-Split-sub004/internal/middleware"
	"github.com/Rdevang/Smart-Split-sub004/internal/service"
	"github.com/Rdevang/Smart-Split-sub004/internal/testutil"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type handlerFixture struct {
	handler *SettlementHandler
	members *testutil.MockMemberRepository
	limiter *testutil.MockRateLimiter
	locker  *testutil.MockLocker

	groupID uuid.UUID
	payer   uuid.UUID
	payee   uuid.UUID
}

func newHandlerFixture() *handlerFixture {
	f := &handlerFixture{
		members: testutil.NewMockMemberRepository(),
		limiter: testutil.NewMockRateLimiter(),
		locker:  testutil.NewMockLocker(),
		groupID: uuid.New(),
		payer:   uuid.New(),
		payee:   uuid.New(),
	}
	f.members.AddMember(f.groupID, f.payer, domain.RoleMember)
	f.members.AddMember(f.groupID, f.payee, domain.RoleMember)
	f.members.SetName(f.payer, "Alice")
	f.members.SetName(f.payee, "Bob")

	svc := service.NewSettlementService(
		testutil.NewMockSettlementRepository(),
		f.members,
		f.limiter,
		f.locker,
		testutil.NewMockInvalidator(),
		audit.NewRecorder(zerolog.Nop()),
	)
	f.handler = NewSettlementHandler(svc)
	return f
}

func (f *handlerFixture) request(t *testing.T, body map[string]interface{}, actorID uuid.UUID) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/groups/"+f.groupID.String()+"/settlements", bytes.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("groupId")
	c.SetParamValues(f.groupID.String())

	if actorID != uuid.Nil {
		ctx := context.WithValue(c.Request().Context(), middleware.ActorIDKey, actorID)
		c.SetRequest(c.Request().WithContext(ctx))
	}
	return c, rec
}

func (f *handlerFixture) body() map[string]interface{} {
	return map[string]interface{}{
		"fromMember": f.payer.String(),
		"toMember":   f.payee.String(),
		"amount":     "25.00",
	}
}

func TestSettlementHandler_Record_Pending(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.request(t, f.body(), f.payer)

	err := f.handler.Record(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response SettlementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.True(t, response.Success)
	assert.True(t, response.Pending)
	assert.Equal(t, "25.00", response.Settlement.Amount)
	assert.Equal(t, "pending", response.Settlement.Status)
	assert.Nil(t, response.Settlement.SettledAt)
}

func TestSettlementHandler_Record_AutoApproved(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.request(t, f.body(), f.payee)

	err := f.handler.Record(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response SettlementResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.False(t, response.Pending)
	assert.Equal(t, "approved", response.Settlement.Status)
	require.NotNil(t, response.Settlement.SettledAt)
	_, err = time.Parse(time.RFC3339, *response.Settlement.SettledAt)
	assert.NoError(t, err)
}

func TestSettlementHandler_Record_Unauthenticated(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.request(t, f.body(), uuid.Nil)

	err := f.handler.Record(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSettlementHandler_Record_InvalidAmount(t *testing.T) {
	f := newHandlerFixture()
	body := f.body()
	body["amount"] = "-5.00"
	c, rec := f.request(t, body, f.payer)

	err := f.handler.Record(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var problem ProblemDetails
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, ErrorTypeValidation, problem.Type)
}

func TestSettlementHandler_Record_RateLimited(t *testing.T) {
	f := newHandlerFixture()
	f.limiter.Denied = true
	f.limiter.RetryAfter = 2 * time.Second
	c, rec := f.request(t, f.body(), f.payer)

	err := f.handler.Record(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "2", rec.Header().Get("Retry-After"))
}

func TestSettlementHandler_Record_AlreadyProcessing(t *testing.T) {
	f := newHandlerFixture()
	f.locker.Hold(lock.SettlementKey(f.groupID, f.payer, f.payee))
	c, rec := f.request(t, f.body(), f.payer)

	err := f.handler.Record(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestSettlementHandler_Record_NonMemberForbidden(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.request(t, f.body(), uuid.New())

	err := f.handler.Record(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestSettlementHandler_Record_BadGroupID(t *testing.T) {
	f := newHandlerFixture()
	c, rec := f.request(t, f.body(), f.payer)
	c.SetParamValues("not-a-uuid")

	err := f.handler.Record(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
