package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/brightpath/course-scheduler/internal/dto"
	appErrors "github.com/brightpath/course-scheduler/pkg/errors"
)

type scheduleGeneratorMock struct {
	captured dto.GenerateScheduleRequest
	result   *dto.GenerateScheduleResponse
	err      error
}

func (m *scheduleGeneratorMock) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	m.captured = req
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &dto.GenerateScheduleResponse{Status: http.StatusOK}, nil
}

func TestScheduleGeneratorHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &scheduleGeneratorMock{result: &dto.GenerateScheduleResponse{
		Status:              http.StatusOK,
		SimplifiedSchedules: []dto.SimplifiedSchedule{{ScheduleNumber: 1}},
	}}
	handler := &ScheduleGeneratorHandler{service: mockSvc}
	payload := []byte(`{"courses":["Algebra","Calculus"],"minimum":2}`)
	req, _ := http.NewRequest(http.MethodPost, "/generate_schedule", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, []string{"Algebra", "Calculus"}, mockSvc.captured.Courses)
	require.Equal(t, uint(2), mockSvc.captured.Minimum)
}

func TestScheduleGeneratorHandlerBindValidation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &scheduleGeneratorMock{}}
	req, _ := http.NewRequest(http.MethodPost, "/generate_schedule", bytes.NewReader([]byte(`{"courses":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleGeneratorHandlerPropagatesServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleGeneratorHandler{service: &scheduleGeneratorMock{err: appErrors.ErrScheduleTimeout}}
	payload := []byte(`{"courses":["Algebra"],"minimum":1}`)
	req, _ := http.NewRequest(http.MethodPost, "/generate_schedule", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	handler.Generate(c)

	require.Equal(t, http.StatusGatewayTimeout, w.Code)
}
