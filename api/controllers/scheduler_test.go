package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ecclesia-app/ecclesia-backend/internal/scheduler"
	"github.com/ecclesia-app/ecclesia-backend/pkg/logger"
)

type testSchedulerService struct {
	suggestFn  func(ctx context.Context, params scheduler.SuggestParams) (*scheduler.PlanResult, error)
	applyFn    func(ctx context.Context, suggestions []scheduler.ScheduleSuggestion) (*scheduler.ApplyResult, error)
	validateFn func(ctx context.Context, scheduleID, userID uuid.UUID) (scheduler.ValidationResult, error)
}

func (s *testSchedulerService) Suggest(ctx context.Context, params scheduler.SuggestParams) (*scheduler.PlanResult, error) {
	if s.suggestFn != nil {
		return s.suggestFn(ctx, params)
	}
	return &scheduler.PlanResult{}, nil
}

func (s *testSchedulerService) Plan(ctx context.Context, scheduleIDs []uuid.UUID, ministryID *uuid.UUID) (*scheduler.PlanResult, error) {
	return &scheduler.PlanResult{}, nil
}

func (s *testSchedulerService) Apply(ctx context.Context, suggestions []scheduler.ScheduleSuggestion) (*scheduler.ApplyResult, error) {
	if s.applyFn != nil {
		return s.applyFn(ctx, suggestions)
	}
	return &scheduler.ApplyResult{}, nil
}

func (s *testSchedulerService) Validate(ctx context.Context, scheduleID, userID uuid.UUID) (scheduler.ValidationResult, error) {
	if s.validateFn != nil {
		return s.validateFn(ctx, scheduleID, userID)
	}
	return scheduler.ValidationResult{Valid: true}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestSchedulerSuggestParsesWindow(t *testing.T) {
	var captured scheduler.SuggestParams
	svc := &testSchedulerService{
		suggestFn: func(ctx context.Context, params scheduler.SuggestParams) (*scheduler.PlanResult, error) {
			captured = params
			return &scheduler.PlanResult{Stats: scheduler.DistributionStats{TotalSchedules: 2}}, nil
		},
	}

	body := `{"start_date":"2026-03-01","end_date":"2026-03-31"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduler/suggest", strings.NewReader(body))
	resp := httptest.NewRecorder()
	SchedulerSuggest(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}
	if !captured.StartDate.Equal(time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start date %s", captured.StartDate)
	}
	if captured.MinistryID != nil {
		t.Fatal("expected no ministry filter")
	}

	var envelope struct {
		Data scheduler.PlanResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Stats.TotalSchedules != 2 {
		t.Fatalf("unexpected stats %+v", envelope.Data.Stats)
	}
}

func TestSchedulerSuggestRejectsBadDate(t *testing.T) {
	svc := &testSchedulerService{
		suggestFn: func(ctx context.Context, params scheduler.SuggestParams) (*scheduler.PlanResult, error) {
			t.Fatal("service should not be called")
			return nil, nil
		},
	}

	body := `{"start_date":"03/01/2026","end_date":"2026-03-31"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduler/suggest", strings.NewReader(body))
	resp := httptest.NewRecorder()
	SchedulerSuggest(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSchedulerApplyForwardsSuggestions(t *testing.T) {
	scheduleID := uuid.New()
	userID := uuid.New()
	svc := &testSchedulerService{
		applyFn: func(ctx context.Context, suggestions []scheduler.ScheduleSuggestion) (*scheduler.ApplyResult, error) {
			if len(suggestions) != 1 {
				t.Fatalf("expected one suggestion got %d", len(suggestions))
			}
			if suggestions[0].ScheduleID != scheduleID {
				t.Fatalf("unexpected schedule %s", suggestions[0].ScheduleID)
			}
			return &scheduler.ApplyResult{AssignmentsCreated: 1, Errors: []string{}}, nil
		},
	}

	payload := SchedulerApplyRequest{
		Suggestions: []scheduler.ScheduleSuggestion{
			{
				ScheduleID:   scheduleID,
				ScheduleName: "Sunday Service",
				ScheduleDate: time.Date(2026, time.March, 8, 10, 0, 0, 0, time.UTC),
				Suggestions: []scheduler.CandidateSuggestion{
					{UserID: userID, UserName: "Alice", Score: 92, Reasons: []string{"available on Sundays"}},
				},
			},
		},
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduler/apply", strings.NewReader(string(raw)))
	resp := httptest.NewRecorder()
	SchedulerApply(svc, testLogger())(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data scheduler.ApplyResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AssignmentsCreated != 1 {
		t.Fatalf("unexpected result %+v", envelope.Data)
	}
}

func TestSchedulerApplyRequiresSuggestions(t *testing.T) {
	svc := &testSchedulerService{}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduler/apply", strings.NewReader(`{"suggestions":[]}`))
	resp := httptest.NewRecorder()
	SchedulerApply(svc, testLogger())(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestSchedulerValidateReturnsReason(t *testing.T) {
	svc := &testSchedulerService{
		validateFn: func(ctx context.Context, scheduleID, userID uuid.UUID) (scheduler.ValidationResult, error) {
			return scheduler.ValidationResult{Valid: false, Reason: "already assigned to this schedule"}, nil
		},
	}

	body := `{"schedule_id":"` + uuid.NewString() + `","user_id":"` + uuid.NewString() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/scheduler/validate", strings.NewReader(body))
	resp := httptest.NewRecorder()
	SchedulerValidate(svc, testLogger())(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("unexpected status %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data scheduler.ValidationResult `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Valid {
		t.Fatal("expected invalid result")
	}
	if envelope.Data.Reason == "" {
		t.Fatal("expected a reason")
	}
}
