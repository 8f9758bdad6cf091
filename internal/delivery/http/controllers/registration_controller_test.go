package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventregistry/internal/delivery/http/helpers"
	"eventregistry/internal/domain"
)

type mockRegistrationService struct {
	reg *domain.Registration
	err error
}

func (m *mockRegistrationService) RegisterUser(ctx context.Context, eventID, userID string) (*domain.Registration, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.reg, nil
}

func (m *mockRegistrationService) CancelRegistration(ctx context.Context, eventID, userID string) error {
	return m.err
}

const testUserID = "22222222-2222-2222-2222-222222222222"

func registerRequest(userID string) *http.Request {
	body := `{"user_id":"` + userID + `"}`
	req := httptest.NewRequest(http.MethodPost, "/events/"+testEventID+"/registrations", strings.NewReader(body))
	req.SetPathValue("eventID", testEventID)
	return req
}

func TestRegistrationController_RegisterUser_Success(t *testing.T) {
	reg := &domain.Registration{EventID: testEventID, UserID: testUserID}
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{reg: reg})

	w := httptest.NewRecorder()
	ctrl.RegisterUser(w, registerRequest(testUserID))

	if w.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, w.Code)
	}
	var resp helpers.APIResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("expected no error, got %v", resp.Error)
	}
}

func TestRegistrationController_RegisterUser_InvalidEventID(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{})

	req := httptest.NewRequest(http.MethodPost, "/events/nope/registrations", strings.NewReader(`{"user_id":"`+testUserID+`"}`))
	req.SetPathValue("eventID", "nope")
	w := httptest.NewRecorder()

	ctrl.RegisterUser(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestRegistrationController_RegisterUser_InvalidUserID(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{})

	w := httptest.NewRecorder()
	ctrl.RegisterUser(w, registerRequest("not-a-uuid"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestRegistrationController_RegisterUser_Conflicts(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"event already occurred", domain.ErrEventPassed},
		{"capacity full", domain.ErrEventFull},
		{"already registered", domain.ErrAlreadyRegistered},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{err: tt.err})

			w := httptest.NewRecorder()
			ctrl.RegisterUser(w, registerRequest(testUserID))

			if w.Code != http.StatusConflict {
				t.Fatalf("expected status %d, got %d", http.StatusConflict, w.Code)
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if resp.Error == nil || resp.Error.Code != helpers.ErrCodeConflict {
				t.Fatalf("expected conflict error, got %v", resp.Error)
			}
		})
	}
}

func TestRegistrationController_RegisterUser_EventNotFound(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{err: domain.ErrNotFound})

	w := httptest.NewRecorder()
	ctrl.RegisterUser(w, registerRequest(testUserID))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestRegistrationController_RegisterUser_Unavailable(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{err: domain.ErrUnavailable})

	w := httptest.NewRecorder()
	ctrl.RegisterUser(w, registerRequest(testUserID))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
}

func cancelRequest(eventID, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, "/events/"+eventID+"/registrations/"+userID, nil)
	req.SetPathValue("eventID", eventID)
	req.SetPathValue("userID", userID)
	return req
}

func TestRegistrationController_CancelRegistration_Success(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{})

	w := httptest.NewRecorder()
	ctrl.CancelRegistration(w, cancelRequest(testEventID, testUserID))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestRegistrationController_CancelRegistration_NotFound(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{err: domain.ErrNotFound})

	w := httptest.NewRecorder()
	ctrl.CancelRegistration(w, cancelRequest(testEventID, testUserID))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestRegistrationController_CancelRegistration_InvalidUserID(t *testing.T) {
	ctrl := NewRegistrationController(testLogger(), &mockRegistrationService{})

	w := httptest.NewRecorder()
	ctrl.CancelRegistration(w, cancelRequest(testEventID, "nope"))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}
