package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/garnizeh/boards/pkg/models"
)

// openJobFor creates a company and a job owned by emp and returns the job id.
func openJobFor(t *testing.T, s *testServer, emp session) int64 {
	t.Helper()
	w := s.do(http.MethodPost, "/addCompany", companyBody("Acme"), emp.Token)
	expectStatus(t, w, http.StatusOK)

	w = s.do(http.MethodPost, "/CreateNewJob", jobBody("Go developer"), emp.Token)
	expectStatus(t, w, http.StatusOK)
	return decode[messageResponse](t, w).ID
}

func (s *testServer) apply(token string, fields map[string]string, resume []byte) *httptest.ResponseRecorder {
	s.t.Helper()
	body, contentType := multipartBody(s.t, fields, resume)
	return s.doRaw(http.MethodPost, "/postApplication", body, contentType, token)
}

func TestApplicationHandlers(t *testing.T) {
	s := newJobBoardServer(t)
	emp := s.signUpAccount("Ivy", "ivy@example.com", models.RoleEmployer)
	other := s.signUpAccount("Jack", "jack@example.com", models.RoleEmployer)
	cand := s.signUpAccount("Kim", "kim@example.com", models.RoleCandidate)
	jobID := openJobFor(t, s, emp)

	fields := func(job int64) map[string]string {
		return map[string]string{
			"job_id":       strconv.FormatInt(job, 10),
			"phone_number": "+1 555 0100",
			"cover_letter": "I like Go.",
			"linkedin_url": "https://linkedin.com/in/kim",
			"source":       "website",
		}
	}

	rejects := []struct {
		name       string
		fields     map[string]string
		resume     []byte
		wantStatus int
	}{
		{name: "MissingResume", fields: fields(jobID), resume: nil, wantStatus: http.StatusBadRequest},
		{name: "NotPDF", fields: fields(jobID), resume: []byte("plain text resume"), wantStatus: http.StatusBadRequest},
		{name: "TooLarge", fields: fields(jobID), resume: pdfBytes(2048), wantStatus: http.StatusBadRequest},
		{name: "MissingJob", fields: map[string]string{"phone_number": "1"}, resume: pdfBytes(64), wantStatus: http.StatusBadRequest},
		{name: "UnknownJob", fields: fields(9999), resume: pdfBytes(64), wantStatus: http.StatusNotFound},
	}
	for _, tc := range rejects {
		t.Run("Post_"+tc.name, func(t *testing.T) {
			w := s.apply(cand.Token, tc.fields, tc.resume)
			expectStatus(t, w, tc.wantStatus)
		})
	}

	t.Run("Post_RequiresToken", func(t *testing.T) {
		w := s.apply("", fields(jobID), pdfBytes(64))
		expectStatus(t, w, http.StatusUnauthorized)
	})

	w := s.apply(cand.Token, fields(jobID), pdfBytes(64))
	expectStatus(t, w, http.StatusOK)
	posted := decode[applicationResponse](t, w)
	if posted.ID == 0 || !posted.Notified {
		t.Fatalf("unexpected response: %+v", posted)
	}
	msg, _ := s.mail.Last()
	if msg.To != "kim@example.com" || !strings.Contains(msg.Subject, "Go developer") {
		t.Fatalf("unexpected notification: %+v", msg)
	}
	if !strings.Contains(msg.HTML, "http://front.test/candidate/applications") {
		t.Fatalf("notification should link to the frontend: %s", msg.HTML)
	}

	t.Run("Post_Duplicate", func(t *testing.T) {
		jobIDField := map[string]string{"jobId": strconv.FormatInt(jobID, 10), "phone_number": "1"}
		w := s.apply(cand.Token, jobIDField, pdfBytes(64))
		expectError(t, w, http.StatusConflict, "You have already applied for this job")
	})

	t.Run("EmployerList", func(t *testing.T) {
		w := s.do(http.MethodPost, "/getEmployeerApplications", map[string]int64{"jobId": jobID}, other.Token)
		expectStatus(t, w, http.StatusForbidden)

		w = s.do(http.MethodPost, "/getEmployeerApplications", map[string]int64{"jobId": 9999}, emp.Token)
		expectStatus(t, w, http.StatusNotFound)

		w = s.do(http.MethodPost, "/getEmployeerApplications", map[string]int64{"jobId": jobID}, emp.Token)
		expectStatus(t, w, http.StatusOK)
		apps := decode[[]models.Application](t, w)
		if len(apps) != 1 {
			t.Fatalf("expected 1 application, got %d", len(apps))
		}
		want := fmt.Sprintf("http://api.test/downloadResume/%d", posted.ID)
		if apps[0].ResumeURL != want || apps[0].CandidateID != cand.ID || apps[0].Status != models.StatusPending {
			t.Fatalf("unexpected application: %+v", apps[0])
		}
	})

	t.Run("CandidateList", func(t *testing.T) {
		w := s.do(http.MethodPost, "/getCandidateApplications", nil, cand.Token)
		expectStatus(t, w, http.StatusOK)
		apps := decode[[]models.Application](t, w)
		if len(apps) != 1 || apps[0].JobTitle != "Go developer" || apps[0].ResumeURL == "" {
			t.Fatalf("unexpected applications: %+v", apps)
		}

		w = s.do(http.MethodPost, "/getCandidateApplications", nil, other.Token)
		expectStatus(t, w, http.StatusOK)
		if apps := decode[[]models.Application](t, w); len(apps) != 0 {
			t.Fatalf("expected no applications, got %d", len(apps))
		}
	})

	t.Run("DownloadResume", func(t *testing.T) {
		path := idPath("/downloadResume", posted.ID)

		w := s.do(http.MethodGet, path, nil, other.Token)
		expectStatus(t, w, http.StatusForbidden)

		w = s.do(http.MethodGet, "/downloadResume/9999", nil, emp.Token)
		expectStatus(t, w, http.StatusNotFound)

		for _, who := range []session{cand, emp} {
			w = s.do(http.MethodGet, path, nil, who.Token)
			expectStatus(t, w, http.StatusOK)
			if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
				t.Fatalf("unexpected content type %q", ct)
			}
			if cd := w.Header().Get("Content-Disposition"); !strings.HasPrefix(cd, "inline; filename=resume-") {
				t.Fatalf("unexpected content disposition %q", cd)
			}
			body, _ := io.ReadAll(w.Body)
			if !strings.HasPrefix(string(body), "%PDF-1.4") || len(body) != 64 {
				t.Fatalf("unexpected resume body (%d bytes)", len(body))
			}
		}
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		update := func(status string) map[string]any {
			return map[string]any{"application_id": posted.ID, "application_status": status}
		}

		w := s.do(http.MethodPut, "/updateApplicationStatus", update("promoted"), emp.Token)
		expectStatus(t, w, http.StatusBadRequest)

		w = s.do(http.MethodPut, "/updateApplicationStatus", update(models.StatusHired), cand.Token)
		expectStatus(t, w, http.StatusForbidden)

		w = s.do(http.MethodPut, "/updateApplicationStatus", map[string]any{"application_id": 9999, "application_status": "reviewed"}, emp.Token)
		expectStatus(t, w, http.StatusNotFound)

		w = s.do(http.MethodPut, "/updateApplicationStatus", update(models.StatusShortlisted), emp.Token)
		expectStatus(t, w, http.StatusOK)
		if resp := decode[applicationResponse](t, w); !resp.Notified {
			t.Fatalf("expected notification, got %+v", resp)
		}
		msg, _ := s.mail.Last()
		if msg.To != "kim@example.com" || !strings.Contains(msg.Text, models.StatusShortlisted) {
			t.Fatalf("unexpected notification: %+v", msg)
		}

		s.mail.Err = errors.New("smtp down")
		defer func() { s.mail.Err = nil }()

		w = s.do(http.MethodPut, "/updateApplicationStatus", update(models.StatusInterview), emp.Token)
		expectStatus(t, w, http.StatusOK)
		if resp := decode[applicationResponse](t, w); resp.Notified {
			t.Fatal("a failed notification must be reported")
		}

		w = s.do(http.MethodPost, "/getCandidateApplications", nil, cand.Token)
		apps := decode[[]models.Application](t, w)
		if len(apps) != 1 || apps[0].Status != models.StatusInterview {
			t.Fatalf("status update should stand without notification: %+v", apps)
		}
	})
}
