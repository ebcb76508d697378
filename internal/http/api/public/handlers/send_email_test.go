package handlers

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/atelier3d/site-backend/internal/mail"
)

type stubMailer struct {
	sent    []mail.Message
	sendErr error
}

func (s *stubMailer) Send(_ context.Context, msg mail.Message) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, msg)
	return nil
}

func newSendEmailRouter(mailer mail.Mailer, configured bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewSendEmailHandler(mailer, configured)
	router.Any("/api/send-email", handler.Handle)
	return router
}

func doSendEmail(router *gin.Engine, method, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/send-email", nil)
	} else {
		req = httptest.NewRequest(method, "/api/send-email", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestSendEmailPreflight(t *testing.T) {
	router := newSendEmailRouter(&stubMailer{}, true)

	recorder := doSendEmail(router, http.MethodOptions, "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200 for OPTIONS, got %d", recorder.Code)
	}
	if origin := recorder.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
		t.Fatalf("expected permissive CORS origin, got %q", origin)
	}
	if methods := recorder.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(methods, "POST") {
		t.Fatalf("expected POST in allowed methods, got %q", methods)
	}
}

func TestSendEmailRejectsNonPost(t *testing.T) {
	router := newSendEmailRouter(&stubMailer{}, true)

	for _, method := range []string{http.MethodGet, http.MethodPut, http.MethodDelete} {
		recorder := doSendEmail(router, method, "")
		if recorder.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: expected status 405, got %d", method, recorder.Code)
		}
		if origin := recorder.Header().Get("Access-Control-Allow-Origin"); origin != "*" {
			t.Fatalf("%s: expected CORS header on rejection, got %q", method, origin)
		}
	}
}

func TestSendEmailWithoutTransport(t *testing.T) {
	router := newSendEmailRouter(nil, false)

	recorder := doSendEmail(router, http.MethodPost, `{"subject":"s","html":"<p>x</p>"}`)
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 when unconfigured, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Missing SMTP configuration") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestSendEmailValidation(t *testing.T) {
	router := newSendEmailRouter(&stubMailer{}, true)

	recorder := doSendEmail(router, http.MethodPost, `{not json`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for malformed body, got %d", recorder.Code)
	}

	recorder = doSendEmail(router, http.MethodPost, `{"subject":"","html":"<p>x</p>"}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for empty subject, got %d", recorder.Code)
	}

	recorder = doSendEmail(router, http.MethodPost, `{"subject":"s","html":"   "}`)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for blank html, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Missing required fields") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestSendEmailRejectsOversizedAttachmentByDeclaredSize(t *testing.T) {
	mailer := &stubMailer{}
	router := newSendEmailRouter(mailer, true)

	body := fmt.Sprintf(
		`{"subject":"s","html":"<p>x</p>","attachment":{"filename":"model.stl","content":"AAAA","size":%d}}`,
		5*1024*1024,
	)
	recorder := doSendEmail(router, http.MethodPost, body)
	if recorder.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status 413, got %d", recorder.Code)
	}
	if len(mailer.sent) != 0 {
		t.Fatal("oversized attachment must not be sent")
	}
}

func TestSendEmailRejectsInvalidBase64(t *testing.T) {
	router := newSendEmailRouter(&stubMailer{}, true)

	body := `{"subject":"s","html":"<p>x</p>","attachment":{"filename":"a.pdf","content":"!!not-base64!!","size":12}}`
	recorder := doSendEmail(router, http.MethodPost, body)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400 for invalid base64, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Invalid attachment format") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestSendEmailDeliversWithSanitizedAttachment(t *testing.T) {
	mailer := &stubMailer{}
	router := newSendEmailRouter(mailer, true)

	content := base64.StdEncoding.EncodeToString([]byte("solid model"))
	body := fmt.Sprintf(
		`{"subject":"Devis","html":"<p>Bonjour</p>","replyTo":"client@example.fr","attachment":{"filename":"..\\evil/name\r\n.stl","content":"%s","size":11}}`,
		content,
	)
	recorder := doSendEmail(router, http.MethodPost, body)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `"success":true`) {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 sent message, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.Subject != "Devis" || msg.ReplyTo != "client@example.fr" {
		t.Fatalf("unexpected message: %+v", msg)
	}
	if msg.RefID == "" {
		t.Fatal("expected a reference id on the message")
	}
	if msg.Attachment == nil {
		t.Fatal("expected an attachment")
	}
	if strings.ContainsAny(msg.Attachment.Filename, "\\/\r\n") {
		t.Fatalf("filename not sanitized: %q", msg.Attachment.Filename)
	}
	if string(msg.Attachment.Content) != "solid model" {
		t.Fatalf("attachment content mangled: %q", msg.Attachment.Content)
	}
}

func TestSendEmailProviderFailure(t *testing.T) {
	mailer := &stubMailer{sendErr: errors.New("smtp down")}
	router := newSendEmailRouter(mailer, true)

	recorder := doSendEmail(router, http.MethodPost, `{"subject":"s","html":"<p>x</p>"}`)
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 on provider failure, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Failed to send email") {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := SanitizeFilename("a\\b/c\rd\ne.stl")
	if got != "a_b_c_d_e.stl" {
		t.Fatalf("unexpected sanitized name: %q", got)
	}

	long := strings.Repeat("x", 300) + ".pdf"
	if got := SanitizeFilename(long); len(got) != 120 {
		t.Fatalf("expected truncation to 120, got %d", len(got))
	}
}
