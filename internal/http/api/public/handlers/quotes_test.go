package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/atelier3d/site-backend/internal/models"
)

func newQuoteRouter(t *testing.T, mailer *stubMailer) (*gin.Engine, *gorm.DB) {
	t.Helper()
	conn := openPublicDB(t)
	gin.SetMode(gin.TestMode)
	router := gin.New()
	if mailer == nil {
		router.POST("/api/quotes", NewQuoteHandler(conn, nil).Create)
	} else {
		router.POST("/api/quotes", NewQuoteHandler(conn, mailer).Create)
	}
	return router, conn
}

func postQuote(router *gin.Engine, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, req)
	return recorder
}

func TestCreateQuoteStoresRowAndNotifies(t *testing.T) {
	mailer := &stubMailer{}
	router, conn := newQuoteRouter(t, mailer)

	body := `{"name":"Jean","email":"jean@example.fr","phone":"0600000000","message":"Un devis svp","file_name":"piece.stl","file_url":"https://files.example/piece.stl"}`
	recorder := postQuote(router, body)

	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", recorder.Code, recorder.Body.String())
	}
	if !strings.Contains(recorder.Body.String(), `"status":"new"`) {
		t.Fatalf("unexpected body: %s", recorder.Body.String())
	}

	var stored models.QuoteRequest
	if errFind := conn.First(&stored).Error; errFind != nil {
		t.Fatalf("load stored quote: %v", errFind)
	}
	if stored.Name != "Jean" || stored.Status != models.QuoteStatusNew {
		t.Fatalf("unexpected stored quote: %+v", stored)
	}
	if stored.FileName != "piece.stl" {
		t.Fatalf("file name not stored: %q", stored.FileName)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if !strings.Contains(msg.Subject, "Jean") {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if msg.ReplyTo != "jean@example.fr" {
		t.Fatalf("unexpected reply-to: %q", msg.ReplyTo)
	}
	if !strings.Contains(msg.HTML, "Un devis svp") {
		t.Fatalf("message body missing quote text: %s", msg.HTML)
	}
}

func TestCreateQuoteValidation(t *testing.T) {
	router, _ := newQuoteRouter(t, nil)

	cases := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.fr","message":"x"}`},
		{"missing email", `{"name":"A","message":"x"}`},
		{"missing message", `{"name":"A","email":"a@b.fr"}`},
		{"bad email", `{"name":"A","email":"not-an-email","message":"x"}`},
		{"malformed", `{`},
	}
	for _, tc := range cases {
		recorder := postQuote(router, tc.body)
		if recorder.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected status 400, got %d", tc.name, recorder.Code)
		}
	}
}

func TestCreateQuoteEscapesUserContentInNotification(t *testing.T) {
	row := models.QuoteRequest{
		Name:    "<script>alert(1)</script>",
		Email:   "a@b.fr",
		Message: "1 < 2 & 3 > 2",
	}
	rendered := renderQuoteEmail(&row)
	if strings.Contains(rendered, "<script>") {
		t.Fatalf("user content not escaped: %s", rendered)
	}
	if !strings.Contains(rendered, "1 &lt; 2 &amp; 3 &gt; 2") {
		t.Fatalf("expected escaped message, got: %s", rendered)
	}
}

func TestCreateQuoteSurvivesNotificationFailure(t *testing.T) {
	mailer := &stubMailer{sendErr: errors.New("smtp down")}
	router, conn := newQuoteRouter(t, mailer)

	recorder := postQuote(router, `{"name":"Jean","email":"jean@example.fr","message":"Un devis svp"}`)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected status 201 despite delivery failure, got %d", recorder.Code)
	}

	var count int64
	if errCount := conn.Model(&models.QuoteRequest{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count quotes: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected stored quote despite delivery failure, got %d rows", count)
	}
}
