package contact_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/portfolio/internal/contact"
	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/metrics"
)

const (
	testFrom  = "relay@example.com"
	testOwner = "owner@example.com"
)

// stubSender records messages and fails sends to addresses in failFor.
type stubSender struct {
	mu      sync.Mutex
	sent    []mail.Message
	failFor map[string]error
}

func (s *stubSender) Send(_ context.Context, msg mail.Message) error {
	if err, ok := s.failFor[msg.To]; ok {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *stubSender) byRecipient(to string) (mail.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.sent {
		if m.To == to {
			return m, true
		}
	}
	return mail.Message{}, false
}

type recordingLogger struct {
	logger.NoOpLogger
	mu     sync.Mutex
	errors []string
}

func (l *recordingLogger) Error(msg string, _ ...logger.Field) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

func (l *recordingLogger) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.errors)
}

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	m.Run()
}

func setupRouter(t *testing.T, sender mail.Sender, m *metrics.Metrics) *gin.Engine {
	t.Helper()

	r := gin.New()
	h := contact.NewHandler(sender, testFrom, testOwner, logger.NewNop(), m)
	r.POST("/api/contact", h.HandleSubmit)
	return r
}

func postForm(r http.Handler, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func form(email, subject, message string) url.Values {
	return url.Values{"email": {email}, "subject": {subject}, "message": {message}}
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"a@b.co":                     true,
		"first.last@sub.example.org": true,
		"a@b":                        false,
		"a b@c.com":                  false,
		"":                           false,
		"a@b@c.com":                  false,
		"@b.co":                      false,
		"a@b.":                       false,
		"a@b.co ":                    false,
		"a\u00a0b@c.com":             false,
		"a\vb@c.com":                 false,
		"a@b.c\u2003om":              false,
		"a@b\u2028.com":              false,
		"a\u0085b@c.com":             false,
		"\ufeffa@b.co":               false,
		"jos\u00e9@b.co":             true,
	}
	for input, want := range tests {
		assert.Equal(t, want, contact.ValidEmail(input), "ValidEmail(%q)", input)
	}
}

func TestValidator(t *testing.T) {
	t.Parallel()

	v := contact.NewValidator()

	assert.NoError(t, v.Validate(contact.Submission{Email: "a@b.co", Subject: "x", Message: "y"}))
	assert.ErrorIs(t, v.Validate(contact.Submission{Subject: "x", Message: "y"}), contact.ErrFieldsRequired)
	assert.ErrorIs(t, v.Validate(contact.Submission{Email: "a@b.co", Message: "y"}), contact.ErrFieldsRequired)
	assert.ErrorIs(t, v.Validate(contact.Submission{Email: "a@b.co", Subject: "x"}), contact.ErrFieldsRequired)
	assert.ErrorIs(t, v.Validate(contact.Submission{Email: "not-an-email", Subject: "x", Message: "y"}), contact.ErrInvalidEmail)
	// A missing field wins over a malformed address.
	assert.ErrorIs(t, v.Validate(contact.Submission{Email: "not-an-email", Message: "y"}), contact.ErrFieldsRequired)
}

func TestHandleSubmit_MissingField(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	m := metrics.New()
	r := setupRouter(t, sender, m)

	w := postForm(r, form("", "x", "y"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"All fields are required"}`, w.Body.String())
	assert.Empty(t, sender.sent)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ContactSubmissions.WithLabelValues(metrics.OutcomeInvalid)), 0)
}

func TestHandleSubmit_AbsentFields(t *testing.T) {
	t.Parallel()

	r := setupRouter(t, &stubSender{}, nil)
	w := postForm(r, url.Values{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"All fields are required"}`, w.Body.String())
}

func TestHandleSubmit_InvalidEmail(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	r := setupRouter(t, sender, nil)

	w := postForm(r, form("not-an-email", "x", "y"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Invalid email format"}`, w.Body.String())
	assert.Empty(t, sender.sent)
}

func TestHandleSubmit_Success(t *testing.T) {
	t.Parallel()

	sender := &stubSender{}
	m := metrics.New()
	r := setupRouter(t, sender, m)

	subject := "Collab <b>idea</b>"
	message := "Hi!\nLet's build something & ship it."
	w := postForm(r, form("visitor@example.com", subject, message))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Email sent successfully"}`, w.Body.String())
	require.Len(t, sender.sent, 2)

	owner, ok := sender.byRecipient(testOwner)
	require.True(t, ok)
	assert.Equal(t, testFrom, owner.From)
	assert.Equal(t, "Portfolio Contact: "+subject, owner.Subject)
	assert.Contains(t, owner.HTML, "visitor@example.com")
	assert.Contains(t, owner.HTML, subject)
	assert.Contains(t, owner.HTML, message)

	confirmation, ok := sender.byRecipient("visitor@example.com")
	require.True(t, ok)
	assert.Equal(t, testFrom, confirmation.From)
	assert.Equal(t, "Thank you for contacting me!", confirmation.Subject)
	assert.Contains(t, confirmation.HTML, subject)
	assert.Contains(t, confirmation.HTML, message)

	assert.InDelta(t, 1, testutil.ToFloat64(m.ContactSubmissions.WithLabelValues(metrics.OutcomeSent)), 0)
}

func TestHandleSubmit_OneSendFails(t *testing.T) {
	t.Parallel()

	for _, failing := range []string{testOwner, "visitor@example.com"} {
		t.Run(failing, func(t *testing.T) {
			t.Parallel()

			sender := &stubSender{failFor: map[string]error{failing: errors.New("relay rejected")}}
			m := metrics.New()
			r := setupRouter(t, sender, m)

			w := postForm(r, form("visitor@example.com", "x", "y"))

			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
			assert.NotContains(t, w.Body.String(), "relay rejected")
			assert.InDelta(t, 1, testutil.ToFloat64(m.ContactSubmissions.WithLabelValues(metrics.OutcomeFailed)), 0)
		})
	}
}

func TestHandleSubmit_SenderPanics(t *testing.T) {
	t.Parallel()

	sender := mail.SenderFunc(func(context.Context, mail.Message) error {
		panic("boom")
	})
	r := setupRouter(t, sender, nil)

	w := postForm(r, form("visitor@example.com", "x", "y"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to send email"}`, w.Body.String())
}

func TestSendBothOrFail(t *testing.T) {
	t.Parallel()

	a := mail.Message{To: "a@example.com"}
	b := mail.Message{To: "b@example.com"}

	ok := &stubSender{}
	require.NoError(t, contact.SendBothOrFail(context.Background(), ok, a, b))
	assert.Len(t, ok.sent, 2)

	bothFail := &stubSender{failFor: map[string]error{
		"a@example.com": errors.New("a down"),
		"b@example.com": errors.New("b down"),
	}}
	assert.Error(t, contact.SendBothOrFail(context.Background(), bothFail, a, b))

	relayErr := errors.New("b down")
	oneFails := &stubSender{failFor: map[string]error{"b@example.com": relayErr}}
	err := contact.SendBothOrFail(context.Background(), oneFails, a, b)
	assert.ErrorIs(t, err, relayErr)
	// The other message still went out.
	_, sentA := oneFails.byRecipient("a@example.com")
	assert.True(t, sentA)
}

func TestCompose(t *testing.T) {
	t.Parallel()

	sub := contact.Submission{Email: "v@example.com", Subject: "<script>", Message: "line1\nline2"}
	owner, confirmation := contact.Compose(sub, testFrom, testOwner)

	assert.Equal(t, testOwner, owner.To)
	assert.Equal(t, "Portfolio Contact: <script>", owner.Subject)
	assert.Contains(t, owner.HTML, "<p><strong style=\"color: #00FF41;\">FROM:</strong> v@example.com</p>")
	assert.Contains(t, owner.HTML, "line1\nline2")

	assert.Equal(t, "v@example.com", confirmation.To)
	assert.Contains(t, confirmation.HTML, `your message about "<script>"`)
	assert.Contains(t, confirmation.HTML, "line1\nline2")
}

func TestHandleSubmit_LogsWithRequestLogger(t *testing.T) {
	t.Parallel()

	base := &recordingLogger{}
	reqLog := &recordingLogger{}
	sender := &stubSender{failFor: map[string]error{testOwner: errors.New("relay rejected")}}

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context(), reqLog))
		c.Next()
	})
	r.POST("/api/contact", contact.NewHandler(sender, testFrom, testOwner, base, nil).HandleSubmit)

	w := postForm(r, form("visitor@example.com", "x", "y"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, 1, reqLog.count())
	assert.Zero(t, base.count())
}
