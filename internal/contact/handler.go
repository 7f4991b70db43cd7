package contact

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/logger"
	"github.com/Zachkp/portfolio/internal/mail"
	"github.com/Zachkp/portfolio/internal/metrics"
)

// Handler serves the contact form endpoint.
type Handler struct {
	sender    mail.Sender
	validator *Validator
	from      string
	owner     string
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewHandler creates a Handler. from is the relay account address and owner
// receives the notifications. m may be nil.
func NewHandler(sender mail.Sender, from, owner string, log logger.Logger, m *metrics.Metrics) *Handler {
	return &Handler{
		sender:    sender,
		validator: NewValidator(),
		from:      from,
		owner:     owner,
		logger:    log,
		metrics:   m,
	}
}

// HandleSubmit validates the posted form and relays it.
func (h *Handler) HandleSubmit(c *gin.Context) {
	log := logger.FromContext(c.Request.Context(), h.logger)
	defer func() {
		if r := recover(); r != nil {
			h.fail(c, log, fmt.Errorf("panic: %v", r))
		}
	}()

	sub := Submission{
		Email:   c.PostForm("email"),
		Subject: c.PostForm("subject"),
		Message: c.PostForm("message"),
	}

	if err := h.validator.Validate(sub); err != nil {
		if errors.Is(err, ErrFieldsRequired) || errors.Is(err, ErrInvalidEmail) {
			h.metrics.ContactSubmitted(metrics.OutcomeInvalid)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.fail(c, log, err)
		return
	}

	notification, confirmation := Compose(sub, h.from, h.owner)
	if err := SendBothOrFail(c.Request.Context(), h.sender, notification, confirmation); err != nil {
		h.fail(c, log, err)
		return
	}

	h.metrics.ContactSubmitted(metrics.OutcomeSent)
	log.Info("Contact email sent", logger.String("reply_to", sub.Email))
	c.JSON(http.StatusOK, gin.H{"message": MsgSent})
}

func (h *Handler) fail(c *gin.Context, log logger.Logger, err error) {
	h.metrics.ContactSubmitted(metrics.OutcomeFailed)
	log.Error("Contact form error", logger.Error(err))
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": MsgSendFailed})
}
