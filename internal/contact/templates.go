package contact

import (
	"fmt"

	"github.com/Zachkp/portfolio/internal/mail"
)

// Subjects of the two outbound messages.
const (
	OwnerSubjectPrefix  = "Portfolio Contact: "
	ConfirmationSubject = "Thank you for contacting me!"
)

// Submitted values are embedded as-is, without HTML escaping.
const ownerTemplate = `
<div style="font-family: monospace; background: #000; color: #fff; padding: 20px;">
  <h2 style="color: #00FF41; font-size: 16px;">&gt; NEW CONTACT FORM SUBMISSION_</h2>
  <div style="border: 1px solid #808080; padding: 15px; margin: 15px 0;">
    <p><strong style="color: #00FF41;">FROM:</strong> %s</p>
    <p><strong style="color: #00FF41;">SUBJECT:</strong> %s</p>
    <p><strong style="color: #00FF41;">MESSAGE:</strong></p>
    <div style="background: #404040; padding: 10px; margin-top: 10px; white-space: pre-wrap;">%s</div>
  </div>
  <p style="color: #808080; font-size: 12px;">Sent from Portfolio Contact Form</p>
</div>
`

const confirmationTemplate = `
<div style="font-family: monospace; background: #000; color: #fff; padding: 20px;">
  <h2 style="color: #00FF41; font-size: 16px;">&gt; MESSAGE RECEIVED_</h2>
  <div style="border: 1px solid #808080; padding: 15px; margin: 15px 0;">
    <p>Hi there!</p>
    <p>Thanks for reaching out. I've received your message about "%s" and will get back to you within 24-48 hours.</p>
    <p>Your message:</p>
    <div style="background: #404040; padding: 10px; margin-top: 10px; white-space: pre-wrap;">%s</div>
  </div>
  <p style="color: #808080; font-size: 12px;">Best regards,<br/>Portfolio Team</p>
</div>
`

// Compose builds the owner notification and the visitor confirmation.
func Compose(s Submission, sender, owner string) (notification, confirmation mail.Message) {
	notification = mail.Message{
		From:    sender,
		To:      owner,
		Subject: OwnerSubjectPrefix + s.Subject,
		HTML:    fmt.Sprintf(ownerTemplate, s.Email, s.Subject, s.Message),
	}
	confirmation = mail.Message{
		From:    sender,
		To:      s.Email,
		Subject: ConfirmationSubject,
		HTML:    fmt.Sprintf(confirmationTemplate, s.Subject, s.Message),
	}
	return notification, confirmation
}
