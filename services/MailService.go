package services

import (
	"fmt"

	"github.com/Doneddie/kampala-closet/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// MailService delivers contact form submissions to the shop mailbox over SMTP.
type MailService struct {
	dialer *gomail.Dialer
	from   string
	to     string
}

func NewMailService(host string, port int, username, password, from, to string) MailService {
	return MailService{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		to:     to,
	}
}

func (ms *MailService) SendContactMessage(req models.ContactRequest) (err error) {
	if req.Name == "" || req.Email == "" || req.Message == "" {
		zap.S().Errorf("SendContactMessage: name, email and message are required")
		err = models.ErrBadRequest
		return
	}
	body := fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", req.Name, req.Email, req.Message)

	m := gomail.NewMessage()
	m.SetHeader("From", ms.from)
	m.SetHeader("To", ms.to)
	m.SetHeader("Reply-To", req.Email)
	m.SetHeader("Subject", "Contact Form: "+req.Subject)
	m.SetBody("text/plain", body)

	if e := ms.dialer.DialAndSend(m); e != nil {
		zap.S().Errorf("SendContactMessage: %v", e)
		err = models.ErrServerError
	}
	return
}
