package notify

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/skilledwork/worker_service/internal/dto"
)

// NotifyHandler consumes verification events from the queue and performs
// the actual email/SMS delivery.
type NotifyHandler struct {
	Mail *MailSender
	SMS  *SMSClient
}

func NewNotifyHandler(mail *MailSender, sms *SMSClient) *NotifyHandler {
	return &NotifyHandler{Mail: mail, SMS: sms}
}

func (h *NotifyHandler) HandleMessage(key, value string) error {
	switch key {
	case dto.EventVerifyEmail:
		var event dto.VerifyEmailEvent
		if err := json.Unmarshal([]byte(value), &event); err != nil {
			log.Printf("invalid event payload: %s\n", value)
			return err
		}
		log.Printf("verify email event: user_id=%d email=%s", event.UserID, event.Email)
		return h.Mail.SendCodeEmail(event.Email, event.Code)

	case dto.EventVerifyPhone:
		var event dto.VerifyPhoneEvent
		if err := json.Unmarshal([]byte(value), &event); err != nil {
			log.Printf("invalid event payload: %s\n", value)
			return err
		}
		log.Printf("verify phone event: user_id=%d phone=%s", event.UserID, event.Phone)

		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return h.SMS.SendCodeSMS(ctx, event.Phone, event.Code)

	default:
		log.Printf("unknown event key %q - skipped", key)
		return nil
	}
}
