package main

import (
	"log"

	"github.com/skilledwork/worker_service/config"
	"github.com/skilledwork/worker_service/infra/queue"
	"github.com/skilledwork/worker_service/internal/notify"
)

func main() {
	cfg := config.LoadConfig()

	log.Println("Notify Service starting...")
	log.Printf("KafkaBroker=%s Topic=%s GroupID=%s\n",
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
	)

	mail := notify.NewMailSender(
		cfg.SMTPHost,
		cfg.SMTPPort,
		cfg.SMTPUser,
		cfg.SMTPPassword,
		cfg.MailFrom,
		cfg.MailFromName,
		cfg.MailSubject,
	)
	sms := notify.NewSMSClient(
		cfg.SMSBaseURL,
		cfg.SMSAccountSID,
		cfg.SMSAuthToken,
		cfg.SMSFromNumber,
	)

	handler := notify.NewNotifyHandler(mail, sms)

	consumer := queue.NewKafkaConsumer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaGroupID,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
		handler,
	)

	log.Println("Notify Service listening for events...")
	consumer.Listen()
}
