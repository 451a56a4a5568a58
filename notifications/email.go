package notifications

import (
	"log"
	"net/smtp"
	"os"
	"time"
)

// broadcastDelay spaces out bulk sends so the SMTP relay is not hammered.
const broadcastDelay = 500 * time.Millisecond

func smtpConfig() (host, port, from, pass string) {
	host = os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port = os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from = os.Getenv("SMTP_FROM")
	pass = os.Getenv("SMTP_PASSWORD")
	return
}

// SendEmail delivers one transactional email. A failure is returned to the
// caller but never rolls back whatever write preceded it.
func SendEmail(to, subject, body string) error {
	host, port, from, pass := smtpConfig()

	msg := []byte("From: " + from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n\r\n" +
		body)

	auth := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(host+":"+port, auth, from, []string{to}, msg)
}

// BroadcastEmail sends the same notice to many recipients with a fixed
// inter-message delay. Individual failures are logged and skipped.
func BroadcastEmail(recipients []string, subject, body string) {
	for i, to := range recipients {
		if i > 0 {
			time.Sleep(broadcastDelay)
		}
		if err := SendEmail(to, subject, body); err != nil {
			log.Printf("BroadcastEmail: send to %s failed: %v", to, err)
		}
	}
}
