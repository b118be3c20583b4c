package mail

import (
	"fmt"
	"log"
	"time"

	"github.com/sonali689/rebate-portal/internal/models"
	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers one-time codes over SMTP. When no credentials are
// configured the code is printed to the server log instead, so local
// setups keep working without a mail account.
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	otpTTL   time.Duration
}

func NewMailer(host string, port int, username string, password string, from string, otpTTL time.Duration) *Mailer {
	if from == "" {
		from = username
	}
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		otpTTL:   otpTTL,
	}
}

func (mailer *Mailer) configured() bool {
	return mailer.username != "" && mailer.password != ""
}

func (mailer *Mailer) Send(to string, code string, purpose string) error {
	if !mailer.configured() {
		log.Printf("mail not configured, OTP for %s (%s): %s", to, purpose, code)
		return nil
	}

	subject := "Your Mess Rebate Portal Login OTP"
	if purpose == models.OTPPurposeRegistration {
		subject = "Your Mess Rebate Portal Registration OTP"
	}

	body := fmt.Sprintf(
		"Your OTP for Mess Rebate Portal %s is: %s\n\nThis OTP will expire in %d minutes.\n\nIf you didn't request this OTP, please ignore this email.",
		purpose, code, int(mailer.otpTTL.Minutes()),
	)

	message := gomail.NewMessage()
	message.SetHeader("From", mailer.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)
	message.SetBody("text/plain", body)

	dialer := gomail.NewDialer(mailer.host, mailer.port, mailer.username, mailer.password)
	return dialer.DialAndSend(message)
}
