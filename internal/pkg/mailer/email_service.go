package mailer

import (
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendAppointmentConfirmation(toEmail, patientName string, scheduledAt time.Time, reason string) error
	SendAppointmentCancellation(toEmail, patientName string, scheduledAt time.Time) error
	SendTeleconsultationSummary(toEmail, patientName, summary string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
	senderName  string
}

func NewEmailService(host string, port int, username, password, senderEmail, senderName string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
		senderName:  senderName,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", s.senderEmail, s.senderName)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send %q to %s: %v\n", subject, toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] %q sent to %s\n", subject, toEmail)
	return nil
}

func (s *emailService) SendAppointmentConfirmation(toEmail, patientName string, scheduledAt time.Time, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Confirmation de rendez-vous</h2>
			<p>Bonjour %s,</p>
			<p>Votre rendez-vous est confirmé pour le <strong>%s</strong>.</p>
			<p>Motif : %s</p>
			<p>Si vous ne pouvez pas vous présenter, merci d'annuler au plus tôt.</p>
		</div>
	`, patientName, scheduledAt.Format("02/01/2006 à 15h04"), reason)

	return s.send(toEmail, "Confirmation de votre rendez-vous", body)
}

func (s *emailService) SendAppointmentCancellation(toEmail, patientName string, scheduledAt time.Time) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Annulation de rendez-vous</h2>
			<p>Bonjour %s,</p>
			<p>Votre rendez-vous du <strong>%s</strong> a été annulé.</p>
			<p>Vous pouvez reprendre rendez-vous à tout moment depuis l'application.</p>
		</div>
	`, patientName, scheduledAt.Format("02/01/2006 à 15h04"))

	return s.send(toEmail, "Annulation de votre rendez-vous", body)
}

func (s *emailService) SendTeleconsultationSummary(toEmail, patientName, summary string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Résumé de votre téléconsultation</h2>
			<p>Bonjour %s,</p>
			<p>Voici le résumé de votre téléconsultation :</p>
			<blockquote style="border-left: 3px solid #007BFF; padding-left: 12px; color: #555;">%s</blockquote>
			<p>Ce résumé ne remplace pas un avis médical professionnel.</p>
		</div>
	`, patientName, summary)

	return s.send(toEmail, "Résumé de votre téléconsultation", body)
}
