package service

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host, port, username, password, from string) EmailService {
	p, _ := strconv.Atoi(port)
	return &emailService{
		host:     host,
		port:     p,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendOrderConfirmation(ctx context.Context, email, name, productName, startDate, returnDate string, amountCents int32) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Pedido confirmado - Brechó da Tata")

	body := fmt.Sprintf("Olá %s,\n\nSeu pedido de %s foi confirmado!\n\nValor total: R$ %.2f", name, productName, float64(amountCents)/100)
	if startDate != "" {
		body += fmt.Sprintf("\nRetirada: %s\nDevolução: %s", startDate, returnDate)
	}
	body += "\n\nObrigada pela preferência!\nBrechó da Tata"
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send order confirmation: %w", err)
	}

	return nil
}

func (s *emailService) SendReturnReminder(ctx context.Context, email, name, productName, returnDate string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Lembrete de devolução - Brechó da Tata")

	body := fmt.Sprintf("Olá %s,\n\nLembrete: a devolução de %s está marcada para %s.\n\nQualquer dúvida, fale com a gente.\n\nBrechó da Tata", name, productName, returnDate)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send return reminder: %w", err)
	}

	return nil
}
