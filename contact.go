package main

import (
	"fmt"
	"log"
	"net/http"
	"net/smtp"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/portfolio/internal/config"
)

func (s *server) handleContact(c *gin.Context) {
	name := c.PostForm("fullName")
	email := c.PostForm("email")
	message := c.PostForm("message")

	if name == "" || email == "" || message == "" {
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Please fill in your name, email and a message.",
		})
		return
	}

	if err := s.sendMail(s.cfg.SMTP, name, email, message); err != nil {
		log.Printf("Error sending email: %v", err)
		c.HTML(http.StatusOK, "contact-error.html", gin.H{
			"error": "Sorry, there was an error sending your message. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", gin.H{
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}

func sendContactEmail(cfg config.SMTPConfig, name, email, message string) error {
	if cfg.User == "" || cfg.Pass == "" {
		return fmt.Errorf("SMTP credentials not configured")
	}
	to := cfg.ToEmail
	if to == "" {
		to = cfg.User
	}

	// Header values must stay on one line.
	oneLine := strings.NewReplacer("\r", " ", "\n", " ")
	subject := fmt.Sprintf("Portfolio Contact: %s", oneLine.Replace(name))
	body := fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, email, message)

	msg := []byte("To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"From: " + cfg.User + "\r\n" +
		"Reply-To: " + oneLine.Replace(email) + "\r\n" +
		"\r\n" +
		body + "\r\n")

	auth := smtp.PlainAuth("", cfg.User, cfg.Pass, cfg.Host)
	if err := smtp.SendMail(cfg.Host+":"+cfg.Port, auth, cfg.User, []string{to}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}

	log.Printf("Email sent successfully from %s (%s)", name, email)
	return nil
}
