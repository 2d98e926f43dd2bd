package mailer

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// OTPEmail builds the message carrying a verification code.
func OTPEmail(to, code string, ttl time.Duration) (Email, error) {
	minutes := int(ttl.Minutes())
	html, err := render("otp.html", map[string]any{"Code": code, "Minutes": minutes})
	if err != nil {
		return Email{}, err
	}

	return Email{
		To:      to,
		Subject: "Your verification code",
		HTML:    html,
		Text:    fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, minutes),
	}, nil
}

// Composer builds application notifications whose links point at the frontend.
type Composer struct {
	frontendURL string
}

func NewComposer(frontendURL string) *Composer {
	return &Composer{frontendURL: strings.TrimRight(frontendURL, "/")}
}

func (c *Composer) link(path string) string {
	return c.frontendURL + path
}

func (c *Composer) ApplicationReceived(to, candidateName, jobTitle string) (Email, error) {
	link := c.link("/candidate/applications")
	html, err := render("application_received.html", map[string]any{
		"Name":     candidateName,
		"JobTitle": jobTitle,
		"Link":     link,
	})
	if err != nil {
		return Email{}, err
	}

	return Email{
		To:      to,
		Subject: "Application received: " + jobTitle,
		HTML:    html,
		Text:    fmt.Sprintf("Hi %s, your application for %s was received. Track it at %s", candidateName, jobTitle, link),
	}, nil
}

func (c *Composer) StatusUpdated(to, candidateName, jobTitle, status string) (Email, error) {
	link := c.link("/candidate/applications")
	html, err := render("status_updated.html", map[string]any{
		"Name":     candidateName,
		"JobTitle": jobTitle,
		"Status":   status,
		"Link":     link,
	})
	if err != nil {
		return Email{}, err
	}

	return Email{
		To:      to,
		Subject: "Application update: " + jobTitle,
		HTML:    html,
		Text:    fmt.Sprintf("Hi %s, your application for %s is now %s. Details at %s", candidateName, jobTitle, status, link),
	}, nil
}
