package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
	_ "time/tzdata"
)

//go:embed templates/*.html
var templateFS embed.FS

// Visits are shown in UK local time.
var visitLocation = loadLocation("Europe/London")

type baseEmailData struct {
	Title      string
	Heading    string
	Subheading string
}

type visitEmailData struct {
	baseEmailData
	CustomerName  string
	ScheduledDate string
	Address       string
	PackageName   string
}

func newVisitEmailData(heading string, visit Visit) visitEmailData {
	address := visit.Address
	if visit.Postcode != "" {
		if address != "" {
			address += ", "
		}
		address += visit.Postcode
	}
	name := visit.CustomerName
	if name == "" {
		name = "there"
	}
	return visitEmailData{
		baseEmailData: baseEmailData{Title: heading, Heading: heading},
		CustomerName:  name,
		ScheduledDate: formatVisitDate(visit.ScheduledFor),
		Address:       address,
		PackageName:   visit.PackageName,
	}
}

func renderEmailTemplate(name string, data any) (string, error) {
	templates := []string{"templates/base.html", "templates/" + name}
	tmpl, err := template.New("base.html").ParseFS(templateFS, templates...)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "email", data); err != nil {
		return "", fmt.Errorf("execute email template %s: %w", name, err)
	}
	return buf.String(), nil
}

func formatVisitDate(t time.Time) string {
	return t.In(visitLocation).Format("Monday 2 January 2006 at 15:04")
}

func loadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
