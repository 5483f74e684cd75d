package reminder

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Dias221467/Reminder_Manager/internal/models"
)

// Message is a rendered reminder, ready for any channel.
type Message struct {
	Type    models.ReminderType `json:"type"`
	Subject string              `json:"title"`
	Body    string              `json:"body"`
	URL     string              `json:"url"`
}

// TemplateContext is the data available to reminder templates.
type TemplateContext struct {
	LocalTime string
	Streak    models.StreakSnapshot
	Goals     []models.Goal
	AppURL    string
}

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
	path    string
}

// Templates renders reminder messages keyed by reminder type.
type Templates struct {
	byType map[models.ReminderType]messageTemplate
}

var templateFuncs = template.FuncMap{
	"day": func(g models.Goal) string { return g.TargetDate.Format("Jan 2") },
}

var defaultTemplates = map[models.ReminderType]struct{ subject, body, path string }{
	models.ReminderPlan: {
		subject: "Time to plan tomorrow",
		body:    "Hi {{.Name}}, it's {{.LocalTime}}. Take a minute to record your plan for tomorrow.",
		path:    "/?action=record&type=plan",
	},
	models.ReminderReflection: {
		subject: "How did yesterday go?",
		body:    "Good morning {{.Name}}. Record a short reflection on yesterday before the day starts.",
		path:    "/?action=record&type=reflection",
	},
	models.ReminderStreakRisk: {
		subject: "Keep your streak alive",
		body: "{{if gt .Streak.CurrentStreak 0}}You're on a {{.Streak.CurrentStreak}}-day streak. " +
			"Record something today to keep it going.{{else}}Nothing recorded today yet. One entry starts a new streak.{{end}}",
		path: "/?view=dashboard",
	},
	models.ReminderStreakCelebration: {
		subject: "{{.Streak.CurrentStreak}} days in a row!",
		body:    "Nice work {{.Name}}, that's {{.Streak.CurrentStreak}} consecutive days. Your best so far is {{.Streak.LongestStreak}}.",
		path:    "/?view=dashboard",
	},
	models.ReminderGoalDeadline: {
		subject: "{{len .Goals}} goal(s) due soon",
		body:    "These goals are due within a day:{{range .Goals}}\n- {{.Text}} ({{day .}}){{end}}",
		path:    "/?view=goals",
	},
}

func NewTemplates() (*Templates, error) {
	t := &Templates{byType: make(map[models.ReminderType]messageTemplate, len(defaultTemplates))}
	for typ, def := range defaultTemplates {
		subject, err := template.New(string(typ) + "_subject").Funcs(templateFuncs).Parse(def.subject)
		if err != nil {
			return nil, fmt.Errorf("parse %s subject: %w", typ, err)
		}
		body, err := template.New(string(typ) + "_body").Funcs(templateFuncs).Parse(def.body)
		if err != nil {
			return nil, fmt.Errorf("parse %s body: %w", typ, err)
		}
		t.byType[typ] = messageTemplate{subject: subject, body: body, path: def.path}
	}
	return t, nil
}

// Render builds the message for t. Unknown types are an error.
func (t *Templates) Render(typ models.ReminderType, user models.User, ctx TemplateContext) (Message, error) {
	tmpl, ok := t.byType[typ]
	if !ok {
		return Message{}, fmt.Errorf("no template for reminder type %q", typ)
	}

	name := user.Name
	if name == "" {
		name = "there"
	}
	data := struct {
		TemplateContext
		Name string
	}{ctx, name}

	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return Message{}, fmt.Errorf("render %s subject: %w", typ, err)
	}
	if err := tmpl.body.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("render %s body: %w", typ, err)
	}

	return Message{
		Type:    typ,
		Subject: subject.String(),
		Body:    body.String(),
		URL:     strings.TrimRight(ctx.AppURL, "/") + tmpl.path,
	}, nil
}
