package intake

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/romainfalanga/Romainflg/models"
)

var paris = loadParis()

func loadParis() *time.Location {
	loc, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		return time.UTC
	}
	return loc
}

var notificationTemplate = template.Must(template.New("notification").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .header { background: linear-gradient(135deg, #667eea 0%, #764ba2 100%); color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; }
        .section { margin-bottom: 25px; padding: 15px; border-left: 4px solid #667eea; background: #f8f9fa; }
        .info-item { background: white; padding: 15px; border-radius: 8px; border: 1px solid #e9ecef; }
        .info-label { font-weight: bold; color: #495057; margin-bottom: 5px; }
        .position-badge { display: inline-block; padding: 5px 15px; border-radius: 20px; font-weight: bold; }
        .coo { background: #d4edda; color: #155724; }
        .cm { background: #f8d7da; color: #721c24; }
        .actions { background: #e7f3ff; padding: 20px; border-radius: 8px; margin-top: 20px; }
    </style>
</head>
<body>
    <div class="header">
        <h1>Nouvelle candidature reçue</h1>
        <p>Une nouvelle personne souhaite rejoindre votre équipe</p>
    </div>
    <div class="content">
        <div class="info-item"><div class="info-label">Candidat</div><div>{{.App.Name}}</div></div>
        <div class="info-item"><div class="info-label">Email</div><div><a href="mailto:{{.App.Email}}">{{.App.Email}}</a></div></div>
        <div class="info-item"><div class="info-label">Projet</div><div>{{.App.ProjectName}}</div></div>
        <div class="info-item"><div class="info-label">Poste</div><div><span class="position-badge {{.BadgeClass}}">{{.App.Position}}</span></div></div>
        <div class="info-item"><div class="info-label">Telegram</div><div>{{.App.Telegram}}</div></div>
        <div class="info-item"><div class="info-label">TikTok</div><div>{{if .App.TikTok}}{{.App.TikTok}}{{else}}Non renseigné{{end}}</div></div>

        <div class="section">
            <h3>Motivation</h3>
            <p style="white-space: pre-wrap;">{{.App.Motivation}}</p>
        </div>
{{- if .App.Creativity}}
        <div class="section">
            <h3>Définition de la créativité</h3>
            <p style="white-space: pre-wrap;">{{.App.Creativity}}</p>
        </div>
{{- end}}
{{- if .App.UniverseModel}}
        <div class="section">
            <h3>Modèle d'univers imaginé</h3>
            <p style="white-space: pre-wrap;">{{.App.UniverseModel}}</p>
        </div>
{{- end}}

        <div class="actions">
            <h3>Actions recommandées</h3>
            <ul>
                <li>Vérifier le profil Telegram : <strong>{{.App.Telegram}}</strong></li>
                {{if .App.TikTok}}<li>Consulter le TikTok : <strong>{{.App.TikTok}}</strong></li>{{else}}<li>Pas de TikTok fourni</li>{{end}}
                <li>Répondre au candidat : <a href="{{.ReplyLink}}">{{.App.Email}}</a></li>
                <li>Voir toutes les candidatures sur votre dashboard admin</li>
            </ul>
        </div>
    </div>
    <div style="text-align: center; padding: 20px; color: #6c757d; font-size: 12px;">
        Candidature reçue le {{.ReceivedAt}}
    </div>
</body>
</html>
`))

type notificationView struct {
	App        models.Application
	BadgeClass string
	ReplyLink  string
	ReceivedAt string
}

// Subject is the notification subject for app.
func Subject(app models.Application) string {
	return fmt.Sprintf("Nouvelle candidature %s - %s", app.Position, app.ProjectName)
}

// RenderNotification renders the HTML body announcing app. User input is escaped.
func RenderNotification(app models.Application, receivedAt time.Time) (string, error) {
	view := notificationView{
		App:        app,
		BadgeClass: strings.ToLower(string(app.Position)),
		ReplyLink:  app.ReplyLink(),
		ReceivedAt: receivedAt.In(paris).Format("02/01/2006 15:04:05"),
	}

	var buf bytes.Buffer
	if err := notificationTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("failed to render notification: %w", err)
	}
	return buf.String(), nil
}
