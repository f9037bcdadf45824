package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/models"
)

// unsubscribePlaceholder is swapped for a per-recipient signed link at
// send time. Deliberately free of characters html/template would
// escape.
const unsubscribePlaceholder = "__UNSUBSCRIBE_URL__"

const digestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Helvetica, Arial, sans-serif; color: #1a1a1a; max-width: 640px; margin: 0 auto;">
  <h1>Sundai Club — Week {{.WeekNumber}}</h1>
  {{if .Theme}}<h2 style="color: #666;">Theme: {{.Theme}}</h2>{{end}}
  <p>{{.Intro}}</p>

  {{if .Projects}}
  <h3>Shipped this week</h3>
  {{range .Projects}}
  <div style="margin-bottom: 16px;">
    <strong>{{.Title}}</strong>{{if .Lead}} — led by {{.Lead}}{{end}}<br>
    <span>{{.Preview}}</span>
    {{if .DemoURL}}<br><a href="{{.DemoURL}}">Try the demo</a>{{end}}
  </div>
  {{end}}
  {{end}}

  {{if .Trending}}
  <h3>Trending right now</h3>
  <ol>
  {{range .Trending}}
    <li><strong>{{.Title}}</strong> ({{.LikeCount}} likes)</li>
  {{end}}
  </ol>
  {{end}}

  <hr>
  <p style="font-size: 12px; color: #999;">
    You are receiving this because you are a Sundai Club member.
    <a href="` + unsubscribePlaceholder + `">Unsubscribe</a>
  </p>
</body>
</html>`

type digestProject struct {
	Title   string
	Preview string
	Lead    string
	DemoURL string
}

type trendingItem struct {
	Title     string
	LikeCount int
}

type digestData struct {
	WeekNumber int
	Theme      string
	Intro      string
	Projects   []digestProject
	Trending   []trendingItem
}

// IntroDrafter writes the digest's opening paragraph. The LLM-backed
// implementation lives in newsletter_ai.go; when none is configured a
// static intro is used.
type IntroDrafter interface {
	DraftIntro(ctx context.Context, week models.Week, projects []models.Project) (string, error)
}

// NewsletterService generates weekly digest drafts and sends them to
// subscribed members.
type NewsletterService struct {
	projects    *database.ProjectRepo
	weeks       *database.WeekRepo
	hackers     *database.HackerRepo
	newsletters *database.NewsletterRepo
	trending    *TrendingService
	email       *EmailClient
	drafter     IntroDrafter

	signingKey []byte
	baseURL    string
	logger     zerolog.Logger
	tmpl       *template.Template
}

func NewNewsletterService(
	db database.Database,
	trending *TrendingService,
	email *EmailClient,
	drafter IntroDrafter,
	signingKey []byte,
	baseURL string,
) *NewsletterService {
	return &NewsletterService{
		projects:    db.ProjectRepo(),
		weeks:       db.WeekRepo(),
		hackers:     db.HackerRepo(),
		newsletters: db.NewsletterRepo(),
		trending:    trending,
		email:       email,
		drafter:     drafter,
		signingKey:  signingKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		logger:      log.With().Str("service", "newsletter").Logger(),
		tmpl:        template.Must(template.New("digest").Parse(digestTemplate)),
	}
}

// Generate builds a draft digest for the given week and stores it.
func (s *NewsletterService) Generate(ctx context.Context, weekID uuid.UUID) (*models.Newsletter, error) {
	week, err := s.weeks.FindByID(weekID)
	if err != nil {
		return nil, err
	}
	if week == nil {
		return nil, fmt.Errorf("week %s not found", weekID)
	}

	projects, err := s.projects.StartedBetween(week.StartDate, week.EndDate)
	if err != nil {
		return nil, err
	}

	intro := s.intro(ctx, *week, projects)

	var trendingRail []models.Project
	if s.trending != nil {
		if rail, err := s.trending.Range(ctx, RangeWeek, 5); err == nil {
			trendingRail = rail
		} else {
			s.logger.Warn().Err(err).Msg("trending rail unavailable for digest")
		}
	}

	html, err := s.render(*week, intro, projects, trendingRail)
	if err != nil {
		return nil, err
	}

	newsletter := &models.Newsletter{
		WeekID:  week.ID,
		Subject: fmt.Sprintf("Sundai Club Weekly — Week %d", week.Number),
		HTML:    html,
	}
	if err := s.newsletters.Add(newsletter); err != nil {
		return nil, err
	}
	return newsletter, nil
}

// Send delivers a draft to every subscribed hacker, personalizing the
// unsubscribe link, then marks it sent. A single failed recipient is
// logged and skipped; delivery is best-effort per recipient.
func (s *NewsletterService) Send(ctx context.Context, id uuid.UUID) (int, error) {
	newsletter, err := s.newsletters.FindByID(id)
	if err != nil {
		return 0, err
	}
	if newsletter == nil {
		return 0, fmt.Errorf("newsletter %s not found", id)
	}
	if newsletter.SentAt != nil {
		return 0, fmt.Errorf("newsletter %s was already sent", id)
	}

	subscribers, err := s.hackers.FindSubscribed()
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, hacker := range subscribers {
		token, err := s.UnsubscribeToken(hacker.ID)
		if err != nil {
			s.logger.Error().Err(err).Str("hacker", hacker.ID.String()).Msg("failed to sign unsubscribe token")
			continue
		}
		link := fmt.Sprintf("%s/api/newsletter/unsubscribe?token=%s", s.baseURL, token)
		body := strings.ReplaceAll(newsletter.HTML, unsubscribePlaceholder, link)

		if err := s.email.Send(newsletter.Subject, body, []string{hacker.Email}); err != nil {
			s.logger.Error().Err(err).Str("email", hacker.Email).Msg("failed to deliver digest")
			continue
		}
		sent++
	}

	if err := s.newsletters.MarkSent(id, time.Now()); err != nil {
		return sent, err
	}
	return sent, nil
}

// Unsubscribe validates a token from an unsubscribe link and flips the
// hacker's subscription off.
func (s *NewsletterService) Unsubscribe(token string) error {
	hackerID, err := s.ParseUnsubscribeToken(token)
	if err != nil {
		return err
	}
	return s.hackers.Unsubscribe(hackerID)
}

// UnsubscribeToken signs a compact claim identifying the hacker. The
// link works without a session so it survives email-client sandboxes.
func (s *NewsletterService) UnsubscribeToken(hackerID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub":     hackerID.String(),
		"purpose": "unsubscribe",
		"exp":     time.Now().AddDate(0, 6, 0).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
}

// ParseUnsubscribeToken verifies the signature and purpose claim.
func (s *NewsletterService) ParseUnsubscribeToken(token string) (uuid.UUID, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return s.signingKey, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid unsubscribe token: %w", err)
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || claims["purpose"] != "unsubscribe" {
		return uuid.Nil, fmt.Errorf("invalid unsubscribe token: wrong purpose")
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid unsubscribe token: %w", err)
	}
	return uuid.Parse(sub)
}

func (s *NewsletterService) intro(ctx context.Context, week models.Week, projects []models.Project) string {
	if s.drafter != nil {
		if intro, err := s.drafter.DraftIntro(ctx, week, projects); err == nil && intro != "" {
			return intro
		} else if err != nil {
			s.logger.Warn().Err(err).Msg("AI intro unavailable, using default")
		}
	}
	if len(projects) == 1 {
		return "One new project shipped at Sundai this week. Here it is, along with what's trending across the club."
	}
	return fmt.Sprintf("%d new projects shipped at Sundai this week. Here's the roundup, along with what's trending across the club.", len(projects))
}

func (s *NewsletterService) render(week models.Week, intro string, projects, trendingRail []models.Project) (string, error) {
	data := digestData{
		WeekNumber: week.Number,
		Intro:      intro,
	}
	if week.Theme != nil {
		data.Theme = *week.Theme
	}
	for _, p := range projects {
		dp := digestProject{Title: p.Title, Preview: p.Preview}
		if p.LaunchLead != nil {
			dp.Lead = p.LaunchLead.Name
		}
		if p.DemoURL != nil {
			dp.DemoURL = *p.DemoURL
		}
		data.Projects = append(data.Projects, dp)
	}
	for _, p := range trendingRail {
		data.Trending = append(data.Trending, trendingItem{Title: p.Title, LikeCount: len(p.Likes)})
	}

	var buf bytes.Buffer
	if err := s.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}
