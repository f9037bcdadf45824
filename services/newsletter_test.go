package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sundai-club/sundai-backend/database"
	"github.com/sundai-club/sundai-backend/models"
)

func testNewsletterService() *NewsletterService {
	return NewNewsletterService(database.Database{}, nil, nil, nil, []byte("test-secret"), "https://sundai.club/")
}

func TestUnsubscribeTokenRoundTrip(t *testing.T) {
	svc := testNewsletterService()
	hackerID := uuid.New()

	token, err := svc.UnsubscribeToken(hackerID)
	require.NoError(t, err)

	got, err := svc.ParseUnsubscribeToken(token)
	require.NoError(t, err)
	assert.Equal(t, hackerID, got)
}

func TestUnsubscribeTokenRejectsTampering(t *testing.T) {
	svc := testNewsletterService()

	token, err := svc.UnsubscribeToken(uuid.New())
	require.NoError(t, err)

	other := NewNewsletterService(database.Database{}, nil, nil, nil, []byte("other-secret"), "https://sundai.club")
	_, err = other.ParseUnsubscribeToken(token)
	assert.Error(t, err, "token signed with a different key must not verify")

	_, err = svc.ParseUnsubscribeToken(token + "x")
	assert.Error(t, err)
}

func TestDigestRenderIncludesProjectsAndTrending(t *testing.T) {
	svc := testNewsletterService()

	theme := "Health AI"
	demo := "https://demo.example.com"
	lead := models.Hacker{Name: "Ada"}
	week := models.Week{Number: 42, Theme: &theme, StartDate: time.Now().AddDate(0, 0, -7), EndDate: time.Now()}
	projects := []models.Project{
		{Title: "Pulse", Preview: "heart-rate insights", DemoURL: &demo, LaunchLead: &lead},
	}
	trendingRail := []models.Project{
		{Title: "Pulse", Likes: make([]models.Like, 12)},
	}

	html, err := svc.render(week, "intro text", projects, trendingRail)
	require.NoError(t, err)

	assert.Contains(t, html, "Week 42")
	assert.Contains(t, html, "Health AI")
	assert.Contains(t, html, "Pulse")
	assert.Contains(t, html, "led by Ada")
	assert.Contains(t, html, demo)
	assert.Contains(t, html, "12 likes")
	assert.Contains(t, html, unsubscribePlaceholder, "draft keeps the placeholder until send time")
}

func TestDigestRenderEscapesUserContent(t *testing.T) {
	svc := testNewsletterService()

	week := models.Week{Number: 1, StartDate: time.Now(), EndDate: time.Now()}
	projects := []models.Project{
		{Title: "<script>alert(1)</script>", Preview: "safe?"},
	}

	html, err := svc.render(week, "intro", projects, nil)
	require.NoError(t, err)

	assert.NotContains(t, html, "<script>alert(1)</script>")
	assert.Contains(t, html, "&lt;script&gt;")
}

func TestDefaultIntroCountsProjects(t *testing.T) {
	svc := testNewsletterService()
	week := models.Week{Number: 3}

	one := svc.intro(context.Background(), week, someProjects(1))
	assert.True(t, strings.HasPrefix(one, "One new project"))

	many := svc.intro(context.Background(), week, someProjects(4))
	assert.True(t, strings.HasPrefix(many, "4 new projects"))
}
