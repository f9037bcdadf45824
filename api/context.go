package api

import (
	"context"
	"errors"

	"github.com/sundai-club/sundai-backend/models"
)

type keyType string

const (
	hackerKey keyType = "hacker"
)

// ctxWithHacker adds the authenticated hacker profile to the context
func ctxWithHacker(ctx context.Context, hacker *models.Hacker) context.Context {
	return context.WithValue(ctx, hackerKey, hacker)
}

// ctxGetHacker retrieves the authenticated hacker from the context
func ctxGetHacker(ctx context.Context) (*models.Hacker, error) {
	value := ctx.Value(hackerKey)
	if value == nil {
		return nil, errors.New("no authenticated hacker in context")
	}
	hacker, ok := value.(*models.Hacker)
	if !ok {
		return nil, errors.New("context value is not a hacker")
	}
	return hacker, nil
}
