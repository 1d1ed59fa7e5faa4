package secondary

//go:generate mockgen -source=user.go -destination=mocks/user.go -package=mocks

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/domain"
)

type UserPort interface {
	Create(ctx context.Context, user *domain.Users) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Users, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.Users, error)
	GetByUserName(ctx context.Context, userName string) (*domain.Users, error)

	// AddQuestionProgress adds questionID to the user's solved or attempted
	// set. Adding an id that is already present is a no-op.
	AddQuestionProgress(ctx context.Context, userID, questionID uuid.UUID, kind domain.ProgressKind) error
	GetProgress(ctx context.Context, userID uuid.UUID) (*domain.UserProgress, error)
}
