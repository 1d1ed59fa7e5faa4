package memory

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/puzpuzpuz/xsync/v3"

	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

var _ secondary.UserPort = (*UserStore)(nil)

type progressSets struct {
	solved    mapset.Set[uuid.UUID]
	attempted mapset.Set[uuid.UUID]
}

// UserStore keeps users and their solved/attempted sets in process memory.
// Updates for different users never contend on a shared lock.
type UserStore struct {
	users    *xsync.MapOf[uuid.UUID, *domain.Users]
	progress *xsync.MapOf[uuid.UUID, *progressSets]
}

func NewUserStore() *UserStore {
	return &UserStore{
		users:    xsync.NewMapOf[uuid.UUID, *domain.Users](),
		progress: xsync.NewMapOf[uuid.UUID, *progressSets](),
	}
}

func (s *UserStore) Create(_ context.Context, user *domain.Users) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if existing, _ := s.findBy(func(u *domain.Users) bool { return u.UserName == user.UserName }); existing != nil {
		return fmt.Errorf("user name %q already taken", user.UserName)
	}
	c := *user
	if _, loaded := s.users.LoadOrStore(user.ID, &c); loaded {
		return fmt.Errorf("user %s already exists", user.ID)
	}
	return nil
}

func (s *UserStore) Get(_ context.Context, id uuid.UUID) (*domain.Users, error) {
	u, ok := s.users.Load(id)
	if !ok {
		return nil, nil
	}
	c := *u
	return &c, nil
}

func (s *UserStore) GetByGoogleID(_ context.Context, googleID string) (*domain.Users, error) {
	return s.findBy(func(u *domain.Users) bool {
		return u.GoogleID != nil && *u.GoogleID == googleID
	})
}

func (s *UserStore) GetByUserName(_ context.Context, userName string) (*domain.Users, error) {
	return s.findBy(func(u *domain.Users) bool { return u.UserName == userName })
}

func (s *UserStore) findBy(match func(*domain.Users) bool) (*domain.Users, error) {
	var found *domain.Users
	s.users.Range(func(_ uuid.UUID, u *domain.Users) bool {
		if match(u) {
			c := *u
			found = &c
			return false
		}
		return true
	})
	return found, nil
}

func (s *UserStore) AddQuestionProgress(_ context.Context, userID, questionID uuid.UUID, kind domain.ProgressKind) error {
	sets, _ := s.progress.LoadOrCompute(userID, func() *progressSets {
		return &progressSets{
			solved:    mapset.NewSet[uuid.UUID](),
			attempted: mapset.NewSet[uuid.UUID](),
		}
	})
	switch kind {
	case domain.ProgressSolved:
		sets.solved.Add(questionID)
	case domain.ProgressAttempted:
		sets.attempted.Add(questionID)
	default:
		return fmt.Errorf("unknown progress kind %q", kind)
	}
	return nil
}

func (s *UserStore) GetProgress(_ context.Context, userID uuid.UUID) (*domain.UserProgress, error) {
	progress := &domain.UserProgress{
		UserID:             userID,
		SolvedQuestions:    []uuid.UUID{},
		AttemptedQuestions: []uuid.UUID{},
	}
	sets, ok := s.progress.Load(userID)
	if !ok {
		return progress, nil
	}
	progress.SolvedQuestions = sets.solved.ToSlice()
	progress.AttemptedQuestions = sets.attempted.ToSlice()
	domain.SortQuestionIDs(progress.SolvedQuestions)
	domain.SortQuestionIDs(progress.AttemptedQuestions)
	return progress, nil
}
