package questioncache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/codejudge.net/internal/core/ports/primary"
	"gitlab.com/codejudge.net/internal/core/ports/secondary"
	"gitlab.com/codejudge.net/internal/domain"
)

const questionKeyPrefix = "question:"

var _ secondary.QuestionRepository = (*QuestionCache)(nil)

// QuestionCache is a read-through Redis cache in front of another
// QuestionRepository. Redis failures are logged and fall through to the
// wrapped repository.
type QuestionCache struct {
	next        secondary.QuestionRepository
	redisClient *redis.Client
	ttl         time.Duration
	logger      primary.Logger
}

func New(next secondary.QuestionRepository, redisClient *redis.Client, ttl time.Duration, logger primary.Logger) *QuestionCache {
	return &QuestionCache{
		next:        next,
		redisClient: redisClient,
		ttl:         ttl,
		logger:      logger,
	}
}

func questionKey(id uuid.UUID) string {
	return questionKeyPrefix + id.String()
}

func (c *QuestionCache) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	data, err := c.redisClient.Get(ctx, questionKey(id)).Bytes()
	switch {
	case err == nil:
		var q domain.Question
		if err := json.Unmarshal(data, &q); err == nil {
			return &q, nil
		}
		c.logger.Warn("Dropping undecodable cached question", "questionId", id, "error", err)
		c.redisClient.Del(ctx, questionKey(id))
	case errors.Is(err, redis.Nil):
	default:
		c.logger.Warn("Question cache unavailable", "questionId", id, "error", err)
	}

	q, err := c.next.GetQuestion(ctx, id)
	if err != nil || q == nil {
		return q, err
	}

	data, err = json.Marshal(q)
	if err != nil {
		c.logger.Warn("Failed to encode question for cache", "questionId", id, "error", err)
		return q, nil
	}
	if err := c.redisClient.Set(ctx, questionKey(id), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to cache question", "questionId", id, "error", err)
	}
	return q, nil
}

// SaveQuestion writes through and drops the cached copy.
func (c *QuestionCache) SaveQuestion(ctx context.Context, question *domain.Question) error {
	if err := c.next.SaveQuestion(ctx, question); err != nil {
		return err
	}
	if err := c.redisClient.Del(ctx, questionKey(question.ID)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached question", "questionId", question.ID, "error", err)
	}
	return nil
}
