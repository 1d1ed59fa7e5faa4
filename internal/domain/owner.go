package domain

import (
	"sort"

	"github.com/google/uuid"
)

type Users struct {
	ID           uuid.UUID `db:"id"`
	UserName     string    `db:"user_name"`
	PasswordHash *string   `db:"password_hash"`
	Email        *string   `db:"email"`
	AuthProvider string    `db:"auth_provider"`
	GoogleID     *string   `db:"google_id"`
}

type UsersTable struct {
	ID           string
	UserName     string
	PasswordHash string
	Email        string
	AuthProvider string
	GoogleID     string
}

func GetUserTable() UsersTable {
	return UsersTable{
		ID:           "id",
		UserName:     "user_name",
		PasswordHash: "password_hash",
		Email:        "email",
		AuthProvider: "auth_provider",
		GoogleID:     "google_id",
	}
}

func (t UsersTable) GetTableName() string {
	return "users"
}

// ProgressKind selects which of a user's question sets an id belongs to.
type ProgressKind string

const (
	ProgressSolved    ProgressKind = "solved"
	ProgressAttempted ProgressKind = "attempted"
)

// UserProgress is the solved/attempted aggregate of a user. Both lists are
// sets: an id appears at most once in each.
type UserProgress struct {
	UserID             uuid.UUID   `json:"userId"`
	SolvedQuestions    []uuid.UUID `json:"solvedQuestions"`
	AttemptedQuestions []uuid.UUID `json:"attemptedQuestions"`
}

// SortQuestionIDs orders ids by their string form so responses are stable.
func SortQuestionIDs(ids []uuid.UUID) {
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
}
