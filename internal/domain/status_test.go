package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	assert.Equal(t, "accepted", StatusAccepted.String())
	assert.Equal(t, "time_limit_exceeded", StatusTimeLimitExceeded.String())
	assert.Equal(t, "invalid", Status(42).String())
	assert.Equal(t, "invalid", Status(-1).String())
}

func TestParseStatus(t *testing.T) {
	for _, s := range []Status{StatusAccepted, StatusWrongAnswer, StatusTimeLimitExceeded, StatusMemoryLimitExceeded, StatusRuntimeError} {
		got, err := ParseStatus(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseStatus("invalid")
	assert.Error(t, err)
	_, err = ParseStatus("ACCEPTED")
	assert.Error(t, err)
}

func TestStatusJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Status Status `json:"status"`
	}{StatusMemoryLimitExceeded})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"memory_limit_exceeded"}`, string(b))

	var out struct {
		Status Status `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"status":"wrong_answer"}`), &out))
	assert.Equal(t, StatusWrongAnswer, out.Status)

	assert.Error(t, json.Unmarshal([]byte(`{"status":"pending"}`), &out))
}

func TestStatusSQL(t *testing.T) {
	v, err := StatusRuntimeError.Value()
	require.NoError(t, err)
	assert.Equal(t, "runtime_error", v)

	_, err = StatusInvalid.Value()
	assert.Error(t, err)

	var s Status
	require.NoError(t, s.Scan([]byte("accepted")))
	assert.Equal(t, StatusAccepted, s)
	assert.Error(t, s.Scan(12))
}

func TestIsLimitViolation(t *testing.T) {
	assert.True(t, StatusTimeLimitExceeded.IsLimitViolation())
	assert.True(t, StatusMemoryLimitExceeded.IsLimitViolation())
	assert.False(t, StatusWrongAnswer.IsLimitViolation())
}

func TestExecutionOutcomeFaulted(t *testing.T) {
	assert.False(t, (&ExecutionOutcome{Stdout: "1"}).Faulted())
	assert.True(t, (&ExecutionOutcome{Error: "boom"}).Faulted())
	assert.True(t, (&ExecutionOutcome{TimedOut: true}).Faulted())
}
