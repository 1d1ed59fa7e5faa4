package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Status is the terminal verdict of a judged submission or an ad-hoc run.
type Status int

const (
	// not initialized status (as error)
	StatusInvalid Status = iota

	StatusAccepted
	StatusWrongAnswer
	StatusTimeLimitExceeded
	StatusMemoryLimitExceeded
	StatusRuntimeError
)

var statusToString = []string{
	"invalid",
	"accepted",
	"wrong_answer",
	"time_limit_exceeded",
	"memory_limit_exceeded",
	"runtime_error",
}

var stringToStatus = make(map[string]Status, len(statusToString))

func init() {
	for i, v := range statusToString {
		stringToStatus[v] = Status(i)
	}
}

func (s Status) String() string {
	si := int(s)
	if si < 0 || si >= len(statusToString) {
		return statusToString[0]
	}
	return statusToString[si]
}

// ParseStatus converts the wire form back into a Status.
func ParseStatus(s string) (Status, error) {
	v, ok := stringToStatus[s]
	if !ok || v == StatusInvalid {
		return StatusInvalid, fmt.Errorf("invalid status: %q", s)
	}
	return v, nil
}

// IsLimitViolation reports whether the status was produced by a limit check
// that stopped judging early.
func (s Status) IsLimitViolation() bool {
	return s == StatusTimeLimitExceeded || s == StatusMemoryLimitExceeded
}

func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *Status) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err != nil {
		return err
	}
	v, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Value stores the status as its wire string.
func (s Status) Value() (driver.Value, error) {
	if s == StatusInvalid {
		return nil, fmt.Errorf("refusing to store invalid status")
	}
	return s.String(), nil
}

func (s *Status) Scan(src interface{}) error {
	var str string
	switch v := src.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Status", src)
	}
	parsed, err := ParseStatus(str)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
