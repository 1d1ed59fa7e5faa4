package domain

// TestCase is one input/expected-output pair of a question. Position in
// Question.TestCases is the execution order.
type TestCase struct {
	Input          string `json:"input" toml:"input"`
	ExpectedOutput string `json:"expectedOutput" toml:"expected_output"`
	IsHidden       bool   `json:"isHidden" toml:"hidden"`
}
