package services

import "context"

// stubLLM is a canned llm.Client recording the last request it saw.
type stubLLM struct {
	response   string
	err        error
	lastModel  string
	lastSystem string
	lastUser   string
	calls      int
}

func (s *stubLLM) Chat(ctx context.Context, model, system, user string) (string, error) {
	s.calls++
	s.lastModel = model
	s.lastSystem = system
	s.lastUser = user
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}
