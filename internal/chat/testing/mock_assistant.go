package testing

import (
	"context"

	"github.com/acai-travel/global-time-agent/internal/chat/model"
)

// MockAssistant is a test double for the Assistant interface
type MockAssistant struct {
	ReplyFunc func(ctx context.Context, conv *model.Conversation) (string, error)
}

func (m *MockAssistant) Reply(ctx context.Context, conv *model.Conversation) (string, error) {
	if m.ReplyFunc != nil {
		return m.ReplyFunc(ctx, conv)
	}
	return "Mock Reply", nil
}
