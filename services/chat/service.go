// Package chat runs one conversational turn: it loads the session, asks the
// agent for a reply and records the exchange.
package chat

import (
	"context"
	"fmt"
	"strings"

	ai "tailortalk/services/intelligence"
	"tailortalk/services/session"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Service struct {
	store  session.Store
	agent  ai.Agent
	tools  []ai.Tool
	logger *zap.Logger
	newID  func() string
}

func NewService(store session.Store, agent ai.Agent, tools []ai.Tool, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		agent:  agent,
		tools:  tools,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Chat answers message within the session sessionID and returns the reply
// with the id in use. An empty id starts a fresh session.
func (s *Service) Chat(ctx context.Context, message, sessionID string) (string, string, error) {
	if sessionID == "" {
		sessionID = s.newID()
	}

	sess, err := s.store.Upsert(ctx, sessionID)
	if err != nil {
		return "", sessionID, fmt.Errorf("load session: %w", err)
	}

	userLine := "User: " + message
	input := strings.Join(append(sess.History, userLine), "\n")

	reply, err := s.agent.Invoke(ctx, input, s.tools)
	if err != nil {
		return "", sessionID, fmt.Errorf("agent: %w", err)
	}

	if _, err := s.store.Upsert(ctx, sessionID, userLine, "Assistant: "+reply); err != nil {
		s.logger.Error("Failed to record exchange",
			zap.String("sessionID", sessionID),
			zap.Error(err),
		)
	}
	return reply, sessionID, nil
}
