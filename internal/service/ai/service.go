package ai

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
	"go.uber.org/zap"

	"github.com/mwihoti/shauri/backend/internal/config"
	"github.com/mwihoti/shauri/backend/internal/model/advisor"
	"github.com/mwihoti/shauri/backend/internal/model/chat"
)

// historyLimit caps how many prior turns travel with each request.
const historyLimit = 10

// Service generates advisory replies through a compiled prompt+model chain.
type Service struct {
	chatModel model.ChatModel
	prompts   *AdvisorPromptManager
	chain     compose.Runnable[map[string]any, *schema.Message]
	logger    *zap.Logger
}

// NewService builds the chat model from configuration and compiles the
// conversation chain once.
func NewService(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile chat chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		prompts:   NewAdvisorPromptManager(),
		chain:     runnable,
		logger:    logger,
	}, nil
}

// GenerateReply produces a single reply for the advisor given the prompt
// history. The last turn must be the user's pending question; everything
// before it is passed as conversation history. No streaming, no partial
// results.
func (s *Service) GenerateReply(ctx context.Context, adv advisor.Advisor, history []chat.Turn) (string, error) {
	if len(history) == 0 || history[len(history)-1].Role != chat.RoleUser {
		return "", fmt.Errorf("prompt history must end with a user turn")
	}

	query := history[len(history)-1].Content
	prior := history[:len(history)-1]

	input := map[string]any{
		"system":  s.prompts.BuildSystemPrompt(adv),
		"history": toSchemaMessages(prior),
		"query":   query,
	}

	response, err := s.chain.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run advisory chain: %w", err)
	}

	s.logger.Info("generated advisory reply",
		zap.String("advisor", adv.ID),
		zap.Int("length", len(response.Content)))
	return response.Content, nil
}

// toSchemaMessages converts stored turns to model messages, keeping only the
// most recent historyLimit entries.
func toSchemaMessages(turns []chat.Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}

	startIdx := 0
	if len(turns) > historyLimit {
		startIdx = len(turns) - historyLimit
	}

	messages := make([]*schema.Message, 0, len(turns)-startIdx)
	for _, turn := range turns[startIdx:] {
		switch turn.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Content))
		case chat.RoleSystem:
			messages = append(messages, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return messages
}
