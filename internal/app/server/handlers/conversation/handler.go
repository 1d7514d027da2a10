package conversation

import (
	"retailos/internal/app/domains/services/svconversation"
	"retailos/pkg/logger"
)

// ConversationHandler conversation turn and cart HTTP handler
type ConversationHandler struct {
	conversationService *svconversation.ConversationService
	logger              logger.Logger
}

// NewConversationHandler creates the handler
func NewConversationHandler(conversationService *svconversation.ConversationService, logger logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		conversationService: conversationService,
		logger:              logger,
	}
}
