package manager

import (
	"context"
	"slices"

	"github.com/iudanet/fitsync/internal/client/aggregate"
	"github.com/iudanet/fitsync/internal/client/entity"
	"github.com/iudanet/fitsync/internal/client/syncer"
	"github.com/iudanet/fitsync/internal/models"
	"github.com/iudanet/fitsync/internal/validation"
)

// ChatManager переписка тренера и ученика
type ChatManager struct {
	*Manager[models.ChatMessage]
}

// NewChatManager создает менеджер чата
func NewChatManager(client RecordClient, cfg Config) *ChatManager {
	return &ChatManager{
		Manager: New(models.CollectionChatMessages, client, validation.ValidateChatMessage, cfg),
	}
}

// Send отправляет сообщение; новое сообщение видно сразу
func (m *ChatManager) Send(ctx context.Context, msg models.ChatMessage) *syncer.Outcome[models.ChatMessage] {
	if msg.SentAt.IsZero() {
		msg.SentAt = m.clock.Now()
	}
	return m.Add(ctx, msg)
}

// DeleteMessage удаляет сообщение
func (m *ChatManager) DeleteMessage(ctx context.Context, id entity.ID) *syncer.Outcome[models.ChatMessage] {
	return m.Delete(ctx, id)
}

// Conversation сообщения беседы в хронологическом порядке
func (m *ChatManager) Conversation(conversationID string) []models.ChatMessage {
	msgs := aggregate.Filter(m.Values(), func(c models.ChatMessage) bool { return c.ConversationID == conversationID })
	slices.SortStableFunc(msgs, func(a, b models.ChatMessage) int { return a.SentAt.Compare(b.SentAt) })
	return msgs
}

// ByConversation сообщения, сгруппированные по беседам
func (m *ChatManager) ByConversation() []aggregate.Group[string, models.ChatMessage] {
	return aggregate.GroupBy(m.Values(), func(c models.ChatMessage) string { return c.ConversationID })
}
