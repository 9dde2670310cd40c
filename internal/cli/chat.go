// chat.go implements the "atim chat" command for one-shot questions and
// transcript browsing.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/log"
	"github.com/atim-dev/atim/internal/tui/commands"
)

var (
	chatHistory       bool
	chatReferenceID   string
	chatReferenceType string
)

var chatCmd = &cobra.Command{
	Use:   "chat [message...]",
	Short: "Ask Atim a question, or print the conversation with --history",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		if chatHistory {
			messages, err := deps.API.ChatMessages(cmd.Context(), chatReferenceID, chatReferenceType)
			if err != nil {
				// Unreachable backend: fall back to the local cache.
				if deps.History == nil {
					return err
				}
				messages, err = deps.History.Messages(chatReferenceID, chatReferenceType)
				if err != nil {
					return err
				}
				fmt.Println("(cached transcript; backend unreachable)")
			}
			printTranscript(messages)
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("nothing to send; pass a message or use --history")
		}
		content := strings.Join(args, " ")

		if deps.History != nil {
			_ = deps.History.Append(api.ChatMessage{
				Sender:        api.SenderUser,
				Content:       content,
				ReferenceID:   chatReferenceID,
				ReferenceType: chatReferenceType,
				Timestamp:     time.Now().UTC().Format(time.RFC3339),
			})
		}

		reply, err := deps.API.SendChatMessage(cmd.Context(), content, chatReferenceID, chatReferenceType)
		if err != nil {
			fallback := commands.FallbackReply(content)
			if deps.History != nil {
				_ = deps.History.Append(fallback)
			}
			if deps.Events != nil {
				_ = deps.Events.Append(log.LogEvent{Event: log.EventChatFallback, Reason: err.Error()})
			}
			reply = &fallback
		} else if deps.History != nil {
			_ = deps.History.Append(*reply)
		}

		printMessage(*reply)
		return nil
	},
}

func printTranscript(messages []api.ChatMessage) {
	if len(messages) == 0 {
		fmt.Println("No messages yet.")
		return
	}
	for _, msg := range messages {
		printMessage(msg)
	}
}

func printMessage(msg api.ChatMessage) {
	who := "You"
	if msg.Sender == api.SenderAtim {
		who = "Atim"
	}
	fmt.Printf("%s: %s\n", who, msg.Content)
	if msg.Metadata != nil && msg.Metadata.ReasoningType != "" {
		fmt.Printf("  [MeTTa %s", strings.ReplaceAll(msg.Metadata.ReasoningType, "_", " "))
		if msg.Metadata.Confidence > 0 {
			fmt.Printf(" · %.0f%% confidence", msg.Metadata.Confidence*100)
		}
		fmt.Println("]")
	}
}

func init() {
	chatCmd.Flags().BoolVar(&chatHistory, "history", false, "Print the conversation instead of sending")
	chatCmd.Flags().StringVar(&chatReferenceID, "ref-id", "", "Scope to one issue or PR id")
	chatCmd.Flags().StringVar(&chatReferenceType, "ref-type", "", "Reference type: issue or pr")
}
