package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/campuspay/pricing-engine/pricing"
	"github.com/campuspay/pricing-engine/storage"
	"github.com/lithammer/dedent"
	"github.com/rs/zerolog/log"
)

const (
	// ModeAI marks replies produced by the chat backend.
	ModeAI = "ai"
	// ModeLocal marks replies produced from the comparable-sales table.
	ModeLocal = "local"
)

var systemPrompt = strings.TrimSpace(dedent.Dedent(`
	You are a helpful, general-purpose assistant for Campus Pay. Answer any
	question on any topic clearly and concisely.`))

// Reply is a single assistant answer.
type Reply struct {
	Text  string `json:"text"`
	Mode  string `json:"mode"`
	Model string `json:"model,omitempty"`
}

// Bridge answers user queries with the chat backend when one is available
// and degrades to a digest of comparable sales when it is not.
type Bridge struct {
	client *Client
	store  *pricing.Store
	cache  storage.ReplyCache
}

// NewBridge creates a bridge. cache may be nil to disable reply caching.
func NewBridge(client *Client, store *pricing.Store, cache storage.ReplyCache) *Bridge {
	return &Bridge{client: client, store: store, cache: cache}
}

// Configured reports whether the chat backend can be used at all.
func (b *Bridge) Configured() bool {
	return b.client.Configured()
}

// Answer replies to the conversation. The backend's answer is cached by a
// hash of the conversation; on any backend failure the reply falls back to
// the local search digest, shown verbatim to the user.
func (b *Bridge) Answer(ctx context.Context, messages []Message, model string) Reply {
	if model == "" {
		model = b.client.Model()
	}
	msgs := withSystemPrompt(messages)

	key := conversationHash(model, msgs)
	if b.cache != nil && b.client.Configured() {
		cached, err := b.cache.Get(key)
		if err != nil {
			log.Warn().Err(err).Msg("failed to check reply cache")
		} else if cached != nil {
			log.Debug().Str("key", key[:16]).Msg("reply cache hit")
			return Reply{Text: cached.Text, Mode: ModeAI, Model: cached.Model}
		}
	}

	text, err := b.client.Complete(ctx, msgs, model)
	if err != nil {
		if err != ErrNotConfigured {
			log.Warn().Err(err).Msg("chat backend failed, answering locally")
		}
		return b.localReply(lastUserContent(messages))
	}

	if b.cache != nil {
		if err := b.cache.Set(key, &storage.CachedReply{Text: text, Model: model}); err != nil {
			log.Warn().Err(err).Msg("failed to cache reply")
		}
	}

	return Reply{Text: text, Mode: ModeAI, Model: model}
}

func (b *Bridge) localReply(query string) Reply {
	records := b.store.Snapshot().Records()
	return Reply{Text: pricing.Search(records, query), Mode: ModeLocal}
}

// withSystemPrompt prepends the system prompt unless the conversation
// already carries one.
func withSystemPrompt(messages []Message) []Message {
	for _, m := range messages {
		if m.Role == "system" {
			return messages
		}
	}
	out := make([]Message, 0, len(messages)+1)
	out = append(out, Message{Role: "system", Content: systemPrompt})
	return append(out, messages...)
}

func lastUserContent(messages []Message) string {
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return messages[i].Content
		}
	}
	return ""
}

// conversationHash creates a SHA256 hash over the model and every message.
// Length prefixes prevent boundary collisions between adjacent fields.
func conversationHash(model string, messages []Message) string {
	h := sha256.New()
	_ = binary.Write(h, binary.LittleEndian, int64(len(model)))
	h.Write([]byte(model))
	for _, m := range messages {
		_ = binary.Write(h, binary.LittleEndian, int64(len(m.Role)))
		h.Write([]byte(m.Role))
		_ = binary.Write(h, binary.LittleEndian, int64(len(m.Content)))
		h.Write([]byte(m.Content))
	}
	return hex.EncodeToString(h.Sum(nil))
}
