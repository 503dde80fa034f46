package assistant

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/metsukeai/metsuke-api/internal/models"
)

// Reply is one assistant turn.
type Reply struct {
	Content  string
	Kind     string
	MediaURL *string
}

// Responder is the assistant capability behind the chat screen. Handlers and
// services depend on this interface, never on a concrete implementation, so
// the scripted responder can be swapped for a real one without touching the
// chat flow.
type Responder interface {
	Respond(ctx context.Context, userMessage string) (Reply, error)
}

// Scripted answers without any model integration: an empty message gets an
// introduction by name, image-style requests get a generated image link,
// everything else a canned text reply. An optional delay imitates assistant
// latency; tests run with zero delay.
type Scripted struct {
	name     string
	delay    time.Duration
	imageAPI string
}

func NewScripted(name string, delay time.Duration, imageAPI string) *Scripted {
	if name == "" {
		name = "Metsuke"
	}
	return &Scripted{name: name, delay: delay, imageAPI: imageAPI}
}

var imageTriggers = []string{"draw", "image", "picture", "sketch", "paint"}

var cannedReplies = []string{
	"I hear you. Tell me more about what you are working on and I will focus on it with you.",
	"A clear question is half the answer. Let's break that down step by step.",
	"Noted. Here is how I would approach it: start from the smallest piece that can work on its own.",
	"That is worth a closer look. What outcome would you consider a success?",
	"Understood. Patience and iteration win here; let's take the first cut together.",
}

func (s *Scripted) Respond(ctx context.Context, userMessage string) (Reply, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return Reply{}, ctx.Err()
		}
	}

	if strings.TrimSpace(userMessage) == "" {
		return Reply{
			Content: "Hi, I'm " + s.name + ". Ask me anything, or ask me to draw something.",
			Kind:    models.KindText,
		}, nil
	}

	if prompt, ok := s.imagePrompt(userMessage); ok && s.imageAPI != "" {
		mediaURL := strings.TrimSuffix(s.imageAPI, "/") + "/" + url.PathEscape(prompt)
		return Reply{
			Content:  "Here is an image for: " + prompt,
			Kind:     models.KindImage,
			MediaURL: &mediaURL,
		}, nil
	}

	return Reply{
		Content: s.pickReply(userMessage),
		Kind:    models.KindText,
	}, nil
}

// imagePrompt reports whether the message asks for an image and returns the
// prompt with the trigger word stripped.
func (s *Scripted) imagePrompt(message string) (string, bool) {
	lower := strings.ToLower(message)
	for _, trigger := range imageTriggers {
		if !strings.Contains(lower, trigger) {
			continue
		}
		prompt := strings.TrimSpace(strings.ReplaceAll(lower, trigger, ""))
		if prompt == "" {
			prompt = message
		}
		return prompt, true
	}
	return "", false
}

// pickReply chooses deterministically by message length so repeated turns
// vary without randomness in tests.
func (s *Scripted) pickReply(message string) string {
	return cannedReplies[len(message)%len(cannedReplies)]
}
