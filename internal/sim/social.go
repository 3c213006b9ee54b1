package sim

import (
	"github.com/google/uuid"

	"driftlab.io/driftlab/internal/domain"
	"driftlab.io/driftlab/internal/metrics"
)

// CreateComment stores the comment verbatim. Content is intentionally
// unsanitized: the fixture exists so scanners can follow stored canary
// payloads from write to every read path.
func (s *Simulator) CreateComment(postID, content, author string) domain.Comment {
	comment := domain.Comment{
		ID:        uuid.NewString(),
		PostID:    postID,
		Content:   content,
		Author:    author,
		CreatedAt: domain.Timestamp(),
	}
	s.comments.Append(comment)
	metrics.EntitiesCreated.WithLabelValues("comment").Inc()
	return comment
}

// CommentsForPost returns every comment on the post in insertion order.
func (s *Simulator) CommentsForPost(postID string) []domain.Comment {
	out := make([]domain.Comment, 0)
	for _, c := range s.comments.All() {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out
}

// RecentComments returns the most recent 10 comments across all posts.
func (s *Simulator) RecentComments() []domain.Comment {
	return s.comments.Tail(10)
}

// RegisterWebhook records a callback registration. The URL is stored
// verbatim, same canary rationale as comments.
func (s *Simulator) RegisterWebhook(url, eventType string) domain.Webhook {
	hook := domain.Webhook{
		ID:        uuid.NewString(),
		URL:       url,
		EventType: eventType,
		CreatedAt: domain.Timestamp(),
	}
	s.webhooks.Append(hook)
	metrics.EntitiesCreated.WithLabelValues("webhook").Inc()
	return hook
}

// Webhooks returns every registration in insertion order.
func (s *Simulator) Webhooks() []domain.Webhook {
	return s.webhooks.All()
}
