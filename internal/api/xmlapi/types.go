// Package xmlapi mirrors the REST surface with XML response bodies.
// Requests stay JSON; only the serialization changes. Failures are
// 200 responses carrying an <error> document, which is how the mirror
// has always behaved and what clients parse for.
package xmlapi

import (
	"encoding/xml"
	"fmt"

	"driftlab.io/driftlab/internal/domain"
)

// ErrorDoc is the <error> body returned for any failed XML operation.
type ErrorDoc struct {
	XMLName xml.Name `xml:"error"`
	Message string   `xml:"error"`
}

// flatten renders nested maps as opaque strings. encoding/xml cannot
// marshal map fields, and the mirror's contract treats them as text.
func flatten(m map[string]any) string {
	if len(m) == 0 {
		return ""
	}
	return fmt.Sprintf("%v", m)
}

// OrderDoc is the <order> projection of a domain order.
type OrderDoc struct {
	XMLName     xml.Name `xml:"order"`
	ID          string   `xml:"id,omitempty"`
	OrderID     string   `xml:"order_id,omitempty"`
	ProductID   string   `xml:"product_id,omitempty"`
	Quantity    int      `xml:"quantity,omitempty"`
	Metadata    string   `xml:"metadata,omitempty"`
	Status      string   `xml:"status"`
	CreatedAt   string   `xml:"created_at,omitempty"`
	UpdatedAt   string   `xml:"updated_at,omitempty"`
	CompletedAt string   `xml:"completed_at,omitempty"`
	ShippedAt   string   `xml:"shipped_at,omitempty"`
	Error       string   `xml:"error,omitempty"`
}

func orderDoc(o domain.Order) OrderDoc {
	return OrderDoc{
		ID:          o.ID,
		ProductID:   o.ProductID,
		Quantity:    o.Quantity,
		Metadata:    flatten(o.Metadata),
		Status:      string(o.Status),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		CompletedAt: o.CompletedAt,
		ShippedAt:   o.ShippedAt,
		Error:       o.Error,
	}
}

// JobDoc is the <job> projection of a domain job.
type JobDoc struct {
	XMLName     xml.Name `xml:"job"`
	ID          string   `xml:"id,omitempty"`
	JobID       string   `xml:"job_id,omitempty"`
	JobType     string   `xml:"job_type,omitempty"`
	Parameters  string   `xml:"parameters,omitempty"`
	Status      string   `xml:"status"`
	Result      string   `xml:"result,omitempty"`
	Error       string   `xml:"error,omitempty"`
	CreatedAt   string   `xml:"created_at,omitempty"`
	StartedAt   string   `xml:"started_at,omitempty"`
	CompletedAt string   `xml:"completed_at,omitempty"`
}

func jobDoc(j domain.Job) JobDoc {
	return JobDoc{
		ID:          j.ID,
		JobType:     j.JobType,
		Parameters:  flatten(j.Parameters),
		Status:      string(j.Status),
		Result:      flatten(j.Result),
		Error:       j.Error,
		CreatedAt:   j.CreatedAt,
		StartedAt:   j.StartedAt,
		CompletedAt: j.CompletedAt,
	}
}

// ResourceDoc is the <resource> projection of a domain resource.
type ResourceDoc struct {
	XMLName      xml.Name `xml:"resource"`
	ID           string   `xml:"id,omitempty"`
	ResourceID   string   `xml:"resource_id,omitempty"`
	ResourceType string   `xml:"resource_type,omitempty"`
	Config       string   `xml:"config,omitempty"`
	Status       string   `xml:"status"`
	Endpoint     string   `xml:"endpoint,omitempty"`
	Error        string   `xml:"error,omitempty"`
	CreatedAt    string   `xml:"created_at,omitempty"`
	UpdatedAt    string   `xml:"updated_at,omitempty"`
}

func resourceDoc(r domain.Resource) ResourceDoc {
	return ResourceDoc{
		ID:           r.ID,
		ResourceType: r.ResourceType,
		Config:       flatten(r.Config),
		Status:       string(r.Status),
		Endpoint:     r.Endpoint,
		Error:        r.Error,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// UserDoc is the <user> projection of a domain profile.
type UserDoc struct {
	XMLName   xml.Name `xml:"user"`
	ID        string   `xml:"id,omitempty"`
	UserID    string   `xml:"user_id,omitempty"`
	Username  string   `xml:"username"`
	Bio       string   `xml:"bio,omitempty"`
	Email     string   `xml:"email,omitempty"`
	Metadata  string   `xml:"metadata,omitempty"`
	CreatedAt string   `xml:"created_at,omitempty"`
}

func userDoc(p domain.Profile) UserDoc {
	return UserDoc{
		ID:        p.ID,
		Username:  p.Username,
		Bio:       p.Bio,
		Email:     p.Email,
		Metadata:  flatten(p.Metadata),
		CreatedAt: p.CreatedAt,
	}
}

// CommentDoc is one <comment> entry.
type CommentDoc struct {
	ID        string `xml:"id,omitempty"`
	CommentID string `xml:"comment_id,omitempty"`
	PostID    string `xml:"post_id,omitempty"`
	Content   string `xml:"content,omitempty"`
	Author    string `xml:"author,omitempty"`
	CreatedAt string `xml:"created_at,omitempty"`
}

// CommentCreatedDoc is the <comment> receipt for a created comment.
type CommentCreatedDoc struct {
	XMLName   xml.Name `xml:"comment"`
	CommentID string   `xml:"comment_id"`
}

// CommentsDoc wraps the comment list for a post.
type CommentsDoc struct {
	XMLName  xml.Name     `xml:"comments"`
	Comments []CommentDoc `xml:"comment"`
}

func commentDoc(c domain.Comment) CommentDoc {
	return CommentDoc{
		ID:        c.ID,
		PostID:    c.PostID,
		Content:   c.Content,
		Author:    c.Author,
		CreatedAt: c.CreatedAt,
	}
}

// FeedItemDoc is one <item> in the feed document.
type FeedItemDoc struct {
	Type      string `xml:"type"`
	UserID    string `xml:"user_id,omitempty"`
	Username  string `xml:"username,omitempty"`
	Bio       string `xml:"bio,omitempty"`
	OrderID   string `xml:"order_id,omitempty"`
	Status    string `xml:"status,omitempty"`
	Timestamp string `xml:"timestamp,omitempty"`
}

// FeedDoc wraps the activity feed.
type FeedDoc struct {
	XMLName xml.Name      `xml:"feed"`
	Items   []FeedItemDoc `xml:"item"`
}

func feedItemDoc(e domain.Event) FeedItemDoc {
	return FeedItemDoc{
		Type:      string(e.Type),
		UserID:    e.UserID,
		Username:  e.Username,
		Bio:       e.Bio,
		OrderID:   e.OrderID,
		Status:    e.Status,
		Timestamp: e.Timestamp,
	}
}
