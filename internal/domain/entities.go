// Package domain defines the simulated entities and their lifecycle
// states. Records carry ISO-8601 UTC string timestamps: lexical order on
// the fixed-width format equals chronological order, and external tools
// correlate on the strings, so the representation is part of the contract.
package domain

import "time"

// timestampLayout is fixed-width so string comparison sorts correctly.
const timestampLayout = "2006-01-02T15:04:05.000000Z"

// Timestamp returns the current time in the wire format.
func Timestamp() string {
	return time.Now().UTC().Format(timestampLayout)
}

// FormatTimestamp renders t in the wire format.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderCompleted  OrderStatus = "completed"
	OrderFailed     OrderStatus = "failed"
	OrderShipped    OrderStatus = "shipped"
)

// JobStatus is the lifecycle state of a job.
type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobFailed    JobStatus = "failed"
)

// ResourceStatus is the lifecycle state of a resource.
type ResourceStatus string

const (
	ResourceProvisioning ResourceStatus = "provisioning"
	ResourceInitializing ResourceStatus = "initializing"
	ResourceReady        ResourceStatus = "ready"
	ResourceError        ResourceStatus = "error"
)

// Order moves pending → processing → completed|failed on background
// timers; shipped is reachable only from completed and is final.
type Order struct {
	ID          string         `json:"id"`
	ProductID   string         `json:"product_id"`
	Quantity    int            `json:"quantity"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Status      OrderStatus    `json:"status"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
	CompletedAt string         `json:"completed_at,omitempty"`
	ShippedAt   string         `json:"shipped_at,omitempty"`
	Error       string         `json:"error,omitempty"`
}

// Job moves queued → running → completed|failed. Result is populated
// only on completion.
type Job struct {
	ID          string         `json:"id"`
	JobType     string         `json:"job_type"`
	Parameters  map[string]any `json:"parameters,omitempty"`
	Status      JobStatus      `json:"status"`
	Result      map[string]any `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   string         `json:"created_at"`
	StartedAt   string         `json:"started_at,omitempty"`
	CompletedAt string         `json:"completed_at,omitempty"`
}

// Resource moves provisioning → initializing → ready|error. Endpoint is
// populated only on ready.
type Resource struct {
	ID           string         `json:"id"`
	ResourceType string         `json:"resource_type"`
	Config       map[string]any `json:"config,omitempty"`
	Status       ResourceStatus `json:"status"`
	Endpoint     string         `json:"endpoint,omitempty"`
	Error        string         `json:"error,omitempty"`
	CreatedAt    string         `json:"created_at"`
	UpdatedAt    string         `json:"updated_at"`
}

// Profile is immutable after creation. It has no status of its own; its
// visibility is staged through the eventual-consistency views.
type Profile struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Bio       string         `json:"bio,omitempty"`
	Email     string         `json:"email,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	CreatedAt string         `json:"created_at"`
}

// PublicProfile is the reduced field set exposed by the cached view.
type PublicProfile struct {
	Username  string `json:"username"`
	Bio       string `json:"bio"`
	CreatedAt string `json:"created_at"`
}

// Comment content is stored verbatim and never sanitized: the fixture
// exists to let scanners track canary payloads through storage.
type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"post_id"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
}

// Webhook registrations are append-only; URLs are stored verbatim.
type Webhook struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	EventType string `json:"event_type"`
	CreatedAt string `json:"created_at"`
}

// Connection is the payload returned when connecting to a ready resource.
type Connection struct {
	ConnectionString string      `json:"connection_string"`
	Credentials      Credentials `json:"credentials"`
}

// Credentials is a freshly generated credential per connect call.
type Credentials struct {
	User  string `json:"user"`
	Token string `json:"token"`
}

// UserAnalytics is the analytics-view aggregate over propagated profiles.
type UserAnalytics struct {
	TotalUsers int              `json:"total_users"`
	Users      []Profile        `json:"users"`
	Aggregated AggregatedCounts `json:"aggregated_data"`
}

// AggregatedCounts are the per-field presence counts in the analytics view.
type AggregatedCounts struct {
	WithBio   int `json:"with_bio"`
	WithEmail int `json:"with_email"`
}
