package xmlapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
	"driftlab.io/driftlab/internal/sim"
)

// Server implements the XML mirror handlers.
type Server struct {
	sim *sim.Simulator
}

// NewServer creates the XML mirror over the shared simulator.
func NewServer(s *sim.Simulator) *Server {
	return &Server{sim: s}
}

// writeErr emits the mirror's 200-with-<error> failure body.
func writeErr(c *gin.Context, message string) {
	c.XML(http.StatusOK, ErrorDoc{Message: message})
}

// CreateOrderRequest is the JSON body for POST /xml/orders.
type CreateOrderRequest struct {
	ProductID string         `json:"product_id" binding:"required"`
	Quantity  int            `json:"quantity" binding:"required,min=1"`
	Metadata  map[string]any `json:"metadata"`
}

// CreateOrder handles POST /xml/orders.
func (s *Server) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err.Error())
		return
	}

	order := s.sim.CreateOrder(req.ProductID, req.Quantity, req.Metadata)
	c.XML(http.StatusCreated, OrderDoc{
		OrderID: order.ID,
		Status:  string(order.Status),
	})
}

// GetOrder handles GET /xml/orders/:id.
func (s *Server) GetOrder(c *gin.Context) {
	order, err := s.sim.GetOrder(c.Param("id"))
	if err != nil {
		writeErr(c, "Order not found")
		return
	}
	c.XML(http.StatusOK, orderDoc(order))
}

// ShipOrder handles PUT /xml/orders/:id/ship. State violations come back
// as <error> documents with the same message the JSON surface uses.
func (s *Server) ShipOrder(c *gin.Context) {
	order, err := s.sim.ShipOrder(c.Param("id"))
	if err != nil {
		if appErr, ok := apperrors.IsAppError(err); ok {
			writeErr(c, appErr.Message)
		} else {
			writeErr(c, err.Error())
		}
		return
	}
	c.XML(http.StatusOK, orderDoc(order))
}

// CreateJobRequest is the JSON body for POST /xml/jobs.
type CreateJobRequest struct {
	JobType    string         `json:"job_type" binding:"required"`
	Parameters map[string]any `json:"parameters"`
	Delay      int            `json:"delay" binding:"min=0"`
}

// CreateJob handles POST /xml/jobs.
func (s *Server) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err.Error())
		return
	}

	job := s.sim.CreateJob(req.JobType, req.Parameters, time.Duration(req.Delay)*time.Second)
	c.XML(http.StatusAccepted, JobDoc{
		JobID:  job.ID,
		Status: string(job.Status),
	})
}

// GetJob handles GET /xml/jobs/:id.
func (s *Server) GetJob(c *gin.Context) {
	job, err := s.sim.GetJob(c.Param("id"))
	if err != nil {
		writeErr(c, "Job not found")
		return
	}
	c.XML(http.StatusOK, jobDoc(job))
}

// CreateResourceRequest is the JSON body for POST /xml/resources.
type CreateResourceRequest struct {
	ResourceType string         `json:"resource_type" binding:"required"`
	Config       map[string]any `json:"config"`
}

// CreateResource handles POST /xml/resources.
func (s *Server) CreateResource(c *gin.Context) {
	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err.Error())
		return
	}

	res := s.sim.CreateResource(req.ResourceType, req.Config)
	c.XML(http.StatusAccepted, ResourceDoc{
		ResourceID: res.ID,
		Status:     string(res.Status),
	})
}

// GetResource handles GET /xml/resources/:id.
func (s *Server) GetResource(c *gin.Context) {
	res, err := s.sim.GetResource(c.Param("id"))
	if err != nil {
		writeErr(c, "Resource not found")
		return
	}
	c.XML(http.StatusOK, resourceDoc(res))
}

// CreateUserRequest is the JSON body for POST /xml/users.
type CreateUserRequest struct {
	Username string         `json:"username" binding:"required"`
	Bio      string         `json:"bio"`
	Email    string         `json:"email"`
	Metadata map[string]any `json:"metadata"`
}

// CreateUser handles POST /xml/users.
func (s *Server) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err.Error())
		return
	}

	profile := s.sim.CreateProfile(req.Username, req.Bio, req.Email, req.Metadata)
	c.XML(http.StatusCreated, UserDoc{
		UserID:   profile.ID,
		Username: profile.Username,
	})
}

// GetUser handles GET /xml/users/:id.
func (s *Server) GetUser(c *gin.Context) {
	profile, err := s.sim.GetProfile(c.Param("id"))
	if err != nil {
		writeErr(c, "User not found")
		return
	}
	c.XML(http.StatusOK, userDoc(profile))
}

// CreateCommentRequest is the JSON body for POST /xml/comments.
type CreateCommentRequest struct {
	PostID  string `json:"post_id" binding:"required"`
	Content string `json:"content" binding:"required"`
	Author  string `json:"author" binding:"required"`
}

// CreateComment handles POST /xml/comments. Content passes through
// unsanitized, XML-escaped only by the encoder.
func (s *Server) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, err.Error())
		return
	}

	comment := s.sim.CreateComment(req.PostID, req.Content, req.Author)
	c.XML(http.StatusCreated, CommentCreatedDoc{CommentID: comment.ID})
}

// GetPostComments handles GET /xml/posts/:id/comments.
func (s *Server) GetPostComments(c *gin.Context) {
	comments := s.sim.CommentsForPost(c.Param("id"))
	doc := CommentsDoc{Comments: make([]CommentDoc, 0, len(comments))}
	for _, comment := range comments {
		doc.Comments = append(doc.Comments, commentDoc(comment))
	}
	c.XML(http.StatusOK, doc)
}

// GetFeed handles GET /xml/feed.
func (s *Server) GetFeed(c *gin.Context) {
	feed := s.sim.Feed()
	doc := FeedDoc{Items: make([]FeedItemDoc, 0, len(feed))}
	for _, item := range feed {
		doc.Items = append(doc.Items, feedItemDoc(item))
	}
	c.XML(http.StatusOK, doc)
}
