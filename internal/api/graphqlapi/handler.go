package graphqlapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"go.uber.org/zap"

	apperrors "driftlab.io/driftlab/internal/pkg/errors"
	"driftlab.io/driftlab/internal/pkg/logger"
)

// request is the standard GraphQL-over-HTTP POST body.
type request struct {
	Query         string         `json:"query" binding:"required"`
	OperationName string         `json:"operationName"`
	Variables     map[string]any `json:"variables"`
}

// Handler serves POST /graphql. Execution errors stay inside the GraphQL
// envelope with a 200; only a malformed request body is an HTTP error.
func Handler(schema graphql.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request
		if err := c.ShouldBindJSON(&req); err != nil {
			_ = c.Error(apperrors.BadRequest(apperrors.CodeInvalidRequest, err.Error()))
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        c.Request.Context(),
		})
		if len(result.Errors) > 0 {
			logger.Debug("GraphQL execution errors",
				zap.Int("count", len(result.Errors)),
				zap.String("first", result.Errors[0].Message),
			)
		}
		c.JSON(http.StatusOK, result)
	}
}
