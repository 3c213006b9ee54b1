// Package graphqlapi exposes the simulator over GraphQL. It mirrors the
// REST surface: same core calls, nullable results for unknown ids,
// state-machine violations surfaced as GraphQL errors.
package graphqlapi

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"driftlab.io/driftlab/internal/domain"
	"driftlab.io/driftlab/internal/sim"
)

// stringified renders a map argument the way the wire contract expects:
// nested objects come back as opaque strings, nil stays null.
func stringified(m map[string]any) any {
	if len(m) == 0 {
		return nil
	}
	return fmt.Sprintf("%v", m)
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func orderFields(o domain.Order) map[string]any {
	return map[string]any{
		"id":          o.ID,
		"productId":   o.ProductID,
		"quantity":    o.Quantity,
		"status":      string(o.Status),
		"createdAt":   o.CreatedAt,
		"updatedAt":   o.UpdatedAt,
		"metadata":    stringified(o.Metadata),
		"completedAt": nullable(o.CompletedAt),
		"shippedAt":   nullable(o.ShippedAt),
		"error":       nullable(o.Error),
	}
}

func jobFields(j domain.Job) map[string]any {
	return map[string]any{
		"id":          j.ID,
		"jobType":     j.JobType,
		"status":      string(j.Status),
		"createdAt":   j.CreatedAt,
		"parameters":  stringified(j.Parameters),
		"startedAt":   nullable(j.StartedAt),
		"completedAt": nullable(j.CompletedAt),
		"result":      stringified(j.Result),
		"error":       nullable(j.Error),
	}
}

func resourceFields(r domain.Resource) map[string]any {
	return map[string]any{
		"id":           r.ID,
		"resourceType": r.ResourceType,
		"status":       string(r.Status),
		"createdAt":    r.CreatedAt,
		"updatedAt":    r.UpdatedAt,
		"config":       stringified(r.Config),
		"endpoint":     nullable(r.Endpoint),
		"error":        nullable(r.Error),
	}
}

func profileFields(p domain.Profile) map[string]any {
	return map[string]any{
		"id":        p.ID,
		"username":  p.Username,
		"createdAt": p.CreatedAt,
		"bio":       nullable(p.Bio),
		"email":     nullable(p.Email),
		"metadata":  stringified(p.Metadata),
	}
}

func commentFields(c domain.Comment) map[string]any {
	return map[string]any{
		"id":        c.ID,
		"postId":    c.PostID,
		"content":   c.Content,
		"author":    c.Author,
		"createdAt": c.CreatedAt,
	}
}

// NewSchema builds the executable schema over the simulator.
func NewSchema(s *sim.Simulator) (graphql.Schema, error) {
	orderType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"productId":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"quantity":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"status":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"metadata":    &graphql.Field{Type: graphql.String},
			"completedAt": &graphql.Field{Type: graphql.String},
			"shippedAt":   &graphql.Field{Type: graphql.String},
			"error":       &graphql.Field{Type: graphql.String},
		},
	})

	jobType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Job",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"jobType":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"parameters":  &graphql.Field{Type: graphql.String},
			"startedAt":   &graphql.Field{Type: graphql.String},
			"completedAt": &graphql.Field{Type: graphql.String},
			"result":      &graphql.Field{Type: graphql.String},
			"error":       &graphql.Field{Type: graphql.String},
		},
	})

	resourceType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Resource",
		Fields: graphql.Fields{
			"id":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"resourceType": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"config":       &graphql.Field{Type: graphql.String},
			"endpoint":     &graphql.Field{Type: graphql.String},
			"error":        &graphql.Field{Type: graphql.String},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "UserProfile",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"username":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"bio":       &graphql.Field{Type: graphql.String},
			"email":     &graphql.Field{Type: graphql.String},
			"metadata":  &graphql.Field{Type: graphql.String},
		},
	})

	commentType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"postId":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"content":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"author":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"createdAt": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	createOrderResp := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateOrderResponse",
		Fields: graphql.Fields{
			"orderId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	createJobResp := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateJobResponse",
		Fields: graphql.Fields{
			"jobId":  &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	createResourceResp := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateResourceResponse",
		Fields: graphql.Fields{
			"resourceId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"status":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	createUserResp := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateUserResponse",
		Fields: graphql.Fields{
			"userId":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})
	createCommentResp := graphql.NewObject(graphql.ObjectConfig{
		Name: "CreateCommentResponse",
		Fields: graphql.Fields{
			"commentId": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					order, err := s.GetOrder(p.Args["orderId"].(string))
					if err != nil {
						return nil, nil
					}
					return orderFields(order), nil
				},
			},
			"job": &graphql.Field{
				Type: jobType,
				Args: graphql.FieldConfigArgument{
					"jobId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					job, err := s.GetJob(p.Args["jobId"].(string))
					if err != nil {
						return nil, nil
					}
					return jobFields(job), nil
				},
			},
			"resource": &graphql.Field{
				Type: resourceType,
				Args: graphql.FieldConfigArgument{
					"resourceId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					res, err := s.GetResource(p.Args["resourceId"].(string))
					if err != nil {
						return nil, nil
					}
					return resourceFields(res), nil
				},
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					profile, err := s.GetProfile(p.Args["userId"].(string))
					if err != nil {
						return nil, nil
					}
					return profileFields(profile), nil
				},
			},
			"allUsers": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(userType)),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					profiles := s.AllProfiles()
					out := make([]map[string]any, 0, len(profiles))
					for _, profile := range profiles {
						out = append(out, profileFields(profile))
					}
					return out, nil
				},
			},
			"commentsForPost": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(commentType)),
				Args: graphql.FieldConfigArgument{
					"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					comments := s.CommentsForPost(p.Args["postId"].(string))
					out := make([]map[string]any, 0, len(comments))
					for _, c := range comments {
						out = append(out, commentFields(c))
					}
					return out, nil
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createOrder": &graphql.Field{
				Type: graphql.NewNonNull(createOrderResp),
				Args: graphql.FieldConfigArgument{
					"productId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"quantity":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"metadata":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var metadata map[string]any
					if raw, ok := p.Args["metadata"].(string); ok && raw != "" {
						metadata = map[string]any{"raw": raw}
					}
					order := s.CreateOrder(p.Args["productId"].(string), p.Args["quantity"].(int), metadata)
					return map[string]any{
						"orderId": order.ID,
						"status":  string(order.Status),
					}, nil
				},
			},
			"shipOrder": &graphql.Field{
				Type: graphql.NewNonNull(orderType),
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					order, err := s.ShipOrder(p.Args["orderId"].(string))
					if err != nil {
						return nil, err
					}
					return orderFields(order), nil
				},
			},
			"createJob": &graphql.Field{
				Type: graphql.NewNonNull(createJobResp),
				Args: graphql.FieldConfigArgument{
					"jobType":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"delay":      &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 0},
					"parameters": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var params map[string]any
					if raw, ok := p.Args["parameters"].(string); ok && raw != "" {
						params = map[string]any{"raw": raw}
					}
					delay, _ := p.Args["delay"].(int)
					job := s.CreateJob(p.Args["jobType"].(string), params, time.Duration(delay)*time.Second)
					return map[string]any{
						"jobId":  job.ID,
						"status": string(job.Status),
					}, nil
				},
			},
			"createResource": &graphql.Field{
				Type: graphql.NewNonNull(createResourceResp),
				Args: graphql.FieldConfigArgument{
					"resourceType": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"config":       &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var config map[string]any
					if raw, ok := p.Args["config"].(string); ok && raw != "" {
						config = map[string]any{"raw": raw}
					}
					res := s.CreateResource(p.Args["resourceType"].(string), config)
					return map[string]any{
						"resourceId": res.ID,
						"status":     string(res.Status),
					}, nil
				},
			},
			"createUser": &graphql.Field{
				Type: graphql.NewNonNull(createUserResp),
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"bio":      &graphql.ArgumentConfig{Type: graphql.String},
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
					"metadata": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					bio, _ := p.Args["bio"].(string)
					email, _ := p.Args["email"].(string)
					var metadata map[string]any
					if raw, ok := p.Args["metadata"].(string); ok && raw != "" {
						metadata = map[string]any{"raw": raw}
					}
					profile := s.CreateProfile(p.Args["username"].(string), bio, email, metadata)
					return map[string]any{
						"userId":   profile.ID,
						"username": profile.Username,
					}, nil
				},
			},
			"createComment": &graphql.Field{
				Type: graphql.NewNonNull(createCommentResp),
				Args: graphql.FieldConfigArgument{
					"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"author":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					comment := s.CreateComment(
						p.Args["postId"].(string),
						p.Args["content"].(string),
						p.Args["author"].(string),
					)
					return map[string]any{"commentId": comment.ID}, nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}
