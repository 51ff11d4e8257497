package graphql

import (
	"context"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/gqlerrors"
)

// Execute runs req against schema. When maxDepth is positive, queries
// nested deeper are rejected before any resolver runs.
func Execute(ctx context.Context, schema graphql.Schema, req GraphQLRequest, maxDepth int) *graphql.Result {
	if maxDepth > 0 {
		if err := ValidateQueryDepth(req.Query, maxDepth); err != nil {
			return &graphql.Result{Errors: []gqlerrors.FormattedError{gqlerrors.FormatError(err)}}
		}
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}
