package graph

import (
	_ "embed"
	"net/http"

	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
)

//go:embed schema.graphql
var schemaSDL string

// MustSchema parses the embedded SDL against the resolver. Object fields
// resolve straight off the payload structs; only the root operations are
// methods.
func MustSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(schemaSDL, r, graphql.UseFieldResolvers())
}

// NewHandler returns the HTTP handler serving the GraphQL endpoint.
func NewHandler(r *Resolver) http.Handler {
	return &relay.Handler{Schema: MustSchema(r)}
}
