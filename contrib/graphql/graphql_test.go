package graphql_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/forma/contrib/graphql"
	"github.com/syssam/forma/diagram"
)

const sdl = `
type Query {
	user(id: ID!): User
	orders: [Order!]!
}

interface Node {
	id: ID!
}

type User implements Node {
	id: ID!
	name: String!
	email: String
	tags: [String!]
	profile: Profile!
	orders(status: OrderStatus): [Order!]!
}

type Order implements Node {
	id: ID!
	total: Float!
	status: OrderStatus!
	customer: User!
}

type Profile {
	bio: String
}

enum OrderStatus {
	PENDING
	SHIPPED
}

union SearchResult = User | Order

input UserFilter {
	name: String
}

scalar Time
`

func relsBetween(g *diagram.Graph, source, target string) []*diagram.Relationship {
	var out []*diagram.Relationship
	for _, r := range g.Relationships {
		if r.SourceID == source && r.TargetID == target {
			out = append(out, r)
		}
	}
	return out
}

func TestImport(t *testing.T) {
	g, err := graphql.Import("commerce", sdl)
	require.NoError(t, err)
	assert.Equal(t, "commerce", g.Name)
	assert.Equal(t, diagram.DiagramClass, g.Kind)

	names := make([]string, len(g.Classes))
	for i, c := range g.Classes {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Node", "Order", "OrderStatus", "Profile", "SearchResult", "User"}, names)
}

func TestImportClasses(t *testing.T) {
	g, err := graphql.Import("commerce", sdl)
	require.NoError(t, err)

	user := g.ClassByName("User")
	require.NotNil(t, user)
	assert.Equal(t, "User", user.ID)
	assert.Equal(t, diagram.KindClass, user.Kind)

	attrs := make(map[string]string, len(user.Attributes))
	for _, a := range user.Attributes {
		attrs[a.Name] = a.Type
		assert.Equal(t, diagram.Public, a.Visibility)
	}
	// profile and orders reference other classes, so they are edges, not
	// attributes.
	assert.Equal(t, map[string]string{
		"id":    "ID",
		"name":  "String",
		"email": "String",
		"tags":  "[String!]",
	}, attrs)

	require.Len(t, user.Methods, 1)
	m := user.Methods[0]
	assert.Equal(t, "orders", m.Name)
	assert.Equal(t, "[Order!]!", m.ReturnType)
	require.Len(t, m.Parameters, 1)
	assert.Equal(t, "status", m.Parameters[0].Name)
	assert.Equal(t, "OrderStatus", m.Parameters[0].Type)

	order := g.ClassByName("Order")
	require.NotNil(t, order)
	statusType := ""
	for _, a := range order.Attributes {
		if a.Name == "status" {
			statusType = a.Type
		}
	}
	assert.Equal(t, "OrderStatus", statusType)
}

func TestImportInterfacesAndUnions(t *testing.T) {
	g, err := graphql.Import("commerce", sdl)
	require.NoError(t, err)

	node := g.ClassByName("Node")
	require.NotNil(t, node)
	assert.Equal(t, diagram.KindInterface, node.Kind)
	require.Len(t, node.Attributes, 1)
	assert.Equal(t, "id", node.Attributes[0].Name)

	search := g.ClassByName("SearchResult")
	require.NotNil(t, search)
	assert.Equal(t, diagram.KindInterface, search.Kind)
	assert.Empty(t, search.Attributes)

	for _, source := range []string{"User", "Order"} {
		rels := relsBetween(g, source, "Node")
		require.Len(t, rels, 1, "%s should realize Node", source)
		assert.Equal(t, diagram.Realization, rels[0].Kind)

		rels = relsBetween(g, source, "SearchResult")
		require.Len(t, rels, 1, "%s should realize SearchResult", source)
		assert.Equal(t, diagram.Realization, rels[0].Kind)
	}
}

func TestImportEnum(t *testing.T) {
	g, err := graphql.Import("commerce", sdl)
	require.NoError(t, err)

	status := g.ClassByName("OrderStatus")
	require.NotNil(t, status)
	assert.Equal(t, diagram.KindEnum, status.Kind)
	require.Len(t, status.Attributes, 2)
	for _, a := range status.Attributes {
		assert.True(t, a.Static)
		assert.True(t, a.Final)
		assert.Equal(t, "OrderStatus", a.Type)
	}
	assert.Equal(t, "PENDING", status.Attributes[0].Name)
	assert.Equal(t, "SHIPPED", status.Attributes[1].Name)
}

func TestImportMultiplicities(t *testing.T) {
	g, err := graphql.Import("commerce", sdl)
	require.NoError(t, err)

	profile := relsBetween(g, "User", "Profile")
	require.Len(t, profile, 1)
	assert.Equal(t, diagram.Association, profile[0].Kind)
	assert.Equal(t, diagram.One, profile[0].TargetMultiplicity)
	assert.Equal(t, "profile", profile[0].TargetRole)
	assert.True(t, profile[0].TargetNavigable)
	assert.False(t, profile[0].SourceNavigable)

	customer := relsBetween(g, "Order", "User")
	require.Len(t, customer, 1)
	assert.Equal(t, diagram.One, customer[0].TargetMultiplicity)

	// Fields with arguments become methods plus a dependency on the
	// result type.
	orders := relsBetween(g, "User", "Order")
	require.Len(t, orders, 1)
	assert.Equal(t, diagram.Dependency, orders[0].Kind)
	assert.Equal(t, diagram.ZeroMany, orders[0].TargetMultiplicity)
	assert.Equal(t, "orders", orders[0].TargetRole)
}

func TestImportNullableSingle(t *testing.T) {
	g, err := graphql.Import("library", `
type Query { book: Book }

type Book {
	title: String!
	author: Author
}

type Author {
	name: String!
}
`)
	require.NoError(t, err)
	rels := relsBetween(g, "Book", "Author")
	require.Len(t, rels, 1)
	assert.Equal(t, diagram.ZeroOne, rels[0].TargetMultiplicity)
}

func TestImportSkipsAPITypes(t *testing.T) {
	g, err := graphql.Import("commerce", sdl)
	require.NoError(t, err)
	assert.Nil(t, g.ClassByName("Query"))
	assert.Nil(t, g.ClassByName("UserFilter"))
	assert.Nil(t, g.ClassByName("Time"))
	assert.Nil(t, g.ClassByName("String"))
}

func TestImportParseError(t *testing.T) {
	_, err := graphql.Import("broken", `type User {`)
	require.Error(t, err)
	assert.ErrorContains(t, err, "graphql: parse schema")
}
