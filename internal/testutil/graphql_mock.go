package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/sitekit/sitekit-cli/internal/environments"
)

// GraphQLResolver returns the data payload for one operation, or an error message.
type GraphQLResolver func(variables map[string]any) (any, string)

// GraphQLMock is a provider API double. Resolvers are keyed by the operation
// name that appears in the request query.
type GraphQLMock struct {
	*httptest.Server

	mu        sync.Mutex
	resolvers map[string]GraphQLResolver
	calls     map[string]int
	variables map[string][]map[string]any
	headers   []http.Header
}

// NewGraphQLMockServer starts the mock and points SITEKIT_CLI_GRAPHQL_URL at it.
// The server is closed when the test ends.
func NewGraphQLMockServer(t *testing.T, resolvers map[string]GraphQLResolver) *GraphQLMock {
	t.Helper()
	m := &GraphQLMock{
		resolvers: resolvers,
		calls:     map[string]int{},
		variables: map[string][]map[string]any{},
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Close)
	t.Setenv(environments.EnvVarGraphQLURL, m.URL+"/graphql")
	return m
}

func (m *GraphQLMock) serve(w http.ResponseWriter, r *http.Request) {
	if !strings.HasPrefix(r.URL.Path, "/graphql") || r.Method != http.MethodPost {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	var req struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	_ = json.NewDecoder(r.Body).Decode(&req)
	w.Header().Set("Content-Type", "application/json")

	m.mu.Lock()
	m.headers = append(m.headers, r.Header.Clone())
	var (
		name     string
		resolver GraphQLResolver
	)
	for op, res := range m.resolvers {
		if strings.Contains(req.Query, op) {
			name, resolver = op, res
			break
		}
	}
	if resolver != nil {
		m.calls[name]++
		m.variables[name] = append(m.variables[name], req.Variables)
	}
	m.mu.Unlock()

	if resolver == nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{{"message": "Unsupported GraphQL query"}},
		})
		return
	}

	data, errMsg := resolver(req.Variables)
	if errMsg != "" {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]string{{"message": errMsg}},
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
}

// Calls reports how many times the named operation was served.
func (m *GraphQLMock) Calls(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[op]
}

// TotalCalls counts every request the mock received, matched or not.
func (m *GraphQLMock) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.headers)
}

// Variables returns the variables sent with each call of op, in arrival order.
func (m *GraphQLMock) Variables(op string) []map[string]any {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]map[string]any(nil), m.variables[op]...)
}

// GraphQLURL is the endpoint the mock answers on.
func (m *GraphQLMock) GraphQLURL() string {
	return m.URL + "/graphql"
}
