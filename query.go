package rentbook

import (
	"fmt"
	"sort"
	"strings"
)

// Query modifiers understood by the bucket query handlers.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is a single key and value pair returned by a query.
type Model struct {
	Key   []byte
	Value []byte
}

// Pair returns a Model built from given key and value.
func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers ABCI queries for a single path. Data is usually a
// key or a key prefix, depending on mod.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister adds handlers of an extension to the router.
type QueryRegister func(QueryRouter)

// QueryRouter dispatches queries by path. Paths always start with a
// slash, one is added on registration when missing.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: make(map[string]QueryHandler)}
}

// RegisterAll calls every register function with this router.
func (r QueryRouter) RegisterAll(regs ...QueryRegister) {
	for _, register := range regs {
		register(r)
	}
}

// Register binds a handler to a path. Registering the same path twice
// panics.
func (r QueryRouter) Register(path string, h QueryHandler) {
	path = normalizeQueryPath(path)
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("query path %q already registered", path))
	}
	r.routes[path] = h
}

// Handler returns the handler of given path or nil.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[normalizeQueryPath(path)]
}

// Paths returns all registered paths in lexicographical order.
func (r QueryRouter) Paths() []string {
	paths := make([]string, 0, len(r.routes))
	for p := range r.routes {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

func normalizeQueryPath(path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return "/" + path
}
