// Package contrast holds the topic hierarchy and the principle
// contrasts-with graph the scheduler consults when enforcing contrast pairs.
package contrast

import (
	"fmt"
	"sort"
	"strings"
)

// Topic is a named topic with an optional parent (hierarchy is
// informational; only cycle-freedom is enforced).
type Topic struct {
	Name   string
	Parent string // empty for roots
}

// Principle is a named principle owned by a topic.
type Principle struct {
	Name  string
	Topic string
}

// Graph is an immutable in-memory view of topics, principles and directed
// contrasts-with edges. Build once per process (or per refresh) and share;
// all methods are read-only and safe for concurrent use.
type Graph struct {
	topics     map[string]Topic
	principles map[string]Principle
	edges      map[string]map[string]bool // directed as recorded
}

// NewGraph validates the inputs and builds the indices. Pairs are directed
// (a contrasts b) as recorded; queries treat them symmetrically.
func NewGraph(topics []Topic, principles []Principle, pairs [][2]string) (*Graph, error) {
	if err := validate(topics, principles, pairs); err != nil {
		return nil, err
	}

	g := &Graph{
		topics:     make(map[string]Topic, len(topics)),
		principles: make(map[string]Principle, len(principles)),
		edges:      make(map[string]map[string]bool),
	}
	for _, t := range topics {
		g.topics[t.Name] = t
	}
	for _, p := range principles {
		g.principles[p.Name] = p
	}
	for _, pair := range pairs {
		if g.edges[pair[0]] == nil {
			g.edges[pair[0]] = make(map[string]bool)
		}
		g.edges[pair[0]][pair[1]] = true
	}
	return g, nil
}

// Contrasts reports whether the two principles are recorded as contrasting
// in either direction. Unknown principles never contrast.
func (g *Graph) Contrasts(a, b string) bool {
	if a == "" || b == "" || a == b {
		return false
	}
	return g.edges[a][b] || g.edges[b][a]
}

// ContrastsOf returns the principles recorded as contrasting with p, from
// either edge direction, sorted by name.
func (g *Graph) ContrastsOf(p string) []string {
	seen := make(map[string]bool)
	for other := range g.edges[p] {
		seen[other] = true
	}
	for from, tos := range g.edges {
		if tos[p] {
			seen[from] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// PrincipleTopic returns the owning topic of a principle.
func (g *Graph) PrincipleTopic(name string) (string, bool) {
	p, ok := g.principles[name]
	return p.Topic, ok
}

// TopicParent returns a topic's parent, or "" for roots and unknown topics.
func (g *Graph) TopicParent(name string) string {
	return g.topics[name].Parent
}

// Topics returns all topic names, sorted.
func (g *Graph) Topics() []string {
	out := make([]string, 0, len(g.topics))
	for name := range g.topics {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// validate performs the structural checks: duplicate names, dangling
// references, and parent cycles. All problems are reported together.
func validate(topics []Topic, principles []Principle, pairs [][2]string) error {
	var errs []string

	topicSet := make(map[string]bool, len(topics))
	for _, t := range topics {
		if t.Name == "" {
			errs = append(errs, "topic with empty name")
			continue
		}
		if topicSet[t.Name] {
			errs = append(errs, fmt.Sprintf("duplicate topic: %q", t.Name))
		}
		topicSet[t.Name] = true
	}
	for _, t := range topics {
		if t.Parent != "" && !topicSet[t.Parent] {
			errs = append(errs, fmt.Sprintf("topic %q references nonexistent parent %q", t.Name, t.Parent))
		}
	}

	// Parent-chain cycle check: walk each chain with a visited set.
	parents := make(map[string]string, len(topics))
	for _, t := range topics {
		parents[t.Name] = t.Parent
	}
	for _, t := range topics {
		visited := map[string]bool{t.Name: true}
		for cur := parents[t.Name]; cur != ""; cur = parents[cur] {
			if visited[cur] {
				errs = append(errs, fmt.Sprintf("topic hierarchy cycle involving %q", cur))
				break
			}
			visited[cur] = true
		}
	}

	principleSet := make(map[string]bool, len(principles))
	for _, p := range principles {
		if principleSet[p.Name] {
			errs = append(errs, fmt.Sprintf("duplicate principle: %q", p.Name))
		}
		principleSet[p.Name] = true
		if p.Topic != "" && !topicSet[p.Topic] {
			errs = append(errs, fmt.Sprintf("principle %q references nonexistent topic %q", p.Name, p.Topic))
		}
	}

	for _, pair := range pairs {
		if !principleSet[pair[0]] || !principleSet[pair[1]] {
			errs = append(errs, fmt.Sprintf("contrast pair references unknown principle: %q / %q", pair[0], pair[1]))
		}
		if pair[0] == pair[1] {
			errs = append(errs, fmt.Sprintf("principle %q cannot contrast itself", pair[0]))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid contrast graph: %s", strings.Join(errs, "; "))
	}
	return nil
}
