package contrast

import (
	"strings"
	"testing"
)

func testGraph(t *testing.T) *Graph {
	t.Helper()
	g, err := NewGraph(
		[]Topic{
			{Name: "memory"},
			{Name: "encoding", Parent: "memory"},
			{Name: "practice"},
		},
		[]Principle{
			{Name: "recall", Topic: "memory"},
			{Name: "recognition", Topic: "memory"},
			{Name: "massed", Topic: "practice"},
			{Name: "spaced", Topic: "practice"},
		},
		[][2]string{
			{"recall", "recognition"},
			{"massed", "spaced"},
		},
	)
	if err != nil {
		t.Fatalf("NewGraph: %v", err)
	}
	return g
}

func TestContrasts_SymmetricLookup(t *testing.T) {
	g := testGraph(t)

	// Only recall->recognition is recorded; both directions must answer true.
	if !g.Contrasts("recall", "recognition") {
		t.Errorf("recorded direction should contrast")
	}
	if !g.Contrasts("recognition", "recall") {
		t.Errorf("reverse direction should contrast too")
	}
	if g.Contrasts("recall", "massed") {
		t.Errorf("unrelated principles must not contrast")
	}
	if g.Contrasts("recall", "recall") {
		t.Errorf("a principle never contrasts itself")
	}
	if g.Contrasts("", "recall") || g.Contrasts("ghost", "recall") {
		t.Errorf("empty or unknown principles never contrast")
	}
}

func TestContrastsOf(t *testing.T) {
	g := testGraph(t)
	got := g.ContrastsOf("recognition")
	if len(got) != 1 || got[0] != "recall" {
		t.Errorf("ContrastsOf(recognition) = %v, want [recall]", got)
	}
}

func TestPrincipleTopic(t *testing.T) {
	g := testGraph(t)
	topic, ok := g.PrincipleTopic("massed")
	if !ok || topic != "practice" {
		t.Errorf("PrincipleTopic(massed) = %q/%v, want practice/true", topic, ok)
	}
	if _, ok := g.PrincipleTopic("ghost"); ok {
		t.Errorf("unknown principle reported as present")
	}
}

func TestTopicParent(t *testing.T) {
	g := testGraph(t)
	if p := g.TopicParent("encoding"); p != "memory" {
		t.Errorf("TopicParent(encoding) = %q, want memory", p)
	}
	if p := g.TopicParent("memory"); p != "" {
		t.Errorf("root topic has parent %q", p)
	}
}

func TestNewGraph_ValidationErrors(t *testing.T) {
	tests := []struct {
		name       string
		topics     []Topic
		principles []Principle
		pairs      [][2]string
		wantSubstr string
	}{
		{
			name:       "duplicate topic",
			topics:     []Topic{{Name: "a"}, {Name: "a"}},
			wantSubstr: "duplicate topic",
		},
		{
			name:       "dangling parent",
			topics:     []Topic{{Name: "a", Parent: "ghost"}},
			wantSubstr: "nonexistent parent",
		},
		{
			name:       "parent cycle",
			topics:     []Topic{{Name: "a", Parent: "b"}, {Name: "b", Parent: "a"}},
			wantSubstr: "cycle",
		},
		{
			name:       "dangling principle topic",
			principles: []Principle{{Name: "p", Topic: "ghost"}},
			wantSubstr: "nonexistent topic",
		},
		{
			name:       "self contrast",
			principles: []Principle{{Name: "p"}},
			pairs:      [][2]string{{"p", "p"}},
			wantSubstr: "cannot contrast itself",
		},
		{
			name:       "unknown principle in pair",
			principles: []Principle{{Name: "p"}},
			pairs:      [][2]string{{"p", "ghost"}},
			wantSubstr: "unknown principle",
		},
	}

	for _, tt := range tests {
		_, err := NewGraph(tt.topics, tt.principles, tt.pairs)
		if err == nil {
			t.Errorf("%s: want error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantSubstr) {
			t.Errorf("%s: error %q missing %q", tt.name, err, tt.wantSubstr)
		}
	}
}
