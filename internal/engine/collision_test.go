package engine

import "testing"

func TestResolveCollisions(t *testing.T) {
	tests := []struct {
		name     string
		projects []string
		tools    []string
		want     []string
	}{
		{name: "shared name removed from tools", projects: []string{"P1", "P2"}, tools: []string{"T1", "P1", "T2"}, want: []string{"T1", "T2"}},
		{name: "no overlap", projects: []string{"P1"}, tools: []string{"T1", "T2"}, want: []string{"T1", "T2"}},
		{name: "all tools collide", projects: []string{"A", "B"}, tools: []string{"B", "A"}, want: []string{}},
		{name: "no projects", projects: nil, tools: []string{"T1"}, want: []string{"T1"}},
		{name: "no tools", projects: []string{"P1"}, tools: nil, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCollisions(tt.projects, tt.tools)
			if !equalStrings(got, tt.want) {
				t.Errorf("ResolveCollisions() = %v, want %v", got, tt.want)
			}

			if len(got) > len(tt.tools) {
				t.Errorf("output larger than tool set: %d > %d", len(got), len(tt.tools))
			}
			isProject := map[string]bool{}
			for _, p := range tt.projects {
				isProject[p] = true
			}
			for _, name := range got {
				if isProject[name] {
					t.Errorf("output contains project %q", name)
				}
			}
		})
	}
}
