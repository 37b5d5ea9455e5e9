package engine

// ResolveCollisions removes from tools every name that is also a top project,
// keeping the remaining tools in order. Projects win so the graph stays
// strictly bipartite.
func ResolveCollisions(projects, tools []string) []string {
	isProject := make(map[string]bool, len(projects))
	for _, name := range projects {
		isProject[name] = true
	}

	cleaned := make([]string, 0, len(tools))
	for _, name := range tools {
		if !isProject[name] {
			cleaned = append(cleaned, name)
		}
	}
	return cleaned
}
