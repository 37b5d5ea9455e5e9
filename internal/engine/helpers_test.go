package engine

import "github.com/ccerv1/rf-weights-testing/internal/relationship"

// rec builds a Dependency record between project and tool with the given metrics.
func rec(project, tool string, devs int64, gas float64) relationship.Record {
	return relationship.Record{
		ProjectID:         "id-" + project,
		ProjectName:       project,
		ToolID:            "id-" + tool,
		ToolName:          tool,
		RelationshipType:  "Dependency",
		ProjectDevs:       devs,
		SmartContractDevs: 1,
		TotalTxns:         10,
		TotalGasFees:      gas,
	}
}

func withType(r relationship.Record, relType string) relationship.Record {
	r.RelationshipType = relType
	return r
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
