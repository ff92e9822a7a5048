package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type operation struct {
	Parameters []struct {
		Name string `json:"name"`
		In   string `json:"in"`
	} `json:"parameters"`
	Responses map[string]json.RawMessage `json:"responses"`
}

func TestSwaggerDocument(t *testing.T) {
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]operation `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(SwaggerInfo.ReadDoc()), &doc))
	assert.Equal(t, "plannr web API", doc.Info.Title)

	tests := []struct {
		path, method string
		wantParams   []string
		wantStatus   []string
	}{
		{"/app/api/events", "get", []string{"role", "time", "X-Fetch-Scope"}, []string{"200", "409"}},
		{"/app/api/events/{id}", "get", []string{"id", "status", "X-Fetch-Scope"}, []string{"200", "404", "409"}},
		{"/app/api/invites", "get", []string{"status", "eventId", "userId", "X-Fetch-Scope"}, []string{"200", "400", "409"}},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			op, ok := doc.Paths[tt.path][tt.method]
			require.True(t, ok)
			var names []string
			for _, p := range op.Parameters {
				names = append(names, p.Name)
			}
			assert.ElementsMatch(t, tt.wantParams, names)
			for _, status := range tt.wantStatus {
				assert.Contains(t, op.Responses, status)
			}
		})
	}
}
