package content_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/var1d/folio/pkg/content"
)

func titles(ps []content.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

func TestFilterProjects(t *testing.T) {
	projects := content.DefaultDataset().Projects
	require.Len(t, projects, 6)

	tests := []struct {
		name   string
		filter content.ProjectFilter
		want   []string
	}{
		{
			name:   "category sorted by stars",
			filter: content.ProjectFilter{Category: "VR"},
			want:   []string{"Procedural Dungeon VR", "VR Safety Simulator"},
		},
		{
			name:   "query matches tech",
			filter: content.ProjectFilter{Query: "glsl"},
			want:   []string{"Shader Art Gallery"},
		},
		{
			name:   "sort by name",
			filter: content.ProjectFilter{Category: content.CategoryAll, Query: "unity", Sort: content.SortName},
			want:   []string{"AR Museum Guide", "Mobile Puzzle Game", "VR Safety Simulator", "XR Portfolio Viewer"},
		},
		{
			name:   "no match",
			filter: content.ProjectFilter{Category: "AR", Query: "unreal"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, titles(content.FilterProjects(projects, tt.filter)))
		})
	}
}

func TestCategories(t *testing.T) {
	got := content.Categories(content.DefaultDataset().Projects)
	assert.Equal(t, []string{"All", "VR", "AR", "MR", "Web", "Mobile"}, got)
}

func TestLoadDataset_RequiresProfile(t *testing.T) {
	_, err := content.LoadDataset([]byte("articles: []\n"))
	assert.Error(t, err)
}
