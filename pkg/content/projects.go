package content

import (
	"slices"
	"sort"
	"strings"
)

// CategoryAll disables category filtering.
const CategoryAll = "All"

// Sort orders for FilterProjects.
const (
	SortStars = "stars"
	SortName  = "name"
)

// ProjectFilter narrows the curated project list.
type ProjectFilter struct {
	Category string `json:"category" mapstructure:"category"`
	Query    string `json:"query" mapstructure:"query"`
	Sort     string `json:"sort" mapstructure:"sort"`
}

// Categories lists the categories present in projects, prefixed by All.
func Categories(projects []Project) []string {
	out := []string{CategoryAll}
	for _, p := range projects {
		if !slices.Contains(out, p.Category) {
			out = append(out, p.Category)
		}
	}
	return out
}

// FilterProjects returns a filtered, sorted copy. The query matches titles
// and technologies, case-insensitively.
func FilterProjects(projects []Project, f ProjectFilter) []Project {
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Project, 0, len(projects))
	for _, p := range projects {
		if f.Category != "" && f.Category != CategoryAll && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if q != "" && !matches(p, q) {
			continue
		}
		out = append(out, p)
	}

	switch f.Sort {
	case SortStars, "":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Stars > out[j].Stars })
	case SortName:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	}
	return out
}

func matches(p Project, q string) bool {
	if strings.Contains(strings.ToLower(p.Title), q) {
		return true
	}
	for _, t := range p.Tech {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
