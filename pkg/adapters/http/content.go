package http

import (
	"net/http"

	"github.com/var1d/folio/pkg/content"
)

// GetProfile handles GET /content/profile.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.Content.Profile(r.Context()))
}

// GetArticles handles GET /content/articles.
func (s *Server) GetArticles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.Content.Articles(r.Context()))
}

// GetRepositories handles GET /content/repos.
func (s *Server) GetRepositories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, s.Content.Repositories(r.Context()))
}

// GetProjects handles GET /content/projects.
func (s *Server) GetProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := content.ProjectFilter{
		Category: q.Get("category"),
		Query:    q.Get("q"),
		Sort:     q.Get("sort"),
	}
	writeJSON(w, s.logger, http.StatusOK, content.FilterProjects(s.Content.Projects(), filter))
}
