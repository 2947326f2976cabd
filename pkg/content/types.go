package content

import "time"

// Profile is the public GitHub profile shown on the home page.
type Profile struct {
	Login       string `json:"login" yaml:"login"`
	Name        string `json:"name" yaml:"name"`
	Bio         string `json:"bio" yaml:"bio"`
	AvatarURL   string `json:"avatar_url,omitempty" yaml:"avatar_url"`
	PublicRepos int    `json:"public_repos" yaml:"public_repos"`
	Followers   int    `json:"followers" yaml:"followers"`
	Following   int    `json:"following" yaml:"following"`
}

// Article is one blog entry.
type Article struct {
	ID          int       `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	URL         string    `json:"url" yaml:"url"`
	Cover       string    `json:"cover,omitempty" yaml:"cover"`
	Tags        []string  `json:"tags" yaml:"tags"`
	Reactions   int       `json:"reactions" yaml:"reactions"`
	Comments    int       `json:"comments" yaml:"comments"`
	ReadTime    int       `json:"read_time" yaml:"read_time"`
	Author      string    `json:"author" yaml:"author"`
	PublishedAt time.Time `json:"published_at" yaml:"published_at"`
}

// Repository is one public source repository.
type Repository struct {
	Name        string    `json:"name" yaml:"name"`
	Description string    `json:"description" yaml:"description"`
	URL         string    `json:"url" yaml:"url"`
	Language    string    `json:"language,omitempty" yaml:"language"`
	Stars       int       `json:"stars" yaml:"stars"`
	Forks       int       `json:"forks" yaml:"forks"`
	UpdatedAt   time.Time `json:"updated_at" yaml:"updated_at"`
}

// Project is a curated portfolio entry.
type Project struct {
	ID          int      `json:"id" yaml:"id"`
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Tech        []string `json:"tech" yaml:"tech"`
	Category    string   `json:"category" yaml:"category"`
	Stars       int      `json:"stars" yaml:"stars"`
	Featured    bool     `json:"featured" yaml:"featured"`
}

// Result carries fetched data, or the fallback dataset with the reason the
// fetch failed. Fetch errors never escape as Go errors.
type Result[T any] struct {
	Data      T         `json:"data"`
	FetchedAt time.Time `json:"fetched_at"`
	Fallback  bool      `json:"fallback"`
	Error     string    `json:"error,omitempty"`
}
