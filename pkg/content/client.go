package content

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/var1d/folio/internal/logging"
)

const (
	DefaultGitHubURL = "https://api.github.com"
	DefaultDevToURL  = "https://dev.to"
	DefaultUser      = "Var1d"
	DefaultTag       = "gamedev"
	DefaultPageSize  = 6
	DefaultTimeout   = 5 * time.Second

	// DefaultProfileTTL mirrors the hourly revalidation of the home page.
	DefaultProfileTTL = time.Hour
)

// Client reads portfolio content from GitHub and dev.to.
// Every method falls back to the offline Dataset on failure.
type Client struct {
	http       *http.Client
	githubURL  string
	devtoURL   string
	user       string
	tag        string
	pageSize   int
	profileTTL time.Duration
	fallback   *Dataset
	logger     *slog.Logger
	now        func() time.Time

	mu      sync.Mutex
	profile *Result[Profile]
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient overrides the transport.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithBaseURLs points the client at other API hosts (tests, proxies).
func WithBaseURLs(github, devto string) Option {
	return func(c *Client) {
		if github != "" {
			c.githubURL = github
		}
		if devto != "" {
			c.devtoURL = devto
		}
	}
}

// WithUser sets the GitHub login.
func WithUser(user string) Option {
	return func(c *Client) {
		if user != "" {
			c.user = user
		}
	}
}

// WithTag sets the dev.to article tag.
func WithTag(tag string) Option {
	return func(c *Client) {
		if tag != "" {
			c.tag = tag
		}
	}
}

// WithTimeout bounds each upstream request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithProfileTTL sets how long a fetched profile is reused. Zero disables
// caching.
func WithProfileTTL(d time.Duration) Option {
	return func(c *Client) {
		c.profileTTL = d
	}
}

// WithFallback replaces the offline dataset.
func WithFallback(ds *Dataset) Option {
	return func(c *Client) {
		if ds != nil {
			c.fallback = ds
		}
	}
}

// WithLogger configures a logger for the Client.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a Client for the default user and tag.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:       &http.Client{Timeout: DefaultTimeout},
		githubURL:  DefaultGitHubURL,
		devtoURL:   DefaultDevToURL,
		user:       DefaultUser,
		tag:        DefaultTag,
		pageSize:   DefaultPageSize,
		profileTTL: DefaultProfileTTL,
		fallback:   DefaultDataset(),
		logger:     logging.NewNop(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Projects returns the curated project catalog.
func (c *Client) Projects() []Project {
	out := make([]Project, len(c.fallback.Projects))
	copy(out, c.fallback.Projects)
	return out
}

type githubUser struct {
	Login       string `json:"login"`
	Name        string `json:"name"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatar_url"`
	PublicRepos int    `json:"public_repos"`
	Followers   int    `json:"followers"`
	Following   int    `json:"following"`
}

// Profile returns the GitHub profile, cached for the profile TTL.
func (c *Client) Profile(ctx context.Context) Result[Profile] {
	c.mu.Lock()
	cached := c.profile
	c.mu.Unlock()
	if cached != nil && c.now().Sub(cached.FetchedAt) < c.profileTTL {
		return *cached
	}

	var u githubUser
	err := c.getJSON(ctx, c.githubURL+"/users/"+url.PathEscape(c.user), githubAccept, &u)
	if err != nil {
		return fallbackResult(c, err, c.fallback.Profile, "profile")
	}

	res := Result[Profile]{
		Data: Profile{
			Login:       u.Login,
			Name:        u.Name,
			Bio:         u.Bio,
			AvatarURL:   u.AvatarURL,
			PublicRepos: u.PublicRepos,
			Followers:   u.Followers,
			Following:   u.Following,
		},
		FetchedAt: c.now(),
	}
	c.mu.Lock()
	c.profile = &res
	c.mu.Unlock()
	return res
}

type githubRepo struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	HTMLURL     string    `json:"html_url"`
	Language    string    `json:"language"`
	Stars       int       `json:"stargazers_count"`
	Forks       int       `json:"forks_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Repositories returns the most recently updated public repositories.
func (c *Client) Repositories(ctx context.Context) Result[[]Repository] {
	q := url.Values{}
	q.Set("per_page", strconv.Itoa(c.pageSize))
	q.Set("sort", "updated")

	var raw []githubRepo
	endpoint := c.githubURL + "/users/" + url.PathEscape(c.user) + "/repos?" + q.Encode()
	if err := c.getJSON(ctx, endpoint, githubAccept, &raw); err != nil {
		return fallbackResult(c, err, slices.Clone(c.fallback.Repositories), "repositories")
	}

	repos := make([]Repository, len(raw))
	for i, r := range raw {
		repos[i] = Repository{
			Name:        r.Name,
			Description: r.Description,
			URL:         r.HTMLURL,
			Language:    r.Language,
			Stars:       r.Stars,
			Forks:       r.Forks,
			UpdatedAt:   r.UpdatedAt,
		}
	}
	return Result[[]Repository]{Data: repos, FetchedAt: c.now()}
}

type devtoArticle struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	CoverImage  string    `json:"cover_image"`
	TagList     []string  `json:"tag_list"`
	Reactions   int       `json:"positive_reactions_count"`
	Comments    int       `json:"comments_count"`
	ReadingTime int       `json:"reading_time_minutes"`
	PublishedAt time.Time `json:"published_at"`
	User        struct {
		Name string `json:"name"`
	} `json:"user"`
}

// Articles returns the top articles for the configured tag.
func (c *Client) Articles(ctx context.Context) Result[[]Article] {
	q := url.Values{}
	q.Set("tag", c.tag)
	q.Set("per_page", strconv.Itoa(c.pageSize))
	q.Set("top", "1")

	var raw []devtoArticle
	if err := c.getJSON(ctx, c.devtoURL+"/api/articles?"+q.Encode(), "application/json", &raw); err != nil {
		return fallbackResult(c, err, slices.Clone(c.fallback.Articles), "articles")
	}

	articles := make([]Article, len(raw))
	for i, a := range raw {
		author := a.User.Name
		if author == "" {
			author = "Unknown"
		}
		tags := a.TagList
		if tags == nil {
			tags = []string{}
		}
		articles[i] = Article{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			Cover:       a.CoverImage,
			Tags:        tags,
			Reactions:   a.Reactions,
			Comments:    a.Comments,
			ReadTime:    a.ReadingTime,
			Author:      author,
			PublishedAt: a.PublishedAt,
		}
	}
	return Result[[]Article]{Data: articles, FetchedAt: c.now()}
}

const githubAccept = "application/vnd.github.v3+json"

func (c *Client) getJSON(ctx context.Context, endpoint, accept string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", accept)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upstream returned %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func fallbackResult[T any](c *Client, err error, data T, what string) Result[T] {
	c.logger.Warn("Using fallback content", "source", what, "err", err)
	return Result[T]{
		Data:      data,
		FetchedAt: c.now(),
		Fallback:  true,
		Error:     err.Error(),
	}
}
