package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.themoviedb.org/3"

// StatusError is returned when TMDB answers with a non-2xx status. The
// upstream status is preserved for the caller's error payload.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb: upstream responded %s: %s", e.Status, e.Body)
}

type Person struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Job       string `json:"job,omitempty"`
	Character string `json:"character,omitempty"`
}

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type Credits struct {
	Cast []Person `json:"cast"`
	Crew []Person `json:"crew"`
}

type MovieDetails struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	Overview     string   `json:"overview"`
	ReleaseDate  string   `json:"release_date"`
	PosterPath   string   `json:"poster_path"`
	BackdropPath string   `json:"backdrop_path"`
	Genres       []Genre  `json:"genres"`
	Credits      *Credits `json:"credits"`
	VoteAverage  float64  `json:"vote_average"`
	Runtime      int      `json:"runtime"`
}

type SearchResult struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	GenreIDs    []int   `json:"genre_ids"`
	VoteAverage float64 `json:"vote_average"`
}

type SearchResponse struct {
	Page         int            `json:"page"`
	Results      []SearchResult `json:"results"`
	TotalPages   int            `json:"total_pages"`
	TotalResults int            `json:"total_results"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SearchMovies queries the catalogue by title and returns the paginated
// result page as-is.
func (c *Client) SearchMovies(ctx context.Context, query string) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)

	var resp SearchResponse
	if err := c.getJSON(ctx, "/search/movie?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// MovieDetails fetches one movie with its credits appended, so director and
// cast come back in the same round trip.
func (c *Client) MovieDetails(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("append_to_response", "credits")

	var details MovieDetails
	path := fmt.Sprintf("/movie/%d?%s", movieID, params.Encode())
	if err := c.getJSON(ctx, path, &details); err != nil {
		return nil, err
	}
	if details.ID == 0 || details.Title == "" {
		return nil, fmt.Errorf("tmdb: malformed details payload for movie %d", movieID)
	}
	return &details, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       strings.TrimSpace(string(body)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("tmdb: decoding response: %w", err)
	}
	return nil
}

// Director picks the first crew entry whose job is "Director", or "" when
// the credits carry none.
func (d *MovieDetails) Director() string {
	if d.Credits == nil {
		return ""
	}
	for _, person := range d.Credits.Crew {
		if person.Job == "Director" {
			return person.Name
		}
	}
	return ""
}

// TopCast returns up to n cast names in the order TMDB billed them.
func (d *MovieDetails) TopCast(n int) []string {
	names := []string{}
	if d.Credits == nil {
		return names
	}
	for _, person := range d.Credits.Cast {
		if len(names) == n {
			break
		}
		names = append(names, person.Name)
	}
	return names
}

func (d *MovieDetails) GenreNames() []string {
	names := []string{}
	for _, genre := range d.Genres {
		names = append(names, genre.Name)
	}
	return names
}
