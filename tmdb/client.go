// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/flickpick/server/models"
)

const (
	defaultBaseURL = "https://api.themoviedb.org/3"
	imageBaseURL   = "https://image.tmdb.org/t/p/w500"

	// catalogCap bounds the swipe deck; both-content sessions split it
	// between movies and TV.
	catalogCap = 20
)

var genreIDs = map[string]int{
	"Action":      28,
	"Comedy":      35,
	"Drama":       18,
	"Horror":      27,
	"Thriller":    53,
	"Sci-Fi":      878,
	"Romance":     10749,
	"Documentary": 99,
	"Animation":   16,
	"Fantasy":     14,
	"Mystery":     9648,
	"Crime":       80,
}

// TV discover uses different ids for a couple of genres.
var tvGenreIDs = map[string]int{
	"Action": 10759,
	"Sci-Fi": 10765,
}

var providerIDs = map[string]int{
	"netflix":   8,
	"hulu":      15,
	"max":       1899,
	"prime":     119,
	"disney":    337,
	"peacock":   386,
	"paramount": 531,
	"apple":     350,
	"tubi":      73,
	"pluto":     300,
}

var moodGenres = map[string][]string{
	"chill":       {"Drama", "Romance"},
	"feelgood":    {"Comedy", "Romance", "Animation"},
	"intense":     {"Action", "Thriller", "Crime"},
	"mindbending": {"Sci-Fi", "Mystery", "Thriller"},
	"scary":       {"Horror", "Thriller"},
	"funny":       {"Comedy"},
	"tearjerker":  {"Drama", "Romance"},
}

// TMDB genre names folded onto the app's vocabulary.
var genreAliases = map[string]string{
	"Science Fiction":    "Sci-Fi",
	"Action & Adventure": "Action",
	"Sci-Fi & Fantasy":   "Sci-Fi",
	"War & Politics":     "Drama",
}

// Client builds session catalogs from the TMDB discover API, with provider
// availability resolved against the host's selected streaming services.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewClientWithBaseURL is for tests pointing the client at a stub server.
func NewClientWithBaseURL(apiKey, baseURL string) *Client {
	c := NewClient(apiKey)
	c.baseURL = strings.TrimRight(baseURL, "/")
	return c
}

type discoverResult struct {
	ID int64 `json:"id"`
}

type discoverPage struct {
	Results []discoverResult `json:"results"`
}

type providerRef struct {
	ProviderID int `json:"provider_id"`
}

type providerRegion struct {
	Flatrate []providerRef `json:"flatrate"`
	Ads      []providerRef `json:"ads"`
	Free     []providerRef `json:"free"`
}

type detailResponse struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"` // movies
	Name           string `json:"name"`  // tv
	PosterPath     string `json:"poster_path"`
	Overview       string `json:"overview"`
	Runtime        int    `json:"runtime"`          // movies
	EpisodeRuntime []int  `json:"episode_run_time"` // tv
	ReleaseDate    string `json:"release_date"`     // movies
	FirstAirDate   string `json:"first_air_date"`   // tv
	VoteAverage    float64 `json:"vote_average"`
	Genres         []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
	WatchProviders struct {
		Results map[string]providerRegion `json:"results"`
	} `json:"watch/providers"`
}

// BuildCatalog turns a filter specification and provider set into an ordered
// list of candidate titles. Titles not watchable on any selected service are
// dropped. When explicit genre picks produce zero candidates, the genres are
// dropped (mood-derived genres kept) and discovery runs once more. An empty
// result is a valid return, not an error.
func (c *Client) BuildCatalog(ctx context.Context, filters models.SessionFilters, services []string) ([]models.CatalogItem, error) {
	catalog, err := c.discoverAndResolve(ctx, filters, services)
	if err != nil {
		return nil, err
	}

	if len(catalog) == 0 && len(filters.Genres) > 0 {
		fallback := filters
		fallback.Genres = nil
		catalog, err = c.discoverAndResolve(ctx, fallback, services)
		if err != nil {
			return nil, err
		}
	}

	for i := range catalog {
		catalog[i].DisplayOrder = i + 1
	}
	return catalog, nil
}

func (c *Client) discoverAndResolve(ctx context.Context, filters models.SessionFilters, services []string) ([]models.CatalogItem, error) {
	includeMovies := filters.ContentType != "tv"
	includeTV := filters.ContentType == "tv" || filters.ContentType == "both"
	perType := catalogCap
	if includeMovies && includeTV {
		perType = catalogCap / 2
	}

	var movies, shows []models.CatalogItem

	if includeMovies {
		ids, err := c.discover(ctx, "/discover/movie", filters, services, false, perType)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			item, err := c.fetchDetails(ctx, "/movie/", id, services, false)
			if err != nil {
				return nil, err
			}
			if item != nil {
				movies = append(movies, *item)
			}
		}
	}

	if includeTV {
		ids, err := c.discover(ctx, "/discover/tv", filters, services, true, perType)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			item, err := c.fetchDetails(ctx, "/tv/", id, services, true)
			if err != nil {
				return nil, err
			}
			if item != nil {
				shows = append(shows, *item)
			}
		}
	}

	if includeMovies && includeTV {
		return interleave(movies, shows), nil
	}
	if includeTV {
		return shows, nil
	}
	return movies, nil
}

// discover pulls two pages of candidates per content type for a broader pool.
func (c *Client) discover(ctx context.Context, path string, filters models.SessionFilters, services []string, isTV bool, limit int) ([]int64, error) {
	params := discoverParams(filters, services, isTV)

	var ids []int64
	for page := 1; page <= 2 && len(ids) < limit; page++ {
		params.Set("page", strconv.Itoa(page))
		var resp discoverPage
		if err := c.get(ctx, path, params, &resp); err != nil {
			return nil, err
		}
		for _, r := range resp.Results {
			if len(ids) >= limit {
				break
			}
			ids = append(ids, r.ID)
		}
	}
	return ids, nil
}

func (c *Client) fetchDetails(ctx context.Context, pathPrefix string, tmdbID int64, services []string, isTV bool) (*models.CatalogItem, error) {
	params := url.Values{}
	params.Set("append_to_response", "watch/providers")

	var resp detailResponse
	if err := c.get(ctx, pathPrefix+strconv.FormatInt(tmdbID, 10), params, &resp); err != nil {
		return nil, err
	}

	availableOn := availableProviders(resp.WatchProviders.Results, services)
	if len(availableOn) == 0 {
		return nil, nil
	}

	title := resp.Title
	releaseDate := resp.ReleaseDate
	runtime := resp.Runtime
	if isTV {
		title = resp.Name
		releaseDate = resp.FirstAirDate
		runtime = averageRuntime(resp.EpisodeRuntime)
	}

	posterURL := ""
	if resp.PosterPath != "" {
		posterURL = imageBaseURL + resp.PosterPath
	}

	releaseYear := 0
	if len(releaseDate) >= 4 {
		releaseYear, _ = strconv.Atoi(releaseDate[:4])
	}

	var genres []string
	for _, g := range resp.Genres {
		name := g.Name
		if alias, ok := genreAliases[name]; ok {
			name = alias
		}
		if _, known := genreIDs[name]; known {
			genres = append(genres, name)
		}
	}

	return &models.CatalogItem{
		TmdbID:      resp.ID,
		Title:       title,
		PosterURL:   posterURL,
		Synopsis:    resp.Overview,
		Genres:      genres,
		Runtime:     runtime,
		ReleaseYear: releaseYear,
		TmdbRating:  float64(int(resp.VoteAverage*10+0.5)) / 10,
		AvailableOn: availableOn,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	q := url.Values{}
	q.Set("api_key", c.apiKey)
	for k, vs := range params {
		for _, v := range vs {
			q.Set(k, v)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build TMDB request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("TMDB request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API error: %s %s", resp.Status, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}

func discoverParams(filters models.SessionFilters, services []string, isTV bool) url.Values {
	params := url.Values{}
	params.Set("sort_by", "popularity.desc")
	params.Set("vote_count.gte", "200")
	params.Set("with_original_language", "en")
	params.Set("watch_region", "US")
	params.Set("with_watch_monetization_types", "flatrate|free|ads")

	var providers []string
	for _, s := range services {
		if id, ok := providerIDs[s]; ok {
			providers = append(providers, strconv.Itoa(id))
		}
	}
	if len(providers) > 0 {
		params.Set("with_watch_providers", strings.Join(providers, "|"))
	}

	// Explicit genre picks win; otherwise the mood expands to genres.
	// OR-joined so multiple picks broaden results.
	genreNames := filters.Genres
	if len(genreNames) == 0 && filters.Mood != "" {
		genreNames = moodGenres[filters.Mood]
	}
	var genres []string
	for _, name := range genreNames {
		id, ok := genreIDs[name]
		if isTV {
			if tvID, tvOK := tvGenreIDs[name]; tvOK {
				id, ok = tvID, true
			}
		}
		if ok {
			genres = append(genres, strconv.Itoa(id))
		}
	}
	if len(genres) > 0 {
		params.Set("with_genres", strings.Join(genres, "|"))
	}

	if filters.MinRating > 0 {
		params.Set("vote_average.gte", strconv.FormatFloat(filters.MinRating, 'f', -1, 64))
	}

	if !isTV {
		switch filters.RuntimeRange {
		case "short":
			params.Set("with_runtime.lte", "90")
		case "medium":
			params.Set("with_runtime.gte", "90")
			params.Set("with_runtime.lte", "120")
		case "long":
			params.Set("with_runtime.gte", "120")
		}
	}

	dateGte, dateLte := "primary_release_date.gte", "primary_release_date.lte"
	if isTV {
		dateGte, dateLte = "first_air_date.gte", "first_air_date.lte"
	}
	for _, yearRange := range filters.ReleaseYearRange {
		switch yearRange {
		case "classic":
			params.Set(dateLte, "1999-12-31")
		case "2000s":
			params.Set(dateGte, "2000-01-01")
			params.Set(dateLte, "2009-12-31")
		case "2010s":
			params.Set(dateGte, "2010-01-01")
			params.Set(dateLte, "2019-12-31")
		case "recent":
			params.Set(dateGte, "2020-01-01")
		}
	}

	if !isTV && len(filters.Certifications) > 0 {
		params.Set("certification_country", "US")
		params.Set("certification", strings.Join(filters.Certifications, "|"))
	}

	return params
}

func availableProviders(regions map[string]providerRegion, services []string) []string {
	us, ok := regions["US"]
	if !ok {
		return nil
	}

	byID := make(map[int]string, len(providerIDs))
	for name, id := range providerIDs {
		byID[id] = name
	}

	selected := make(map[string]bool, len(services))
	for _, s := range services {
		selected[s] = true
	}

	seen := make(map[string]bool)
	var available []string
	for _, refs := range [][]providerRef{us.Flatrate, us.Ads, us.Free} {
		for _, ref := range refs {
			name, ok := byID[ref.ProviderID]
			if ok && selected[name] && !seen[name] {
				seen[name] = true
				available = append(available, name)
			}
		}
	}
	return available
}

func averageRuntime(runtimes []int) int {
	if len(runtimes) == 0 {
		return 0
	}
	sum := 0
	for _, r := range runtimes {
		sum += r
	}
	return (sum + len(runtimes)/2) / len(runtimes)
}

func interleave(a, b []models.CatalogItem) []models.CatalogItem {
	out := make([]models.CatalogItem, 0, len(a)+len(b))
	for i := 0; i < len(a) || i < len(b); i++ {
		if i < len(a) {
			out = append(out, a[i])
		}
		if i < len(b) {
			out = append(out, b[i])
		}
	}
	return out
}
