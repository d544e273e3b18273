package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/TomKxxx/sreality-tracker/internal/config"
	"github.com/TomKxxx/sreality-tracker/internal/models"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	noDescription  = "Description not available"
	detailCategory = "prodej/dum/rodinny"
)

// Interface is the fetch contract consumed by the checker.
type Interface interface {
	// Fetch retrieves all listings currently matching the search criteria.
	Fetch(ctx context.Context) (models.Snapshot, error)
}

// Client fetches listings from the sreality estates API, page by page.
type Client struct {
	log       *slog.Logger
	client    *http.Client
	baseURL   string
	criteria  config.SearchCriteria
	pageDelay time.Duration
}

func NewClient(
	log *slog.Logger,
	baseURL string,
	criteria config.SearchCriteria,
	pageDelay, timeout time.Duration,
) *Client {
	return &Client{
		log:       log,
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		criteria:  criteria,
		pageDelay: pageDelay,
	}
}

// estatesPage mirrors the slice of the search response we consume.
type estatesPage struct {
	ResultSize int `json:"result_size"`
	Embedded   struct {
		Estates []estate `json:"estates"`
	} `json:"_embedded"`
}

type estate struct {
	HashID     int64           `json:"hash_id"`
	Name       string          `json:"name"`
	Price      int             `json:"price"`
	Locality   string          `json:"locality"`
	UsableArea json.RawMessage `json:"usable_area"`
	SEO        struct {
		Locality string `json:"locality"`
	} `json:"seo"`
	Links struct {
		Images []struct {
			Href string `json:"href"`
		} `json:"images"`
	} `json:"_links"`
}

// estateDetail mirrors the slice of the per-estate response we consume.
type estateDetail struct {
	Text struct {
		Value string `json:"value"`
	} `json:"text"`
}

// Fetch walks the paginated search results and returns every matching
// listing keyed by its stable id. The returned snapshot may legitimately be
// empty only if the source truly has nothing; the caller treats an empty
// result as a suspected transient failure.
func (c *Client) Fetch(ctx context.Context) (models.Snapshot, error) {
	const opn = "fetcher.Client.Fetch"
	log := c.log.With("op", opn)

	snapshot := models.Snapshot{}

	for page := 1; ; page++ {
		log.InfoContext(ctx, "Fetching search page", "page", page)

		result, err := c.fetchPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to fetch page %d: %w", opn, page, err)
		}

		estates := result.Embedded.Estates
		if len(estates) == 0 {
			break
		}

		observedAt := time.Now()
		for _, item := range estates {
			listing := c.toListing(ctx, item, observedAt)
			snapshot[listing.ID] = listing
		}

		// Last page reached once the API returns a short page.
		if len(estates) < c.criteria.PerPage {
			break
		}

		select {
		case <-time.After(c.pageDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%s: %w", opn, ctx.Err())
		}
	}

	log.InfoContext(ctx, "Fetch complete", "listings", len(snapshot))

	return snapshot, nil
}

func (c *Client) fetchPage(ctx context.Context, page int) (*estatesPage, error) {
	params := url.Values{}
	params.Set("category_main_cb", strconv.Itoa(c.criteria.CategoryMain))
	params.Set("category_type_cb", strconv.Itoa(c.criteria.CategoryType))
	params.Set("per_page", strconv.Itoa(c.criteria.PerPage))
	params.Set("price_from", strconv.Itoa(c.criteria.PriceFrom))
	params.Set("price_to", strconv.Itoa(c.criteria.PriceTo))
	params.Set("usable_area_from", strconv.Itoa(c.criteria.UsableAreaFrom))
	params.Set("page", strconv.Itoa(page))
	for _, district := range c.criteria.DistrictIDs {
		params.Add("locality_district_id", strconv.Itoa(district))
	}

	var result estatesPage
	if err := c.getJSON(ctx, c.baseURL+"?"+params.Encode(), &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// toListing maps one API estate to the domain model, including the
// per-estate detail request for its description.
func (c *Client) toListing(ctx context.Context, item estate, observedAt time.Time) models.Listing {
	id := strconv.FormatInt(item.HashID, 10)

	imageURL := ""
	if len(item.Links.Images) > 0 {
		imageURL = item.Links.Images[0].Href
	}

	return models.Listing{
		ID:       id,
		Name:     item.Name,
		Price:    item.Price,
		Locality: item.Locality,
		Area:     rawToString(item.UsableArea),
		URL: fmt.Sprintf("https://www.sreality.cz/detail/%s/%s/%s",
			detailCategory, item.SEO.Locality, id),
		ImageURL:    imageURL,
		Description: c.fetchDescription(ctx, id),
		ObservedAt:  observedAt,
	}
}

// fetchDescription retrieves the estate detail and strips the HTML markup
// from its description. Failures degrade to a placeholder; a single broken
// detail must not fail the whole page.
func (c *Client) fetchDescription(ctx context.Context, id string) string {
	var detail estateDetail
	if err := c.getJSON(ctx, c.baseURL+"/"+id, &detail); err != nil {
		c.log.WarnContext(ctx, "Failed to fetch listing detail", "id", id, "error", err)
		return noDescription
	}

	if detail.Text.Value == "" {
		return noDescription
	}

	return stripHTML(detail.Text.Value)
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request %s: %w", rawURL, err)
	}
	req.Header.Add("User-Agent", userAgent)

	res, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to request %s: %w", rawURL, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("status code error: [%d] %s", res.StatusCode, res.Status)
	}

	if err = json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", rawURL, err)
	}

	return nil
}

// stripHTML reduces an HTML fragment to its plain text.
func stripHTML(fragment string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}

	return strings.TrimSpace(doc.Text())
}

// rawToString renders a JSON scalar (the API reports usable_area as either
// a number or a string) as its plain text form.
func rawToString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return "N/A"
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString
	}

	return strings.TrimSpace(string(raw))
}
