package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Letterhead carries the reporting-entity branding printed at the top of
// every report page. The entity selector changes letterhead text and logo
// only; it has no effect on the numeric model.
type Letterhead struct {
	Entity  string
	Name    string
	Address string
	Email   string
	LogoURL string
}

var letterheads = []Letterhead{
	{
		Entity:  "fss-engineering",
		Name:    "FSS ENGINEERING",
		Address: "Bangalore, Karnataka",
		Email:   "info@fssengineering.com",
		LogoURL: "https://assets.fssengineering.com/letterhead/engineering.png",
	},
	{
		Entity:  "fss-interiors",
		Name:    "FSS INTERIORS & FITOUT",
		Address: "Bangalore, Karnataka",
		Email:   "interiors@fssengineering.com",
		LogoURL: "https://assets.fssengineering.com/letterhead/interiors.png",
	},
}

// LetterheadFor resolves an entity selector to its letterhead. Unknown or
// blank selectors fall back to the first entity.
func LetterheadFor(entity string) Letterhead {
	for _, lh := range letterheads {
		if lh.Entity == entity {
			return lh
		}
	}
	return letterheads[0]
}

// LetterheadEntities lists the valid entity selectors.
func LetterheadEntities() []string {
	out := make([]string, 0, len(letterheads))
	for _, lh := range letterheads {
		out = append(out, lh.Entity)
	}
	return out
}

var logoClient = &http.Client{Timeout: 10 * time.Second}

// FetchLogo downloads the letterhead logo. This is the report pipeline's only
// asynchronous boundary; callers render without the image when it fails.
// Only PNG and JPEG URLs are accepted since those are what the PDF layer
// can embed.
func FetchLogo(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("fetch logo: no URL configured")
	}
	if ext := logoExtension(url); ext == "" {
		return nil, fmt.Errorf("fetch logo: unsupported image type for %q", url)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}

	resp, err := logoClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch logo: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("fetch logo: %w", err)
	}
	return data, nil
}

// logoExtension returns "png" or "jpg" based on the URL suffix, or "" when
// the type is unsupported.
func logoExtension(url string) string {
	switch {
	case strings.HasSuffix(url, ".png"):
		return "png"
	case strings.HasSuffix(url, ".jpg"), strings.HasSuffix(url, ".jpeg"):
		return "jpg"
	default:
		return ""
	}
}
