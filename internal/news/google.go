package news

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// rss mirrors the subset of the Google News RSS schema we consume.
type rss struct {
	XMLName xml.Name `xml:"rss"`
	Channel channel  `xml:"channel"`
}

type channel struct {
	Title string `xml:"title"`
	Items []item `xml:"item"`
}

type item struct {
	Title   string `xml:"title"`
	Link    string `xml:"link"`
	PubDate string `xml:"pubDate"`
	Source  source `xml:"source"`
}

type source struct {
	URL  string `xml:"url,attr"`
	Text string `xml:",chardata"`
}

// Fetcher looks up recent headlines on Google News. The RSS feed is the
// primary path; the HTML search page is scraped only when the RSS
// transport itself fails. Both failing yields an error digest, never a
// Go error: news is best-effort and must not affect valuation.
type Fetcher struct {
	client       *resty.Client
	maxHeadlines int
	timeout      time.Duration
	log          zerolog.Logger
}

// NewFetcher creates a Google News fetcher. maxHeadlines caps the digest
// length; timeout bounds each HTTP call.
func NewFetcher(maxHeadlines int, timeout time.Duration, log zerolog.Logger) *Fetcher {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; foliopulse/1.0)")

	return &Fetcher{
		client:       client,
		maxHeadlines: maxHeadlines,
		timeout:      timeout,
		log:          log,
	}
}

// Fetch returns the news digest for a query string. The caller supplies
// the query so per-symbol overrides stay a configuration concern.
func (f *Fetcher) Fetch(ctx context.Context, query string) Digest {
	headlines, rssErr := f.fromRSS(ctx, query)
	if rssErr == nil {
		return f.digest(headlines)
	}
	f.log.Warn().Str("query", query).Err(rssErr).Msg("news rss failed, trying html")

	headlines, htmlErr := f.fromHTML(ctx, query)
	if htmlErr == nil {
		return f.digest(headlines)
	}
	f.log.Warn().Str("query", query).Err(htmlErr).Msg("news html fallback failed")

	return Digest{Err: fmt.Errorf("rss: %v; html: %v", rssErr, htmlErr)}
}

func (f *Fetcher) digest(headlines []Headline) Digest {
	sort.SliceStable(headlines, func(i, j int) bool {
		return headlines[i].PublishedAt.After(headlines[j].PublishedAt)
	})
	if len(headlines) > f.maxHeadlines {
		headlines = headlines[:f.maxHeadlines]
	}
	return Digest{Headlines: headlines}
}

func (f *Fetcher) fromRSS(ctx context.Context, query string) ([]Headline, error) {
	feedURL := fmt.Sprintf("https://news.google.com/rss/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		url.QueryEscape(query))

	resp, err := f.client.R().SetContext(ctx).Get(feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch rss: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("rss http status %d", resp.StatusCode())
	}
	return parseRSS(resp.Body())
}

// parseRSS decodes a Google News RSS payload into headlines. Split out so
// the parser is testable without a network.
func parseRSS(data []byte) ([]Headline, error) {
	var feed rss
	if err := xml.Unmarshal(data, &feed); err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	headlines := make([]Headline, 0, len(feed.Channel.Items))
	for _, it := range feed.Channel.Items {
		title := strings.TrimSpace(it.Title)
		if title == "" {
			continue
		}
		headlines = append(headlines, Headline{
			Text:        title,
			PublishedAt: parsePubDate(it.PubDate),
		})
	}
	return headlines, nil
}

// pubDateLayouts covers the timestamp formats Google News feeds have been
// seen emitting.
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 MST",
}

func parsePubDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func (f *Fetcher) fromHTML(ctx context.Context, query string) ([]Headline, error) {
	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en-US&gl=US&ceid=US:en",
		url.QueryEscape(query))

	resp, err := f.client.R().SetContext(ctx).Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch html: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("html http status %d", resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var headlines []Headline
	doc.Find("article").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" {
			return
		}

		var publishedAt time.Time
		if dt, ok := s.Find("time").Attr("datetime"); ok {
			if t, err := time.Parse(time.RFC3339, dt); err == nil {
				publishedAt = t
			}
		}
		headlines = append(headlines, Headline{Text: title, PublishedAt: publishedAt})
	})
	return headlines, nil
}
