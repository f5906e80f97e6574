package news

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"UAMY stock news" - Google News</title>
    <item>
      <title>United States Antimony expands smelter capacity</title>
      <link>https://example.com/a</link>
      <pubDate>Mon, 24 Aug 2026 14:02:00 GMT</pubDate>
      <source url="https://example.com">Example Wire</source>
    </item>
    <item>
      <title>Antimony prices rally on supply squeeze</title>
      <link>https://example.com/b</link>
      <pubDate>Wed, 26 Aug 2026 09:30:00 GMT</pubDate>
      <source url="https://example.com">Example Wire</source>
    </item>
    <item>
      <title></title>
      <pubDate>garbage date</pubDate>
    </item>
    <item>
      <title>Miners slide as dollar strengthens</title>
      <link>https://example.com/c</link>
      <pubDate>Tue, 25 Aug 2026 18:45:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestParseRSS(t *testing.T) {
	headlines, err := parseRSS([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("parseRSS: %v", err)
	}
	if len(headlines) != 3 {
		t.Fatalf("got %d headlines, want 3 (untitled item skipped)", len(headlines))
	}

	want := time.Date(2026, 8, 24, 14, 2, 0, 0, time.UTC)
	if !headlines[0].PublishedAt.Equal(want) {
		t.Errorf("PublishedAt = %s, want %s", headlines[0].PublishedAt, want)
	}
}

func TestParseRSSRejectsGarbage(t *testing.T) {
	if _, err := parseRSS([]byte("this is not xml")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDigestOrdersAndCaps(t *testing.T) {
	f := NewFetcher(3, time.Second, zerolog.Nop())

	headlines, err := parseRSS([]byte(sampleFeed))
	if err != nil {
		t.Fatalf("parseRSS: %v", err)
	}
	d := f.digest(headlines)
	if d.Failed() || d.Empty() {
		t.Fatalf("unexpected digest state: %+v", d)
	}
	if len(d.Headlines) != 3 {
		t.Fatalf("got %d headlines, want cap of 3", len(d.Headlines))
	}
	// Most recent first.
	for i := 1; i < len(d.Headlines); i++ {
		if d.Headlines[i].PublishedAt.After(d.Headlines[i-1].PublishedAt) {
			t.Fatalf("headlines not in most-recent-first order: %v", d.Headlines)
		}
	}

	f2 := NewFetcher(2, time.Second, zerolog.Nop())
	if got := len(f2.digest(headlines).Headlines); got != 2 {
		t.Errorf("cap of 2 produced %d headlines", got)
	}
}

func TestDigestStatesAreDistinct(t *testing.T) {
	empty := Digest{}
	if empty.Failed() || !empty.Empty() {
		t.Errorf("zero digest must read as empty, not failed")
	}

	failed := Digest{Err: errors.New("boom")}
	if !failed.Failed() || failed.Empty() {
		t.Errorf("error digest must read as failed, not empty")
	}

	ok := Digest{Headlines: []Headline{{Text: "x"}}}
	if ok.Failed() || ok.Empty() {
		t.Errorf("populated digest must be neither failed nor empty")
	}
}

func TestParsePubDateLayouts(t *testing.T) {
	if parsePubDate("Mon, 24 Aug 2026 14:02:00 +0000").IsZero() {
		t.Error("RFC1123Z timestamp not parsed")
	}
	if !parsePubDate("not a date").IsZero() {
		t.Error("garbage timestamp must produce zero time")
	}
}
