package news

import "time"

// Headline is one news item: what was reported and when.
type Headline struct {
	Text        string    `json:"text"`
	PublishedAt time.Time `json:"published_at"`
}

// Digest is the typed outcome of a news lookup for one symbol. The three
// states are distinct on purpose: headlines present, an explicit
// empty result, and a fetch error. The report renders each differently.
type Digest struct {
	Headlines []Headline
	Err       error
}

// Failed reports whether the lookup itself failed.
func (d Digest) Failed() bool {
	return d.Err != nil
}

// Empty reports whether the lookup succeeded but found nothing recent.
func (d Digest) Empty() bool {
	return d.Err == nil && len(d.Headlines) == 0
}
