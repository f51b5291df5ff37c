package kakuyomu

// RankingRecord is a ranked work scraped from a ranking page.
// Every field is optional.
type RankingRecord struct {
	Rank         string
	ID           string
	Title        string
	Author       string
	Catchphrase  string
	Tags         []string
	Introduction string
}

// Record projects r into the keys of RankingWorkFields.
// Empty fields are left out.
func (r *RankingRecord) Record() Record {
	rec := make(Record)
	set := func(key, value string) {
		if value != "" {
			rec[key] = value
		}
	}
	set("rank", r.Rank)
	set("id", r.ID)
	set("title", r.Title)
	set("author", r.Author)
	set("catchphrase", r.Catchphrase)
	if len(r.Tags) > 0 {
		rec["tags"] = r.Tags
	}
	set("introduction", r.Introduction)
	return rec
}

// RankingRecords projects a list of ranking records.
func RankingRecords(rankings []*RankingRecord) []Record {
	recs := make([]Record, 0, len(rankings))
	for _, r := range rankings {
		recs = append(recs, r.Record())
	}
	return recs
}

// RankingScraper assembles ranking records from ranking page markup.
type RankingScraper interface {
	// ScrapeRankings returns up to limit records in document order.
	// A non-positive limit falls back to DefaultRankingLimit.
	// Missing elements inside a ranking entry leave the field empty.
	ScrapeRankings(html string, limit int) ([]*RankingRecord, error)
}
