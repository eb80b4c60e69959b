package models

// Article is the transient shape produced by the search client. Optional
// fields are filled in from scraped page data before persisting.
type Article struct {
	Source      string
	Title       string
	URL         string
	Description string
	Author      string
	ImageURL    string
}

// EnrichedRecord is the persisted document. The document id (MD5 hex of the
// article URL) is passed separately so re-processing the same URL always
// targets the same record. The timestamp field is server-assigned on write.
type EnrichedRecord struct {
	Source              string `bson:"source"`
	Title               string `bson:"title"`
	Author              string `bson:"author"`
	URL                 string `bson:"url"`
	OriginalDescription string `bson:"original_description"`
	ImageURL            string `bson:"image_url,omitempty"`
	AISummary           string `bson:"ai_summary"`
	Category            string `bson:"category"`
}
