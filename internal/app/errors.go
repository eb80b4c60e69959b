package app

import "errors"

// The closed set of fatal error kinds a run can end with. Scrape failures
// are deliberately absent: they are suppressed inside the fetcher and never
// abort a run.
var (
	ErrConfigMissing   = errors.New("required configuration missing")
	ErrSearchFailed    = errors.New("article search failed")
	ErrSummarizeFailed = errors.New("summarization failed")
	ErrPersistFailed   = errors.New("persistence failed")
)
