// Package suggest provides a client for the Google Books volumes search API.
//
// It turns a partial book title into a list of Suggestions used to prefill a
// new book: title, authors, publication date, ISBN, cover thumbnail and
// description. Suggestions are ephemeral and never written to the catalog.
//
// # Usage
//
//	client := suggest.NewClient(logger, suggest.WithRateLimit(2))
//	suggestions, err := client.Search(ctx, "pride and prej")
//	if err != nil {
//		// callers driving autocomplete treat this as "no suggestions"
//	}
//
// Queries shorter than MinQueryLength characters after trimming return an
// empty result without contacting the API.
package suggest
