// Package domain contains core business entities and rules.
package domain

// Quote represents a quotation with its author.
// Quotes are only built from upstream responses and are never mutated.
type Quote struct {
	// ID is the upstream identifier, unique per quote.
	ID string `json:"_id"`

	// Author is who said or wrote the quote.
	Author string `json:"author"`

	// Content is the text of the quote.
	Content string `json:"content"`

	// Tags are categories or themes associated with the quote.
	// Never nil for quotes built by the quote client.
	Tags []string `json:"tags"`

	// AuthorSlug is the URL-safe form of the author's name.
	AuthorSlug string `json:"authorSlug"`

	// DateAdded is the day the quote was added upstream.
	DateAdded Date `json:"dateAdded"`

	// DateModified is the day the quote was last changed upstream.
	DateModified Date `json:"dateModified"`
}

// QuoteList is one page of quotes plus the upstream paging metadata.
type QuoteList struct {
	// Count is the number of quotes in Results.
	Count int `json:"count"`

	// TotalCount is the number of quotes available upstream.
	TotalCount int `json:"totalCount"`

	// Page is the upstream page number.
	Page int `json:"page"`

	// TotalPages is the number of upstream pages for the requested limit.
	TotalPages int `json:"totalPages"`

	// LastItemIndex is the upstream index of the last returned item, if any.
	LastItemIndex *int `json:"lastItemIndex"`

	// Results holds the quotes in upstream order.
	Results []Quote `json:"results"`
}

// IDs returns the quote identifiers in order.
func (l *QuoteList) IDs() []string {
	ids := make([]string, 0, len(l.Results))
	for i := range l.Results {
		ids = append(ids, l.Results[i].ID)
	}

	return ids
}
