package integration

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jsamuelsen/quote-jsonl-service/internal/domain"
)

func decodeEnvelope(body []byte) (*domain.QuoteList, error) {
	var list domain.QuoteList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}

	return &list, nil
}

func decodeLines(body []byte) ([]domain.Quote, error) {
	var quotes []domain.Quote

	scanner := bufio.NewScanner(bytes.NewReader(body))
	for line := 1; scanner.Scan(); line++ {
		var q domain.Quote
		if err := json.Unmarshal(scanner.Bytes(), &q); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		quotes = append(quotes, q)
	}

	return quotes, scanner.Err()
}
