package wizard

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAmountRange parses "100" into one value or "100-500" into two.
// Each segment must parse as a number and at most two segments are
// accepted. Range order is not validated: "500-100" passes through as
// entered.
func ParseAmountRange(text string) ([]float64, error) {
	parts := strings.Split(strings.TrimSpace(text), "-")
	if len(parts) > 2 {
		return nil, fmt.Errorf("expected a value or a range, got %d segments", len(parts))
	}

	amounts := make([]float64, 0, len(parts))
	for _, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("parse amount %q: %w", part, err)
		}
		amounts = append(amounts, v)
	}

	return amounts, nil
}

// ParseMargin parses a signed percentage offset like "+3", "-2", "0"
// or "3%".
func ParseMargin(text string) (int, error) {
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	return strconv.Atoi(text)
}
