package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Cents is a signed money amount in hundredths of the display currency.
// Positive is an inflow, negative an outflow.
type Cents int64

// amountPattern matches the only user-facing amount shape we accept:
// a non-negative number with at most two decimal places.
var amountPattern = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)

// ParseAmount parses a user-entered amount string into cents. The sign is
// never part of the input; callers derive it from the transaction type.
func ParseAmount(s string) (Cents, error) {
	s = strings.TrimSpace(s)
	if !amountPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid amount %q: want a non-negative number with at most 2 decimal places", s)
	}
	whole, frac, _ := strings.Cut(s, ".")
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse amount %q: %w", s, err)
	}
	c := w * 100
	if frac != "" {
		if len(frac) == 1 {
			frac += "0"
		}
		f, err := strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("parse amount %q: %w", s, err)
		}
		c += f
	}
	return Cents(c), nil
}

// Dollars returns the amount as a display float.
func (c Cents) Dollars() float64 { return float64(c) / 100 }

// Abs returns the magnitude.
func (c Cents) Abs() Cents {
	if c < 0 {
		return -c
	}
	return c
}

// Format renders the amount with a currency symbol, e.g. "-$19.95".
func (c Cents) Format(symbol string) string {
	v := c
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%s%d.%02d", sign, symbol, v/100, v%100)
}

// MarshalJSON writes the amount as a signed decimal number (dollars), which
// is the on-disk and export representation.
func (c Cents) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(c.Dollars(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts any JSON number and rounds to the nearest cent.
func (c *Cents) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*c = 0
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*c = Cents(math.Round(f * 100))
	return nil
}
