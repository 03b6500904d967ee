package message

import (
	"fmt"
	"strings"

	"factorlink/internal"
)

// RateSource supplies exchange rates on demand. The CLI wires an interactive
// stdin prompt; the listener wires a static YAML table. Returning false is a
// first-class outcome (the user declined), not an error.
type RateSource interface {
	// Rate returns the units of currency per 1 reference-currency unit.
	Rate(currency string) (float64, bool)
}

// RateCache memoizes rates for one processing run. A rate once obtained is
// reused for the rest of the run and never re-validated; a declined currency
// is remembered too, so the source is asked exactly once per currency.
type RateCache struct {
	reference string
	source    RateSource
	rates     map[string]float64
	declined  map[string]bool
}

func NewRateCache(reference string, source RateSource) *RateCache {
	c := &RateCache{reference: strings.ToUpper(reference), source: source}
	c.Reset()
	return c
}

func (c *RateCache) Reset() {
	c.rates = map[string]float64{}
	c.declined = map[string]bool{}
}

// Convert expresses amount in the reference currency. The reference currency
// passes through unchanged; other currencies divide by the cached rate. When
// no rate can be obtained the result degrades to an annotated note for the
// affected row only.
func (c *RateCache) Convert(amount *float64, currency string) internal.ConvertedAmount {
	if amount == nil {
		return internal.ConvertedAmount{}
	}
	cur := strings.ToUpper(strings.TrimSpace(currency))
	if cur == "" || cur == c.reference {
		return internal.ConvertedAmount{Value: amount}
	}

	rate, ok := c.rates[cur]
	if !ok && !c.declined[cur] {
		if c.source != nil {
			rate, ok = c.source.Rate(cur)
		}
		if ok && rate > 0 {
			c.rates[cur] = rate
		} else {
			ok = false
			c.declined[cur] = true
		}
	}
	if !ok {
		return internal.ConvertedAmount{Note: fmt.Sprintf("no %s rate for %s", c.reference, cur)}
	}

	converted := *amount / rate
	return internal.ConvertedAmount{Value: &converted}
}
