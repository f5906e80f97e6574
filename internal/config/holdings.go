package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Holding is one configured position: what we own, how much of it, and
// optionally what we paid. A zero cost basis is the explicit sentinel for
// "unknown": the position is value-tracked but excluded from P&L math.
type Holding struct {
	Symbol    string          `json:"symbol"`
	Shares    decimal.Decimal `json:"shares"`
	CostBasis decimal.Decimal `json:"cost_basis,omitempty"`
	NewsQuery string          `json:"news_query,omitempty"`
}

// Query returns the news search query for this holding. Symbols that
// collide with unrelated common terms carry an override in the holdings
// file (the classic case being MTA, which otherwise surfaces subway news).
func (h Holding) Query() string {
	if h.NewsQuery != "" {
		return h.NewsQuery
	}
	return fmt.Sprintf("%s stock news", h.Symbol)
}

// HasCostBasis reports whether a real cost basis is configured.
func (h Holding) HasCostBasis() bool {
	return h.CostBasis.IsPositive()
}

// LoadHoldings reads the ordered holdings list from a JSON file. The file
// order is preserved; it is the report order.
func LoadHoldings(path string) ([]Holding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigurationError{Problems: []string{fmt.Sprintf("holdings file %s: %v", path, err)}}
	}

	var holdings []Holding
	if err := json.Unmarshal(data, &holdings); err != nil {
		return nil, &ConfigurationError{Problems: []string{fmt.Sprintf("holdings file %s: %v", path, err)}}
	}
	for i := range holdings {
		holdings[i].Symbol = strings.ToUpper(strings.TrimSpace(holdings[i].Symbol))
	}
	return holdings, nil
}

// SaveHoldings writes the holdings list as indented JSON.
func SaveHoldings(path string, holdings []Holding) error {
	data, err := json.MarshalIndent(holdings, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}
