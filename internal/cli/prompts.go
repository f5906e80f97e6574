package cli

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/shopspring/decimal"

	"foliopulse/internal/config"
)

var symbolPattern = regexp.MustCompile(`^[A-Z0-9.-]+$`)

// PromptForHoldings walks the user through entering holdings one by one.
func PromptForHoldings() ([]config.Holding, error) {
	var holdings []config.Holding

	for {
		holding, err := promptForHolding()
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, holding)

		var more bool
		prompt := &survey.Confirm{
			Message: "Add another holding?",
			Default: true,
		}
		if err := survey.AskOne(prompt, &more); err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	return holdings, nil
}

func promptForHolding() (config.Holding, error) {
	symbol, err := promptForSymbol()
	if err != nil {
		return config.Holding{}, err
	}

	shares, err := promptForDecimal("Number of shares:", "Share count for this position. Fractional shares are fine.", false)
	if err != nil {
		return config.Holding{}, err
	}

	costBasis, err := promptForDecimal(
		"Cost basis per share (0 if unknown):",
		"Average purchase price per share. Enter 0 to track value only, without profit and loss.",
		true,
	)
	if err != nil {
		return config.Holding{}, err
	}

	var newsQuery string
	queryPrompt := &survey.Input{
		Message: "Custom news search query (leave empty for the default):",
		Help:    "Overrides the default \"<SYMBOL> stock news\" search. Useful for ambiguous tickers.",
	}
	if err := survey.AskOne(queryPrompt, &newsQuery); err != nil {
		return config.Holding{}, err
	}

	return config.Holding{
		Symbol:    symbol,
		Shares:    shares,
		CostBasis: costBasis,
		NewsQuery: strings.TrimSpace(newsQuery),
	}, nil
}

func promptForSymbol() (string, error) {
	var symbol string
	prompt := &survey.Input{
		Message: "Ticker symbol (e.g., AAPL, MSFT, BRK-B):",
		Help:    "The exchange ticker used to look up quotes",
	}

	err := survey.AskOne(prompt, &symbol, survey.WithValidator(func(val interface{}) error {
		str := strings.TrimSpace(strings.ToUpper(val.(string)))
		if len(str) == 0 {
			return fmt.Errorf("ticker symbol cannot be empty")
		}
		if len(str) > 10 {
			return fmt.Errorf("ticker symbol too long (max 10 characters)")
		}
		if !symbolPattern.MatchString(str) {
			return fmt.Errorf("invalid ticker format (use letters, numbers, dots, and hyphens only)")
		}
		return nil
	}))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(strings.ToUpper(symbol)), nil
}

func promptForDecimal(message, help string, allowZero bool) (decimal.Decimal, error) {
	var raw string
	prompt := &survey.Input{
		Message: message,
		Help:    help,
	}

	err := survey.AskOne(prompt, &raw, survey.WithValidator(func(val interface{}) error {
		d, err := decimal.NewFromString(strings.TrimSpace(val.(string)))
		if err != nil {
			return fmt.Errorf("enter a number, like 12 or 0.5")
		}
		if d.IsNegative() {
			return fmt.Errorf("value cannot be negative")
		}
		if !allowZero && d.IsZero() {
			return fmt.Errorf("value must be greater than zero")
		}
		return nil
	}))
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.NewFromString(strings.TrimSpace(raw))
}

// ConfirmOverwrite asks before replacing an existing holdings file.
func ConfirmOverwrite(path string) (bool, error) {
	var overwrite bool
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("%s already exists. Overwrite it?", path),
		Default: false,
	}
	err := survey.AskOne(prompt, &overwrite)
	return overwrite, err
}
