package models

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// AccountDTO mirrors GET /fapi/v2/account. Balances arrive as JSON strings.
type AccountDTO struct {
	TotalWalletBalance    string            `json:"totalWalletBalance"`
	TotalUnrealizedProfit string            `json:"totalUnrealizedProfit"`
	TotalMarginBalance    string            `json:"totalMarginBalance"`
	AvailableBalance      string            `json:"availableBalance"`
	Assets                []AccountAssetDTO `json:"assets"`
}

type AccountAssetDTO struct {
	Asset            string `json:"asset"`
	WalletBalance    string `json:"walletBalance"`
	UnrealizedProfit string `json:"unrealizedProfit"`
	MarginBalance    string `json:"marginBalance"`
	AvailableBalance string `json:"availableBalance"`
}

// HasBalance reports whether the asset holds any wallet balance. Unparseable
// balances count as held so they stay visible.
func (a *AccountAssetDTO) HasBalance() bool {
	balance, err := decimal.NewFromString(a.WalletBalance)
	if err != nil {
		return true
	}

	return !balance.IsZero()
}

func (acc *AccountDTO) String() string {
	display := &strings.Builder{}
	display.WriteString("Account Balances:\n")

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Asset", "Wallet", "Available", "Unrealized PnL"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	for _, asset := range acc.Assets {
		if !asset.HasBalance() {
			continue
		}

		table.Append([]string{asset.Asset, asset.WalletBalance, asset.AvailableBalance, asset.UnrealizedProfit})
	}

	table.Render()

	display.WriteString("Total wallet balance: " + acc.TotalWalletBalance + "\n")
	display.WriteString("Available balance:    " + acc.AvailableBalance + "\n")

	return display.String()
}
