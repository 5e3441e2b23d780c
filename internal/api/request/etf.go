package request

import "github.com/shopspring/decimal"

// CreateETFRequest is the payload for creating an ETF configuration entry.
// TargetPercent accepts a JSON number or string; decimals survive exactly.
type CreateETFRequest struct {
	Symbol        string          `json:"symbol"`
	DisplayName   string          `json:"displayName"`
	TargetPercent decimal.Decimal `json:"targetPercent"`
	Fractionable  bool            `json:"fractionable"`
}

// UpdateETFRequest updates the configurable attributes of an existing ETF.
// Omitted fields remain unchanged.
type UpdateETFRequest struct {
	DisplayName   *string          `json:"displayName"`
	TargetPercent *decimal.Decimal `json:"targetPercent"`
	Fractionable  *bool            `json:"fractionable"`
}
