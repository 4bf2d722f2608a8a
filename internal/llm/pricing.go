package llm

import "strings"

// price is a per-1K-token USD rate pair. Rates are the published list prices
// at the time this table was written; they only feed the Cost estimate
// attached to each LLMAnswer; nothing in the pipeline depends on them being
// exact.
type price struct {
	inPer1K  float64
	outPer1K float64
}

var priceTable = map[string]price{
	"gpt-4o":              {0.0025, 0.010},
	"gpt-4o-mini":         {0.00015, 0.0006},
	"gpt-4-turbo":         {0.010, 0.030},
	"claude-3-5-sonnet":   {0.003, 0.015},
	"claude-3-5-haiku":    {0.0008, 0.004},
	"claude-3-opus":       {0.015, 0.075},
	"gemini-1.5-pro":      {0.00125, 0.005},
	"gemini-1.5-flash":    {0.000075, 0.0003},
	"gemini-2.0-flash":    {0.0001, 0.0004},
}

// estimateCost approximates the USD cost of one call from character counts,
// using the common ~4-characters-per-token heuristic. modelName is matched
// by substring against priceTable so date- or region-qualified variants (e.g.
// Bedrock's "anthropic.claude-3-5-sonnet-20241022-v2:0") still resolve; the
// longest matching family wins, so "gpt-4o-mini" is not priced as "gpt-4o".
func estimateCost(modelName string, promptChars, completionChars int) float64 {
	lower := strings.ToLower(modelName)
	best := ""
	for family := range priceTable {
		if strings.Contains(lower, family) && len(family) > len(best) {
			best = family
		}
	}
	if best == "" {
		return 0
	}
	p := priceTable[best]
	inTokens := float64(promptChars) / 4.0
	outTokens := float64(completionChars) / 4.0
	return (inTokens/1000.0)*p.inPer1K + (outTokens/1000.0)*p.outPer1K
}
