package pricing

const tokensPerUnit = 1_000_000

// Estimate converts raw token counts into an estimated USD cost for one
// model under the given tier. The second return value is false when the
// table has no entry for the (tier, model) pair; callers must treat that as
// "no estimate", not as zero.
//
// Cached tokens are a subset of input tokens: they are billed at the cached
// rate and subtracted from the input count so they are never double-billed
// at the full input rate.
func Estimate(t Table, tier, model string, inputTokens, cachedTokens, outputTokens int64) (float64, bool) {
	rates, ok := t.Lookup(tier, model)
	if !ok {
		return 0, false
	}

	inputBillable := inputTokens - cachedTokens
	if inputBillable < 0 {
		inputBillable = 0
	}

	cost := (float64(inputBillable)*rates.Input +
		float64(cachedTokens)*rates.EffectiveCached() +
		float64(outputTokens)*rates.EffectiveOutput()) / tokensPerUnit
	return cost, true
}
