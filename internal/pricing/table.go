// Package pricing holds the static per-tier billing rate table and the
// cost estimator built on top of it.
package pricing

import "sort"

// Unset marks a rate the price list does not document. An unset cached rate
// falls back to the input rate; an unset output rate is billed at zero.
const Unset = -1

// Rates is the billing rate triple for one model, in USD per 1M tokens.
type Rates struct {
	Input  float64
	Cached float64
	Output float64
}

// EffectiveCached returns the rate applied to cached input tokens.
func (r Rates) EffectiveCached() float64 {
	if r.Cached == Unset {
		return r.Input
	}
	return r.Cached
}

// EffectiveOutput returns the rate applied to output tokens.
func (r Rates) EffectiveOutput() float64 {
	if r.Output == Unset {
		return 0
	}
	return r.Output
}

// Table maps tier name → model name → rates. It is loaded once at process
// start and never mutated afterwards; share it freely across goroutines.
type Table map[string]map[string]Rates

// Lookup finds the rates for a (tier, model) pair. A missing pair is a
// normal outcome for newly released or mis-tiered models, not an error.
func (t Table) Lookup(tier, model string) (Rates, bool) {
	r, ok := t[tier][model]
	return r, ok
}

// HasTier reports whether the table knows the given tier.
func (t Table) HasTier(tier string) bool {
	_, ok := t[tier]
	return ok
}

// Tiers returns the known tier names in sorted order.
func (t Table) Tiers() []string {
	tiers := make([]string, 0, len(t))
	for name := range t {
		tiers = append(tiers, name)
	}
	sort.Strings(tiers)
	return tiers
}

// Default returns the built-in rate table.
// Source: the published API price list. Cached defaults to input when the
// list omits it; output defaults to zero.
func Default() Table {
	return Table{
		"standard": {
			"chatgpt-image-latest":         {5.0, 1.25, 10.0},
			"codex-mini-latest":            {1.5, 0.375, 6.0},
			"computer-use-preview":         {3.0, Unset, 12.0},
			"gpt-4.1":                      {2.0, 0.5, 8.0},
			"gpt-4.1-mini":                 {0.4, 0.1, 1.6},
			"gpt-4.1-nano":                 {0.1, 0.025, 0.4},
			"gpt-4o":                       {2.5, 1.25, 10.0},
			"gpt-4o-2024-05-13":            {5.0, Unset, 15.0},
			"gpt-4o-audio-preview":         {2.5, Unset, 10.0},
			"gpt-4o-mini":                  {0.15, 0.075, 0.6},
			"gpt-4o-mini-audio-preview":    {0.15, Unset, 0.6},
			"gpt-4o-mini-realtime-preview": {0.6, 0.3, 2.4},
			"gpt-4o-mini-search-preview":   {0.15, Unset, 0.6},
			"gpt-4o-realtime-preview":      {5.0, 2.5, 20.0},
			"gpt-4o-search-preview":        {2.5, Unset, 10.0},
			"gpt-5":                        {1.25, 0.125, 10.0},
			"gpt-5-chat-latest":            {1.25, 0.125, 10.0},
			"gpt-5-codex":                  {1.25, 0.125, 10.0},
			"gpt-5-mini":                   {0.25, 0.025, 2.0},
			"gpt-5-nano":                   {0.05, 0.005, 0.4},
			"gpt-5-pro":                    {15.0, Unset, 120.0},
			"gpt-5-search-api":             {1.25, 0.125, 10.0},
			"gpt-5.1":                      {1.25, 0.125, 10.0},
			"gpt-5.1-chat-latest":          {1.25, 0.125, 10.0},
			"gpt-5.1-codex":                {1.25, 0.125, 10.0},
			"gpt-5.1-codex-max":            {1.25, 0.125, 10.0},
			"gpt-5.1-codex-mini":           {0.25, 0.025, 2.0},
			"gpt-5.2":                      {1.75, 0.175, 14.0},
			"gpt-5.2-chat-latest":          {1.75, 0.175, 14.0},
			"gpt-5.2-pro":                  {21.0, Unset, 168.0},
			"gpt-audio":                    {2.5, Unset, 10.0},
			"gpt-audio-mini":               {0.6, Unset, 2.4},
			"gpt-image-1":                  {5.0, 1.25, 0.0},
			"gpt-image-1-mini":             {2.0, 0.2, 0.0},
			"gpt-image-1.5":                {5.0, 1.25, 10.0},
			"gpt-realtime":                 {4.0, 0.4, 16.0},
			"gpt-realtime-mini":            {0.6, 0.06, 2.4},
			"o1":                           {15.0, 7.5, 60.0},
			"o1-mini":                      {1.1, 0.55, 4.4},
			"o1-pro":                       {150.0, Unset, 600.0},
			"o3":                           {2.0, 0.5, 8.0},
			"o3-deep-research":             {10.0, 2.5, 40.0},
			"o3-mini":                      {1.1, 0.55, 4.4},
			"o3-pro":                       {20.0, Unset, 80.0},
			"o4-mini":                      {1.1, 0.275, 4.4},
			"o4-mini-deep-research":        {2.0, 0.5, 8.0},
		},
		"priority": {
			"gpt-4.1":           {3.5, 0.875, 14.0},
			"gpt-4.1-mini":      {0.7, 0.175, 2.8},
			"gpt-4.1-nano":      {0.2, 0.05, 0.8},
			"gpt-4o":            {4.25, 2.125, 17.0},
			"gpt-4o-2024-05-13": {8.75, Unset, 26.25},
			"gpt-4o-mini":       {0.25, 0.125, 1.0},
			"gpt-5":             {2.5, 0.25, 20.0},
			"gpt-5-mini":        {0.45, 0.045, 3.6},
			"gpt-5.1":           {2.5, 0.25, 20.0},
			"gpt-5.1-codex":     {2.5, 0.25, 20.0},
			"gpt-5.1-codex-max": {2.5, 0.25, 20.0},
			"gpt-5.2":           {3.5, 0.35, 28.0},
			"o3":                {3.5, 0.875, 14.0},
			"o4-mini":           {2.0, 0.5, 8.0},
		},
		"flex": {
			"gpt-5":      {0.625, 0.0625, 5.0},
			"gpt-5-mini": {0.125, 0.0125, 1.0},
			"gpt-5-nano": {0.025, 0.0025, 0.2},
			"gpt-5.1":    {0.625, 0.0625, 5.0},
			"gpt-5.2":    {0.875, 0.0875, 7.0},
			"o3":         {1.0, 0.25, 4.0},
			"o4-mini":    {0.55, 0.138, 2.2},
		},
		"batch": {
			"gpt-4.1":           {1.0, Unset, 4.0},
			"gpt-4.1-mini":      {0.2, Unset, 0.8},
			"gpt-4.1-nano":      {0.05, Unset, 0.2},
			"gpt-4o":            {1.25, Unset, 5.0},
			"gpt-4o-2024-05-13": {2.5, Unset, 7.5},
			"gpt-4o-mini":       {0.075, Unset, 0.3},
			"gpt-5":             {0.625, 0.0625, 5.0},
			"gpt-5-mini":        {0.125, 0.0125, 1.0},
			"gpt-5-nano":        {0.025, 0.0025, 0.2},
			"gpt-5-pro":         {7.5, Unset, 60.0},
			"gpt-5.1":           {0.625, 0.0625, 5.0},
			"gpt-5.2":           {0.875, 0.0875, 7.0},
			"gpt-5.2-pro":       {10.5, Unset, 84.0},
			"o1":                {7.5, Unset, 30.0},
			"o1-pro":            {75.0, Unset, 300.0},
			"o3":                {1.0, Unset, 4.0},
			"o3-deep-research":  {5.0, Unset, 20.0},
			"o3-pro":            {10.0, Unset, 40.0},
			"o4-mini":           {0.55, Unset, 2.2},
		},
	}
}
