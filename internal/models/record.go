// Package models defines data structures shared by the feed, normalizer, and renderers.
package models

import "strings"

// Tier is the membership level of a listed business. It controls which
// fields and affordances the renderers show.
type Tier string

// Membership tiers.
const (
	TierBasic   Tier = "basic"
	TierPlus    Tier = "plus"
	TierPremium Tier = "premium"
)

// ParseTier folds a raw tier value into one of the known tiers.
// Unrecognized, empty, or garbage values fold to TierBasic.
func ParseTier(raw string) Tier {
	switch Tier(strings.ToLower(strings.TrimSpace(raw))) {
	case TierPlus:
		return TierPlus
	case TierPremium:
		return TierPremium
	default:
		return TierBasic
	}
}

// RawRow is one row of the tabular feed as parsed: original header names
// (case varying, free text) mapped to cell values. Any column may be absent.
type RawRow map[string]string

// BusinessRecord is the canonical, post-normalization business entry.
// Only Name is guaranteed non-empty; field presence governs display, not
// validity.
type BusinessRecord struct {
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	Town     string `json:"town"`
	Category string `json:"category"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
	Hours    string `json:"hours,omitempty"`
	Website  string `json:"website,omitempty"`
	Facebook string `json:"facebook,omitempty"`
	ImageRef string `json:"imageRef,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Tier     Tier   `json:"tier"`
}

// HasPhone reports whether the record carries a phone number.
func (r *BusinessRecord) HasPhone() bool {
	return r.Phone != ""
}

// IsPremium reports whether the record is a premium listing.
func (r *BusinessRecord) IsPremium() bool {
	return r.Tier == TierPremium
}

// DirectorySummary aggregates counts over a normalized record set. Used by
// the snapshot exporter.
type DirectorySummary struct {
	TotalRecords int            `json:"totalRecords"`
	ByTown       map[string]int `json:"byTown"`
	ByCategory   map[string]int `json:"byCategory"`
	ByTier       map[Tier]int   `json:"byTier"`
}

// Summarize computes a DirectorySummary for a record set.
func Summarize(records []BusinessRecord) DirectorySummary {
	summary := DirectorySummary{
		TotalRecords: len(records),
		ByTown:       make(map[string]int),
		ByCategory:   make(map[string]int),
		ByTier:       make(map[Tier]int),
	}

	for _, rec := range records {
		summary.ByTown[rec.Town]++
		summary.ByTier[rec.Tier]++

		if rec.Category != "" {
			summary.ByCategory[rec.Category]++
		}
	}

	return summary
}
