// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package seo decides whether a content item's SEO fields are manual
// overrides or inherited from a preset, and computes the effective
// values shown on read paths.
//
// Only the title and description take part in manual detection and
// inheritance; keywords and label always keep their stored values.
package seo

import "focusword/internal/models"

// ManualChange reports whether the submitted SEO fields must be treated
// as a manual override of the preset defaults.
//
// With no preset there is nothing to inherit from, so any state counts
// as manual. With a preset but no submitted fields the item defers to
// the preset. Otherwise the submitted title and description are compared
// against the preset's.
func ManualChange(submitted *models.SEO, preset *models.SEOPreset) bool {
	if preset == nil {
		return true
	}
	if submitted == nil {
		return false
	}
	if submitted.Title != preset.Title {
		return true
	}
	if submitted.Description != preset.Description {
		return true
	}
	return false
}

// Effective returns the SEO values a read path should expose. Manual
// items and items without a preset return the stored values unchanged;
// inherited items get the preset's title and description layered over
// the stored keywords and label. The input is never mutated.
func Effective(manual bool, stored models.SEO, preset *models.SEOPreset) models.SEO {
	if manual || preset == nil {
		return stored
	}
	out := stored
	out.Title = preset.Title
	out.Description = preset.Description
	return out
}

// FromPreset builds the initial SEO row for a freshly created item:
// submitted values win; otherwise the preset defaults; otherwise empty.
func FromPreset(submitted *models.SEO, preset *models.SEOPreset) models.SEO {
	if submitted != nil {
		return *submitted
	}
	if preset != nil {
		return preset.SEO
	}
	return models.SEO{}
}
