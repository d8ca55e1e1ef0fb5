// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Category groups artworks by exact name match. Name is the unique
// key; deleting a category requires reassigning its artworks so no
// record is ever left referencing a nonexistent category.
type Category struct {
	Name            string `json:"name"`
	Color           string `json:"color"`
	Icon            string `json:"icon"`
	PreviewImageURL string `json:"previewImageUrl,omitempty"`
	Order           int    `json:"order"`
}
