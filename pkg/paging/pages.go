// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package paging

import (
	"fmt"

	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/errors"
)

// PageCount returns ceil(total / pageSize), zero for an empty or invalid listing.
func PageCount(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Pages returns the sequential page numbers 1..PageCount(total, pageSize).
func Pages(total, pageSize int) []int {
	count := PageCount(total, pageSize)
	pages := make([]int, count)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Offset returns the zero-based index of the first item on page.
func Offset(page, pageSize int) int {
	if page < 1 || pageSize <= 0 {
		return 0
	}
	return (page - 1) * pageSize
}

// Validate checks the page arguments a query accepts.
func Validate(page, pageSize int) error {
	if page < 1 {
		return errors.NewValidation("invalid page", fmt.Errorf("page must be >= 1, got %d", page))
	}
	if pageSize <= 0 {
		return errors.NewValidation("invalid page size", fmt.Errorf("page size must be > 0, got %d", pageSize))
	}
	return nil
}

// ValidateWithin additionally rejects a page past the last one once the total
// is known. Page 1 is always reachable, even for an empty listing.
func ValidateWithin(page, pageSize, total int) error {
	if err := Validate(page, pageSize); err != nil {
		return err
	}
	if count := PageCount(total, pageSize); page > 1 && page > count {
		return errors.NewValidation("page out of range", fmt.Errorf("page %d exceeds page count %d", page, count))
	}
	return nil
}
