// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"slices"
	"strings"

	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-product-listing/pkg/constants"
)

// BuildFilterQuery turns the filter criteria into the outbound query for one page.
//
// A selected interest contributes its own id and suppresses its genres; an
// unselected interest contributes the ids of its selected genres instead.
// Search text is split on whitespace runs. The name and author columns only
// take part when their flag is set and there is search text.
func BuildFilterQuery(userID string, criteria model.FilterCriteria, page, pageSize int) model.FilterQuery {
	query := model.FilterQuery{
		UserID:   userID,
		Terms:    strings.Fields(criteria.SearchText),
		Page:     page,
		PageSize: pageSize,
	}

	for _, interest := range criteria.Selection {
		if interest.Selected {
			query.Interests = append(query.Interests, interest.InterestID)
			continue
		}
		for _, genre := range interest.Genres {
			// a genre shared by several interests is sent once
			if genre.Selected && !slices.Contains(query.Genres, genre.GenreID) {
				query.Genres = append(query.Genres, genre.GenreID)
			}
		}
	}

	if len(query.Interests) > 0 {
		query.Columns = append(query.Columns, constants.ColumnInterest)
	}
	if len(query.Genres) > 0 {
		query.Columns = append(query.Columns, constants.ColumnGenre)
	}
	if len(query.Terms) > 0 {
		if criteria.MatchName {
			query.Columns = append(query.Columns, constants.ColumnName)
		}
		if criteria.MatchAuthor {
			query.Columns = append(query.Columns, constants.ColumnAuthor)
		}
	}

	return query
}
