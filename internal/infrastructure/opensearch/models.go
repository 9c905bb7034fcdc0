// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package opensearch

import "encoding/json"

// Config represents OpenSearch configuration
type Config struct {
	URL string `json:"url"`
	// Index holds one document per product
	Index string `json:"index"`
	// InterestIndex holds one document per interest with its genres
	InterestIndex string `json:"interest_index"`
}

// SearchResponse represents the OpenSearch search response
type SearchResponse struct {
	Hits `json:"hits"`
}

// Hits represents the hits in the search response
type Hits struct {
	Total `json:"total"`
	Hits  []Hit `json:"hits"`
}

// Total represents the total number of hits
type Total struct {
	Value int `json:"value"`
}

// Hit represents a single search result hit
type Hit struct {
	ID     string          `json:"_id"`
	Score  float64         `json:"_score"`
	Source json.RawMessage `json:"_source"`
}

// productDocument is a product as indexed
type productDocument struct {
	ID          *int64  `json:"id"`
	Name        string  `json:"name"`
	Author      string  `json:"author"`
	Available   bool    `json:"available"`
	OwnerID     string  `json:"owner_id"`
	InterestIDs []int64 `json:"interest_ids,omitempty"`
	GenreIDs    []int64 `json:"genre_ids,omitempty"`
}

type interestDocument struct {
	ID     *int64 `json:"id"`
	Name   string `json:"name"`
	Genres []struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"genres"`
}
