// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package catalog

import (
	"bytes"
	"encoding/json"
)

// productRecord is a product as returned by the marketplace API
type productRecord struct {
	ID        *int64     `json:"id"`
	Name      string     `json:"name"`
	Author    string     `json:"author"`
	Available bool       `json:"available"`
	OwnerID   flexibleID `json:"owner_id"`
}

// listEnvelope wraps listing responses; count is only sent by filtered queries
type listEnvelope struct {
	Data  *[]productRecord `json:"data"`
	Count *int             `json:"count"`
}

// productEnvelope wraps single product responses
type productEnvelope struct {
	Data *productRecord `json:"data"`
}

type genreRecord struct {
	ID   *int64 `json:"id"`
	Name string `json:"name"`
}

type interestRecord struct {
	ID     *int64        `json:"id"`
	Name   string        `json:"name"`
	Genres []genreRecord `json:"genres"`
}

type interestsEnvelope struct {
	Data *[]interestRecord `json:"data"`
}

// errorResponse is the structured error body, error may be a string or an object
type errorResponse struct {
	Error json.RawMessage `json:"error"`
}

// flexibleID accepts both numeric and string JSON ids
type flexibleID string

func (f *flexibleID) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// responseMessage derives the human-readable message of an error body:
// the error field when present, otherwise the raw body.
func responseMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)

	var parsed errorResponse
	if err := json.Unmarshal(trimmed, &parsed); err == nil && len(parsed.Error) > 0 && !bytes.Equal(parsed.Error, []byte("null")) {
		var s string
		if err := json.Unmarshal(parsed.Error, &s); err == nil {
			return s
		}
		return string(parsed.Error)
	}

	return string(trimmed)
}
