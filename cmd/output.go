// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-product-listing/cmd/service"
	"github.com/linuxfoundation/lfx-v2-product-listing/internal/domain/model"
)

type format string

const (
	formatTable format = "table"
	formatJSON  format = "json"
	formatYAML  format = "yaml"
)

func parseFormat(s string) (format, error) {
	switch f := format(strings.ToLower(s)); f {
	case formatTable, formatJSON, formatYAML:
		return f, nil
	}
	return "", &service.CommandError{
		Code:    service.ExitBadRequest,
		Message: fmt.Sprintf("unknown output format %q", s),
	}
}

func render(w io.Writer, output string, v any) error {
	f, err := parseFormat(output)
	if err != nil {
		return err
	}

	switch f {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	renderTable(tw, v)
	return tw.Flush()
}

func renderTable(w io.Writer, v any) {
	switch r := v.(type) {
	case *service.ListingResult:
		if r.NotFound {
			fmt.Fprintln(w, "No products found")
			return
		}
		productRows(w, r.Products)
		fmt.Fprintf(w, "\npage %d of %d (%d products)\n", r.Page.Page, len(r.Pages), r.Page.Total)
	case *service.ProfileResult:
		fmt.Fprintf(w, "Available products of %s\n", r.UserID)
		productRows(w, r.Available)
		if r.Own {
			fmt.Fprintln(w, "\nWithdrawn products")
			productRows(w, r.Withdrawn)
		}
	case *model.ProductSummary:
		productRows(w, []model.ProductSummary{*r})
	case []model.Interest:
		fmt.Fprintln(w, "ID\tINTEREST\tGENRES")
		for _, interest := range r {
			genres := make([]string, 0, len(interest.Genres))
			for _, g := range interest.Genres {
				genres = append(genres, fmt.Sprintf("%s (%d)", g.Name, g.ID))
			}
			fmt.Fprintf(w, "%d\t%s\t%s\n", interest.ID, interest.Name, strings.Join(genres, ", "))
		}
	case readiness:
		fmt.Fprintln(w, r.Status)
	default:
		fmt.Fprintf(w, "%v\n", r)
	}
}

func productRows(w io.Writer, products []model.ProductSummary) {
	fmt.Fprintln(w, "ID\tNAME\tAUTHOR\tOWNER\tAVAILABLE")
	for _, p := range products {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%t\n", p.ID, p.Name, p.Author, p.OwnerID, p.Available)
	}
}
