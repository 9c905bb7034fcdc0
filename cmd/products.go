// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/linuxfoundation/lfx-v2-product-listing/cmd/service"
)

var (
	listPage int

	filterOptions service.FilterOptions
)

var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "Product listing commands",
	Long:  `List, filter and show the products available to the signed in user.`,
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of available products",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, m *service.Marketplace) (any, error) {
			return m.ListProducts(ctx, listPage)
		})
	},
}

var productsFilterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Filter products by text, interest or genre",
	Long: `Filter products by search text matched against the name and/or author,
and by interest and genre ids. Selecting an interest includes all its genres.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, m *service.Marketplace) (any, error) {
			return m.FilterProducts(ctx, filterOptions)
		})
	},
}

var productsGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show one product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return &service.CommandError{Code: service.ExitBadRequest, Message: "product id must be a number"}
		}
		return run(cmd, func(ctx context.Context, m *service.Marketplace) (any, error) {
			return m.GetProduct(ctx, id)
		})
	},
}

var interestsCmd = &cobra.Command{
	Use:   "interests",
	Short: "List the interests and their genres",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, m *service.Marketplace) (any, error) {
			return m.Interests(ctx)
		})
	},
}

var readyCmd = &cobra.Command{
	Use:   "ready",
	Short: "Check the product backend is reachable",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd, func(ctx context.Context, m *service.Marketplace) (any, error) {
			if err := m.IsReady(ctx); err != nil {
				return nil, err
			}
			return readiness{Status: "ready"}, nil
		})
	},
}

type readiness struct {
	Status string `json:"status" yaml:"status"`
}

func init() {
	productsListCmd.Flags().IntVarP(&listPage, "page", "p", 1, "Page number")

	productsFilterCmd.Flags().StringVarP(&filterOptions.Search, "search", "s", "", "Search text")
	productsFilterCmd.Flags().BoolVar(&filterOptions.MatchName, "name", false, "Match the search text against the product name")
	productsFilterCmd.Flags().BoolVar(&filterOptions.MatchAuthor, "author", false, "Match the search text against the author")
	productsFilterCmd.Flags().Int64SliceVar(&filterOptions.Interests, "interest", nil, "Interest id, repeatable")
	productsFilterCmd.Flags().Int64SliceVar(&filterOptions.Genres, "genre", nil, "Genre id, repeatable")
	productsFilterCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if filterOptions.Search != "" && !filterOptions.MatchName && !filterOptions.MatchAuthor {
			return &service.CommandError{
				Code:    service.ExitBadRequest,
				Message: "--search needs --name and/or --author",
			}
		}
		return nil
	}

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsFilterCmd)
	productsCmd.AddCommand(productsGetCmd)
}
