// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/linuxfoundation/lfx-v2-product-listing/cmd/service"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "User profile commands",
}

var profileProductsCmd = &cobra.Command{
	Use:   "products [user-id]",
	Short: "Show the products a user offers",
	Long: `Show the products offered by a user, the signed in user when no id is
given. Withdrawn products are only listed on your own profile.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var ownerID string
		if len(args) == 1 {
			ownerID = args[0]
		}
		return run(cmd, func(ctx context.Context, m *service.Marketplace) (any, error) {
			return m.UserProducts(ctx, ownerID)
		})
	},
}

func init() {
	profileCmd.AddCommand(profileProductsCmd)
}
