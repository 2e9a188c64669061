package main

import (
	"strings"
	"time"

	"edenstone/internal/decor"

	"github.com/spf13/cobra"
)

func newGetCmd() *cobra.Command {
	var detailTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "get [slug]",
		Short: "Show a single decor by slug",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fetcher := decor.NewDetailFetcher(decor.NewAPIClient(apiBase, timeout), detailTimeout)

			item, err := fetcher.FetchBySlug(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if output != "table" {
				return render(cmd.OutOrStdout(), item)
			}
			return writeTable(cmd.OutOrStdout(), []string{"FIELD", "VALUE"}, [][]string{
				{"slug", item.Slug},
				{"name", item.Name},
				{"code", item.Code},
				{"brand", item.Brand},
				{"stone", string(item.StoneType)},
				{"surface", string(item.Surface)},
				{"price", formatPrice(item.Price)},
				{"image", item.Image},
				{"images", strings.Join(item.Images, " ")},
			})
		},
	}

	cmd.Flags().DurationVar(&detailTimeout, "detail-timeout", decor.DefaultDetailTimeout, "Detail lookup timeout")
	return cmd
}
