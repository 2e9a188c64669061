package main

import (
	"fmt"
	"strconv"

	"edenstone/internal/decor"

	"github.com/spf13/cobra"
)

type listOptions struct {
	stoneTypes []string
	surfaces   []string
	brands     []string
	sort       string
	limit      int
	pages      int
}

func newListCmd() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog decors, loading one or more pages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.stoneTypes, "stone-type", nil, "Stone type filter (repeatable)")
	cmd.Flags().StringSliceVar(&opts.surfaces, "surface", nil, "Surface filter (repeatable)")
	cmd.Flags().StringSliceVar(&opts.brands, "brand", nil, "Brand filter (repeatable)")
	cmd.Flags().StringVar(&opts.sort, "sort", string(decor.SortNewest), "Sort: newest, price_asc or price_desc")
	cmd.Flags().IntVar(&opts.limit, "limit", decor.DefaultPageSize, "Page size: 12, 24 or 48")
	cmd.Flags().IntVar(&opts.pages, "pages", 1, "Number of pages to load")
	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	ctx := cmd.Context()

	mode, err := decor.ParseSortMode(opts.sort)
	if err != nil {
		return fmt.Errorf("%w: %q", err, opts.sort)
	}

	var f decor.FiltersState
	for _, s := range opts.stoneTypes {
		f.StoneTypes = append(f.StoneTypes, decor.StoneType(s))
	}
	for _, s := range opts.surfaces {
		f.Surfaces = append(f.Surfaces, decor.SurfaceType(s))
	}
	f.Brands = opts.brands

	ctrl := decor.NewController(decor.NewAPIClient(apiBase, timeout))
	if err := ctrl.Apply(ctx, f, mode, opts.limit); err != nil {
		return err
	}
	for i := 1; i < opts.pages && ctrl.HasMore(); i++ {
		if err := ctrl.LoadMore(ctx); err != nil {
			return err
		}
	}

	view := ctrl.View()
	if output != "table" {
		return render(cmd.OutOrStdout(), view)
	}

	rows := make([][]string, 0, len(view.Items))
	for _, it := range view.Items {
		rows = append(rows, []string{it.Slug, it.Name, it.Brand, string(it.StoneType), string(it.Surface), formatPrice(it.Price)})
	}
	if err := writeTable(cmd.OutOrStdout(), []string{"SLUG", "NAME", "BRAND", "STONE", "SURFACE", "PRICE"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%d of %d loaded", view.Loaded, view.Total)
	if view.HasMore {
		fmt.Fprint(cmd.OutOrStdout(), ", more available")
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func formatPrice(p float64) string {
	if p == 0 {
		return "-"
	}
	return strconv.FormatFloat(p, 'f', -1, 64)
}
