package decor

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// aggregateFacets builds the filter options after a reset fetch. Stone types
// and surfaces come from the server facets; brands fall back to the loaded
// page when the server sends none.
func aggregateFacets(in APIFacets, page []DecorItem) Facets {
	out := Facets{
		StoneTypes: []StoneType{},
		Surfaces:   []SurfaceType{},
	}
	for _, o := range in.StoneTypes {
		out.StoneTypes = appendUnique(out.StoneTypes, ToStoneType(o.Value))
	}
	for _, o := range in.Surfaces {
		out.Surfaces = appendUnique(out.Surfaces, ToSurfaceType(o.Value))
	}

	brands := []string{}
	if len(in.Brands) > 0 {
		for _, o := range in.Brands {
			brands = appendUnique(brands, o.Value)
		}
	} else {
		for _, it := range page {
			brands = appendUnique(brands, it.Brand)
		}
	}
	sortBrands(brands)
	out.Brands = brands

	return out
}

// sortBrands orders brand names the way a Russian-locale reader expects.
func sortBrands(brands []string) {
	collate.New(language.Russian).SortStrings(brands)
}
