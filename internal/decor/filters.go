package decor

import (
	"slices"
	"strings"
)

type Dimension string

const (
	DimensionStoneType Dimension = "stone_type"
	DimensionSurface   Dimension = "surface"
	DimensionBrand     Dimension = "brand"
)

func ParseDimension(s string) (Dimension, error) {
	switch d := Dimension(strings.TrimSpace(s)); d {
	case DimensionStoneType, DimensionSurface, DimensionBrand:
		return d, nil
	default:
		return "", ErrUnknownDimension
	}
}

// FiltersState is the user's current selection. An empty list means the
// dimension is not restricted. Values are never mutated in place; every
// operation returns a new FiltersState.
type FiltersState struct {
	StoneTypes []StoneType   `json:"stoneTypes"`
	Surfaces   []SurfaceType `json:"surfaces"`
	Brands     []string      `json:"brands"`
}

// Toggle removes value from the dimension when present, appends it otherwise.
// Stone type and surface values go through the normalizer first.
func (f FiltersState) Toggle(dim Dimension, value string) FiltersState {
	next := f.Clone()
	switch dim {
	case DimensionStoneType:
		next.StoneTypes = toggle(next.StoneTypes, ToStoneType(value))
	case DimensionSurface:
		next.Surfaces = toggle(next.Surfaces, ToSurfaceType(value))
	case DimensionBrand:
		next.Brands = toggle(next.Brands, value)
	}
	return next
}

func (f FiltersState) Clear() FiltersState {
	return FiltersState{}
}

func (f FiltersState) IsEmpty() bool {
	return f.Count() == 0
}

func (f FiltersState) Count() int {
	return len(f.StoneTypes) + len(f.Surfaces) + len(f.Brands)
}

func (f FiltersState) Equal(other FiltersState) bool {
	return slices.Equal(f.StoneTypes, other.StoneTypes) &&
		slices.Equal(f.Surfaces, other.Surfaces) &&
		slices.Equal(f.Brands, other.Brands)
}

func (f FiltersState) Clone() FiltersState {
	return FiltersState{
		StoneTypes: slices.Clone(f.StoneTypes),
		Surfaces:   slices.Clone(f.Surfaces),
		Brands:     slices.Clone(f.Brands),
	}
}

// Normalize maps stone types and surfaces onto the closed sets and drops
// duplicates, keeping first-seen order.
func (f FiltersState) Normalize() FiltersState {
	var out FiltersState
	for _, s := range f.StoneTypes {
		out.StoneTypes = appendUnique(out.StoneTypes, ToStoneType(string(s)))
	}
	for _, s := range f.Surfaces {
		out.Surfaces = appendUnique(out.Surfaces, ToSurfaceType(string(s)))
	}
	for _, b := range f.Brands {
		out.Brands = appendUnique(out.Brands, b)
	}
	return out
}

// Matches reports whether item passes every dimension with more than one
// selected value. Single selections are applied by the API.
func (f FiltersState) Matches(item DecorItem) bool {
	if len(f.StoneTypes) > 1 && !slices.Contains(f.StoneTypes, item.StoneType) {
		return false
	}
	if len(f.Surfaces) > 1 && !slices.Contains(f.Surfaces, item.Surface) {
		return false
	}
	if len(f.Brands) > 1 && !slices.Contains(f.Brands, item.Brand) {
		return false
	}
	return true
}

// PostFilter applies Matches over the already loaded window.
func PostFilter(items []DecorItem, f FiltersState) []DecorItem {
	out := make([]DecorItem, 0, len(items))
	for _, it := range items {
		if f.Matches(it) {
			out = append(out, it)
		}
	}
	return out
}

// FilterBrands returns the brands containing query, case-insensitively.
func FilterBrands(all []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return all
	}
	var out []string
	for _, b := range all {
		if strings.Contains(strings.ToLower(b), q) {
			out = append(out, b)
		}
	}
	return out
}

func toggle[T comparable](list []T, v T) []T {
	if i := slices.Index(list, v); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return append(list, v)
}

func appendUnique[T comparable](list []T, v T) []T {
	if slices.Contains(list, v) {
		return list
	}
	return append(list, v)
}
