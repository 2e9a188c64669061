package decor

import "strings"

type SortMode string

const (
	SortNewest    SortMode = "newest"
	SortPriceAsc  SortMode = "price_asc"
	SortPriceDesc SortMode = "price_desc"
)

const DefaultPageSize = 24

// PageSizes are the batch sizes offered for "load more".
var PageSizes = []int{12, 24, 48}

func ParseSortMode(s string) (SortMode, error) {
	switch m := SortMode(strings.TrimSpace(s)); m {
	case SortNewest, SortPriceAsc, SortPriceDesc:
		return m, nil
	default:
		return "", ErrUnknownSort
	}
}

// APIParam is the value of the sort query parameter.
func (m SortMode) APIParam() string {
	switch m {
	case SortPriceAsc:
		return "price_asc"
	case SortPriceDesc:
		return "price_desc"
	default:
		return "created_at_desc"
	}
}

func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// QueryKey is the comparable snapshot of everything that determines a
// catalog request. A change in key means a reset fetch.
type QueryKey struct {
	StoneType string
	Surface   string
	Brand     string
	Sort      string
	Limit     int
}

// NewQueryKey takes the first selected value of each dimension since the
// API accepts one value per dimension.
func NewQueryKey(f FiltersState, sort SortMode, limit int) QueryKey {
	k := QueryKey{Sort: sort.APIParam(), Limit: limit}
	if len(f.StoneTypes) > 0 {
		k.StoneType = string(f.StoneTypes[0])
	}
	if len(f.Surfaces) > 0 {
		k.Surface = string(f.Surfaces[0])
	}
	if len(f.Brands) > 0 {
		k.Brand = f.Brands[0]
	}
	return k
}

func (k QueryKey) ListQuery(offset int) ListQuery {
	return ListQuery{
		Limit:     k.Limit,
		Offset:    offset,
		Sort:      k.Sort,
		StoneType: k.StoneType,
		Surface:   k.Surface,
		Brand:     k.Brand,
	}
}
