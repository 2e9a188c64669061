package decor

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
	"time"
)

type StoneType string

const (
	StoneAcrylic   StoneType = "Акрил"
	StoneQuartz    StoneType = "Кварц"
	StoneGranite   StoneType = "Гранит"
	StonePorcelain StoneType = "Керамогранит"
	StoneMarble    StoneType = "Мрамор"
	StoneQuartzite StoneType = "Кварцит"
)

type SurfaceType string

const (
	SurfaceGlossy SurfaceType = "Глянцевая"
	SurfaceMatte  SurfaceType = "Матовая"
)

var AllStoneTypes = []StoneType{
	StoneAcrylic,
	StoneQuartz,
	StoneGranite,
	StonePorcelain,
	StoneMarble,
	StoneQuartzite,
}

var AllSurfaces = []SurfaceType{
	SurfaceGlossy,
	SurfaceMatte,
}

// DecorItem is a catalog entry after normalization. Price is per square metre.
type DecorItem struct {
	ID          string      `json:"id"`
	Slug        string      `json:"slug"`
	Name        string      `json:"name"`
	Code        string      `json:"code"`
	Brand       string      `json:"brand"`
	StoneType   StoneType   `json:"stoneType"`
	Surface     SurfaceType `json:"surface"`
	Price       float64     `json:"price"`
	CreatedAt   time.Time   `json:"createdAt"`
	Image       string      `json:"image"`
	Images      []string    `json:"images,omitempty"`
	Description string      `json:"description,omitempty"`
}

// Facets are the filter options available for the current query.
type Facets struct {
	StoneTypes []StoneType   `json:"stoneTypes"`
	Surfaces   []SurfaceType `json:"surfaces"`
	Brands     []string      `json:"brands"`
}

// ---------- wire types ----------

// APIDecor is the catalog API representation of a decor.
type APIDecor struct {
	ID          int64    `json:"id"`
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Code        *string  `json:"code"`
	Brand       string   `json:"brand"`
	StoneType   string   `json:"stone_type"`
	Surface     string   `json:"surface"`
	Price       float64  `json:"price"`
	CreatedAt   int64    `json:"created_at"`
	Image       string   `json:"image"`
	Images      []string `json:"images"`
	Description *string  `json:"description"`
}

// FacetOption is one facet value. The API sends either a bare string or
// an object with a count.
type FacetOption struct {
	Value string `json:"value"`
	Count int    `json:"count,omitempty"`
}

func (o *FacetOption) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		o.Count = 0
		return json.Unmarshal(data, &o.Value)
	}

	var obj struct {
		Value string `json:"value"`
		Count int    `json:"count"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	o.Value, o.Count = obj.Value, obj.Count
	return nil
}

type APIFacets struct {
	StoneTypes []FacetOption `json:"stone_types"`
	Surfaces   []FacetOption `json:"surfaces"`
	Brands     []FacetOption `json:"brands,omitempty"`
}

type ListResponse struct {
	Items  []APIDecor `json:"items"`
	Total  *int       `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Facets APIFacets  `json:"facets"`
}

// TotalOr returns the reported total, or fallback when the API omitted it.
func (r *ListResponse) TotalOr(fallback int) int {
	if r == nil || r.Total == nil {
		return fallback
	}
	return *r.Total
}

// ListQuery is one request against GET /api/v1/decors. The API accepts at
// most one value per filter dimension.
type ListQuery struct {
	Limit     int
	Offset    int
	Sort      string
	StoneType string
	Surface   string
	Brand     string
	Q         string
}

func (q ListQuery) Values() url.Values {
	v := url.Values{}
	v.Set("limit", strconv.Itoa(q.Limit))
	v.Set("offset", strconv.Itoa(q.Offset))

	optional := map[string]string{
		"sort":       q.Sort,
		"stone_type": q.StoneType,
		"surface":    q.Surface,
		"brand":      q.Brand,
		"q":          q.Q,
	}
	for k, val := range optional {
		if val != "" {
			v.Set(k, val)
		}
	}
	return v
}
