package http

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/tair/storefront/internal/catalog/filter"
	"github.com/tair/storefront/internal/catalog/usecase/query"
)

// ParseListQuery reads filter and sort options from URL query parameters:
// category, min_price, max_price, difficulty, roast_level (repeatable or
// comma separated), organic, in_stock, q, sort and order.
func ParseListQuery(values url.Values) (query.ListProductsQuery, error) {
	var q query.ListProductsQuery

	q.Filter.Category = strings.TrimSpace(values.Get("category"))
	q.Filter.Search = strings.TrimSpace(values.Get("q"))
	q.Filter.Difficulty = multiValue(values, "difficulty")
	q.Filter.RoastLevel = multiValue(values, "roast_level")

	var err error
	if q.Filter.Organic, err = boolParam(values, "organic"); err != nil {
		return q, err
	}
	if q.Filter.InStock, err = boolParam(values, "in_stock"); err != nil {
		return q, err
	}

	minRaw, maxRaw := values.Get("min_price"), values.Get("max_price")
	if minRaw != "" || maxRaw != "" {
		r := filter.PriceRange{Min: 0, Max: math.MaxInt64}
		if minRaw != "" {
			if r.Min, err = strconv.ParseInt(minRaw, 10, 64); err != nil {
				return q, fmt.Errorf("invalid min_price %q", minRaw)
			}
		}
		if maxRaw != "" {
			if r.Max, err = strconv.ParseInt(maxRaw, 10, 64); err != nil {
				return q, fmt.Errorf("invalid max_price %q", maxRaw)
			}
		}
		if r.Min > r.Max {
			return q, fmt.Errorf("min_price must not exceed max_price")
		}
		q.Filter.PriceRange = &r
	}

	if q.SortKey, err = filter.ParseSortKey(values.Get("sort")); err != nil {
		return q, err
	}
	if q.Direction, err = filter.ParseDirection(values.Get("order")); err != nil {
		return q, err
	}
	return q, nil
}

func multiValue(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func boolParam(values url.Values, key string) (bool, error) {
	raw := values.Get(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q", key, raw)
	}
	return v, nil
}
