package enums

import "strings"

// ProductStatus marks whether a catalog product may be sold.
type ProductStatus string

const (
	ProductStatusAvailable   ProductStatus = "available"
	ProductStatusUnavailable ProductStatus = "unavailable"
)

// String implements fmt.Stringer.
func (s ProductStatus) String() string {
	return string(s)
}

// Valid reports whether the status is one of the known values.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusAvailable, ProductStatusUnavailable:
		return true
	}
	return false
}

// ParseProductStatus normalizes raw input to a known status.
func ParseProductStatus(raw string) (ProductStatus, bool) {
	s := ProductStatus(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}
