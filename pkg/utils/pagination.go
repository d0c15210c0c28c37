package utils

import "math"

// MaxPerPage caps list endpoints regardless of what the client asks for.
const MaxPerPage = 100

// ClampPerPage returns def for non-positive values and MaxPerPage for larger ones.
func ClampPerPage(perPage, def int) int {
	switch {
	case perPage < 1:
		return def
	case perPage > MaxPerPage:
		return MaxPerPage
	}
	return perPage
}

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

// CalculateOffset saturates at math.MaxInt instead of overflowing.
func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > math.MaxInt/perPage {
		return math.MaxInt
	}
	return (page - 1) * perPage
}
