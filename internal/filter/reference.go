package filter

import "slices"

// Sentinel options. Selecting one is the same as leaving the axis unset.
const (
	AllCategories = "Все категории"
	AllLocations  = "Все школы"
)

// Price bounds of the range slider.
const (
	PriceMin = 0
	PriceMax = 10000
)

// ratingUnit is the marker every rating label carries. RemoveLabel relies on it.
const ratingUnit = "звезд"

var categories = []string{
	AllCategories,
	"Электроника",
	"Книги и учебники",
	"Мебель",
	"Одежда",
	"Спорт",
	"Репетиторство",
	"Ремонт техники",
	"Аренда жилья",
}

var locations = []string{
	AllLocations,
	"Binom 1 (BI-1)",
	"Binom 2 (BI-2)",
	"Binom 3 (BI-3)",
	"Binom 4 (BI-4)",
	"NIS Astana",
	"KTL Almaty",
}

var ratingTiers = []int{0, 3, 4, 5}

// Categories returns the category options, sentinel first.
func Categories() []string { return slices.Clone(categories) }

// Locations returns the location (school) options, sentinel first.
func Locations() []string { return slices.Clone(locations) }

// RatingTiers returns the allowed minimum-rating values. 0 means unset.
func RatingTiers() []int { return slices.Clone(ratingTiers) }

func IsCategory(s string) bool { return slices.Contains(categories, s) }

func IsLocation(s string) bool { return slices.Contains(locations, s) }

func ValidRating(r int) bool { return slices.Contains(ratingTiers, r) }
