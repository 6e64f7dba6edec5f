// Package category defines the closed set of knowledge-base categories.
// The same values drive the stored documents table and the admin dropdown,
// so both sides import this package instead of carrying their own lists.
package category

// Category is a document category key as stored in the documents table.
type Category string

const (
	CheckInOut  Category = "チェックイン・チェックアウト"
	Amenities   Category = "設備・アメニティ"
	Access      Category = "交通・アクセス"
	Sightseeing Category = "観光・グルメ"
	Emergency   Category = "緊急時・安全"
	HouseRules  Category = "ルール・マナー"
)

// All returns every known category in display order.
func All() []Category {
	return []Category{
		CheckInOut,
		Amenities,
		Access,
		Sightseeing,
		Emergency,
		HouseRules,
	}
}

// Valid reports whether s is a known category key.
// The store itself does not enforce this; unknown values are simply
// unselectable in category browsing.
func Valid(s string) bool {
	for _, c := range All() {
		if string(c) == s {
			return true
		}
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
