package models

type BusinessCategory string

const (
	CategoryFood          BusinessCategory = "food"
	CategoryRetail        BusinessCategory = "retail"
	CategoryServices      BusinessCategory = "services"
	CategoryEntertainment BusinessCategory = "entertainment"
	CategoryOther         BusinessCategory = "other"
)

// Categories lists every category in display order.
func Categories() []BusinessCategory {
	return []BusinessCategory{
		CategoryFood,
		CategoryRetail,
		CategoryServices,
		CategoryEntertainment,
		CategoryOther,
	}
}

// ParseCategory never fails: anything unrecognised is CategoryOther.
func ParseCategory(s string) BusinessCategory {
	c := BusinessCategory(s)
	if c.IsValid() {
		return c
	}
	return CategoryOther
}

func (c BusinessCategory) IsValid() bool {
	switch c {
	case CategoryFood, CategoryRetail, CategoryServices, CategoryEntertainment, CategoryOther:
		return true
	}
	return false
}

// Icon is the symbol name clients render next to the category.
func (c BusinessCategory) Icon() string {
	switch c {
	case CategoryFood:
		return "fork.knife"
	case CategoryRetail:
		return "cart"
	case CategoryServices:
		return "wrench.and.screwdriver"
	case CategoryEntertainment:
		return "star"
	default:
		return "ellipsis"
	}
}

// DefaultImage is the placeholder image for a business saved without images.
func DefaultImage(c BusinessCategory) string {
	switch c {
	case CategoryFood:
		return "comidas2"
	case CategoryRetail:
		return "tiendita1"
	case CategoryServices:
		return "tacos1"
	case CategoryEntertainment:
		return "iguana1"
	default:
		return "antojitos1"
	}
}
