package models

type DirectoryFilter string

const (
	FilterNearest  DirectoryFilter = "nearest"
	FilterTopRated DirectoryFilter = "top_rated"
	FilterNewest   DirectoryFilter = "newest"
)

func DirectoryFilters() []DirectoryFilter {
	return []DirectoryFilter{FilterNearest, FilterTopRated, FilterNewest}
}

func (f DirectoryFilter) IsValid() bool {
	switch f {
	case FilterNearest, FilterTopRated, FilterNewest:
		return true
	}
	return false
}

func (f DirectoryFilter) Icon() string {
	switch f {
	case FilterTopRated:
		return "star.fill"
	case FilterNewest:
		return "clock.fill"
	default:
		return "location.fill"
	}
}
