package core

type (
	Month    string
	Category string
	Status   string
)

// Months in calendar order. All month/week arithmetic indexes into this
// slice; never sort these alphabetically.
var Months = []Month{
	"Januar", "Februar", "Marts", "April", "Maj", "Juni",
	"Juli", "August", "September", "Oktober", "November", "December",
}

const (
	CatRelease    Category = "Releasemøde"
	CatRoadmap    Category = "Roadmapmøde"
	CatNetwork    Category = "Netværksmøde"
	CatKTU        Category = "KTU"
	CatOnboarding Category = "Onboarding"
	CatReport     Category = "Rapportmøde"
	CatOther      Category = "Andet"
)

// Categories in display order, used for distribution buckets and form
// selects.
var Categories = []Category{
	CatRelease, CatRoadmap, CatNetwork, CatKTU,
	CatOnboarding, CatReport, CatOther,
}

const (
	StatusPlanned    Status = "Planlagt"
	StatusInProgress Status = "Igangværende"
	StatusDone       Status = "Afsluttet"
)

// Statuses in enumeration order; the status wheel draws its sweeps in
// this order.
var Statuses = []Status{StatusPlanned, StatusInProgress, StatusDone}

// Display colors are looked up through these tables rather than derived
// from the label text, so a renamed label fails loudly instead of
// silently losing its color.
var categoryColors = map[Category]string{
	CatRelease:    "#7b2cff",
	CatRoadmap:    "#ff2d55",
	CatNetwork:    "#00e6ff",
	CatKTU:        "#ffd166",
	CatOnboarding: "#00ff9d",
	CatReport:     "#ff8ad6",
	CatOther:      "#7afcff",
}

var statusColors = map[Status]string{
	StatusPlanned:    "#00ffd1",
	StatusInProgress: "#ffd166",
	StatusDone:       "#8892b0",
}

// MonthIndex returns the calendar position of m (0-11), or -1 when m is
// not a known month.
func MonthIndex(m Month) int {
	for i, known := range Months {
		if known == m {
			return i
		}
	}
	return -1
}

// ValidMonth reports whether m is one of the twelve month names.
func ValidMonth(m Month) bool {
	return MonthIndex(m) >= 0
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c Category) bool {
	_, ok := categoryColors[c]
	return ok
}

// ValidStatus reports whether s is a known status.
func ValidStatus(s Status) bool {
	_, ok := statusColors[s]
	return ok
}

// Color returns the display color for the category, or an empty string
// for unknown categories.
func (c Category) Color() string {
	return categoryColors[c]
}

// Color returns the display color for the status, or an empty string for
// unknown statuses.
func (s Status) Color() string {
	return statusColors[s]
}
