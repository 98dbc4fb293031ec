package analytics

// Category names a lexicon word class.
type Category string

const (
	CategoryNegative        Category = "negative"
	CategoryPositive        Category = "positive"
	CategorySelfDenial      Category = "self_denial"
	CategoryFirstPerson     Category = "first_person"
	CategoryOtherPerson     Category = "other_person"
	CategoryTask            Category = "task"
	CategorySelfMonitor     Category = "self_monitor"
	CategoryPhysicalSymptom Category = "physical_symptom"
	CategoryWork            Category = "work"
	CategoryLightNegative   Category = "light_negative"
	CategoryDeepNegative    Category = "deep_negative"
)

// AllCategories lists every category in display order.
var AllCategories = []Category{
	CategoryNegative,
	CategoryPositive,
	CategorySelfDenial,
	CategoryFirstPerson,
	CategoryOtherPerson,
	CategoryTask,
	CategorySelfMonitor,
	CategoryPhysicalSymptom,
	CategoryWork,
	CategoryLightNegative,
	CategoryDeepNegative,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}
