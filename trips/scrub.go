package trips

import "tripbook/models"

// scrubDays normalizes the days sequence before it goes to the store:
// empty optional sub-documents are dropped recursively (the store must
// never see fields that hold nothing), while required sequences are kept
// present even when empty so they round-trip as arrays.
func scrubDays(days []models.Day) []models.Day {
	for i := range days {
		day := &days[i]
		if day.Tips == nil {
			day.Tips = []string{}
		}
		if day.Events == nil {
			day.Events = []models.Event{}
		}
		for j := range day.Events {
			scrubEvent(&day.Events[j])
		}
	}
	return days
}

func scrubEvent(e *models.Event) {
	if e.Transport != nil && *e.Transport == (models.TransportInfo{}) {
		e.Transport = nil
	}
	if len(e.Links) == 0 {
		e.Links = nil
	}
}
