package model

// Speaker is a keynote speaker shown on the public site.
type Speaker struct {
	ID          uint64 // speakers.id
	Name        string // speakers.name
	Title       string // speakers.title
	Affiliation string // speakers.affiliation
	PhotoURL    string // speakers.photo_url
	Order       int    // speakers.display_order
}

// ScheduleItem is one entry of the published conference programme.  Slot
// times are wall-clock strings like "09:00", matching the VARCHAR columns
// they come from; the schedule carries no timezone of its own.
type ScheduleItem struct {
	ID       uint64 // schedule_items.id
	Day      int    // schedule_items.day (1-based conference day)
	StartsAt string // schedule_items.starts_at
	EndsAt   string // schedule_items.ends_at
	Title    string // schedule_items.title
	Location string // schedule_items.location
	Order    int    // schedule_items.display_order
}
