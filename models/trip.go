package models

// TripBooklet is the root document for one trip, stored whole in MongoDB
// and read/written whole (or via a partial update of "days").
type TripBooklet struct {
	Meta           TripMeta                   `json:"meta" bson:"meta"`
	Theme          *TripTheme                 `json:"theme,omitempty" bson:"theme,omitempty"`
	Locations      map[string]LocationDetails `json:"locations" bson:"locations"`
	Accommodations map[string]Accommodation   `json:"accommodations" bson:"accommodations"`
	Days           []Day                      `json:"days" bson:"days"`
	WeatherSummary string                     `json:"weatherSummary,omitempty" bson:"weatherSummary,omitempty"`
	// Revision backs the conditional-write retry loop; never exposed on the wire.
	Revision int64 `json:"-" bson:"revision,omitempty"`
}

type TripMeta struct {
	Title               string `json:"title" bson:"title"`
	Subtitle            string `json:"subtitle" bson:"subtitle"`
	DateRange           string `json:"dateRange" bson:"dateRange"`
	OverviewDescription string `json:"overviewDescription" bson:"overviewDescription"`
}

type TripTheme struct {
	BackgroundImage string `json:"backgroundImage,omitempty" bson:"backgroundImage,omitempty"`
	TabIcon         string `json:"tabIcon,omitempty" bson:"tabIcon,omitempty"`
}

// Day is one page of the booklet. Its id is stable and doubles as the
// namespace key for time adjustments; it is not derived from the date.
type Day struct {
	ID       string      `json:"id" bson:"id"`
	Date     string      `json:"date" bson:"date"`
	Weekday  string      `json:"weekday" bson:"weekday"`
	Location string      `json:"location" bson:"location"`
	Weather  WeatherInfo `json:"weather" bson:"weather"`
	Tips     []string    `json:"tips" bson:"tips"`
	// Events are kept sorted ascending by time string after every mutation.
	Events []Event `json:"events" bson:"events"`
	// AccommodationId may dangle; consumers render nothing for a missing key.
	AccommodationID string `json:"accommodationId,omitempty" bson:"accommodationId,omitempty"`
}

type WeatherInfo struct {
	Temperature string `json:"temperature" bson:"temperature"`
	Condition   string `json:"condition" bson:"condition"`
	Clothing    string `json:"clothing" bson:"clothing"`
}

// Event is a single timeline entry within a day. Time is "HH:MM"
// zero-padded, or the free sentinel for unscheduled entries.
type Event struct {
	// ID is assigned at creation; events imported from older documents may
	// not carry one, so (title,time) matching remains as a fallback.
	ID          string         `json:"id,omitempty" bson:"id,omitempty"`
	Time        string         `json:"time" bson:"time"`
	Title       string         `json:"title" bson:"title"`
	Description string         `json:"description" bson:"description"`
	Notes       string         `json:"notes,omitempty" bson:"notes,omitempty"`
	LocationID  string         `json:"locationId,omitempty" bson:"locationId,omitempty"`
	Transport   *TransportInfo `json:"transport,omitempty" bson:"transport,omitempty"`
	Links       []Link         `json:"links,omitempty" bson:"links,omitempty"`
	IsBooked    bool           `json:"isBooked" bson:"isBooked"`
	IsHighlight bool           `json:"isHighlight" bson:"isHighlight"`
}

type LocationDetails struct {
	ID            string `json:"id" bson:"id"`
	Name          string `json:"name" bson:"name"`
	Address       string `json:"address" bson:"address"`
	GoogleMapLink string `json:"googleMapLink,omitempty" bson:"googleMapLink,omitempty"`
	Phone         string `json:"phone,omitempty" bson:"phone,omitempty"`
	MapCode       string `json:"mapCode,omitempty" bson:"mapCode,omitempty"`
	Website       string `json:"website,omitempty" bson:"website,omitempty"`
	Region        string `json:"region,omitempty" bson:"region,omitempty"`
}

type TransportInfo struct {
	Mode     string `json:"mode" bson:"mode"` // drive/train/walk/taxi/flight/boat/bus
	Duration string `json:"duration,omitempty" bson:"duration,omitempty"`
	Price    string `json:"price,omitempty" bson:"price,omitempty"`
	Notes    string `json:"notes,omitempty" bson:"notes,omitempty"`
}

type Accommodation struct {
	ID         string         `json:"id" bson:"id"`
	LocationID string         `json:"locationId" bson:"locationId"`
	CheckIn    string         `json:"checkIn,omitempty" bson:"checkIn,omitempty"`
	CheckOut   string         `json:"checkOut,omitempty" bson:"checkOut,omitempty"`
	Notes      string         `json:"notes,omitempty" bson:"notes,omitempty"`
	Links      []Link         `json:"links,omitempty" bson:"links,omitempty"`
	Transport  *TransportInfo `json:"transport,omitempty" bson:"transport,omitempty"`
}

type Link struct {
	Text string `json:"text" bson:"text"`
	URL  string `json:"url" bson:"url"`
}
