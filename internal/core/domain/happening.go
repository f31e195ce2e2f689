package domain

import "time"

// DefaultCoverURL is used for happenings created without a cover image.
const DefaultCoverURL = "https://media.promosynch.com/promosynch/default-cover.jpg"

// Attendee is a client registered to a happening. Attendees are embedded in
// the happening document; they have no account and no credentials.
type Attendee struct {
	ID          string `json:"id" bson:"id,omitempty"`
	HappeningID string `json:"happeningId" bson:"happening_id,omitempty"`
	Name        string `json:"name" bson:"name"`
	Surname     string `json:"surname" bson:"surname"`
	Email       string `json:"email" bson:"email"`
	DateOfBirth string `json:"dateOfBirth,omitempty" bson:"date_of_birth,omitempty"`
	CheckedIn   bool   `json:"checkedIn" bson:"checked_in"`
	Role        string `json:"role" bson:"role"`
}

// Matches reports whether an incoming registration identifies the same
// person as this attendee. The match is exact on every identity field.
func (a Attendee) Matches(name, surname, email, dateOfBirth string) bool {
	return a.Name == name &&
		a.Surname == surname &&
		a.Email == email &&
		a.DateOfBirth == dateOfBirth
}

// Happening is an event created by a promoter, carrying its attendee list.
type Happening struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	Cover       string     `json:"cover,omitempty"`
	PromoterID  string     `json:"promoter"`
	TicketPrice string     `json:"ticketPrice,omitempty"`
	Location    string     `json:"location"`
	Description string     `json:"description"`
	Attendees   []Attendee `json:"clients"`
}

// FindAttendee returns the first attendee matching the given identity
// fields, or nil when none is registered.
func (h *Happening) FindAttendee(name, surname, email, dateOfBirth string) *Attendee {
	for i := range h.Attendees {
		if h.Attendees[i].Matches(name, surname, email, dateOfBirth) {
			return &h.Attendees[i]
		}
	}
	return nil
}
