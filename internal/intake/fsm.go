package intake

import (
	"strings"

	"github.com/mmada170699-cpu/RiyadhRE/internal/models"
)

// State is one step of the listing intake conversation. The flow is strictly
// linear; invalid input re-prompts the same state.
type State int

const (
	StateSelectLanguage State = iota
	StateSelectDealKind
	StatePropertyType
	StateDistrict
	StatePrice
	StateSize
	StateBedrooms
	StateBathrooms
	StateDescription
	StateContact
	StateLicense
	StateDeed
	StateLocation
	StatePhotos
	StateSubmitted
)

func (s State) String() string {
	names := []string{
		"select_language", "select_deal_kind", "property_type", "district",
		"price", "size", "bedrooms", "bathrooms", "description", "contact",
		"license", "deed", "location", "photos", "submitted",
	}
	if int(s) < len(names) {
		return names[s]
	}
	return "unknown"
}

type InputKind int

const (
	InputText InputKind = iota
	InputChoice
	InputLocation
	InputPhoto
	InputSkip
	InputDone
)

// Input is one transport-independent conversation turn.
type Input struct {
	Kind      InputKind
	Text      string
	Choice    string
	Latitude  float64
	Longitude float64
	PhotoID   string
}

// Session holds the in-progress draft for one user. Not persisted; a process
// restart drops open conversations.
type Session struct {
	UserID    int64
	OwnerName string
	State     State
	Lang      string
	Draft     models.Listing
}

// Result reports what one input did to the session.
type Result struct {
	State    State
	Advanced bool
	Done     bool
}

func NewSession(userID int64, ownerName string) *Session {
	return &Session{
		UserID:    userID,
		OwnerName: ownerName,
		State:     StateSelectLanguage,
		Lang:      "ar",
	}
}

// Apply feeds one input to the state machine. An input of the wrong kind or
// failing validation leaves the state and the draft untouched.
func (s *Session) Apply(in Input) Result {
	stay := Result{State: s.State}

	switch s.State {
	case StateSelectLanguage:
		if in.Kind != InputChoice || (in.Choice != "ar" && in.Choice != "en") {
			return stay
		}
		s.Lang = in.Choice
		s.Draft.Lang = in.Choice
		return s.advance()

	case StateSelectDealKind:
		if in.Kind != InputChoice || (in.Choice != models.DealSale && in.Choice != models.DealRent) {
			return stay
		}
		s.Draft.DealKind = in.Choice
		return s.advance()

	case StatePropertyType:
		text := strings.TrimSpace(in.Text)
		if in.Kind != InputText || text == "" {
			return stay
		}
		s.Draft.PropertyType = text
		return s.advance()

	case StateDistrict:
		text := strings.TrimSpace(in.Text)
		if in.Kind != InputText || text == "" {
			return stay
		}
		s.Draft.District = text
		return s.advance()

	case StatePrice:
		n, ok := parseAmount(in, 15)
		if !ok {
			return stay
		}
		s.Draft.Price = n
		return s.advance()

	case StateSize:
		n, ok := parseAmount(in, 9)
		if !ok {
			return stay
		}
		s.Draft.AreaSqm = n
		return s.advance()

	case StateBedrooms:
		n, ok := parseAmount(in, 3)
		if !ok {
			return stay
		}
		s.Draft.Bedrooms = int(n)
		return s.advance()

	case StateBathrooms:
		n, ok := parseAmount(in, 3)
		if !ok {
			return stay
		}
		s.Draft.Bathrooms = int(n)
		return s.advance()

	case StateDescription:
		text := strings.TrimSpace(in.Text)
		if in.Kind != InputText || text == "" {
			return stay
		}
		s.Draft.Description = truncate(text, 2048)
		return s.advance()

	case StateContact:
		text := strings.TrimSpace(in.Text)
		if in.Kind != InputText || text == "" {
			return stay
		}
		s.Draft.Contact = text
		return s.advance()

	case StateLicense:
		if in.Kind != InputText {
			return stay
		}
		digits := digitsOnly(in.Text)
		if len(digits) < 7 || len(digits) > 12 {
			return stay
		}
		s.Draft.LicenseNo = digits
		return s.advance()

	case StateDeed:
		if in.Kind == InputSkip {
			s.Draft.DeedNo = ""
			return s.advance()
		}
		if in.Kind != InputText {
			return stay
		}
		digits := digitsOnly(in.Text)
		if len(digits) < 5 || len(digits) > 20 {
			return stay
		}
		s.Draft.DeedNo = digits
		return s.advance()

	case StateLocation:
		// Never rejected: skip is always valid here.
		if in.Kind == InputSkip {
			return s.advance()
		}
		if in.Kind != InputLocation {
			return stay
		}
		lat, lon := in.Latitude, in.Longitude
		s.Draft.Latitude = &lat
		s.Draft.Longitude = &lon
		return s.advance()

	case StatePhotos:
		switch in.Kind {
		case InputPhoto:
			// Photos past the cap are dropped silently, same state.
			if len(s.Draft.PhotoIDs) < models.MaxPhotos && in.PhotoID != "" {
				s.Draft.PhotoIDs = append(s.Draft.PhotoIDs, in.PhotoID)
			}
			return stay
		case InputDone:
			s.State = StateSubmitted
			s.Draft.OwnerID = s.UserID
			s.Draft.OwnerName = s.OwnerName
			s.Draft.Status = models.StatusPending
			return Result{State: s.State, Advanced: true, Done: true}
		}
		return stay
	}

	return stay
}

func (s *Session) advance() Result {
	s.State++
	return Result{State: s.State, Advanced: true}
}

// parseAmount strips the input text to digit characters and parses the run.
// "3,000" becomes 3000. Empty or non-numeric input is rejected; maxDigits
// guards against overflow.
func parseAmount(in Input, maxDigits int) (uint64, bool) {
	if in.Kind != InputText {
		return 0, false
	}
	digits := digitsOnly(in.Text)
	if digits == "" || len(digits) > maxDigits {
		return 0, false
	}
	var n uint64
	for _, r := range digits {
		n = n*10 + uint64(r-'0')
	}
	return n, true
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
