// Package card turns stored profiles into shareable card views, QR codes and
// PNG exports.
package card

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"profilecard/internal/models"
)

// Placeholder stands in for absent optional values.
const Placeholder = "N/A"

// Mode selects what a card's QR code encodes.
type Mode string

const (
	// ModeDefault picks the kind's usual payload: a summary for students, a link otherwise.
	ModeDefault Mode = ""
	ModeSummary Mode = "summary"
	ModeLink    Mode = "link"
)

// ParseMode validates a QR mode query value.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeDefault, ModeSummary, ModeLink:
		return m, nil
	}
	return ModeDefault, fmt.Errorf("unknown qr mode %q", s)
}

// Field is one labelled line on a card.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// List is a titled repeated section such as education or products.
type List struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// View is everything needed to display or rasterize a card.
type View struct {
	Kind       models.Kind `json:"kind"`
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Subtitle   string      `json:"subtitle"`
	Photo      string      `json:"photo,omitempty"`
	Logo       string      `json:"logo,omitempty"`
	BrandColor string      `json:"brandColor"`
	Fields     []Field     `json:"fields"`
	Lists      []List      `json:"lists"`
	QRMode     Mode        `json:"qrMode"`
	QR         string      `json:"qr"`
}

// Build derives the card view of p. Share links are rooted at baseURL.
// QRMode reports the payload actually used. It never mutates p.
func Build(p models.Profile, baseURL string, mode Mode) View {
	v := View{
		Kind:       p.Kind(),
		ID:         p.GetBase().ID,
		BrandColor: models.DefaultBrandColor,
		Fields:     []Field{},
		Lists:      []List{},
	}
	var summary map[string]string

	switch r := p.(type) {
	case *models.Student:
		v.Title, v.Subtitle = r.Name, r.School
		v.Photo, v.Logo = r.Photo, r.Logo
		v.field("ID Number", r.IDNumber)
		v.field("Age", strconv.Itoa(r.Age))
		v.field("Contact", r.StudentContact)
		v.field("Email", r.StudentEmail)
		v.field("Parent Contact", r.ParentContact)
		v.field("Parent Email", r.ParentEmail)
		v.field("Address", r.Address)
		socials := v.socials(r.Instagram, r.Facebook, r.LinkedIn, r.Twitter, r.Website)
		summary = map[string]string{"Name": r.Name, "ID": r.IDNumber, "School": r.School, "Contact": r.StudentContact}
		mergeNonEmpty(summary, socials)

	case *models.BioData:
		v.Title, v.Subtitle = r.FullName, r.Location
		v.Photo = r.Photo
		v.field("Date of Birth", r.DOB)
		v.field("Height", measure(r.Height, "cm"))
		v.field("Weight", measure(r.Weight, "kg"))
		v.field("Religion", r.Religion)
		v.field("Mother Tongue", r.MotherTongue)
		v.field("Nationality", r.Nationality)
		v.field("Phone", r.Phone)
		v.field("Email", r.Email)
		v.field("Address", r.Address)
		v.field("Parents", r.Parents)
		v.field("Siblings", r.Siblings)
		v.field("Personality", r.Personality)
		v.field("Hobbies", r.Hobbies)
		v.field("Preferences", r.Preferences)
		items := make([]string, 0, len(r.Education))
		for _, e := range r.Education {
			items = append(items, education(e))
		}
		v.list("Education", items)
		summary = map[string]string{"Name": r.FullName, "Phone": r.Phone, "Email": r.Email, "Location": r.Location}

	case *models.Professional:
		v.Title, v.Subtitle = r.FullName, r.Designation
		v.Photo, v.Logo = r.Photo, r.Logo
		v.field("Company", r.Company)
		v.field("Mobile", r.Mobile)
		v.field("Email", r.Email)
		v.field("Address", r.Address)
		v.field("About", r.Description)
		v.field("Services", r.Services)
		v.field("WhatsApp", r.WhatsApp)
		v.field("Location", r.Location)
		socials := v.socials(r.Instagram, r.Facebook, r.LinkedIn, r.Twitter, r.Website)
		items := make([]string, 0, len(r.ProductsAndServices))
		for _, pr := range r.ProductsAndServices {
			items = append(items, product(pr))
		}
		v.list("Products & Services", items)
		v.list("YouTube", r.YoutubeLinks)
		if r.Payment != nil {
			v.field("UPI ID", r.Payment.UPIID)
			v.field("Account Holder", r.Payment.AccountHolder)
		}
		summary = map[string]string{"Name": r.FullName, "Company": r.Company, "Mobile": r.Mobile, "Email": r.Email}
		mergeNonEmpty(summary, map[string]string{"Services": r.Services})
		mergeNonEmpty(summary, socials)

	case *models.BuyerCard:
		v.Title, v.Subtitle = r.Name, r.Email
		v.BrandColor = colorOr(r.BrandColor)
		v.field("Email", r.Email)
		v.field("Phone", r.Phone)
		v.field("Address", r.Address)
		v.list("Product Codes", r.ProductCodes)
		summary = map[string]string{"Name": r.Name, "Email": r.Email, "Phone": r.Phone}

	case *models.Seller:
		v.Title, v.Subtitle = r.BusinessName, r.Owner
		v.Logo = r.Logo
		v.BrandColor = colorOr(r.BrandColor)
		v.field("Owner", r.Owner)
		v.field("Mobile", r.Mobile)
		v.field("Address", r.Address)
		v.list("Permits", r.Permits)
		summary = map[string]string{"Owner": r.Owner, "Business": r.BusinessName, "Mobile": r.Mobile}
	}

	if mode == ModeDefault {
		mode = ModeLink
		if v.Kind == models.KindStudent {
			mode = ModeSummary
		}
	}
	if mode == ModeSummary {
		v.QR = encodeSummary(summary)
		// A summary past QR capacity falls back to the share link.
		if !Encodable(v.QR) {
			mode = ModeLink
		}
	}
	if mode == ModeLink {
		v.QR = ShareLink(baseURL, v.Kind, v.ID)
	}
	v.QRMode = mode
	return v
}

// ShareLink is the public deep link of a stored card.
func ShareLink(baseURL string, kind models.Kind, id string) string {
	return strings.TrimRight(baseURL, "/") + "/" + kind.ShareSegment() + "/" + id
}

func (v *View) field(label, value string) {
	v.Fields = append(v.Fields, Field{Label: label, Value: orPlaceholder(value)})
}

func (v *View) list(title string, items []string) {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	if len(out) == 0 {
		out = append(out, Placeholder)
	}
	v.Lists = append(v.Lists, List{Title: title, Items: out})
}

// socials adds the social fields and returns the non-empty ones for QR summaries.
func (v *View) socials(instagram, facebook, linkedin, twitter, website string) map[string]string {
	pairs := []Field{
		{"Instagram", instagram}, {"Facebook", facebook}, {"LinkedIn", linkedin},
		{"Twitter", twitter}, {"Website", website},
	}
	out := make(map[string]string)
	for _, p := range pairs {
		v.field(p.Label, p.Value)
		if strings.TrimSpace(p.Value) != "" {
			out[p.Label] = p.Value
		}
	}
	return out
}

func mergeNonEmpty(dst, src map[string]string) {
	for k, val := range src {
		if strings.TrimSpace(val) != "" {
			dst[k] = val
		}
	}
}

func encodeSummary(summary map[string]string) string {
	// Map keys marshal sorted, so the payload is stable.
	b, err := json.Marshal(summary)
	if err != nil {
		return "{}"
	}
	return string(b)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}

func colorOr(c string) string {
	if strings.TrimSpace(c) == "" {
		return models.DefaultBrandColor
	}
	return c
}

func measure(v *float64, unit string) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64) + " " + unit
}

func education(e models.Education) string {
	s := orPlaceholder(e.Degree) + ", " + orPlaceholder(e.Institution)
	if e.Year != 0 {
		s += fmt.Sprintf(" (%d)", e.Year)
	}
	if e.Specialization != "" {
		s += " - " + e.Specialization
	}
	return s
}

func product(p models.Product) string {
	s := p.Title
	if p.Price > 0 {
		s += " - " + strings.TrimSpace(p.Currency+" "+strconv.FormatFloat(p.Price, 'f', -1, 64))
	}
	return s
}
