package domain

import "strings"

// CertificateDocumentType is the document type required for public listing
const CertificateDocumentType = "certificate"

// ListingQuery filters the public marketplace listing. Zero values mean no filter.
type ListingQuery struct {
	Search   string
	Category string
	Location string
	Limit    int
}

// IsPubliclyListable reports whether a profile may be shown on the public
// marketplace. The owning user must be loaded on the profile.
func IsPubliclyListable(p *ProviderProfile) bool {
	if p == nil || p.User == nil {
		return false
	}
	return p.Status == StatusApproved &&
		p.Checks.All() &&
		strings.TrimSpace(p.Bio) != "" &&
		p.HasDocumentType(CertificateDocumentType) &&
		strings.TrimSpace(p.BusinessName) != "" &&
		strings.TrimSpace(p.User.MatricNumber) != ""
}

// ArtisanListing is the public, display-oriented projection of a provider profile
type ArtisanListing struct {
	ID                uint                `json:"id"`
	BusinessName      string              `json:"business_name"`
	Description       string              `json:"description"`
	Bio               string              `json:"bio"`
	Specialization    []string            `json:"specialization"`
	YearsOfExperience int                 `json:"years_of_experience"`
	Location          string              `json:"location"`
	Rating            float64             `json:"rating"`
	Verified          bool                `json:"verified"`
	Availability      ListingAvailability `json:"availability"`
	Pricing           ListingPricing      `json:"pricing"`
	Provider          ListingProvider     `json:"provider"`
}

type ListingAvailability struct {
	Status string   `json:"status"`
	Days   []string `json:"days"`
}

type ListingPricing struct {
	HourlyRate float64 `json:"hourly_rate"`
	Currency   string  `json:"currency"`
}

type ListingProvider struct {
	UserID   uint   `json:"user_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

// ToListing projects a listable profile for display
func ToListing(p *ProviderProfile) ArtisanListing {
	listing := ArtisanListing{
		ID:                p.ID,
		BusinessName:      p.BusinessName,
		Description:       p.Description,
		Bio:               p.Bio,
		Specialization:    nonNil(p.Specialization),
		YearsOfExperience: p.YearsOfExperience,
		Location:          p.Location,
		Rating:            p.Rating,
		Verified:          p.Status == StatusApproved,
		Availability: ListingAvailability{
			Status: p.AvailabilityStatus,
			Days:   nonNil(p.AvailableDays),
		},
		Pricing: ListingPricing{
			HourlyRate: p.HourlyRate,
			Currency:   p.Currency,
		},
	}
	if p.User != nil {
		listing.Provider = ListingProvider{
			UserID:   p.User.ID,
			FullName: p.User.FullName,
			Email:    p.User.Email,
			Phone:    p.User.Phone,
		}
	}
	return listing
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
