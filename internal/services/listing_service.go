package services

import (
	"context"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/talentnest247/Talentnest-sub001/domain"
)

// MaxListingLimit caps the number of listings returned by one query
const MaxListingLimit = 100

// ListingServiceImpl implements domain.ListingService
type ListingServiceImpl struct {
	profileRepo domain.ProfileRepository
	log         logrus.FieldLogger
}

// NewListingService creates the public listing service
func NewListingService(profileRepo domain.ProfileRepository, log logrus.FieldLogger) *ListingServiceImpl {
	return &ListingServiceImpl{
		profileRepo: profileRepo,
		log:         log.WithField("component", "listing_service"),
	}
}

// ListVerified returns publicly listable artisans matching the query,
// highest rated first and oldest first among equal ratings.
func (s *ListingServiceImpl) ListVerified(ctx context.Context, query domain.ListingQuery) ([]domain.ArtisanListing, error) {
	profiles, err := s.profileRepo.ListApproved(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]*domain.ProviderProfile, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		if !domain.IsPubliclyListable(p) || !matchesQuery(p, query) {
			continue
		}
		matched = append(matched, p)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].Rating != matched[j].Rating {
			return matched[i].Rating > matched[j].Rating
		}
		return matched[i].CreatedAt.Before(matched[j].CreatedAt)
	})

	if limit := effectiveLimit(query.Limit); limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}

	listings := make([]domain.ArtisanListing, 0, len(matched))
	for _, p := range matched {
		listings = append(listings, domain.ToListing(p))
	}

	s.log.WithFields(logrus.Fields{
		"candidates": len(profiles),
		"returned":   len(listings),
	}).Debug("listed verified artisans")
	return listings, nil
}

func effectiveLimit(limit int) int {
	if limit > MaxListingLimit {
		return MaxListingLimit
	}
	return limit
}

func matchesQuery(p *domain.ProviderProfile, q domain.ListingQuery) bool {
	if search := normalize(q.Search); search != "" {
		fields := append([]string{p.BusinessName, p.Description, p.Bio}, p.Specialization...)
		if !anyContains(fields, search) {
			return false
		}
	}
	if category := normalize(q.Category); category != "" {
		found := false
		for _, s := range p.Specialization {
			if normalize(s) == category {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if location := normalize(q.Location); location != "" {
		if !strings.Contains(normalize(p.Location), location) {
			return false
		}
	}
	return true
}

func anyContains(fields []string, needle string) bool {
	for _, f := range fields {
		if strings.Contains(normalize(f), needle) {
			return true
		}
	}
	return false
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

var _ domain.ListingService = (*ListingServiceImpl)(nil)
