package location

import (
	"context"
	"strings"

	"newsease/internal/config"
	"newsease/internal/domain"
	"newsease/internal/ports"
)

// StaticProvider reports a fixed position, useful for headless runs where
// no device location service exists.
type StaticProvider struct {
	status  domain.AuthorizationStatus
	coord   domain.Coordinate
	city    string
	country string
}

var _ ports.LocationProvider = (*StaticProvider)(nil)

// NewStaticProvider builds a provider from the location config section.
// Unknown status strings are treated as not determined.
func NewStaticProvider(cfg config.LocationConfig) *StaticProvider {
	return &StaticProvider{
		status:  parseStatus(cfg.Status),
		coord:   domain.Coordinate{Latitude: cfg.Latitude, Longitude: cfg.Longitude},
		city:    strings.TrimSpace(cfg.City),
		country: strings.TrimSpace(cfg.Country),
	}
}

func (p *StaticProvider) Status() domain.AuthorizationStatus {
	return p.status
}

// CurrentLocation returns the configured coordinate when authorised.
func (p *StaticProvider) CurrentLocation(ctx context.Context) (*domain.Coordinate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.status.Err(); err != nil {
		return nil, err
	}
	coord := p.coord
	return &coord, nil
}

// Address joins the configured city and country.
func (p *StaticProvider) Address(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := p.status.Err(); err != nil {
		return "", err
	}

	var parts []string
	for _, part := range []string{p.city, p.country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "", domain.ErrLocationUnavailable
	}
	return strings.Join(parts, ", "), nil
}

func parseStatus(raw string) domain.AuthorizationStatus {
	switch status := domain.AuthorizationStatus(strings.TrimSpace(raw)); status {
	case domain.AuthorizationAuthorized, domain.AuthorizationDenied, domain.AuthorizationRestricted:
		return status
	default:
		return domain.AuthorizationNotDetermined
	}
}
