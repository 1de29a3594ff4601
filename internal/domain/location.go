package domain

import "errors"

// AuthorizationStatus models the platform location permission state.
type AuthorizationStatus string

const (
	AuthorizationNotDetermined AuthorizationStatus = "notDetermined"
	AuthorizationDenied        AuthorizationStatus = "denied"
	AuthorizationRestricted    AuthorizationStatus = "restricted"
	AuthorizationAuthorized    AuthorizationStatus = "authorized"
)

// Authorized reports whether location may be read.
func (s AuthorizationStatus) Authorized() bool {
	return s == AuthorizationAuthorized
}

// Err maps a non-authorised status to its error, nil when authorised.
func (s AuthorizationStatus) Err() error {
	switch s {
	case AuthorizationAuthorized:
		return nil
	case AuthorizationDenied:
		return ErrLocationDenied
	case AuthorizationRestricted:
		return ErrLocationRestricted
	default:
		return ErrLocationNotDetermined
	}
}

var (
	ErrLocationNotDetermined = errors.New("location permission not determined")
	ErrLocationDenied        = errors.New("location access denied")
	ErrLocationRestricted    = errors.New("location access restricted")
	ErrLocationUnavailable   = errors.New("location unavailable")
	ErrLocationStale         = errors.New("location reading stale or inaccurate")
)

// LocationMessage turns a location error into the message shown to the user.
func LocationMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrLocationDenied), errors.Is(err, ErrLocationRestricted):
		return "Location access is required for local news. Please enable location services in Settings."
	case errors.Is(err, ErrLocationNotDetermined):
		return "Allow location access to see local news."
	case errors.Is(err, ErrLocationUnavailable), errors.Is(err, ErrLocationStale):
		return "Unable to determine location. Please try again."
	default:
		return "Location error: " + err.Error()
	}
}
