// Package geo resolves the user's current position.
package geo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/coocood/freecache"
	"github.com/ipinfo/go/v2/ipinfo"
	"github.com/misterclayt0n/mapty/internal/config"
	"github.com/misterclayt0n/mapty/internal/models"

	log "github.com/sirupsen/logrus"
)

// ErrNoPosition is returned when a provider has no usable position.
var ErrNoPosition = errors.New("position unavailable")

// Static always reports the same coordinates.
type Static struct {
	Coords models.Coordinates
}

func (s Static) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return models.Coordinates{}, err
	}
	return s.Coords, nil
}

const (
	positionCacheKey    = "position"
	positionCacheExpire = 10 * 60 // seconds
	positionCacheSize   = 512 * 1024
)

// IPInfoLocator asks ipinfo.io where the caller's public IP is. A resolved
// location is cached for ten minutes.
type IPInfoLocator struct {
	lookup func() (string, error)
	cache  *freecache.Cache
}

func NewIPInfoLocator(token string, httpClient *http.Client) *IPInfoLocator {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	client := ipinfo.NewClient(httpClient, nil, token)
	return newIPInfoLocator(func() (string, error) {
		core, err := client.GetIPInfo(nil)
		if err != nil {
			return "", err
		}
		return core.Location, nil
	})
}

func newIPInfoLocator(lookup func() (string, error)) *IPInfoLocator {
	return &IPInfoLocator{
		lookup: lookup,
		cache:  freecache.NewCache(positionCacheSize),
	}
}

func (l *IPInfoLocator) CurrentPosition(ctx context.Context) (models.Coordinates, error) {
	if loc, err := l.cache.Get([]byte(positionCacheKey)); err == nil {
		log.Tracef("found position %s in cache", loc)
		return ParseLoc(string(loc))
	}

	type result struct {
		loc string
		err error
	}

	// The ipinfo client does not take a context; the http client timeout
	// bounds the goroutine.
	done := make(chan result, 1)
	go func() {
		loc, err := l.lookup()
		done <- result{loc, err}
	}()

	select {
	case <-ctx.Done():
		return models.Coordinates{}, ctx.Err()
	case res := <-done:
		if res.err != nil {
			return models.Coordinates{}, fmt.Errorf("ipinfo lookup: %w", res.err)
		}
		coords, err := ParseLoc(res.loc)
		if err != nil {
			return models.Coordinates{}, err
		}
		if err := l.cache.Set([]byte(positionCacheKey), []byte(res.loc), positionCacheExpire); err != nil {
			log.Errorf("failed to cache position %s: %s", res.loc, err)
		}
		return coords, nil
	}
}

// ParseLoc parses ipinfo's "lat,lng" location field.
func ParseLoc(loc string) (models.Coordinates, error) {
	parts := strings.Split(loc, ",")
	if len(parts) != 2 {
		return models.Coordinates{}, fmt.Errorf("%w: malformed location %q", ErrNoPosition, loc)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: latitude: %w", ErrNoPosition, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return models.Coordinates{}, fmt.Errorf("%w: longitude: %w", ErrNoPosition, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return models.Coordinates{}, fmt.Errorf("%w: %q out of range", ErrNoPosition, loc)
	}
	return models.Coordinates{lat, lng}, nil
}

// Locator is satisfied by every provider in this package.
type Locator interface {
	CurrentPosition(ctx context.Context) (models.Coordinates, error)
}

// New returns the provider selected by cfg.
func New(cfg config.GeolocationConfig) (Locator, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderStatic:
		return Static{Coords: models.Coordinates{cfg.Latitude, cfg.Longitude}}, nil
	case config.ProviderIPInfo:
		return NewIPInfoLocator(cfg.IPInfoToken, nil), nil
	default:
		return nil, fmt.Errorf("unknown geolocation provider %q", cfg.Provider)
	}
}
