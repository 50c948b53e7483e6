package constants

import (
	"fmt"
	"time"
)

// Redis cache keys and TTLs for the discovery service.
// Pattern: clubly:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

// Static Data (Long TTL: rarely changes)
const (
	TTL_STATIC_LONG  = 24 * time.Hour // genre catalogue
	TTL_STATIC_SHORT = 6 * time.Hour  // club profiles
)

// Semi-Static Data
const (
	TTL_SEMI_STATIC_SHORT = 1 * time.Hour    // club price tiers
	TTL_SEMI_STATIC_QUICK = 15 * time.Minute // event details
)

// Dynamic Data (sales move these)
const (
	TTL_DYNAMIC_QUICK  = 2 * time.Minute  // event listings
	TTL_REALTIME_SHORT = 30 * time.Second // availability
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "clubly"
)

// ================== EVENTS MODULE ==================

const (
	CACHE_KEY_EVENTS_LIST        = CACHE_PREFIX + ":events:list:"              // + query hash
	CACHE_KEY_EVENT_DETAIL       = CACHE_PREFIX + ":events:detail:uuid:"       // + event-id
	CACHE_KEY_EVENT_AVAILABILITY = CACHE_PREFIX + ":events:availability:uuid:" // + event-id
)

const (
	TTL_EVENT_LIST         = TTL_DYNAMIC_QUICK     // 2 minutes
	TTL_EVENT_DETAIL       = TTL_SEMI_STATIC_QUICK // 15 minutes
	TTL_EVENT_AVAILABILITY = TTL_REALTIME_SHORT    // 30 seconds
)

// ================== GENRES MODULE ==================

const (
	CACHE_KEY_GENRES_ACTIVE = CACHE_PREFIX + ":genres:active:all"
	CACHE_KEY_GENRE_BY_SLUG = CACHE_PREFIX + ":genres:detail:slug:" // + genre-slug
)

const (
	TTL_GENRES_ACTIVE = TTL_STATIC_LONG // 24 hours
	TTL_GENRE_DETAIL  = TTL_STATIC_LONG // 24 hours
)

// ================== CLUBS MODULE ==================

const (
	CACHE_KEY_CLUB_DETAIL = CACHE_PREFIX + ":clubs:detail:uuid:" // + club-id
	CACHE_KEY_CLUB_TIER   = CACHE_PREFIX + ":clubs:tier:uuid:"   // + club-id
	CACHE_KEY_CLUBS_LIST  = CACHE_PREFIX + ":clubs:list"         // + :city:X:tier:Y:page:Z:limit:W
)

const (
	TTL_CLUB_DETAIL = TTL_STATIC_SHORT      // 6 hours
	TTL_CLUB_TIER   = TTL_SEMI_STATIC_SHORT // 1 hour
	TTL_CLUBS_LIST  = TTL_SEMI_STATIC_SHORT // 1 hour
)

// ================== CACHE INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_EVENT_LISTS = CACHE_PREFIX + ":events:list:*"
	PATTERN_INVALIDATE_EVENT_ALL   = CACHE_PREFIX + ":events:*"
	PATTERN_INVALIDATE_GENRES_ALL  = CACHE_PREFIX + ":genres:*"
)

// ================== HELPER FUNCTIONS ==================

func BuildEventListKey(queryHash string) string {
	return CACHE_KEY_EVENTS_LIST + queryHash
}

func BuildEventDetailKey(eventID string) string {
	return CACHE_KEY_EVENT_DETAIL + eventID
}

func BuildEventAvailabilityKey(eventID string) string {
	return CACHE_KEY_EVENT_AVAILABILITY + eventID
}

func BuildGenreBySlugKey(slug string) string {
	return CACHE_KEY_GENRE_BY_SLUG + slug
}

func BuildClubDetailKey(clubID string) string {
	return CACHE_KEY_CLUB_DETAIL + clubID
}

func BuildClubTierKey(clubID string) string {
	return CACHE_KEY_CLUB_TIER + clubID
}

// BuildClubListKey -> "clubly:clubs:list:city:madrid:tier:HIGH:page:1:limit:20"
func BuildClubListKey(city, tier string, page, limit int) string {
	return fmt.Sprintf("%s:city:%s:tier:%s:page:%d:limit:%d", CACHE_KEY_CLUBS_LIST, city, tier, page, limit)
}
