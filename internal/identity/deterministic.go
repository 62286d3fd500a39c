// Package identity derives stable row ids for snapshot records, so two runs
// over the same document produce the same primary keys.
package identity

import (
	"strconv"
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const keyPrefix = "tripdata"

// Record kinds. Each id key starts with one so keys never collide across tables.
const (
	KindLocation = "location"
	KindTripPart = "trip_part"
	KindTripDay  = "trip_day"
	KindActivity = "activity"
)

// UUID hashes key with go-hashid. An empty key yields uuid.Nil; a hashing
// failure falls back to a name-based SHA1 UUID of the same key.
func UUID(key string) uuid.UUID {
	key = strings.TrimSpace(key)
	if key == "" {
		return uuid.Nil
	}
	id, err := hashid.NewUUID(key, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err == nil && id != uuid.Nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key))
}

// Key joins kind and parts into a prefixed, colon separated id key.
func Key(kind string, parts ...string) string {
	segments := make([]string, 0, len(parts)+2)
	segments = append(segments, keyPrefix, kind)
	for _, part := range parts {
		segments = append(segments, strings.TrimSpace(part))
	}
	return strings.Join(segments, ":")
}

// LocationUUID ignores slug case.
func LocationUUID(slug string) uuid.UUID {
	return UUID(Key(KindLocation, strings.ToLower(slug)))
}

func TripPartUUID(locationID uuid.UUID, day int, date, segmentID string) uuid.UUID {
	return UUID(Key(KindTripPart, locationID.String(), strconv.Itoa(day), date, segmentID))
}

func TripDayUUID(day int, date string) uuid.UUID {
	return UUID(Key(KindTripDay, strconv.Itoa(day), date))
}

// ActivityUUID keys an activity by its day and position since names repeat.
func ActivityUUID(dayID uuid.UUID, position int) uuid.UUID {
	return UUID(Key(KindActivity, dayID.String(), strconv.Itoa(position)))
}
