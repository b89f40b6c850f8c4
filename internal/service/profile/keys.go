package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Canonical key layout. Everything lives in one shared key-value space.
const (
	keyPrefix        = "vocabcoach:v2:"
	profileKeyPrefix = keyPrefix + "profile:"
	sessionKey       = keyPrefix + "session"
	migratedKey      = keyPrefix + "migrated"
	QuarantinePrefix = keyPrefix + "quarantine:"
)

// Legacy key patterns from earlier storage schemes.
const (
	legacyListKey        = "ielts-vocab-list"
	legacyProPrefix      = "ielts_pro_data_"
	legacyKidPrefix      = "kid_english_"
	legacyProSessionKey  = "ielts_pro_current_user"
	legacyKidSessionKey  = "kid_english_current_user"
	legacyDefaultProfile = "default"
)

// ProfileKey returns the storage key for a normalized profile key.
func ProfileKey(key string) string { return profileKeyPrefix + key }

func profileKeyFromStorage(storageKey string) (string, bool) {
	return strings.CutPrefix(storageKey, profileKeyPrefix)
}

func quarantineKey(key string, at time.Time) string {
	return fmt.Sprintf("%s%s:%d", QuarantinePrefix, key, at.UnixMilli())
}

// QuarantineTime extracts the timestamp from a quarantine key.
func QuarantineTime(storageKey string) (time.Time, bool) {
	rest, ok := strings.CutPrefix(storageKey, QuarantinePrefix)
	if !ok {
		return time.Time{}, false
	}
	i := strings.LastIndexByte(rest, ':')
	if i < 0 {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(rest[i+1:], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}
