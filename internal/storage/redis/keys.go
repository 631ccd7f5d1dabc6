package redis

import (
	"fmt"

	"github.com/mkoskinen/inviteboard/internal/model"
)

// Key prefix for all leaderboard data
const keyPrefix = "inviteboard"

// entryKey returns the Redis key for a participant's Entry
func entryKey(id model.UserID) string {
	return fmt.Sprintf("%s:entry:%s", keyPrefix, id)
}

// arrivalKey returns the Redis key for the LIST of user ids in
// arrival order, which backs the ranked view's stable tie-break
func arrivalKey() string {
	return fmt.Sprintf("%s:arrival", keyPrefix)
}
