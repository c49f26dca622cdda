package redis

import (
	"fmt"

	"github.com/mcoot/candyledger/internal/storage"
)

// familyKey returns the Redis key holding a whole family
func familyKey(prefix string, f storage.Family) string {
	return fmt.Sprintf("%s:%s", prefix, f)
}
