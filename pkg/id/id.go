package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

var (
	mu   sync.Mutex
	mono io.Reader
	now  = time.Now
)

func init() {
	// ulid.Monotonic keeps ids created within the same millisecond increasing,
	// so two log entries added back to back still sort in creation order.
	var seed int64
	_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	mono = ulid.Monotonic(rand.New(rand.NewSource(seed)), 0)
}

// New returns a ULID string for a trade log entry.
func New() string {
	mu.Lock()
	defer mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(now().UTC()), mono)
	if err != nil {
		panic(err)
	}
	return id.String()
}

// Time returns the creation time encoded in a ULID string.
// Ids that are not ULIDs (imported from older backups) report ok=false.
func Time(s string) (t time.Time, ok bool) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, false
	}
	return ulid.Time(u.Time()), true
}

// Less orders two ids by creation. ULIDs compare lexically; legacy numeric
// ids (millisecond timestamps) compare by length first so "999" < "1000".
func Less(a, b string) bool {
	if len(a) != len(b) && isDigits(a) && isDigits(b) {
		return len(a) < len(b)
	}
	return a < b
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
