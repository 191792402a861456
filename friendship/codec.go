package friendship

import (
	"strconv"
	"strings"
)

// The cache value is a comma-joined friend-id list. The set-of-ids shape
// exists only in memory; this file is the single place the string encoding
// is produced or consumed.

// decodeIDs parses a comma-joined id list. Empty values and empty tokens
// are tolerated: historic writers appended ",<id>" to an empty value, so
// strings like ",3" occur in the wild.
func decodeIDs(raw string) []int64 {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// encodeIDs joins ids into the cache encoding.
func encodeIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

// appendID appends one id to an already-encoded list.
func appendID(raw string, id int64) string {
	tok := strconv.FormatInt(id, 10)
	if raw == "" {
		return tok
	}
	return raw + "," + tok
}
