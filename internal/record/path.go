package record

import (
	"strconv"
	"strings"
)

// NodeSource returns the internal path of a node, "node/<nid>".
func NodeSource(nid int64) string {
	return "node/" + strconv.FormatInt(nid, 10)
}

// ParseNodeSource extracts the nid from an internal path "node/<nid>".
func ParseNodeSource(source string) (int64, bool) {
	rest, ok := strings.CutPrefix(strings.Trim(source, "/"), "node/")
	if !ok {
		return 0, false
	}
	nid, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || nid <= 0 {
		return 0, false
	}
	return nid, true
}
