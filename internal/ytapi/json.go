package ytapi

import (
	"strconv"

	"github.com/Jeffail/gabs/v2"
)

// The API encodes statistics counters as JSON strings. These helpers accept
// either encoding and default to the zero value when a field is absent,
// matching the "silently defaulted" policy for optional fields.

func stringAt(j *gabs.Container, path string) string {
	if v, ok := j.Path(path).Data().(string); ok {
		return v
	}

	return ""
}

func intAt(j *gabs.Container, path string) int64 {
	switch v := j.Path(path).Data().(type) {
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0
		}
		return n
	case float64:
		return int64(v)
	default:
		return 0
	}
}

func stringsAt(j *gabs.Container, path string) []string {
	var r []string

	for _, e := range j.Path(path).Children() {
		if v, ok := e.Data().(string); ok {
			r = append(r, v)
		}
	}

	return r
}
