package collector

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

type scalar interface {
	string | int | int64 | uint64 | float64
}

func parseAs[T scalar](s string) (T, error) {
	var out T
	switch p := any(&out).(type) {
	case *string:
		*p = s
	case *int:
		v, err := strconv.Atoi(s)
		if err != nil {
			return out, err
		}
		*p = v
	case *int64:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return out, err
		}
		*p = v
	case *uint64:
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return out, err
		}
		*p = v
	case *float64:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return out, err
		}
		*p = v
	}
	return out, nil
}

// valueByKey scans path line by line and returns the token that follows the
// first token equal to key, parsed as T. A missing file, a missing key or an
// unparsable value all yield the zero value of T.
func valueByKey[T scalar](path, key string) T {
	var zero T
	f, err := os.Open(path)
	if err != nil {
		return zero
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		fields := strings.Fields(sc.Text())
		for i := 0; i+1 < len(fields); i++ {
			if fields[i] == key {
				v, _ := parseAs[T](fields[i+1])
				return v
			}
		}
	}
	return zero
}

// firstLine returns the first line of path, or "" if it cannot be read.
func firstLine(path string) string {
	f, err := os.Open(path)
	if err != nil {
		return ""
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	if !sc.Scan() {
		return ""
	}
	return sc.Text()
}
