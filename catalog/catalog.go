// Package catalog reads point-source angular-coordinate tables: one source
// per line, galactic longitude and latitude in degrees, with # starting a
// comment.
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// A Catalog holds the angular coordinates of a set of point sources. It is
// read-only after loading.
type Catalog struct {
	lon []float64
	lat []float64
}

// Load parses a catalog from r.
func Load(r io.Reader) (*Catalog, error) {
	c := &Catalog{}
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf(
				"catalog: line %d: need longitude and latitude, got %q", lineNo, line)
		}
		lon, err1 := strconv.ParseFloat(fields[0], 64)
		lat, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf(
				"catalog: line %d: malformed coordinates %q", lineNo, line)
		}
		if lat < -90 || lat > 90 {
			return nil, fmt.Errorf(
				"catalog: line %d: latitude %g out of range", lineNo, lat)
		}
		c.lon = append(c.lon, lon)
		c.lat = append(c.lat, lat)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	return c, nil
}

// LoadFile parses a catalog from a file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Len returns the number of sources.
func (c *Catalog) Len() int {
	return len(c.lon)
}

// Coords returns the longitude and latitude of source i, in degrees.
func (c *Catalog) Coords(i int) (lon, lat float64) {
	return c.lon[i], c.lat[i]
}
