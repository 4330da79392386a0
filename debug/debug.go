// Package debug holds process-wide debug switches, set from the
// environment at startup.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Traverse bool
	Dedup    bool
	Read     bool
}

var d *debug

func init() {
	d = &debug{}
	d.Traverse = boolEnv("LINEAGE_DEBUG_TRAVERSE")
	d.Dedup = boolEnv("LINEAGE_DEBUG_DEDUP")
	d.Read = boolEnv("LINEAGE_DEBUG_READ")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Traverse() bool {
	return d.Traverse
}
func Dedup() bool {
	return d.Dedup
}
func Read() bool {
	return d.Read
}
