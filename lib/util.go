package lib

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand"
	"strings"
)

// Randomizer returns a *rand.Rand deterministically seeded from seed, so
// the same seed always yields the same sequence.
func Randomizer(seed int64) *rand.Rand {
	hsh := sha256.New()
	hsh.Write([]byte(fmt.Sprintf("meshwave planner seed %d", seed)))
	rdr := bytes.NewReader(hsh.Sum(nil))
	v, _ := binary.ReadVarint(rdr)
	return rand.New(rand.NewSource(v))
}

// timespan units in ascending order, used to render solver/pipeline
// elapsed time in logs.
var timespans = []struct {
	num  int64
	symb rune
}{{60, 's'}, {60, 'm'}, {24, 'h'}, {365, 'd'}, {-1, 'y'}}

// FormatDuration formats a number of seconds as "1h 3m 2s" etc.
func FormatDuration(v int64) string {
	out := ""
	var r int64
	for idx := 0; v != 0; idx++ {
		d := timespans[idx].num
		if d < 0 {
			r, v = v, 0
		} else {
			r = v % d
			v /= d
		}
		out = fmt.Sprintf("%d%c ", r, timespans[idx].symb) + out
	}
	return strings.TrimRight(out, " ")
}
