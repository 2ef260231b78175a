package model

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

const (
	PrefixAppointment = "apt"
	PrefixClient      = "client"
	PrefixTreatment   = "treatment"
	PrefixPost        = "post"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// IDGenerator mints record ids of the form <prefix>_<base36 unix millis><6 base36 chars>.
type IDGenerator struct {
	now  func() time.Time
	rand *rand.Rand
}

func NewIDGenerator(now func() time.Time, r *rand.Rand) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	if r == nil {
		r = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &IDGenerator{now: now, rand: r}
}

// New is not safe for concurrent use; the storage layer calls it under its write lock.
func (g *IDGenerator) New(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(g.now().UnixMilli(), 36))
	for i := 0; i < 6; i++ {
		b.WriteByte(idAlphabet[g.rand.IntN(len(idAlphabet))])
	}
	return b.String()
}
