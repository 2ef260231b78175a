package marketing

import (
	"fmt"
	"time"

	"github.com/samber/lo"
	"github.com/yaelle-pmu/studio/services/studio-service/internal/model"
)

type Segment string

const (
	SegmentAll      Segment = "all"
	SegmentRecent   Segment = "recent"
	SegmentInactive Segment = "inactive"
)

const (
	recentWindow   = 90 * 24 * time.Hour
	inactiveWindow = 180 * 24 * time.Hour
)

func ParseSegment(raw string) (Segment, error) {
	switch s := Segment(raw); s {
	case "":
		return SegmentAll, nil
	case SegmentAll, SegmentRecent, SegmentInactive:
		return s, nil
	default:
		return "", fmt.Errorf("unknown segment %q", raw)
	}
}

// Recipients selects the clients a campaign goes to. The client's createdAt stands in
// for the last visit; clients without one count as created at the Unix epoch.
func Recipients(clients []model.Client, segment Segment, now time.Time) []model.Client {
	switch segment {
	case SegmentRecent:
		cutoff := now.Add(-recentWindow)
		return lo.Filter(clients, func(c model.Client, _ int) bool {
			return !model.ParseTimestamp(c.CreatedAt).Before(cutoff)
		})
	case SegmentInactive:
		cutoff := now.Add(-inactiveWindow)
		return lo.Filter(clients, func(c model.Client, _ int) bool {
			return model.ParseTimestamp(c.CreatedAt).Before(cutoff)
		})
	default:
		return clients
	}
}
