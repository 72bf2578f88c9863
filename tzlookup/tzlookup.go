package tzlookup

import (
	"github.com/ringsaturn/tzf"
	log "github.com/sirupsen/logrus"
)

var finder tzf.F

func init() {
	f, err := tzf.NewDefaultFinder()
	if err != nil {
		log.Errorf("Timezone - failed to initialise finder: %s", err)
		return
	}
	finder = f
}

// TimezoneName returns the IANA timezone at the coordinates, or "" when the
// lookup is unavailable or the point matches nothing.
func TimezoneName(lat, lng float64) string {
	if finder == nil {
		return ""
	}
	return finder.GetTimezoneName(lng, lat)
}
