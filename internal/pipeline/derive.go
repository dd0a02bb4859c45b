package pipeline

import (
	"github.com/sells-group/fleet-cli/internal/model"
)

// AssignPathIDs numbers trips 1..N in table order. It must run after every
// source has been concatenated so IDs are dense and unique.
func AssignPathIDs(trips []model.Trip) {
	for i := range trips {
		trips[i].PathID = i + 1
	}
}
