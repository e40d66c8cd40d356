package dbvtphase

import (
	"github.com/suprax-engine/broadphase/dbvt"
	"github.com/suprax-engine/broadphase/proxy"
)

// The two DBVT sets a Phase maintains, mirroring DBVTBroadPhase.hpp's
// DynamicSet/FixedSet/CountOfStage enum. A proxy that has migrated out of
// the ring is stamped with the Phase's stageCount as its stage index.
const (
	dynamicSet = 0
	fixedSet   = 1
)

// dbvtProxy is one live proxy's bookkeeping: its public Proxy, the leaf it
// currently occupies in whichever set it belongs to, the stage it was last
// stamped with, and the intrusive doubly-linked list pointers threading it
// into that stage's list. Grounded on DBVTBroadPhase.hpp's DbvtProxy.
type dbvtProxy struct {
	*proxy.Proxy
	leaf  dbvt.NodeIndex
	stage int          // stageCount once migrated out of the ring
	links [2]*dbvtProxy
}
