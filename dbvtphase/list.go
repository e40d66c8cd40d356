package dbvtphase

// listAppend threads item onto the front of the stage's intrusive list.
// Grounded on DbvtBroadPhase.cpp's file-local listappend helper.
func (p *Phase) listAppend(item *dbvtProxy, stage int) {
	item.links[0] = nil
	item.links[1] = p.stageRoots[stage]
	if p.stageRoots[stage] != nil {
		p.stageRoots[stage].links[0] = item
	}
	p.stageRoots[stage] = item
}

// listRemove unlinks item from the stage's intrusive list. Grounded on
// DbvtBroadPhase.cpp's file-local listremove helper.
func (p *Phase) listRemove(item *dbvtProxy, stage int) {
	if item.links[0] != nil {
		item.links[0].links[1] = item.links[1]
	} else {
		p.stageRoots[stage] = item.links[1]
	}
	if item.links[1] != nil {
		item.links[1].links[0] = item.links[0]
	}
	item.links[0], item.links[1] = nil, nil
}

// listCount walks a stage's list and returns its length, used only by
// Stats — the hot paths never need a full walk.
func listCount(root *dbvtProxy) int {
	n := 0
	for p := root; p != nil; p = p.links[1] {
		n++
	}
	return n
}
