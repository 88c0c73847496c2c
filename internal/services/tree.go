package services

import (
	"sort"

	"github.com/decidly/backend/internal/models"
)

// buildTreeView derives the per-member neighbor structure from the stored
// members and relations. Every stored edge contributes two entries: the edge
// as written on the from side and the synthesized inverse on the to side, so
// a single parent row is enough for the child to report its parent. The
// graph may be disconnected; no root is assumed.
func buildTreeView(applicationID uint, members []models.Member, relations []models.Relation) *models.TreeView {
	byID := make(map[uint]*models.Member, len(members))
	for i := range members {
		byID[members[i].ID] = &members[i]
	}

	relatives := make(map[uint]map[models.RelationType][]models.TreeRelative, len(members))
	add := func(ownerID uint, t models.RelationType, other *models.Member) {
		if relatives[ownerID] == nil {
			relatives[ownerID] = make(map[models.RelationType][]models.TreeRelative)
		}
		relatives[ownerID][t] = append(relatives[ownerID][t], models.TreeRelative{
			MemberID:   other.ID,
			Nickname:   other.Nickname,
			Gender:     other.Gender,
			AvatarType: other.AvatarType,
		})
	}

	for _, rel := range relations {
		from, okFrom := byID[rel.FromMemberID]
		to, okTo := byID[rel.ToMemberID]
		if !okFrom || !okTo {
			// Edge referencing a member outside this application's load;
			// skip rather than render a half-edge.
			continue
		}
		add(from.ID, rel.Type, to)
		add(to.ID, rel.Type.Inverse(), from)
	}

	view := &models.TreeView{
		ApplicationID:  applicationID,
		Members:        make([]models.TreeMember, 0, len(members)),
		CycleMemberIDs: ancestryCycles(members, relations),
	}
	for _, m := range members {
		tm := models.TreeMember{Member: m, Relatives: relatives[m.ID]}
		if tm.Relatives == nil {
			tm.Relatives = map[models.RelationType][]models.TreeRelative{}
		}
		view.Members = append(view.Members, tm)
	}
	return view
}

// ancestryCycles finds members sitting on a cycle of parent/child edges.
// Both relation directions are normalized to parent → child arcs first, then
// a three-color DFS walks each component. A cycle in the ancestry data is a
// data integrity problem (someone is their own ancestor); the ids are
// reported on the view so the caller can surface it, and the traversal
// itself terminates regardless.
func ancestryCycles(members []models.Member, relations []models.Relation) []uint {
	children := make(map[uint][]uint)
	for _, rel := range relations {
		switch rel.Type {
		case models.RelationParent:
			children[rel.FromMemberID] = append(children[rel.FromMemberID], rel.ToMemberID)
		case models.RelationChild:
			children[rel.ToMemberID] = append(children[rel.ToMemberID], rel.FromMemberID)
		}
	}

	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[uint]int, len(members))
	onCycle := make(map[uint]bool)

	var visit func(id uint, stack []uint)
	visit = func(id uint, stack []uint) {
		color[id] = gray
		stack = append(stack, id)
		for _, child := range children[id] {
			switch color[child] {
			case white:
				visit(child, stack)
			case gray:
				// Back edge: everything from child's position on the
				// stack down to id is on the cycle.
				for i := len(stack) - 1; i >= 0; i-- {
					onCycle[stack[i]] = true
					if stack[i] == child {
						break
					}
				}
			}
		}
		color[id] = black
	}

	for _, m := range members {
		if color[m.ID] == white {
			visit(m.ID, nil)
		}
	}

	if len(onCycle) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(onCycle))
	for id := range onCycle {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
