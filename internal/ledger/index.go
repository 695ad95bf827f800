package ledger

import "github.com/feral-file/ff-rights-ledger/internal/domain"

// ownerIndex maintains the live set of owned tokens per identity: a growable
// slice per holder plus a global token -> position map so removal swaps the
// last element in and shrinks, O(1). A token has exactly one owner, so one
// position map serves all holders.
type ownerIndex struct {
	owned    map[domain.Identity][]domain.TokenID
	position map[domain.TokenID]int
}

func newOwnerIndex() *ownerIndex {
	return &ownerIndex{
		owned:    make(map[domain.Identity][]domain.TokenID),
		position: make(map[domain.TokenID]int),
	}
}

// add appends the token to the holder's set.
func (x *ownerIndex) add(owner domain.Identity, token domain.TokenID) {
	x.position[token] = len(x.owned[owner])
	x.owned[owner] = append(x.owned[owner], token)
}

// remove deletes the token from the holder's set by swapping the last
// element into its slot.
func (x *ownerIndex) remove(owner domain.Identity, token domain.TokenID) {
	pos, ok := x.position[token]
	if !ok {
		return
	}

	list := x.owned[owner]
	last := len(list) - 1
	if pos != last {
		moved := list[last]
		list[pos] = moved
		x.position[moved] = pos
	}
	list = list[:last]
	delete(x.position, token)

	if len(list) == 0 {
		delete(x.owned, owner)
		return
	}
	x.owned[owner] = list
}

// move reassigns the token between holders.
func (x *ownerIndex) move(from, to domain.Identity, token domain.TokenID) {
	x.remove(from, token)
	x.add(to, token)
}

// tokens returns a copy of the holder's current set. Order is not
// meaningful; swap removal does not preserve it.
func (x *ownerIndex) tokens(owner domain.Identity) []domain.TokenID {
	list := x.owned[owner]
	if len(list) == 0 {
		return nil
	}
	out := make([]domain.TokenID, len(list))
	copy(out, list)
	return out
}

// size returns the number of tokens currently held by the identity.
func (x *ownerIndex) size(owner domain.Identity) int {
	return len(x.owned[owner])
}
