package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-rights-ledger/internal/domain"
)

func TestOwnerIndexAddRemove(t *testing.T) {
	x := newOwnerIndex()
	alice := domain.Identity("did:key:alice")

	t1 := domain.NewTokenID(1, domain.RightsCopyright, 0)
	t2 := domain.NewTokenID(1, domain.RightsCommercial, 1)
	t3 := domain.NewTokenID(1, domain.RightsDisplay, 1)

	x.add(alice, t1)
	x.add(alice, t2)
	x.add(alice, t3)
	require.Equal(t, 3, x.size(alice))

	// removing the middle element swaps the last one into its slot
	x.remove(alice, t2)
	assert.ElementsMatch(t, []domain.TokenID{t1, t3}, x.tokens(alice))
	assert.Equal(t, 1, x.position[t3])

	x.remove(alice, t1)
	assert.ElementsMatch(t, []domain.TokenID{t3}, x.tokens(alice))

	// emptying a holder's set drops the holder entirely
	x.remove(alice, t3)
	assert.Nil(t, x.tokens(alice))
	assert.Zero(t, x.size(alice))
	assert.Empty(t, x.owned)
	assert.Empty(t, x.position)
}

func TestOwnerIndexMove(t *testing.T) {
	x := newOwnerIndex()
	alice := domain.Identity("did:key:alice")
	bob := domain.Identity("did:key:bob")

	t1 := domain.NewTokenID(1, domain.RightsCopyright, 0)
	t2 := domain.NewTokenID(2, domain.RightsCopyright, 0)

	x.add(alice, t1)
	x.add(alice, t2)

	x.move(alice, bob, t1)
	assert.ElementsMatch(t, []domain.TokenID{t2}, x.tokens(alice))
	assert.ElementsMatch(t, []domain.TokenID{t1}, x.tokens(bob))

	x.move(alice, bob, t2)
	assert.Nil(t, x.tokens(alice))
	assert.ElementsMatch(t, []domain.TokenID{t1, t2}, x.tokens(bob))
}

func TestOwnerIndexRemoveUnknownToken(t *testing.T) {
	x := newOwnerIndex()
	alice := domain.Identity("did:key:alice")

	x.add(alice, domain.NewTokenID(1, domain.RightsCopyright, 0))
	x.remove(alice, domain.NewTokenID(9, domain.RightsCopyright, 0))

	assert.Equal(t, 1, x.size(alice))
}

func TestOwnerIndexTokensIsACopy(t *testing.T) {
	x := newOwnerIndex()
	alice := domain.Identity("did:key:alice")

	t1 := domain.NewTokenID(1, domain.RightsCopyright, 0)
	t2 := domain.NewTokenID(2, domain.RightsCopyright, 0)
	x.add(alice, t1)
	x.add(alice, t2)

	got := x.tokens(alice)
	got[0] = domain.NewTokenID(99, domain.RightsCopyright, 0)

	assert.ElementsMatch(t, []domain.TokenID{t1, t2}, x.tokens(alice))
}
