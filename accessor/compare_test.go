package accessor

import (
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_Siblings(t *testing.T) {
	d := fixture(t)
	f1, _ := d.Accessor("f1")
	f9, _ := d.Accessor("f9")
	r1f3, _ := d.Accessor("r1.f3")
	r1f7, _ := d.Accessor("r1.f7")

	assert.Negative(t, Compare(f1, f9))
	assert.Positive(t, Compare(f9, f1))
	assert.Negative(t, Compare(r1f3, r1f7))
	assert.Zero(t, Compare(f1, f1))
}

func TestCompare_AncestorFirst(t *testing.T) {
	d := fixture(t)
	r3, _ := d.Accessor("r3")
	deep, _ := d.Accessor("r3.r4.r2.f4")

	assert.Negative(t, Compare(r3, deep))
	assert.Positive(t, Compare(deep, r3))
}

func TestCompare_AcrossBranches(t *testing.T) {
	d := fixture(t)
	a, _ := d.Accessor("r1.r2.f6")
	b, _ := d.Accessor("f9")
	c, _ := d.Accessor("r3.f10")

	assert.Negative(t, Compare(a, b), "r1 is before f9")
	assert.Negative(t, Compare(b, c), "f9 is before r3")
	assert.Positive(t, Compare(c, a))
}

func TestSorted_IndependentOfInputOrder(t *testing.T) {
	d := fixture(t)
	nodes := d.Accessors()
	rng := rand.New(rand.NewPCG(1, 2))

	for range 10 {
		rng.Shuffle(len(nodes), func(i, j int) { nodes[i], nodes[j] = nodes[j], nodes[i] })
		got := Sorted(slices.Values(nodes))
		require.Equal(t, fixtureNodes, names(got))
	}
}
