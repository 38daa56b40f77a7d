package services

// attrSet is a bitset over region-local attraction indices.
// with returns a new set; the receiver is never modified, so sibling
// search branches cannot observe each other's additions.
type attrSet []uint64

func newAttrSet(n int) attrSet {
	return make(attrSet, (n+63)/64)
}

func (s attrSet) has(i int) bool {
	return s[i/64]&(1<<(uint(i)%64)) != 0
}

func (s attrSet) with(idx []int) attrSet {
	out := make(attrSet, len(s))
	copy(out, s)
	for _, i := range idx {
		out[i/64] |= 1 << (uint(i) % 64)
	}
	return out
}
