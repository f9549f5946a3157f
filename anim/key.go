package anim

import (
	"fmt"
	"math"
)

// Key packs a Tag and a CardinalDir: tag in the high 32 bits, direction in
// the low 32 bits.
type Key uint64

const InvalidKey Key = math.MaxUint64

func PackKey(tag Tag, dir CardinalDir) Key {
	return Key(uint64(tag)<<32 | uint64(dir))
}

func UnpackKey(k Key) (Tag, CardinalDir) {
	return k.Tag(), k.Dir()
}

func (k Key) Tag() Tag         { return Tag(uint64(k) >> 32) }
func (k Key) Dir() CardinalDir { return CardinalDir(uint32(k)) }

func (k Key) String() string {
	if k == InvalidKey {
		return "invalid"
	}
	return fmt.Sprintf("%d/%s", k.Tag(), k.Dir())
}
