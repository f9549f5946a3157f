package pool

import "strconv"

// Handle references a pool slot. The low 32 bits hold the slot index plus
// one, the high 32 bits the slot generation. The zero Handle is invalid.
type Handle uint64

type slotID uint32
type generation uint32

const slotIDBits = 32

const InvalidHandle Handle = 0

func makeHandle(id slotID, gen generation) Handle {
	return Handle(uint64(gen)<<slotIDBits | uint64(id))
}

func (h Handle) id() slotID {
	return slotID(uint32(h))
}

func (h Handle) generation() generation {
	return generation(uint32(uint64(h) >> slotIDBits))
}

func (h Handle) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

func (h Handle) Valid() bool {
	return h.id() > 0
}
