package champ

import "math/bits"

// bitmap tracks which of a node's 32 positions are occupied. Payload arrays
// are kept dense: the array index for position pos is the number of set bits
// below pos (rank).
type bitmap uint32

func (b bitmap) has(pos uint32) bool { return b&(1<<pos) != 0 }

// rank returns the dense array index for pos among the set bits of b.
func (b bitmap) rank(pos uint32) int {
	return bits.OnesCount32(uint32(b) & (1<<pos - 1))
}

func (b bitmap) set(pos uint32) bitmap { return b | 1<<pos }

func (b bitmap) clear(pos uint32) bitmap { return b &^ (1 << pos) }

func (b bitmap) count() int { return bits.OnesCount32(uint32(b)) }
