package core

import "math/big"

// Meter estimates the weight of a cache entry. It must be pure, bounded,
// and must never return zero for a non-empty value — otherwise eviction
// cannot make progress under overload.
type Meter interface {
	Measure(k Key, v Value) int
}

// CountMeter weighs every entry as 1, giving a pure LRU-by-count cache.
type CountMeter struct{}

func (CountMeter) Measure(Key, Value) int { return 1 }

// HeapSizeMeter approximates the number of bytes a key/value pair would
// occupy on the heap. It is the production default; max cache size is then
// sized in bytes.
type HeapSizeMeter struct{}

func (HeapSizeMeter) Measure(k Key, v Value) int {
	return keySize(k) + valueSize(v)
}

func keySize(k Key) int {
	// Tag byte + every variant's payload field (account, hash, URef id,
	// rights), since Key holds all of them inline; a constant estimate.
	return 1 + 20 + 32 + 32 + 1
}

func valueSize(v Value) int {
	const wordOverhead = 8
	switch v.Tag {
	case ValueInt32:
		return 4
	case ValueUInt128, ValueUInt256, ValueUInt512:
		var n *big.Int
		switch v.Tag {
		case ValueUInt128:
			n = v.UInt128
		case ValueUInt256:
			n = v.UInt256
		default:
			n = v.UInt512
		}
		if n == nil {
			return wordOverhead
		}
		return (n.BitLen()+7)/8 + wordOverhead
	case ValueNamedKey:
		return len(v.NamedKey.Name) + keySize(v.NamedKey.Key)
	case ValueAccount:
		sz := len(v.Account.PublicKey) + 8 + keySize(v.Account.MainPurse)
		for name, k := range v.Account.Urefs {
			sz += len(name) + keySize(k)
		}
		sz += len(v.Account.AssociatedKeys) * (20 + 1)
		return sz
	case ValueContract:
		sz := len(v.Contract.Bytecode) + 4
		for name, k := range v.Contract.Urefs {
			sz += len(name) + keySize(k)
		}
		return sz
	case ValueOpaque:
		return len(v.Opaque)
	default:
		return wordOverhead
	}
}

