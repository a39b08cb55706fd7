package core

import (
	"fmt"
	"math/big"
)

// ValueTag discriminates the variant held by a Value.
type ValueTag uint8

const (
	ValueInt32 ValueTag = iota
	ValueUInt128
	ValueUInt256
	ValueUInt512
	ValueNamedKey
	ValueAccount
	ValueContract
	ValueOpaque
)

func (t ValueTag) String() string {
	switch t {
	case ValueInt32:
		return "Int32"
	case ValueUInt128:
		return "UInt128"
	case ValueUInt256:
		return "UInt256"
	case ValueUInt512:
		return "UInt512"
	case ValueNamedKey:
		return "NamedKey"
	case ValueAccount:
		return "Account"
	case ValueContract:
		return "Contract"
	case ValueOpaque:
		return "Opaque"
	default:
		return "Unknown"
	}
}

// bit widths for the unsigned integer variants; addition on these wraps
// modulo 2^width, mirroring the wrapping arithmetic of typical chain VMs
// (e.g. the EVM's u256) and keeping composition associative.
const (
	uint128Bits = 128
	uint256Bits = 256
	uint512Bits = 512
)

// NamedKeyBinding is a single (name -> key) binding; as a Value it is only
// ever used as the payload of an Add, extending an Account/Contract's
// named-reference map.
type NamedKeyBinding struct {
	Name string
	Key  Key
}

// Account carries the named-reference map queries walk through, plus
// auxiliary fields the query evaluator does not interpret.
type Account struct {
	PublicKey      []byte
	Nonce          uint64
	Urefs          map[string]Key
	AssociatedKeys map[Address]uint8
	MainPurse      Key
}

func (a *Account) clone() *Account {
	if a == nil {
		return nil
	}
	out := &Account{
		PublicKey:      append([]byte(nil), a.PublicKey...),
		Nonce:          a.Nonce,
		MainPurse:      a.MainPurse,
		Urefs:          make(map[string]Key, len(a.Urefs)),
		AssociatedKeys: make(map[Address]uint8, len(a.AssociatedKeys)),
	}
	for k, v := range a.Urefs {
		out.Urefs[k] = v
	}
	for k, v := range a.AssociatedKeys {
		out.AssociatedKeys[k] = v
	}
	return out
}

// Contract carries a named-reference map plus opaque bytecode.
type Contract struct {
	Bytecode        []byte
	Urefs           map[string]Key
	ProtocolVersion uint32
}

func (c *Contract) clone() *Contract {
	if c == nil {
		return nil
	}
	return &Contract{
		Bytecode:        append([]byte(nil), c.Bytecode...),
		Urefs:           cloneKeyMap(c.Urefs),
		ProtocolVersion: c.ProtocolVersion,
	}
}

func cloneKeyMap(m map[string]Key) map[string]Key {
	out := make(map[string]Key, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Value is a tagged union over the payload variants the overlay
// distinguishes. Only the field matching Tag is meaningful.
type Value struct {
	Tag      ValueTag
	Int32    int32
	UInt128  *big.Int
	UInt256  *big.Int
	UInt512  *big.Int
	NamedKey NamedKeyBinding
	Account  *Account
	Contract *Contract
	Opaque   []byte
}

func NewInt32Value(v int32) Value { return Value{Tag: ValueInt32, Int32: v} }

func NewUInt128Value(v *big.Int) Value { return Value{Tag: ValueUInt128, UInt128: maskUint(v, uint128Bits)} }
func NewUInt256Value(v *big.Int) Value { return Value{Tag: ValueUInt256, UInt256: maskUint(v, uint256Bits)} }
func NewUInt512Value(v *big.Int) Value { return Value{Tag: ValueUInt512, UInt512: maskUint(v, uint512Bits)} }

func NewNamedKeyValue(name string, k Key) Value {
	return Value{Tag: ValueNamedKey, NamedKey: NamedKeyBinding{Name: name, Key: k}}
}

func NewAccountValue(a *Account) Value   { return Value{Tag: ValueAccount, Account: a} }
func NewContractValue(c *Contract) Value { return Value{Tag: ValueContract, Contract: c} }
func NewOpaqueValue(b []byte) Value      { return Value{Tag: ValueOpaque, Opaque: b} }

// TypeString names a Value's variant for TypeMismatch error messages.
func (v Value) TypeString() string { return v.Tag.String() }

// clone returns a deep copy so that cached/staged values never alias a
// caller's mutable state once they cross into the overlay.
func (v Value) clone() Value {
	out := v
	out.UInt128 = cloneBigInt(v.UInt128)
	out.UInt256 = cloneBigInt(v.UInt256)
	out.UInt512 = cloneBigInt(v.UInt512)
	out.Opaque = append([]byte(nil), v.Opaque...)
	out.Account = v.Account.clone()
	out.Contract = v.Contract.clone()
	return out
}

func cloneBigInt(v *big.Int) *big.Int {
	if v == nil {
		return nil
	}
	return new(big.Int).Set(v)
}

func maskUint(v *big.Int, bits int) *big.Int {
	if v == nil {
		return big.NewInt(0)
	}
	mod := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	out := new(big.Int).Mod(v, mod)
	if out.Sign() < 0 {
		out.Add(out, mod)
	}
	return out
}

// namedRefMap returns the named-reference map of an Account or Contract
// value, or (nil, false) for any other variant.
func (v Value) namedRefMap() (map[string]Key, bool) {
	switch v.Tag {
	case ValueAccount:
		if v.Account == nil {
			return nil, false
		}
		return v.Account.Urefs, true
	case ValueContract:
		if v.Contract == nil {
			return nil, false
		}
		return v.Contract.Urefs, true
	default:
		return nil, false
	}
}

// DebugString renders a short debug form of v, used to name the offending
// value in query failure messages.
func (v Value) DebugString() string {
	switch v.Tag {
	case ValueInt32:
		return fmt.Sprintf("Int32(%d)", v.Int32)
	case ValueUInt128:
		return fmt.Sprintf("UInt128(%s)", v.UInt128)
	case ValueUInt256:
		return fmt.Sprintf("UInt256(%s)", v.UInt256)
	case ValueUInt512:
		return fmt.Sprintf("UInt512(%s)", v.UInt512)
	case ValueNamedKey:
		return fmt.Sprintf("NamedKey(%q, %s)", v.NamedKey.Name, v.NamedKey.Key)
	case ValueAccount:
		return "Account(..)"
	case ValueContract:
		return "Contract(..)"
	case ValueOpaque:
		return fmt.Sprintf("Opaque(%d bytes)", len(v.Opaque))
	default:
		return "Unknown"
	}
}
