package core

import "fmt"

// KeyTag discriminates the variant held by a Key.
type KeyTag uint8

const (
	// KeyAccount addresses an Account value at a fixed-width account address.
	KeyAccount KeyTag = iota
	// KeyHash addresses a Contract (or other) value by content hash.
	KeyHash
	// KeyURef addresses a value through an unforgeable reference, which
	// additionally carries access-rights flags that Normalize strips.
	KeyURef
)

func (t KeyTag) String() string {
	switch t {
	case KeyAccount:
		return "Account"
	case KeyHash:
		return "Hash"
	case KeyURef:
		return "URef"
	default:
		return "Unknown"
	}
}

// Key identifies a cell in global state. It is comparable so it can be used
// directly as a map key in the cache and in the op/transform logs, as long
// as callers route values through Normalize first — see Normalize below.
type Key struct {
	Tag     KeyTag
	Account Address
	Hash    Hash
	URefID  [32]byte
	Rights  AccessRights
}

// NewAccountKey builds a Key addressing an account.
func NewAccountKey(addr Address) Key {
	return Key{Tag: KeyAccount, Account: addr}
}

// NewHashKey builds a Key addressing a hash-identified value (e.g. a contract).
func NewHashKey(h Hash) Key {
	return Key{Tag: KeyHash, Hash: h}
}

// NewURefKey builds a Key addressing an unforgeable reference with the given
// access rights.
func NewURefKey(id [32]byte, rights AccessRights) Key {
	return Key{Tag: KeyURef, URefID: id, Rights: rights}
}

// Normalize strips access-rights from a URef key so that two URefs differing
// only in rights collide to the same cache entry and log entry. Account and
// Hash keys are already canonical and are returned unchanged.
func (k Key) Normalize() Key {
	if k.Tag != KeyURef {
		return k
	}
	return Key{Tag: KeyURef, URefID: k.URefID, Rights: AccessNone}
}

func (k Key) String() string {
	switch k.Tag {
	case KeyAccount:
		return fmt.Sprintf("Key::Account(%s)", k.Account)
	case KeyHash:
		return fmt.Sprintf("Key::Hash(%s)", k.Hash)
	case KeyURef:
		return fmt.Sprintf("Key::URef(%x, %s)", k.URefID, k.Rights)
	default:
		return "Key::Unknown"
	}
}
