package core

import (
	"math/big"
	"testing"
)

func TestApplyIdentity(t *testing.T) {
	v := NewInt32Value(7)
	got, err := Apply(IdentityTransform(), v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Int32 != 7 {
		t.Fatalf("expected 7, got %d", got.Int32)
	}
}

func TestApplyWrite(t *testing.T) {
	got, err := Apply(WriteTransform(NewInt32Value(9)), NewInt32Value(1))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Int32 != 9 {
		t.Fatalf("expected 9, got %d", got.Int32)
	}
}

func TestApplyAddInt32(t *testing.T) {
	got, err := Apply(AddInt32Transform(5), NewInt32Value(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Int32 != 8 {
		t.Fatalf("expected 8, got %d", got.Int32)
	}
}

func TestApplyAddInt32TypeMismatch(t *testing.T) {
	_, err := Apply(AddInt32Transform(5), NewUInt128Value(big.NewInt(1)))
	if _, ok := err.(TypeMismatch); !ok {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestApplyAddUInt256WrapsModulo(t *testing.T) {
	maxVal := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	got, err := Apply(AddUInt256Transform(big.NewInt(1)), NewUInt256Value(maxVal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UInt256.Sign() != 0 {
		t.Fatalf("expected wraparound to 0, got %s", got.UInt256)
	}
}

func TestApplyAddKeysMergesWithIncomingPrecedence(t *testing.T) {
	existingKey := NewAccountKey(Address{1})
	incomingKey := NewAccountKey(Address{2})
	acct := NewAccountValue(&Account{Urefs: map[string]Key{"a": existingKey}})

	t1 := AddKeysTransform(map[string]Key{"a": incomingKey, "b": incomingKey})
	got, err := Apply(t1, acct)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Account.Urefs["a"] != incomingKey {
		t.Fatalf("expected incoming key to win collision")
	}
	if got.Account.Urefs["b"] != incomingKey {
		t.Fatalf("expected new binding to be added")
	}
}

func TestApplyAddKeysOnNonAccountIsTypeMismatch(t *testing.T) {
	_, err := Apply(AddKeysTransform(map[string]Key{"a": NewAccountKey(Address{1})}), NewInt32Value(1))
	if _, ok := err.(TypeMismatch); !ok {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestComposeIdentityThenAnythingIsAnything(t *testing.T) {
	got, err := composeTransform(IdentityTransform(), AddInt32Transform(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tag != TransformAddInt32 || got.AddInt32 != 5 {
		t.Fatalf("expected AddInt32(5), got %v", got)
	}
}

func TestComposeAnythingThenWriteIsWrite(t *testing.T) {
	got, err := composeTransform(AddInt32Transform(5), WriteTransform(NewInt32Value(42)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tag != TransformWrite || got.WriteValue.Int32 != 42 {
		t.Fatalf("expected Write(42), got %v", got)
	}
}

func TestComposeWriteThenAddFoldsIntoWrite(t *testing.T) {
	got, err := composeTransform(WriteTransform(NewInt32Value(10)), AddInt32Transform(5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tag != TransformWrite || got.WriteValue.Int32 != 15 {
		t.Fatalf("expected Write(15), got %v", got)
	}
}

func TestComposeWriteThenAddTypeMismatchPropagates(t *testing.T) {
	_, err := composeTransform(WriteTransform(NewInt32Value(10)), AddUInt128Transform(big.NewInt(1)))
	if _, ok := err.(TypeMismatch); !ok {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestComposeTwoAddsOfSameVariantSum(t *testing.T) {
	got, err := composeTransform(AddInt32Transform(3), AddInt32Transform(4))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Tag != TransformAddInt32 || got.AddInt32 != 7 {
		t.Fatalf("expected AddInt32(7), got %v", got)
	}
}

func TestComposeMismatchedAddVariantsIsTypeMismatch(t *testing.T) {
	_, err := composeTransform(AddInt32Transform(3), AddUInt128Transform(big.NewInt(1)))
	if _, ok := err.(TypeMismatch); !ok {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestDeriveAddTransformFromNamedKey(t *testing.T) {
	k := NewAccountKey(Address{9})
	tr, err := deriveAddTransform(NewNamedKeyValue("purse", k))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tr.Tag != TransformAddKeys || tr.AddKeys["purse"] != k {
		t.Fatalf("expected AddKeys{purse: k}, got %v", tr)
	}
}

func TestDeriveAddTransformUnsupportedType(t *testing.T) {
	_, err := deriveAddTransform(NewOpaqueValue([]byte("x")))
	if _, ok := err.(TypeMismatch); !ok {
		t.Fatalf("expected TypeMismatch, got %v", err)
	}
}

func TestRecordTransformInsertThenCompose(t *testing.T) {
	transforms := map[Key]Transform{}
	k := NewAccountKey(Address{1})
	if err := recordTransform(transforms, k, AddInt32Transform(1)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := recordTransform(transforms, k, AddInt32Transform(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := transforms[k]
	if got.Tag != TransformAddInt32 || got.AddInt32 != 3 {
		t.Fatalf("expected AddInt32(3), got %v", got)
	}
}
