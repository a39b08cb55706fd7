package core

import "testing"

func TestNewExecutionEffectDeepCopiesTransforms(t *testing.T) {
	k := keyN(1)
	ops := map[Key]Op{k: OpWrite}
	transforms := map[Key]Transform{k: WriteTransform(NewInt32Value(1))}

	effect := newExecutionEffect(ops, transforms)
	transforms[k] = WriteTransform(NewInt32Value(999))
	ops[k] = OpRead

	if effect.Transforms[k].WriteValue.Int32 != 1 {
		t.Fatalf("expected snapshot to be unaffected by later mutation, got %v", effect.Transforms[k])
	}
	if effect.Ops[k] != OpWrite {
		t.Fatalf("expected snapshot ops to be unaffected, got %s", effect.Ops[k])
	}
}
