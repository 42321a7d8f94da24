package vm

import "testing"

func TestJumpdestInsidePushImmediateIsInvalid(t *testing.T) {
	// PUSH2 0x5B5B: the two JUMPDEST-valued bytes are PUSH2's immediate,
	// never real jump targets.
	code := []byte{byte(PUSH2), 0x5B, 0x5B, byte(JUMPDEST)}
	b := NewBytecode(code)

	if b.IsValidJumpdest(1) || b.IsValidJumpdest(2) {
		t.Fatal("byte 0x5B inside a PUSH2 immediate must not validate as JUMPDEST")
	}
	if !b.IsValidJumpdest(3) {
		t.Fatal("real JUMPDEST at the end must validate")
	}
}

func TestJumpdestOutOfRangeIsInvalid(t *testing.T) {
	code := []byte{byte(STOP)}
	b := NewBytecode(code)
	if b.IsValidJumpdest(100) {
		t.Fatal("out-of-range pc must not validate as JUMPDEST")
	}
}

func TestOpcodeAtPastEndIsImplicitStop(t *testing.T) {
	code := []byte{byte(PUSH1), 0x01}
	b := NewBytecode(code)
	if b.OpcodeAt(50) != STOP {
		t.Fatalf("past-end opcode = %v, want implicit STOP", b.OpcodeAt(50))
	}
}

func TestPushDataFullRejectsShortPush(t *testing.T) {
	// PUSH32 with only 2 immediate bytes available.
	code := []byte{byte(PUSH32), 0x01, 0x02}
	b := NewBytecode(code)
	if _, err := b.PushDataFull(0, 32); err != ErrInvalidPush {
		t.Fatalf("err = %v, want ErrInvalidPush", err)
	}
}

func TestPushDataZeroPadsShortPush(t *testing.T) {
	code := []byte{byte(PUSH2), 0xAB}
	b := NewBytecode(code)
	got := b.PushData(0, 2)
	want := []byte{0xAB, 0x00}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("PushData = %x, want %x", got, want)
	}
}
