package bencode

import "testing"

func TestDecodeByteString(t *testing.T) {
	v, tail, err := Decode([]byte("4:spamrest"), false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	b, err := v.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	if string(b) != "spam" {
		t.Fatalf("got %q, want %q", b, "spam")
	}
	if string(tail) != "rest" {
		t.Fatalf("tail: got %q, want %q", tail, "rest")
	}
}

func TestDecodeInteger(t *testing.T) {
	for _, tc := range []struct {
		in   string
		want int64
	}{
		{"i3e", 3},
		{"i-3e", -3},
		{"i0e", 0},
	} {
		v, _, err := Decode([]byte(tc.in), false)
		if err != nil {
			t.Fatalf("decode %q: %v", tc.in, err)
		}
		n, err := v.Int()
		if err != nil {
			t.Fatalf("int: %v", err)
		}
		if n != tc.want {
			t.Fatalf("got %d, want %d", n, tc.want)
		}
	}
}

func TestDecodeList(t *testing.T) {
	v, _, err := Decode([]byte("l4:spam4:eggse"), false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	items, err := v.ListItems()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
}

func TestDecodeDictStrictRejectsOutOfOrderKeys(t *testing.T) {
	// "zebra" before "apple" violates canonical order.
	_, _, err := Decode([]byte("d5:zebra4:spam5:apple4:eggse"), false)
	if err == nil {
		t.Fatalf("expected strict decode to reject out-of-order keys")
	}
}

func TestDecodeDictLenientAcceptsOutOfOrderKeys(t *testing.T) {
	v, _, err := Decode([]byte("d5:zebra4:spam5:apple4:eggse"), true)
	if err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
	d, err := v.DictValue()
	if err != nil {
		t.Fatalf("dict: %v", err)
	}
	if got, _ := d.Get("apple"); mustBytes(t, got) != "eggs" {
		t.Fatalf("apple mismatch")
	}
}

func TestDecodeDictStrictRejectsRepeatedKeys(t *testing.T) {
	_, _, err := Decode([]byte("d4:spam4:eggs4:spam3:hame"), false)
	if err == nil {
		t.Fatalf("expected strict decode to reject repeated keys")
	}
}

func TestDecodeDictLenientLastRepeatedKeyWins(t *testing.T) {
	v, _, err := Decode([]byte("d4:spam4:eggs4:spam3:hame"), true)
	if err != nil {
		t.Fatalf("lenient decode: %v", err)
	}
	d, err := v.DictValue()
	if err != nil {
		t.Fatalf("dict: %v", err)
	}
	got, _ := d.Get("spam")
	if mustBytes(t, got) != "ham" {
		t.Fatalf("expected last occurrence to win, got %q", mustBytes(t, got))
	}
}

func TestDecodeNestedDictReturnsTail(t *testing.T) {
	v, tail, err := Decode([]byte("d1:md11:ut_metadatai1eee"), false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tail) != 0 {
		t.Fatalf("expected no tail, got %q", tail)
	}
	d, err := v.DictValue()
	if err != nil {
		t.Fatalf("dict: %v", err)
	}
	m, err := d.Require("m")
	if err != nil {
		t.Fatalf("require m: %v", err)
	}
	mdict, err := m.DictValue()
	if err != nil {
		t.Fatalf("m dict: %v", err)
	}
	idVal, err := mdict.Require("ut_metadata")
	if err != nil {
		t.Fatalf("require ut_metadata: %v", err)
	}
	id, err := idVal.Int()
	if err != nil {
		t.Fatalf("int: %v", err)
	}
	if id != 1 {
		t.Fatalf("got %d, want 1", id)
	}
}

func TestDecodeMetadataDataLeavesPayloadAsTail(t *testing.T) {
	v, tail, err := Decode([]byte("d8:msg_typei1e5:piecei0e10:total_sizei4eeDATA"), false)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(tail) != "DATA" {
		t.Fatalf("tail: got %q, want %q", tail, "DATA")
	}
	_, err = v.DictValue()
	if err != nil {
		t.Fatalf("dict: %v", err)
	}
}

func mustBytes(t *testing.T, v Value) string {
	t.Helper()
	b, err := v.Bytes()
	if err != nil {
		t.Fatalf("bytes: %v", err)
	}
	return string(b)
}
