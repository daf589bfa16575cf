package blossom

import (
	"strings"
	"testing"
)

func TestSha256Hex(t *testing.T) {
	hash := Sha256Hex([]byte("hello world!!"))
	want := "8380c4c6720e0d5ce4789bf72df03a6e1b3ed80891f3adbe8833c760399b8e91"
	if hash != want {
		t.Errorf("wrong digest. got: %v want: %v", hash, want)
	}

	again := Sha256Hex([]byte("hello world!!"))
	if again != hash {
		t.Errorf("digest is not deterministic. got: %v and %v", hash, again)
	}

	if len(Sha256Hex(nil)) != 64 {
		t.Errorf("digest of empty input should still be 64 hex chars")
	}
}

func TestValidHash(t *testing.T) {
	valid := Sha256Hex([]byte("some bytes"))
	if !ValidHash(valid) {
		t.Errorf("real digest rejected: %v", valid)
	}

	invalid := []string{
		"",
		"abc",
		valid[:63],
		valid + "0",
		strings.ToUpper(valid),
		strings.Replace(valid, valid[:1], "g", 1),
		"../" + valid[:61],
	}
	for _, s := range invalid {
		if ValidHash(s) {
			t.Errorf("invalid identifier accepted: %q", s)
		}
	}
}
