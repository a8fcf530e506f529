package domain

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword_NeverStoresPlaintext(t *testing.T) {
	for _, plain := range []string{"secret1", "hunter22", "päss wörd", "123456"} {
		hash, err := HashPassword(plain, bcrypt.MinCost)
		if err != nil {
			t.Fatalf("HashPassword(%q): %v", plain, err)
		}
		if hash == plain {
			t.Errorf("hash of %q equals plaintext", plain)
		}
		if !ComparePassword(hash, plain) {
			t.Errorf("ComparePassword(hash, %q) = false, want true", plain)
		}
		for _, other := range []string{"", plain + "x", "Secret1", " " + plain} {
			if ComparePassword(hash, other) {
				t.Errorf("ComparePassword(hash of %q, %q) = true, want false", plain, other)
			}
		}
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword("secret1", bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical, want distinct salts")
	}
}

func TestComparePassword_MalformedHash(t *testing.T) {
	if ComparePassword("", "anything") {
		t.Error("empty hash matched")
	}
	if ComparePassword("not-a-bcrypt-hash", "not-a-bcrypt-hash") {
		t.Error("malformed hash matched its own text")
	}
}
