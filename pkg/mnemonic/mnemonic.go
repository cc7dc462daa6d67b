package mnemonic

import (
	"errors"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// ErrInvalid is returned for phrases that are not valid BIP-39 mnemonics.
var ErrInvalid = errors.New("invalid mnemonic")

// Generate returns a new 12 word BIP-39 mnemonic.
func Generate() (string, error) {
	entropy, err := bip39.NewEntropy(128)
	if err != nil {
		return "", err
	}
	return bip39.NewMnemonic(entropy)
}

// Validate checks m against the BIP-39 word list and checksum.
func Validate(m string) error {
	if !bip39.IsMnemonicValid(normalize(m)) {
		return ErrInvalid
	}
	return nil
}

// Mask hides all but the first and last three characters.
func Mask(m string) string {
	m = normalize(m)
	if len(m) <= 6 {
		return m
	}
	return m[:3] + " ... " + m[len(m)-3:]
}

func normalize(m string) string {
	return strings.Join(strings.Fields(m), " ")
}
