// Package dna provides the trivial 2-bit DNA alphabet conversion and
// reverse-complement helper that spec §1 calls out as out of scope for the
// core encoding work: character <-> 2-bit code, and the complement table
// the sequence store needs for apply_orientation and get_sequence on a
// reverse-oriented handle.
package dna

import "fmt"

// Base is a 2-bit packed nucleotide code in [0,3].
type Base byte

const (
	A Base = 0
	C Base = 1
	G Base = 2
	T Base = 3
)

var baseToChar = [4]byte{'A', 'C', 'G', 'T'}

var charToBase = map[byte]Base{
	'A': A, 'C': C, 'G': G, 'T': T,
}

var complement = [4]Base{T, G, C, A} // A<->T, C<->G

// Encode converts a single base character to its 2-bit code.
func Encode(c byte) (Base, error) {
	b, ok := charToBase[c]
	if !ok {
		return 0, fmt.Errorf("dna: invalid base character %q", c)
	}
	return b, nil
}

// Decode converts a 2-bit code back to its base character.
func Decode(b Base) byte {
	return baseToChar[b&3]
}

// Complement returns the Watson-Crick complement of a base.
func Complement(b Base) Base {
	return complement[b&3]
}

// EncodeString converts a DNA string to its 2-bit code sequence, rejecting
// any character outside {A,C,G,T}.
func EncodeString(s string) ([]Base, error) {
	out := make([]Base, len(s))
	for i := 0; i < len(s); i++ {
		b, err := Encode(s[i])
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

// DecodeString converts a 2-bit code sequence back to a DNA string.
func DecodeString(bs []Base) string {
	out := make([]byte, len(bs))
	for i, b := range bs {
		out[i] = Decode(b)
	}
	return string(out)
}

// ReverseComplement returns the reverse complement of a base sequence,
// used by apply_orientation and by get_sequence on a reverse-oriented
// handle.
func ReverseComplement(bs []Base) []Base {
	out := make([]Base, len(bs))
	n := len(bs)
	for i, b := range bs {
		out[n-1-i] = Complement(b)
	}
	return out
}

// ReverseComplementString is the character-string convenience form of
// ReverseComplement.
func ReverseComplementString(s string) (string, error) {
	bs, err := EncodeString(s)
	if err != nil {
		return "", err
	}
	return DecodeString(ReverseComplement(bs)), nil
}

// IsValidBase reports whether c is one of the four accepted characters.
func IsValidBase(c byte) bool {
	_, ok := charToBase[c]
	return ok
}

// NormalizeLenient maps a base character to one of {A,C,G,T}, upper-casing
// lowercase acgt and folding any other byte (IUPAC ambiguity codes, N,
// whitespace) to A rather than rejecting it.
func NormalizeLenient(c byte) byte {
	switch c {
	case 'a', 'A':
		return 'A'
	case 'c', 'C':
		return 'C'
	case 'g', 'G':
		return 'G'
	case 't', 'T':
		return 'T'
	default:
		return 'A'
	}
}

// EncodeStringLenient converts s to its 2-bit code sequence the same way
// EncodeString does, except it never fails: every character is passed
// through NormalizeLenient first.
func EncodeStringLenient(s string) []Base {
	out := make([]Base, len(s))
	for i := 0; i < len(s); i++ {
		b, _ := Encode(NormalizeLenient(s[i]))
		out[i] = b
	}
	return out
}
