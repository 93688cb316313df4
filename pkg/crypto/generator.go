package crypto

import (
	"github.com/gtank/ristretto255"
	"golang.org/x/crypto/sha3"
)

// GeneratorDomain is hashed into the group to obtain the key base point H.
const GeneratorDomain = "TOS_SIGNATURE_GENERATOR_H"

// generatorH is read-only after init.
var generatorH = HashToElement([]byte(GeneratorDomain))

// HashToElement maps data into the group: SHA3-512 followed by the
// ristretto255 uniform-bytes map.
func HashToElement(data []byte) *ristretto255.Element {
	sum := sha3.Sum512(data)
	e := ristretto255.NewIdentityElement()
	if _, err := e.SetUniformBytes(sum[:]); err != nil {
		// SetUniformBytes only fails on length, and sum is always 64 bytes.
		panic("crypto: hash to element: " + err.Error())
	}
	return e
}

// GeneratorH returns the base point used for public key derivation.
func GeneratorH() *PublicKey {
	return &PublicKey{e: generatorH}
}
