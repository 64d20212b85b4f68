// profile/digest.go
package profile

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 keyed hash of a profile document.
type Digest [32]byte

// profileDomainKey separates profile digests from any other BLAKE3 use:
// the ASCII domain name, zero-padded to the 32 bytes keyed mode requires.
// Changing it invalidates all recorded digests.
var profileDomainKey = [32]byte{
	'm', 'a', 'c', 'h', 'i', 'n', 'e', 'p', 'r', 'o', 'p', 's', '.',
	'p', 'r', 'o', 'f', 'i', 'l', 'e', 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
}

// DigestOf hashes the raw profile document bytes. Devices record it to
// detect profile changes across firmware updates.
func DigestOf(data []byte) Digest {
	hasher, err := blake3.NewKeyed(profileDomainKey[:])
	if err != nil {
		// NewKeyed fails only on a wrong key length, which the fixed-size
		// array rules out.
		panic("profile: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d
}

// String returns the canonical lower-case hex form.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
