// snapshot/codec.go
package snapshot

import "github.com/fxamacker/cbor/v2"

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map
// keys, smallest integer encoding, no indefinite-length items. The same
// store state always encodes to identical bytes, so snapshot digests and
// change detection are byte-stable.
var encMode cbor.EncMode

// decMode accepts standard CBOR; unknown fields are ignored so older
// firmware can read snapshots written by newer profiles.
var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}
