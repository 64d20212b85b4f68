// cmd/profiledump/main.go
// Host tool: load a YAML machine profile, print its digest and the
// registry it builds, and optionally write the initial state as a CBOR
// snapshot.
//
//	profiledump <profile.yaml> [snapshot.cbor]
package main

import (
	"os"

	"machineprops-go/machine"
	"machineprops-go/profile"
	"machineprops-go/services/store"
	"machineprops-go/snapshot"
	"machineprops-go/x/fmtx"
)

func main() {
	if len(os.Args) < 2 || len(os.Args) > 3 {
		fmtx.Fprintf(os.Stderr, "usage: profiledump <profile.yaml> [snapshot.cbor]\n")
		os.Exit(2)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fail(err)
	}
	p, err := profile.Load(data)
	if err != nil {
		fail(err)
	}

	fmtx.Printf("machine: %s\n", p.Machine)
	fmtx.Printf("digest:  %s\n", profile.DigestOf(data).String())

	st := store.New(nil)
	if err := p.Build(st); err != nil {
		fail(err)
	}

	fmtx.Printf("properties: %d\n", st.Len())
	st.Each(func(addr machine.Address, prop *machine.Property) {
		fmtx.Printf("  %s\n    %s\n", addr.String(), prop.Spec().Str())
	})

	if len(os.Args) == 3 {
		enc, err := snapshot.Encode(snapshot.Take(st))
		if err != nil {
			fail(err)
		}
		if err := os.WriteFile(os.Args[2], enc, 0o644); err != nil {
			fail(err)
		}
		fmtx.Printf("snapshot: %s (%d bytes)\n", os.Args[2], len(enc))
	}
}

func fail(err error) {
	fmtx.Fprintf(os.Stderr, "profiledump: %v\n", err)
	os.Exit(1)
}
