// profile/validate.go
package profile

import (
	"machineprops-go/errcode"
	"machineprops-go/machine"
	"machineprops-go/property"
	"machineprops-go/value"
	"machineprops-go/x/fmtx"
)

var unitKinds = map[string]machine.UnitKind{
	"Board":          machine.UnitBoard,
	"ExpansionBoard": machine.UnitExpansionBoard,
	"Thermal":        machine.UnitThermal,
	"Storage":        machine.UnitStorage,
	"Power":          machine.UnitPower,
	"Light":          machine.UnitLight,
}

var permissions = map[string]property.Permission{
	"none":       property.PermNone,
	"write-only": property.PermWriteOnly,
	"read-only":  property.PermReadOnly,
	"read-write": property.PermReadWrite,
}

var resolutions = map[string]property.Resolution{
	"x1":    property.ResX1,
	"x5":    property.ResX5,
	"x10":   property.ResX10,
	"x50":   property.ResX50,
	"x0.01": property.ResX001,
	"x0.05": property.ResX005,
	"x0.1":  property.ResX01,
	"x0.5":  property.ResX05,
}

func bad(format string, a ...any) error {
	return &errcode.E{C: errcode.BadProfile, Op: "profile.Validate", Msg: fmtx.Sprintf(format, a...)}
}

// Validate checks names, payload lengths and address uniqueness. It does
// not check min <= max: a structurally valid profile may still declare a
// range nothing satisfies, exactly as a hand-built spec may.
func (p *Profile) Validate() error {
	if p.Machine == "" {
		return bad("missing machine name")
	}
	seen := make(map[machine.Address]bool)

	for _, u := range p.Units {
		kind, ok := unitKinds[u.Kind]
		if !ok {
			return bad("unknown unit kind %q", u.Kind)
		}
		for _, c := range u.Components {
			for _, pr := range c.Properties {
				if _, ok := permissions[pr.Permission]; !ok {
					return bad("unit %s property %d: unknown permission %q", u.Kind, pr.Code, pr.Permission)
				}
				if _, ok := resolutions[pr.Resolution]; !ok {
					return bad("unit %s property %d: unknown resolution %q", u.Kind, pr.Code, pr.Resolution)
				}
				for _, b := range []HexBytes{pr.Initial, pr.Minimum, pr.Maximum} {
					if len(b) > value.MaxLen {
						return bad("unit %s property %d: payload exceeds %d bytes", u.Kind, pr.Code, value.MaxLen)
					}
				}
				addr := machine.Address{
					Unit:      machine.Unit{Kind: kind, Index: u.Index},
					Component: machine.Component{Code: c.Code, Index: c.Index, Level: c.Level},
					Code:      pr.Code,
				}
				if seen[addr] {
					return bad("duplicate address %s", addr.String())
				}
				seen[addr] = true
			}
		}
	}
	return nil
}
