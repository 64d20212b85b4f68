// profile/build.go
package profile

import (
	"machineprops-go/machine"
	"machineprops-go/property"
	"machineprops-go/services/store"
	"machineprops-go/value"
)

// Build constructs a spec for every declared property and registers it in
// the store. The profile must have passed Validate (Load guarantees this).
func (p *Profile) Build(st *store.Store) error {
	for _, u := range p.Units {
		kind := unitKinds[u.Kind]
		for _, c := range u.Components {
			comp := machine.Component{Code: c.Code, Index: c.Index, Level: c.Level}
			for _, pr := range c.Properties {
				spec, err := buildSpec(pr)
				if err != nil {
					return err
				}
				addr := machine.Address{
					Unit:      machine.Unit{Kind: kind, Index: u.Index},
					Component: comp,
					Code:      pr.Code,
				}
				if err := st.Add(addr, spec); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func buildSpec(pr PropertyProfile) (*property.Spec, error) {
	init, err := value.New(pr.Initial)
	if err != nil {
		return nil, err
	}
	min, err := value.New(pr.Minimum)
	if err != nil {
		return nil, err
	}
	max, err := value.New(pr.Maximum)
	if err != nil {
		return nil, err
	}
	return property.NewSpec(permissions[pr.Permission], resolutions[pr.Resolution], init, min, max)
}
