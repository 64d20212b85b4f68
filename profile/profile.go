// profile/profile.go
// Package profile loads declarative machine profiles: the units,
// components and property specs a device exposes, written as YAML on the
// host side. MCU builds construct their profiles in code instead.
package profile

import (
	"encoding/hex"
	"strings"

	"gopkg.in/yaml.v3"

	"machineprops-go/errcode"
)

type Profile struct {
	Machine string        `yaml:"machine"`
	Units   []UnitProfile `yaml:"units"`
}

// ---- UNIT ----

type UnitProfile struct {
	Kind       string             `yaml:"kind"`
	Index      uint8              `yaml:"index"`
	Components []ComponentProfile `yaml:"components"`
}

// ---- COMPONENT ----

type ComponentProfile struct {
	Code       uint8             `yaml:"code"`
	Index      uint8             `yaml:"index"`
	Level      uint8             `yaml:"level"`
	Properties []PropertyProfile `yaml:"properties"`
}

// ---- PROPERTY ----

type PropertyProfile struct {
	Code       uint8    `yaml:"code"`
	Permission string   `yaml:"permission"`
	Resolution string   `yaml:"resolution"`
	Initial    HexBytes `yaml:"initial"`
	Minimum    HexBytes `yaml:"minimum"`
	Maximum    HexBytes `yaml:"maximum"`
}

// HexBytes decodes a YAML scalar of hex octets, spaces allowed:
// "051F" and "05 1F" both decode to [0x05, 0x1F]. Empty or absent
// scalars decode to nil (the empty value).
type HexBytes []byte

func (h *HexBytes) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		*h = nil
		return nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return &errcode.E{C: errcode.BadProfile, Op: "profile.HexBytes", Msg: s, Err: err}
	}
	*h = b
	return nil
}

// Load parses and validates a YAML profile.
func Load(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, &errcode.E{C: errcode.BadProfile, Op: "profile.Load", Err: err}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
