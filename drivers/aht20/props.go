// drivers/aht20/props.go
package aht20

import (
	"machineprops-go/machine"
	"machineprops-go/property"
	"machineprops-go/services/store"
	"machineprops-go/value"
)

// Property codes exposed by the sensor.
const (
	PropTemperature = 0x10 // deci-°C, numeric, x0.1
	PropHumidity    = 0x11 // deci-%RH, numeric, x0.1
)

// Measurement bounds, deci-units, 4-byte little-endian signed.
// Temperature -50.0..150.0 °C; humidity 0.0..100.0 %RH.
var (
	tempMin = le4(-500)
	tempMax = le4(1500)
	humMin  = le4(0)
	humMax  = le4(1000)
)

// TemperatureSpec declares the temperature property: read-only numeric at
// resolution x0.1 over deci-°C.
func TemperatureSpec() (*property.Spec, error) {
	return measurementSpec(tempMin, tempMax)
}

// HumiditySpec declares the humidity property: read-only numeric at
// resolution x0.1 over deci-%RH.
func HumiditySpec() (*property.Spec, error) {
	return measurementSpec(humMin, humMax)
}

func measurementSpec(minB, maxB []byte) (*property.Spec, error) {
	init, err := value.New(le4(0))
	if err != nil {
		return nil, err
	}
	min, err := value.New(minB)
	if err != nil {
		return nil, err
	}
	max, err := value.New(maxB)
	if err != nil {
		return nil, err
	}
	return property.NewSpec(property.PermReadOnly, property.ResX01, init, min, max)
}

// Binding connects a Device to a store: each Poll publishes the latest
// sample through the store's validating device-side write path.
type Binding struct {
	dev  *Device
	st   *store.Store
	temp machine.Address
	hum  machine.Address
}

// Bind registers the sensor's two properties under the given unit and
// component and returns the binding.
func Bind(dev *Device, st *store.Store, unit machine.Unit, comp machine.Component) (*Binding, error) {
	tSpec, err := TemperatureSpec()
	if err != nil {
		return nil, err
	}
	hSpec, err := HumiditySpec()
	if err != nil {
		return nil, err
	}

	b := &Binding{
		dev:  dev,
		st:   st,
		temp: machine.Address{Unit: unit, Component: comp, Code: PropTemperature},
		hum:  machine.Address{Unit: unit, Component: comp, Code: PropHumidity},
	}
	if err := st.Add(b.temp, tSpec); err != nil {
		return nil, err
	}
	if err := st.Add(b.hum, hSpec); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Binding) Temperature() machine.Address { return b.temp }
func (b *Binding) Humidity() machine.Address    { return b.hum }

// Poll reads one measurement and stores both properties. A value the spec
// rejects (sensor glitch outside the declared range) surfaces as
// errcode.OutOfRange from the store.
func (b *Binding) Poll() error {
	var s Sample
	if err := b.dev.Read(&s); err != nil {
		return err
	}
	if err := b.st.Update(b.temp, le4(s.DeciCelsius())); err != nil {
		return err
	}
	return b.st.Update(b.hum, le4(s.DeciRelHumidity()))
}

// le4 encodes a signed value as 4 little-endian bytes, the full-width
// numeric payload form that carries sign exactly.
func le4(n int32) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
}
