// drivers/aht20/aht20_test.go
package aht20

import (
	"bytes"
	"testing"

	"machineprops-go/machine"
	"machineprops-go/services/store"
)

// fakeI2C scripts an AHT20: calibrated, one canned measurement.
// hraw=0x80000 → 50.0 %RH; traw=0x60000 → 25.0 °C.
type fakeI2C struct {
	triggered bool
	busyReads int // Collect attempts to answer "busy" before the sample
}

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if addr != Address {
		return nil
	}
	switch {
	case len(w) > 0 && w[0] == cmdStatus:
		r[0] = statusCalibrated
	case len(w) > 0 && w[0] == cmdTrigger:
		f.triggered = true
	case len(w) == 0 && len(r) >= 6:
		if !f.triggered || f.busyReads > 0 {
			f.busyReads--
			r[0] = statusCalibrated | statusBusy
			return nil
		}
		copy(r, []byte{statusCalibrated, 0x80, 0x00, 0x06, 0x00, 0x00, 0x00})
	}
	return nil
}

func TestReadSample(t *testing.T) {
	d := New(&fakeI2C{busyReads: 1})
	d.Configure()

	var s Sample
	if err := d.Read(&s); err != nil {
		t.Fatalf("Read: %v", err)
	}
	if got := s.DeciCelsius(); got != 250 {
		t.Errorf("DeciCelsius() = %d, want 250", got)
	}
	if got := s.DeciRelHumidity(); got != 500 {
		t.Errorf("DeciRelHumidity() = %d, want 500", got)
	}
}

func TestCollectNotReady(t *testing.T) {
	d := New(&fakeI2C{})
	var s Sample
	if err := d.Collect(&s); err != ErrNotReady {
		t.Fatalf("Collect before trigger: want ErrNotReady, got %v", err)
	}
}

func TestBindingPoll(t *testing.T) {
	st := store.New(nil)
	unit := machine.Unit{Kind: machine.UnitThermal, Index: 0}
	comp := machine.Component{Code: 1, Index: 0}

	b, err := Bind(New(&fakeI2C{}), st, unit, comp)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	if st.Len() != 2 {
		t.Fatalf("store has %d properties, want 2", st.Len())
	}

	if err := b.Poll(); err != nil {
		t.Fatalf("Poll: %v", err)
	}

	got, err := st.Get(b.Temperature())
	if err != nil {
		t.Fatalf("Get temperature: %v", err)
	}
	if !bytes.Equal(got, le4(250)) {
		t.Errorf("temperature = % X, want % X", got, le4(250))
	}
	got, err = st.Get(b.Humidity())
	if err != nil {
		t.Fatalf("Get humidity: %v", err)
	}
	if !bytes.Equal(got, le4(500)) {
		t.Errorf("humidity = % X, want % X", got, le4(500))
	}

	// Direct external writes stay forbidden: the properties are read-only.
	if err := st.Set(b.Temperature(), le4(0)); err == nil {
		t.Error("external Set on a sensor property must fail")
	}
}
