// Package aht20 drives the AHT20 temperature/humidity sensor over
// tinygo.org/x/drivers.I2C and exposes its measurements as machine
// properties (see Binding). Two-phase measurement API:
//
//	d.Trigger()              // start a measurement (fast)
//	err := d.Collect(&s)     // fetch when ready; ErrNotReady while busy
//
// Read() performs trigger + bounded polling. Fixed-point only on the
// measurement path; samples convert to tenths of units (deci-°C and
// deci-%RH), which is what the property specs declare (resolution x0.1).
//
// NOTE: I2C.Tx MUST perform a write followed by a repeated-start read when
// both w and r are provided, without releasing the bus.
package aht20

import (
	"errors"
	"time"

	"tinygo.org/x/drivers"
)

// I2C address.
const Address = 0x38

// Commands and status bits (per datasheet).
const (
	cmdTrigger    = 0xAC
	cmdInitialize = 0xBE
	cmdSoftReset  = 0xBA
	cmdStatus     = 0x71

	statusBusy       = 0x80
	statusCalibrated = 0x08
)

// Errors returned by the driver.
var (
	ErrTimeout  = errors.New("aht20: timeout")
	ErrNotReady = errors.New("aht20: not ready")
)

const (
	pollInterval   = 15 * time.Millisecond
	collectTimeout = 250 * time.Millisecond
)

// Device wraps an I2C connection to an AHT20. The I2C bus must already be
// configured.
type Device struct {
	bus  drivers.I2C
	addr uint16
	buf  [7]byte // reused to avoid per-measurement allocation
}

func New(bus drivers.I2C) *Device {
	return &Device{bus: bus, addr: Address}
}

// Configure initialises the device if its calibration bit is clear.
func (d *Device) Configure() {
	st, _ := d.Status() // ignore error; attempt init regardless
	if st&statusCalibrated != 0 {
		return
	}
	_ = d.bus.Tx(d.addr, []byte{cmdInitialize, 0x08, 0x00}, nil)
	time.Sleep(10 * time.Millisecond)
}

// Reset issues a soft reset. Give the device ~20ms afterwards.
func (d *Device) Reset() {
	_ = d.bus.Tx(d.addr, []byte{cmdSoftReset}, nil)
}

// Status reads the status byte.
func (d *Device) Status() (byte, error) {
	data := []byte{0}
	if err := d.bus.Tx(d.addr, []byte{cmdStatus}, data); err != nil {
		return 0, err
	}
	return data[0], nil
}

// Trigger starts a measurement. Quick register write, no blocking; the
// conversion takes ~80ms.
func (d *Device) Trigger() error {
	return d.bus.Tx(d.addr, []byte{cmdTrigger, 0x33, 0x00}, nil)
}

// Collect fetches one measurement into out. ErrNotReady while the device
// is still converting or uncalibrated; bus errors pass through as-is.
func (d *Device) Collect(out *Sample) error {
	data := d.buf[:]
	if err := d.bus.Tx(d.addr, nil, data); err != nil {
		return err
	}
	if (data[0]&statusCalibrated) == 0 || (data[0]&statusBusy) != 0 {
		return ErrNotReady
	}
	out.RawHumidity = (uint32(data[1]) << 12) | (uint32(data[2]) << 4) | (uint32(data[3]) >> 4)
	out.RawTemp = (uint32(data[3]&0x0F) << 16) | (uint32(data[4]) << 8) | uint32(data[5])
	return nil
}

// Read performs a full cycle: Trigger, then bounded polling until Collect
// succeeds or the timeout elapses.
func (d *Device) Read(out *Sample) error {
	if err := d.Trigger(); err != nil {
		return err
	}
	deadline := time.Now().Add(collectTimeout)
	for {
		err := d.Collect(out)
		switch err {
		case nil:
			return nil
		case ErrNotReady:
			if time.Now().After(deadline) {
				return ErrTimeout
			}
			time.Sleep(pollInterval)
		default:
			return err
		}
	}
}

// Sample holds one raw measurement.
type Sample struct {
	RawHumidity uint32
	RawTemp     uint32
}

// DeciRelHumidity returns tenths of %RH.
func (s Sample) DeciRelHumidity() int32 {
	return (int32(s.RawHumidity) * 1000) / 0x100000
}

// DeciCelsius returns tenths of °C.
func (s Sample) DeciCelsius() int32 {
	return ((int32(s.RawTemp) * 2000) / 0x100000) - 500
}
