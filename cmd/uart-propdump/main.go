//go:build rp2040

// cmd/uart-propdump/main.go
// Pico demo: bring up UART0, register an AHT20's properties plus a board
// uptime counter, dump every spec over the wire, then stream property
// updates as they happen.
package main

import (
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"machineprops-go/bus"
	"machineprops-go/drivers/aht20"
	mprops "machineprops-go/machine"
	"machineprops-go/property"
	"machineprops-go/services/store"
	"machineprops-go/value"
	"machineprops-go/x/fmtx"
)

const propUptime = 0x01

var (
	boardUnit   = mprops.Unit{Kind: mprops.UnitBoard, Index: 0}
	boardComp   = mprops.Component{Code: 1, Index: 0}
	thermalUnit = mprops.Unit{Kind: mprops.UnitThermal, Index: 0}
	thermalComp = mprops.Component{Code: 1, Index: 0}
)

func main() {
	uart := uartx.UART0
	_ = uart.Configure(uartx.UARTConfig{
		BaudRate: 115200,
		TX:       machine.Pin(0),
		RX:       machine.Pin(1),
	})
	fmtx.DefaultOutput = uart
	fmtx.Printf("propdump: boot\r\n")

	machine.I2C0.Configure(machine.I2CConfig{
		SDA:       machine.Pin(4),
		SCL:       machine.Pin(5),
		Frequency: 400 * machine.KHz,
	})

	b := bus.NewBus(8)
	st := store.New(b)

	if err := seedUptime(st); err != nil {
		fmtx.Printf("propdump: seed: %s\r\n", err.Error())
		return
	}

	sensor := aht20.New(machine.I2C0)
	sensor.Configure()
	binding, err := aht20.Bind(sensor, st, thermalUnit, thermalComp)
	if err != nil {
		fmtx.Printf("propdump: bind: %s\r\n", err.Error())
		return
	}

	fmtx.Printf("propdump: %d properties\r\n", st.Len())
	st.Each(func(addr mprops.Address, p *mprops.Property) {
		fmtx.Printf("%s %s\r\n", addr.String(), p.Spec().Str())
	})

	watch := b.NewConnection("propdump").SubscribeAll()
	go func() {
		for u := range watch.Channel() {
			fmtx.Printf("%s = %s\r\n", u.Addr.String(), hexStr(u.Value))
		}
	}()

	uptime := mprops.Address{Unit: boardUnit, Component: boardComp, Code: propUptime}
	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	var secs int32
	for range tick.C {
		secs++
		if err := st.Update(uptime, le4(secs)); err != nil {
			fmtx.Printf("propdump: uptime: %s\r\n", err.Error())
		}
		if secs%5 == 0 {
			if err := binding.Poll(); err != nil {
				fmtx.Printf("propdump: poll: %s\r\n", err.Error())
			}
		}
	}
}

func seedUptime(st *store.Store) error {
	vi, err := value.New(le4(0))
	if err != nil {
		return err
	}
	vmin, err := value.New(le4(0))
	if err != nil {
		return err
	}
	vmax, err := value.New(le4(1<<31 - 1))
	if err != nil {
		return err
	}
	spec, err := property.NewSpec(property.PermReadOnly, property.ResX1, vi, vmin, vmax)
	if err != nil {
		return err
	}
	return st.Add(mprops.Address{Unit: boardUnit, Component: boardComp, Code: propUptime}, spec)
}

func le4(n int32) []byte {
	return []byte{byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24)}
}

func hexStr(b []byte) string {
	const hexd = "0123456789ABCDEF"
	out := make([]byte, 0, 3*len(b))
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, hexd[c>>4], hexd[c&0xF])
	}
	return string(out)
}
