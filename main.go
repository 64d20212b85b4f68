package main

import (
	"time"

	"machineprops-go/bus"
	"machineprops-go/machine"
	"machineprops-go/property"
	"machineprops-go/services/store"
	"machineprops-go/value"
)

// Board property codes.
const (
	propUptime = 0x01 // seconds since boot, numeric x1, read-only
	propStatus = 0x02 // board OK flag, boolean, read-only
)

var (
	boardUnit = machine.Unit{Kind: machine.UnitBoard, Index: 0}
	boardComp = machine.Component{Code: 1, Index: 0}
)

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	b := bus.NewBus(8)
	st := store.New(b)
	if err := seedBoardProperties(st); err != nil {
		println("seed failed:", err.Error())
		return
	}

	// Log every property update.
	watch := b.NewConnection("log").SubscribeAll()
	go func() {
		for u := range watch.Channel() {
			println(u.Addr.String(), "=", hexStr(u.Value))
		}
	}()

	uptime := machine.Address{Unit: boardUnit, Component: boardComp, Code: propUptime}
	status := machine.Address{Unit: boardUnit, Component: boardComp, Code: propStatus}
	if err := st.Update(status, []byte{0x01}); err != nil {
		println("status update failed:", err.Error())
	}

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	var secs int32
	for range tick.C {
		secs++
		if err := st.Update(uptime, le4(secs)); err != nil {
			println("uptime update failed:", err.Error())
		}
	}
}

func seedBoardProperties(st *store.Store) error {
	uptimeSpec, err := numericSpec(le4(0), le4(0), le4(1<<31-1))
	if err != nil {
		return err
	}
	if err := st.Add(machine.Address{Unit: boardUnit, Component: boardComp, Code: propUptime}, uptimeSpec); err != nil {
		return err
	}

	statusSpec, err := boolSpec()
	if err != nil {
		return err
	}
	return st.Add(machine.Address{Unit: boardUnit, Component: boardComp, Code: propStatus}, statusSpec)
}

func numericSpec(init, min, max []byte) (*property.Spec, error) {
	vi, err := value.New(init)
	if err != nil {
		return nil, err
	}
	vmin, err := value.New(min)
	if err != nil {
		return nil, err
	}
	vmax, err := value.New(max)
	if err != nil {
		return nil, err
	}
	return property.NewSpec(property.PermReadOnly, property.ResX1, vi, vmin, vmax)
}

func boolSpec() (*property.Spec, error) {
	vi, err := value.New([]byte{0x00})
	if err != nil {
		return nil, err
	}
	vmin, err := value.New([]byte{0x00})
	if err != nil {
		return nil, err
	}
	vmax, err := value.New([]byte{0x01})
	if err != nil {
		return nil, err
	}
	return property.NewSpec(property.PermReadOnly, property.ResX1, vi, vmin, vmax)
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
