package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"toad-time/config"
	"toad-time/midi"
	"toad-time/sequencer"
	"toad-time/state"
	"toad-time/theme"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	arg := ""
	if len(os.Args) > 2 {
		arg = os.Args[2]
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "fire":
		fireGates(arg)
	case "monitor":
		monitor(arg)
	case "leds":
		testLEDs()
	case "poll":
		pollDevices(arg)
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list            - List all MIDI ports")
	fmt.Println("  fire <port>     - Pulse the four gate notes on an output")
	fmt.Println("  monitor [port]  - Print front-panel commands decoded from an input")
	fmt.Println("  leds            - Light the gate pads on a Launchpad X")
	fmt.Println("  poll [port]     - Watch controllers connect and disconnect")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	type result struct {
		ins  []drivers.In
		outs []drivers.Out
	}
	ch := make(chan result, 1)
	go func() {
		ins := gomidi.GetInPorts()
		outs := gomidi.GetOutPorts()
		ch <- result{ins: ins, outs: outs}
	}()

	select {
	case r := <-ch:
		for i, p := range r.ins {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
		fmt.Println("\n=== MIDI Output Ports ===")
		for i, p := range r.outs {
			fmt.Printf("  %d: %s\n", i, p.String())
		}
	case <-time.After(3 * time.Second):
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
	}
}

func fireGates(port string) {
	if port == "" {
		fmt.Println("usage: miditest fire <port>")
		return
	}
	out, err := midi.FindOutPort(midi.MatchName(port))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	notes := midi.DefaultGateNotes()
	gates, err := midi.NewGateSink(out, notes)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer gates.Release()

	fmt.Printf("Using output: %s\n", out.String())
	for round := 0; round < 4; round++ {
		for o := 0; o < sequencer.NumChannels; o++ {
			fmt.Printf("  %s note %d\n", sequencer.ChannelName(o), notes.Notes[o])
			gates.Set(o, true)
			time.Sleep(100 * time.Millisecond)
			gates.Set(o, false)
			time.Sleep(150 * time.Millisecond)
		}
	}
	fmt.Println("Done!")
}

func monitor(port string) {
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	if port == "" {
		port = cfg.MIDI.Input
	}
	in, err := midi.FindInPort(midi.MatchName(port))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Printf("Listening on %s. Ctrl+C to exit.\n", in.String())
	c, err := midi.NewController(in.String(), in, cfg.Mapping(in.String()), func(cmd state.Command) error {
		fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05.000"), cmd)
		return nil
	})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	<-ctx.Done()
}

func testLEDs() {
	fmt.Println("Testing LED control...")

	out, err := midi.FindOutPort(midi.IsLaunchpad)
	if err != nil {
		fmt.Println("No Launchpad found")
		return
	}

	lights, err := midi.NewLaunchpadLights(out, theme.New(nil).ChannelRGBs())
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	fmt.Println("Lighting gate pads...")
	for o := 0; o < sequencer.NumChannels; o++ {
		lights.Set(o, true)
		time.Sleep(200 * time.Millisecond)
	}

	fmt.Println("Press Enter to clear...")
	fmt.Scanln()

	lights.Clear()
	fmt.Println("Done!")
}

func pollDevices(port string) {
	fmt.Println("Polling for controller changes every second...")
	fmt.Println("Connect/disconnect a controller to test. Ctrl+C to exit.")

	dm := midi.NewDeviceManager(midi.MatchName(port), func(id string, in drivers.In) (io.Closer, error) {
		return io.NopCloser(nil), nil
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	go dm.Run(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-dm.Events():
			fmt.Printf("[%s] %s %s\n", time.Now().Format("15:04:05"), ev.ID, ev.Type)
		}
	}
}
