package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/Southclaws/fault/fmsg"
	"github.com/Southclaws/fault/ftag"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"gitlab.com/gomidi/midi/v2/drivers"

	"toad-time/config"
	"toad-time/debug"
	"toad-time/midi"
	"toad-time/pipeline"
	"toad-time/theme"
	"toad-time/tui"
)

func main() {
	configPath := flag.String("config", config.DefaultPath, "config file")
	debugLog := flag.Bool("debug", false, "write "+debug.DefaultPath)
	initConfig := flag.Bool("init-config", false, "write a default config file and exit")
	headless := flag.Bool("headless", false, "run without the terminal UI")
	seed := flag.Uint64("seed", 0, "probability seed (0 picks one from the clock)")
	flag.Parse()

	if err := run(*configPath, *debugLog, *initConfig, *headless, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if issue := fmsg.GetIssue(err); issue != "" {
			fmt.Fprintln(os.Stderr, issue)
		}
		os.Exit(1)
	}
}

func run(configPath string, debugLog, initConfig, headless bool, seed uint64) error {
	if initConfig {
		if err := config.DefaultConfig().Save(configPath); err != nil {
			return err
		}
		fmt.Println("wrote", configPath)
		return nil
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Debug || debugLog {
		if err := debug.Enable(""); err != nil {
			return err
		}
		defer debug.Disable()
	}

	st, err := cfg.InitialState()
	if err != nil {
		return err
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	th := theme.New(nil)
	if cfg.Theme != "" {
		palette, err := theme.LoadGPL(cfg.Theme)
		if err != nil {
			return err
		}
		th = theme.New(palette)
	}

	var sinks pipeline.MultiSink
	if cfg.MIDI.Output != "" {
		out, err := midi.FindOutPort(midi.MatchName(cfg.MIDI.Output))
		if err != nil {
			return err
		}
		gates, err := midi.NewGateSink(out, cfg.GateNotes())
		if err != nil {
			return err
		}
		defer gates.Release()
		sinks = append(sinks, gates)
	}
	if cfg.MIDI.Input == "" {
		// The default controller is a Launchpad; light its pads with the gates.
		if out, err := midi.FindOutPort(midi.IsLaunchpad); err == nil {
			if lights, err := midi.NewLaunchpadLights(out, th.ChannelRGBs()); err == nil {
				defer lights.Clear()
				sinks = append(sinks, lights)
			}
		} else if ftag.Get(err) != ftag.NotFound {
			return err
		}
	}

	interactive := !headless && isatty.IsTerminal(os.Stdout.Fd())

	var (
		display  *tui.Display
		renderer pipeline.Renderer = pipeline.NewLogRenderer(os.Stdout)
	)
	if interactive {
		display = tui.NewDisplay()
		renderer = display.Renderer()
		sinks = append(sinks, display.Lights())
	} else {
		sinks = append(sinks, pipeline.NewLogSink(os.Stdout))
	}

	var p *pipeline.Pipeline
	devices := midi.NewDeviceManager(midi.MatchName(cfg.MIDI.Input), func(id string, port drivers.In) (io.Closer, error) {
		return midi.NewController(id, port, cfg.Mapping(id), p.Input().Offer)
	})
	p = pipeline.New(pipeline.Options{
		State:    st,
		Seed:     seed,
		Queues:   cfg.Capacities(),
		Sink:     sinks,
		Renderer: renderer,
		Sources: []pipeline.Source{
			func(ctx context.Context, _ *pipeline.Input) error { return devices.Run(ctx) },
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if !interactive {
		fmt.Fprintln(os.Stderr, "toad-time running headless, ctrl+c to stop")
		return p.Run(ctx)
	}
	return runTUI(ctx, p, display, devices, th)
}

// runTUI runs the pipeline under the terminal UI. Quitting the UI stops the
// pipeline; a pipeline failure closes the UI.
func runTUI(ctx context.Context, p *pipeline.Pipeline, d *tui.Display, devices *midi.DeviceManager, th *theme.Theme) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := tui.NewModel(d, p.Input().Offer, devices.Events(), th)
	prog := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	done := make(chan error, 1)
	go func() {
		err := p.Run(ctx)
		prog.Send(tui.StoppedMsg{Err: err})
		done <- err
	}()

	final, err := prog.Run()
	cancel()
	runErr := <-done

	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if runErr != nil {
		return runErr
	}
	if fm, ok := final.(tui.Model); ok {
		return fm.Err()
	}
	return nil
}
