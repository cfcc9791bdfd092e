package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	gomidi "gitlab.com/gomidi/midi/v2"

	"lparp/arp"
	"lparp/config"
	"lparp/debug"
	"lparp/midi"
	"lparp/theme"
	"lparp/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "config file (default ~/.config/lparp/config.json)")
		noTUI      = flag.Bool("no-tui", false, "run without the terminal grid mirror")
	)
	flag.Parse()

	debug.EnableFromEnv()
	defer debug.Disable()
	defer gomidi.CloseDriver()

	path := *configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			return err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	synth, err := midi.OpenDevice(cfg.SynthPort)
	if err != nil {
		return err
	}
	defer synth.Close()

	grid, err := midi.OpenDevice(cfg.GridPort)
	if err != nil {
		return err
	}
	defer grid.Close()

	a := arp.New(synth, grid, cfg.BPM)
	if err := a.Scheduler().SetRate(cfg.BPM, cfg.TicksPerBeat); err != nil {
		return err
	}
	a.Scheduler().Every(cfg.InputPeriod, arp.MsgCheckInputs)
	a.Scheduler().Every(cfg.StepPeriod, arp.MsgUpdateState)
	a.Scheduler().Every(cfg.NotePeriod, arp.MsgFlushNotes)

	if err := a.RenderUI(); err != nil {
		return err
	}

	// runErr is written before done closes and read after it is
	// observed closed, so both the TUI and this goroutine may wait
	var runErr error
	done := make(chan struct{})
	go func() {
		runErr = a.Run()
		close(done)
	}()

	if *noTUI {
		<-done
	} else {
		pal := theme.Default()
		if cfg.Palette != "" {
			if p, err := theme.LoadGPL(cfg.Palette); err == nil {
				pal = p
			} else {
				debug.Log("main", "palette %s: %v", cfg.Palette, err)
			}
		}

		m := tui.NewModel(a.Updates, done, a.RequestStop, theme.New(pal))
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			a.RequestStop()
			<-done
			return err
		}
		<-done
	}

	// Leave the hardware dark regardless of how the loop ended
	if err := a.ClearBoard(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}
