package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/lixenwraith/flexterm/app"
	"github.com/lixenwraith/flexterm/audio"
	"github.com/lixenwraith/flexterm/component"
	"github.com/lixenwraith/flexterm/config"
	"github.com/lixenwraith/flexterm/debug"
	"github.com/lixenwraith/flexterm/dialog"
	"github.com/lixenwraith/flexterm/editor"
	"github.com/lixenwraith/flexterm/geom"
	"github.com/lixenwraith/flexterm/layout"
	"github.com/lixenwraith/flexterm/store"
)

const (
	leftID   = "left"
	rightID  = "right"
	statusID = "status"
	openID   = "open"
)

var (
	configFlag = flag.String("config", "flexterm.toml", "config file path")
	dirFlag    = flag.String("dir", ".", "directory listed by the open dialog")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "flexterm-demo: %v\n", err)
		os.Exit(1)
	}
	if err := debug.Init(cfg.Log.Path); err != nil {
		fmt.Fprintf(os.Stderr, "flexterm-demo: %v\n", err)
		os.Exit(1)
	}
	defer debug.Close()

	ss, err := cfg.Stylesheet()
	if err != nil {
		fmt.Fprintf(os.Stderr, "flexterm-demo: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	bell := audio.NewBell(cfg.AudioConfig())
	defer bell.Close()

	st := store.New(newState(), reduce)
	reg := component.NewRegistry[State]()

	onEdit := func(d component.Dispatcher, id string, buf editor.Buffer) {
		d.Dispatch(SetEditor{ID: id, Buffer: buf})
	}
	edCfg := cfg.EditorConfig(ss)
	reg.Put(editor.NewShared[State](leftID, edCfg, onEdit))
	reg.Put(editor.NewShared[State](rightID, edCfg, onEdit))
	reg.Put(statusBar{})

	open := dialog.New[State](openID, cfg.DialogConfig(ss),
		func(d component.Dispatcher, id string, c dialog.Choice) {
			d.Dispatch(SetDialog{ID: id, Buffer: dialog.Buffer{}})
			if c.Kind == dialog.ChoiceNo {
				d.Dispatch(SetStatus("cancelled"))
				return
			}
			bell.Ring(audio.SoundConfirm)
			// modal focus is already released, so this is the pane that opened the dialog
			target := reg.Focus().ID()
			loadFile(d, target, filepath.Join(*dirFlag, c.Text))
		},
		func(d component.Dispatcher, id string, buf dialog.Buffer) {
			d.Dispatch(SetDialog{ID: id, Buffer: buf})
		},
	)
	reg.Put(component.NewShared[State](open))

	a := app.New(screen, st, reg, frame, app.Options[State]{
		Stylesheet: ss,
		Handler:    keys(open),
		Bell:       bell,
		Dir:        geom.Vertical,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := a.Run(ctx); err != nil {
		log.Printf("run: %v", err)
	}
}

// frame lays out two editors side by side above a status row, with the dialog on top
func frame(s *layout.Surface, args component.ScopeArgs[State]) error {
	ss := s.Stylesheet
	panes, err := layout.Props(ss, "panes", geom.Horizontal, 100, 90)
	if err != nil {
		return err
	}
	err = s.Box(panes, func(*layout.FlexBox) error {
		for _, p := range []struct {
			id    string
			width int
		}{{leftID, 60}, {rightID, 40}} {
			props, err := layout.Props(ss, layout.FlexBoxID(p.id), geom.Vertical, p.width, 100, "pane")
			if err != nil {
				return err
			}
			if err := s.Box(props, func(*layout.FlexBox) error {
				return args.Registry.RenderInto(s, p.id, args)
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	status, err := layout.Props(ss, statusID, geom.Horizontal, 100, 10, "status")
	if err != nil {
		return err
	}
	if err := s.Box(status, func(*layout.FlexBox) error {
		return args.Registry.RenderInto(s, statusID, args)
	}); err != nil {
		return err
	}
	return args.Registry.RenderInto(s, openID, args)
}

// keys handles what the focused component let through
func keys(open *dialog.Component[State]) app.KeyHandler[State] {
	return func(a *app.App[State], args component.ScopeArgs[State], ev *tcell.EventKey) (component.EventPropagation, error) {
		reg := args.Registry
		switch ev.Key() {
		case tcell.KeyCtrlQ:
			a.Quit()
			return component.Consumed, nil
		case tcell.KeyTab:
			if reg.Focus().IsModal() {
				return component.Propagate, nil
			}
			reg.FocusNext()
			return component.ConsumedRender, nil
		case tcell.KeyBacktab:
			if reg.Focus().IsModal() {
				return component.Propagate, nil
			}
			reg.FocusPrev()
			return component.ConsumedRender, nil
		case tcell.KeyCtrlO:
			files, err := listFiles(*dirFlag)
			if err != nil {
				return component.Propagate, err
			}
			if err := open.Open(reg); err != nil {
				return component.Propagate, err
			}
			a.Ring(audio.SoundOpen)
			args.Store.Dispatch(SetDialog{ID: openID, Buffer: dialog.NewBuffer("Open "+*dirFlag, files)})
			return component.ConsumedRender, nil
		}
		return component.Propagate, nil
	}
}

func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

// loadFile reads path into the editor id, or reports the failure in the status row
func loadFile(d component.Dispatcher, id, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("open %s: %v", path, err)
		d.Dispatch(SetStatus(fmt.Sprintf("open failed: %v", err)))
		return
	}
	d.Dispatch(SetEditor{ID: id, Buffer: editor.NewBuffer(string(data))})
	d.Dispatch(SetStatus(fmt.Sprintf("%s -> %s", filepath.Base(path), id)))
}
