package cui

import (
	"context"
	"east/internal/lib/logger/sl"
	"east/internal/services/relevance"
	"east/internal/utils"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/mattn/go-runewidth"
)

// CUI is a small terminal dashboard over the relevance engine: type a
// keyphrase, see every indexed text ranked by its matching score.
type CUI struct {
	ctx        context.Context
	cui        *gocui.Gui
	engine     *relevance.Engine
	log        *slog.Logger
	maxResults int
}

func New(ctx context.Context, log *slog.Logger, engine *relevance.Engine, maxResults int) *CUI {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		log.Error("Failed to create GUI:", "error", sl.Err(err))
		os.Exit(1)
	}
	return &CUI{
		ctx:        ctx,
		cui:        g,
		engine:     engine,
		log:        log,
		maxResults: maxResults,
	}
}

func (c *CUI) Close() {
	c.cui.Close()
}

func (c *CUI) Start() error {
	c.cui.Cursor = true
	c.cui.SetManagerFunc(c.layout)
	defer c.cui.Close()

	if err := c.cui.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err != nil {
		c.log.Error("Failed to set keybinding:", "error", sl.Err(err))
	}
	if err := c.cui.SetKeybinding("input", gocui.KeyEnter, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
		keyphrase := strings.TrimSpace(v.Buffer())
		return c.score(g, keyphrase)
	}); err != nil {
		c.log.Error("Failed to set keybinding:", "error", sl.Err(err))
	}

	if err := c.cui.SetKeybinding("output", gocui.KeyArrowDown, gocui.ModNone, scrollDown); err != nil {
		c.log.Error("Failed to set keybinding:", "error", sl.Err(err))
	}
	if err := c.cui.SetKeybinding("output", gocui.KeyArrowUp, gocui.ModNone, scrollUp); err != nil {
		c.log.Error("Failed to set keybinding:", "error", sl.Err(err))
	}
	if err := c.cui.SetKeybinding("maxResults", gocui.KeyEnter, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
		return c.setMaxResults(g, v)
	}); err != nil {
		c.log.Error("Failed to set keybinding:", "error", sl.Err(err))
	}

	if err := c.cui.SetKeybinding("", gocui.KeyTab, gocui.ModNone, func(g *gocui.Gui, v *gocui.View) error {
		currentView := g.CurrentView().Name()
		if currentView == "input" {
			_, _ = g.SetCurrentView("maxResults")
		} else if currentView == "maxResults" {
			_, _ = g.SetCurrentView("output")
		} else {
			_, _ = g.SetCurrentView("input")
		}
		return nil
	}); err != nil {
		c.log.Error("Failed to set keybinding:", "error", sl.Err(err))
	}

	if err := c.cui.MainLoop(); err != nil && err != gocui.ErrQuit {
		c.log.Error("Failed to run GUI:", "error", sl.Err(err))
	}

	return nil
}

func (c *CUI) setMaxResults(g *gocui.Gui, v *gocui.View) error {
	maxResultsStr := strings.TrimSpace(v.Buffer())
	if maxResultsInt, err := strconv.Atoi(maxResultsStr); err == nil {
		c.maxResults = maxResultsInt
	}
	return nil
}

func scrollDown(g *gocui.Gui, v *gocui.View) error {
	_, oy := v.Origin()
	_, sy := v.Size()

	lines := len(v.BufferLines())

	if oy+sy < lines {
		v.SetOrigin(0, oy+1)
	}
	return nil
}

func scrollUp(g *gocui.Gui, v *gocui.View) error {
	_, oy := v.Origin()
	if oy > 0 {
		v.SetOrigin(0, oy-1)
	}
	return nil
}

func (c *CUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if maxX < 10 || maxY < 6 {
		return fmt.Errorf("terminal window is too small")
	}

	// Left Sidebar for Time Measurement
	if v, err := g.SetView("time", 0, 0, maxX/4, maxY-2); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Time Measurements"
		v.Wrap = true
		v.Frame = true
	}

	// Keyphrase Input - Right side, top
	if v, err := g.SetView("input", maxX/4+1, 2, maxX-2, 4); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Editable = true
		v.Title = "Keyphrase"
		v.Wrap = true
		_, _ = g.SetCurrentView("input")
	}

	// Max Results Input - Right side, below keyphrase input
	if v, err := g.SetView("maxResults", maxX/4+1, 5, maxX/2, 7); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Editable = true
		v.Title = "Max Results"
		v.Wrap = true

		fmt.Fprintf(v, "%d", c.maxResults)
	}

	// Output View - Right side, below max results
	if v, err := g.SetView("output", maxX/4+1, 8, maxX-2, maxY-2); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		v.Title = "Matching Scores"
		v.Wrap = true
		v.Clear()
	}

	return nil
}

func (c *CUI) score(g *gocui.Gui, keyphrase string) error {
	start := time.Now()
	results := c.engine.Scores(keyphrase, nil)
	elapsed := time.Since(start)

	timeView, err := g.View("time")
	if err != nil {
		return err
	}
	timeView.Clear()

	fmt.Fprintln(timeView, "\033[33mScoring Time:\033[0m")
	fmt.Fprintf(timeView, "\033[32mtotal: %s\033[0m\n", utils.FormatDuration(elapsed))
	if len(results) > 0 {
		fmt.Fprintf(timeView, "\033[32mper text: %s\033[0m\n", utils.FormatDuration(elapsed/time.Duration(len(results))))
	}

	outputView, err := g.View("output")
	if err != nil {
		return err
	}
	outputView.Clear()

	width, _ := outputView.Size()
	nameWidth := width - 12
	if nameWidth < 8 {
		nameWidth = 8
	}

	fmt.Fprintf(outputView, "\033[33mTexts Scored: %d\033[0m\n", len(results))

	for i, result := range results {
		if i >= c.maxResults {
			break
		}
		name := runewidth.Truncate(result.Name, nameWidth, "…")
		name = runewidth.FillRight(name, nameWidth)
		fmt.Fprintf(outputView, "\033[32m%s\033[0m  %.6f\n", name, result.Score)
	}

	_, _ = g.SetCurrentView("input")
	return nil
}

func quit(g *gocui.Gui, v *gocui.View) error {
	return gocui.ErrQuit
}
