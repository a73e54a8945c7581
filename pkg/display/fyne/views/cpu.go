package views

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/utils"
)

// CPU shows the registers, timers and call stack of the machine,
// along with the instructions either side of the program counter.
type CPU struct {
	widget.BaseWidget
	Inspect Inspector

	regs    [types.RegisterCount]*widget.Label
	i, pc   *widget.Label
	dt, st  *widget.Label
	waiting *widget.Label
	last    *widget.Label
	next    *widget.Label
	stack   *widget.Label
}

func NewCPU(inspect Inspector) *CPU {
	c := &CPU{
		Inspect: inspect,
		i:       widget.NewLabel("0x000"),
		pc:      widget.NewLabel("0x200"),
		dt:      widget.NewLabel("0"),
		st:      widget.NewLabel("0"),
		waiting: widget.NewLabel("0"),
		last:    widget.NewLabel(""),
		next:    widget.NewLabel(""),
		stack:   widget.NewLabel(""),
	}
	for i := range c.regs {
		c.regs[i] = widget.NewLabel("0x00")
	}
	c.ExtendBaseWidget(c)
	return c
}

func (c *CPU) Title() string {
	return "CPU"
}

func (c *CPU) Run(window fyne.Window, events <-chan event.Event) error {
	window.SetContent(c)
	go refreshUntilClosed(c, events)
	return nil
}

func (c *CPU) CreateRenderer() fyne.WidgetRenderer {
	regs := container.NewGridWithColumns(4)
	for i, r := range c.regs {
		regs.Add(widget.NewLabel(fmt.Sprintf("V%X:", i)))
		regs.Add(r)
	}
	info := container.NewGridWithColumns(2,
		widget.NewLabel("I:"), c.i,
		widget.NewLabel("PC:"), c.pc,
		widget.NewLabel("DT:"), c.dt,
		widget.NewLabel("ST:"), c.st,
		widget.NewLabel("Key wait:"), c.waiting,
		widget.NewLabel("Last:"), c.last,
		widget.NewLabel("Next:"), c.next,
		widget.NewLabel("Stack:"), c.stack,
	)
	for _, grid := range []*fyne.Container{regs, info} {
		for _, l := range grid.Objects {
			if label, ok := l.(*widget.Label); ok {
				label.TextStyle.Monospace = true
			}
		}
	}
	return widget.NewSimpleRenderer(container.NewVBox(
		newCard("Registers", regs),
		newCard("State", info),
	))
}

// Refresh updates the values of the CPU registers in the widget
func (c *CPU) Refresh() {
	in := c.Inspect()
	for i, v := range in.V {
		c.regs[i].SetText(fmt.Sprintf("0x%02X", v))
	}
	c.i.SetText(fmt.Sprintf("0x%03X", in.I))
	c.pc.SetText(fmt.Sprintf("0x%03X", in.PC))
	c.dt.SetText(fmt.Sprintf("%d", in.Delay))
	c.st.SetText(fmt.Sprintf("%d", in.Sound))
	c.waiting.SetText(utils.BoolToString(in.Waiting))
	c.last.SetText(in.Last.String())
	c.next.SetText(in.Next.String())

	stack := make([]string, len(in.Stack))
	for i, addr := range in.Stack {
		stack[i] = fmt.Sprintf("%03X", addr)
	}
	c.stack.SetText(strings.Join(stack, " "))
}
