package views

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/gochip8/internal/types"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"github.com/thelolagemann/gochip8/pkg/display/fyne/themes"
)

// bytesPerRow is the number of bytes shown on each row.
const bytesPerRow = 16

// Memory is a hex dump of the whole address space, with the
// word at the program counter highlighted.
type Memory struct {
	widget.BaseWidget
	Inspect Inspector

	mu   sync.Mutex
	data []byte
	pc   int
	list *widget.List
}

func NewMemory(inspect Inspector) *Memory {
	m := &Memory{Inspect: inspect, data: make([]byte, types.MemorySize)}
	m.ExtendBaseWidget(m)
	return m
}

func (m *Memory) Title() string {
	return "Memory"
}

func (m *Memory) Run(window fyne.Window, events <-chan event.Event) error {
	window.SetContent(m)
	window.Resize(fyne.NewSize(720, 480))
	go refreshUntilClosed(m, events)
	return nil
}

func (m *Memory) CreateRenderer() fyne.WidgetRenderer {
	m.list = m.createHexList()
	header := bold(fmt.Sprintf("%d bytes, program at 0x%03X", types.MemorySize, types.ProgramAddress))
	return widget.NewSimpleRenderer(container.NewBorder(header, nil, nil, nil, m.list))
}

func (m *Memory) createHexList() *widget.List {
	// Number of rows, each row is 16 bytes
	numRows := (len(m.data) + bytesPerRow - 1) / bytesPerRow

	return widget.NewList(
		func() int {
			return numRows
		},
		// Address, hex values and ASCII values in a single row
		func() fyne.CanvasObject {
			fg := themeColor(theme.ColorNameForeground)
			hexLabels := make([]fyne.CanvasObject, bytesPerRow)
			asciiLabels := make([]fyne.CanvasObject, bytesPerRow)
			for i := range hexLabels {
				hexLabels[i] = mono("00", fg)
				asciiLabels[i] = mono(".", fg)
			}

			return container.NewHBox(
				mono("0x000", fg),
				mono("  ", fg), // spacing
				container.NewHBox(hexLabels...),
				mono("  ", fg), // spacing
				container.NewHBox(asciiLabels...),
			)
		},
		func(id widget.ListItemID, item fyne.CanvasObject) {
			m.mu.Lock()
			offset := id * bytesPerRow
			address, hexValues, asciiValues := formatRow(offset, m.data)
			pc := m.pc
			m.mu.Unlock()

			fg := themeColor(theme.ColorNameForeground)
			highlight := themeColor(themes.ColorNameHighlight)
			dimmed := themeColor(themes.ColorNameDimmed)
			hbox := item.(*fyne.Container)
			hbox.Objects[0].(*canvas.Text).Text = address

			hexContainer := hbox.Objects[2].(*fyne.Container)
			asciiContainer := hbox.Objects[4].(*fyne.Container)
			for i := range hexValues {
				hexLabel := hexContainer.Objects[i].(*canvas.Text)
				hexLabel.Text = hexValues[i]
				switch {
				case offset+i == pc || offset+i == pc+1:
					hexLabel.Color = highlight
				case hexValues[i] == "00":
					hexLabel.Color = dimmed
				default:
					hexLabel.Color = fg
				}

				asciiLabel := asciiContainer.Objects[i].(*canvas.Text)
				asciiLabel.Text = asciiValues[i]
				if asciiValues[i] == "." {
					asciiLabel.Color = dimmed
				} else {
					asciiLabel.Color = fg
				}
			}
			hbox.Refresh()
		},
	)
}

// Refresh copies the current memory and redraws the visible rows.
func (m *Memory) Refresh() {
	in := m.Inspect()

	m.mu.Lock()
	copy(m.data, in.Memory)
	m.pc = int(in.PC)
	m.mu.Unlock()

	if m.list != nil {
		m.list.Refresh()
	}
}

func formatRow(offset int, data []byte) (string, []string, []string) {
	address := fmt.Sprintf("0x%03X", offset)

	hexValues := make([]string, bytesPerRow)
	asciiValues := make([]string, bytesPerRow)
	for i := 0; i < bytesPerRow && offset+i < len(data); i++ {
		b := data[offset+i]
		hexValues[i] = fmt.Sprintf("%02X", b)
		asciiValues[i] = "."
		if b >= 0x20 && b < 0x7f {
			asciiValues[i] = string(rune(b))
		}
	}

	return address, hexValues, asciiValues
}
