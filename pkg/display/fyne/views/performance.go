package views

import (
	"image"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/thelolagemann/gochip8/pkg/display/event"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// historyLength is the number of seconds of frame times kept.
const historyLength = 60

// Performance plots the average time spent emulating a frame,
// once a second, for the last minute.
type Performance struct {
	history []time.Duration
}

func (p *Performance) Title() string {
	return "Performance"
}

func (p *Performance) Run(window fyne.Window, events <-chan event.Event) error {
	frameTimeImage := image.NewRGBA(image.Rect(0, 0, 640, 320))
	if err := p.draw(frameTimeImage); err != nil {
		return err
	}

	frameTimeCanvas := canvas.NewRasterFromImage(frameTimeImage)
	frameTimeCanvas.ScaleMode = canvas.ImageScalePixels
	frameTimeCanvas.SetMinSize(fyne.NewSize(640, 320))
	window.SetContent(frameTimeCanvas)

	go func() {
		for e := range events {
			switch e.Type {
			case event.Quit:
				return
			case event.FrameTime:
				p.add(e.Data.(time.Duration))
				if err := p.draw(frameTimeImage); err == nil {
					frameTimeCanvas.Refresh()
				}
			}
		}
	}()

	return nil
}

func (p *Performance) add(d time.Duration) {
	p.history = append(p.history, d)
	if len(p.history) > historyLength {
		p.history = p.history[len(p.history)-historyLength:]
	}
}

// draw redraws the plot into img.
func (p *Performance) draw(img *image.RGBA) error {
	frameTimePlot := plot.New()
	frameTimePlot.Title.Text = "Frame Time"
	frameTimePlot.X.Label.Text = "Seconds"
	frameTimePlot.Y.Label.Text = "Milliseconds"
	frameTimePlot.Y.Min = 0

	points := make(plotter.XYs, len(p.history))
	for i, frameTime := range p.history {
		points[i].X = float64(i - len(p.history) + 1)
		points[i].Y = float64(frameTime) / float64(time.Millisecond)
	}

	frameTimePlot.Add(plotter.NewGrid())
	if len(points) > 0 {
		line, err := plotter.NewLine(points)
		if err != nil {
			return err
		}
		frameTimePlot.Add(line)
	}

	c := vgimg.NewWith(vgimg.UseImage(img))
	frameTimePlot.Draw(draw.New(c))
	return nil
}
