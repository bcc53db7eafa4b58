package scene_test

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/san-kum/hashviz/internal/gesture"
	"github.com/san-kum/hashviz/internal/grid"
	"github.com/san-kum/hashviz/internal/scene"
)

type fakeGraph struct {
	bins       int
	level      byte
	restarts   int
	restartErr error
}

func (g *fakeGraph) BinCount() int { return g.bins }

func (g *fakeGraph) ByteFrequencyData(dst []byte) int {
	for i := range dst {
		dst[i] = g.level
	}
	return len(dst)
}

func (g *fakeGraph) Restart() error {
	g.restarts++
	return g.restartErr
}

var _ = Describe("Dispatcher", func() {
	var (
		graph    *fakeGraph
		builds   int
		buildErr error
		logs     *observer.ObservedLogs
		d        *scene.Dispatcher
		t0       time.Time
	)

	// flick moves the pointer 1000px in 1ms, well above the threshold.
	flick := func(at time.Time) {
		d.OnPointerMove(0, 0, at)
		d.OnPointerMove(1000, 0, at.Add(time.Millisecond))
	}

	BeforeEach(func() {
		graph = &fakeGraph{bins: 64, level: 255}
		builds = 0
		buildErr = nil
		t0 = time.Unix(1700000000, 0)

		core, observed := observer.New(zapcore.DebugLevel)
		logs = observed

		d = scene.NewDispatcher(scene.DefaultOptions(), func() (scene.Graph, error) {
			builds++
			if buildErr != nil {
				return nil, buildErr
			}
			return graph, nil
		}, zap.New(core))
		d.OnResize(800, 600)
	})

	Describe("resize", func() {
		It("builds the lattice and centered bars", func() {
			s := d.Scene()
			Expect(s.Field.Len()).To(Equal(35 * 27))
			Expect(s.Bars).To(HaveLen(40))
			x, y := s.Origin()
			Expect(x).To(Equal(100.0))
			Expect(y).To(Equal(220.0))
			Expect(s.Bars[0].Y).To(Equal(380.0))
		})

		It("discards the previous layout", func() {
			d.OnPointerMove(300, 300, t0)
			for i := 0; i < 5; i++ {
				d.OnFrame()
			}
			Expect(d.Scene().Field.Displacement()).To(BeNumerically(">", 0))

			d.OnResize(400, 300)

			s := d.Scene()
			Expect(s.Field.Len()).To(Equal((400/23 + 1) * (300/23 + 1)))
			Expect(s.Field.Displacement()).To(BeZero())
			for _, p := range s.Field.Points() {
				Expect(p.Vel).To(Equal(grid.Vec{}))
			}
			for _, b := range s.Bars {
				Expect(b.H).To(BeZero())
			}
			x, _ := s.Origin()
			Expect(s.Bars[0].X).To(Equal(x))
		})
	})

	Describe("pointer", func() {
		It("parks the pointer off canvas when it leaves", func() {
			d.OnPointerMove(10, 10, t0)
			Expect(d.Scene().Pointer).To(Equal(grid.Vec{X: 10, Y: 10}))
			d.OnPointerLeave()
			Expect(d.Scene().Pointer).To(Equal(grid.OffCanvas))
		})

		It("leaves the lattice at rest when the pointer is away", func() {
			for i := 0; i < 3; i++ {
				d.OnFrame()
			}
			Expect(d.Scene().Field.Displacement()).To(BeZero())
		})
	})

	Describe("unlock gate", func() {
		It("builds no audio graph before unlock", func() {
			flick(t0)
			Expect(builds).To(Equal(0))
			Expect(d.Scene().Unlocked()).To(BeFalse())
			Expect(d.Scene().Visualizing()).To(BeFalse())
		})

		It("builds the graph once across repeated unlocks", func() {
			Expect(d.OnUnlock()).To(Succeed())
			Expect(d.OnUnlock()).To(Succeed())
			Expect(builds).To(Equal(1))
			Expect(d.Scene().Unlocked()).To(BeTrue())
			Expect(d.Scene().HasAudio()).To(BeTrue())
		})

		It("stays locked when the graph cannot be built", func() {
			buildErr = errors.New("no device")
			Expect(d.OnUnlock()).To(MatchError("no device"))
			Expect(d.Scene().Unlocked()).To(BeFalse())
			Expect(logs.FilterMessage("audio setup failed").Len()).To(Equal(1))

			buildErr = nil
			Expect(d.OnUnlock()).To(Succeed())
			Expect(d.Scene().Unlocked()).To(BeTrue())
		})

		It("unlocks without audio when no factory is given", func() {
			silent := scene.NewDispatcher(scene.DefaultOptions(), nil, nil)
			silent.OnResize(800, 600)
			Expect(silent.OnUnlock()).To(Succeed())
			Expect(silent.Scene().Unlocked()).To(BeTrue())
			Expect(silent.Scene().HasAudio()).To(BeFalse())

			silent.OnPointerMove(0, 0, t0)
			silent.OnPointerMove(1000, 0, t0.Add(time.Millisecond))
			silent.OnFrame()
			Expect(silent.Scene().Visualizing()).To(BeTrue())
			Expect(silent.Scene().Bars[0].H).To(BeZero())
		})
	})

	Describe("bars", func() {
		BeforeEach(func() {
			Expect(d.OnUnlock()).To(Succeed())
		})

		It("stay flat after unlock until the gesture fires", func() {
			d.OnFrame()
			for _, b := range d.Scene().Bars {
				Expect(b.H).To(BeZero())
			}
		})

		It("follow the analyser after the gesture fires", func() {
			flick(t0)
			Expect(graph.restarts).To(Equal(1))
			d.OnFrame()
			for _, b := range d.Scene().Bars {
				Expect(b.H).To(Equal(d.Scene().Layout.Height))
			}

			graph.level = 0
			d.OnFrame()
			for _, b := range d.Scene().Bars {
				Expect(b.H).To(BeZero())
			}
		})
	})

	Describe("gesture", func() {
		BeforeEach(func() {
			Expect(d.OnUnlock()).To(Succeed())
		})

		It("ignores slow motion", func() {
			d.OnPointerMove(0, 0, t0)
			d.OnPointerMove(10, 0, t0.Add(time.Millisecond))
			Expect(d.Scene().Trigger.State()).To(Equal(gesture.Armed))
			Expect(graph.restarts).To(BeZero())
		})

		It("fires once for the whole session", func() {
			flick(t0)
			flick(t0.Add(time.Second))
			flick(t0.Add(10 * time.Second))
			Expect(graph.restarts).To(Equal(1))
			Expect(d.Scene().Trigger.State()).To(Equal(gesture.Fired))
			Expect(logs.FilterMessage("gesture fired").Len()).To(Equal(1))
		})

		It("logs playback failures without surfacing them", func() {
			graph.restartErr = errors.New("blocked")
			flick(t0)
			Expect(d.Scene().Visualizing()).To(BeTrue())
			Expect(logs.FilterMessage("audio play blocked").Len()).To(Equal(1))
		})
	})
})
