package scene

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/frame"
	"github.com/san-kum/orbitlab/internal/physics"
	"github.com/san-kum/orbitlab/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

var _ = Describe("Magnetic", func() {
	var (
		cfg      config.MagneticConfig
		clock    *frame.MockClock
		q        *frame.Queue
		surface  *render.Recorder
		magnetic *Magnetic
	)

	tick := func() {
		clock.Advance(frameDt)
		q.Tick()
	}

	BeforeEach(func() {
		cfg = config.DefaultConfig().Magnetic
		clock = frame.NewMockClock(time.Unix(0, 0))
		q = frame.NewQueue(clock)
		surface = render.NewRecorder(400, 300)
		magnetic = NewMagnetic(cfg, q, surface)
	})

	It("only runs frames between start and stop", func() {
		Expect(magnetic.IsRunning()).To(BeFalse())
		Expect(q.Tick()).To(BeZero())

		magnetic.Start()
		magnetic.Start()
		Expect(q.Pending()).To(Equal(1))
		Expect(q.Tick()).To(Equal(1))

		magnetic.Stop()
		Expect(magnetic.IsRunning()).To(BeFalse())
		Expect(q.Pending()).To(BeZero())
	})

	It("places the compass on click and the probe on modified click", func() {
		magnetic.Click(10, 20, false)
		magnetic.Click(30, 40, true)

		c, ok := magnetic.Compass()
		Expect(ok).To(BeTrue())
		Expect(c).To(Equal(r2.Vec{X: 10, Y: 20}))
		p, ok := magnetic.Probe()
		Expect(ok).To(BeTrue())
		Expect(p).To(Equal(r2.Vec{X: 30, Y: 40}))

		magnetic.Click(50, 60, false)
		c, _ = magnetic.Compass()
		Expect(c).To(Equal(r2.Vec{X: 50, Y: 60}))
		p, _ = magnetic.Probe()
		Expect(p).To(Equal(r2.Vec{X: 30, Y: 40}))
	})

	It("clears compass and probe on stop", func() {
		magnetic.Start()
		magnetic.Click(10, 20, false)
		magnetic.Click(30, 40, true)
		magnetic.Stop()

		_, ok := magnetic.Compass()
		Expect(ok).To(BeFalse())
		_, ok = magnetic.Probe()
		Expect(ok).To(BeFalse())
		Expect(magnetic.Status()).To(Equal(PlacementHint))
	})

	It("reads the probe relative to the surface center", func() {
		magnetic.Click(200, 100, true)
		r, ok := magnetic.Reading()
		Expect(ok).To(BeTrue())
		Expect(r.Infinite).To(BeFalse())
		Expect(r.Value).To(BeNumerically("~", cfg.DefaultStrength/50, 1e-12))
		Expect(magnetic.Status()).To(Equal("Field strength at probe: 0.10 (relative)"))

		surface.W, surface.H = 400, 200
		r, _ = magnetic.Reading()
		Expect(r.Infinite).To(BeTrue())
		Expect(magnetic.Status()).To(Equal("Field strength at probe: ∞ (relative)"))
	})

	It("reports no reading without a probe", func() {
		_, ok := magnetic.Reading()
		Expect(ok).To(BeFalse())
		Expect(magnetic.Status()).To(Equal(PlacementHint))
	})

	It("ignores invalid strengths", func() {
		for _, v := range []float64{0, -3, math.NaN(), math.Inf(1)} {
			magnetic.SetStrength(v)
		}
		Expect(magnetic.Field().Strength).To(Equal(cfg.DefaultStrength))
		magnetic.SetStrength(7.5)
		Expect(magnetic.Field().Strength).To(Equal(7.5))
	})

	It("follows the sign of the direction selector", func() {
		magnetic.SetDirection(-1)
		Expect(magnetic.Field().Direction).To(Equal(physics.Clockwise))
		magnetic.SetDirection(0)
		Expect(magnetic.Field().Direction).To(Equal(physics.Clockwise))
		magnetic.ReverseDirection()
		Expect(magnetic.Field().Direction).To(Equal(physics.CounterClockwise))
	})

	It("picks up slider changes on the next frame", func() {
		magnetic.Start()
		tick()
		before := surface.Count("line")
		Expect(before).To(BeNumerically(">", 0))

		magnetic.SetStrength(cfg.DefaultStrength * 2)
		tick()
		Expect(surface.Count("line")).To(BeNumerically(">", before))
	})

	It("draws the direction glyph, compass and probe reading", func() {
		magnetic.Start()
		magnetic.SetDirection(-1)
		magnetic.Click(260, 150, false)
		magnetic.Click(200, 100, true)
		tick()

		Expect(surface.Texts()).To(ContainElements("⊗", "B=0.10"))
		Expect(surface.Count("circle")).To(Equal(1))
	})
})
