package scene

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbitlab/internal/config"
	"github.com/san-kum/orbitlab/internal/dynamo"
	"github.com/san-kum/orbitlab/internal/frame"
	"github.com/san-kum/orbitlab/internal/physics"
	"github.com/san-kum/orbitlab/internal/render"
	"gonum.org/v1/gonum/spatial/r2"
)

const frameDt = time.Second / 60

type countingObserver struct {
	seen []Snapshot
}

func (c *countingObserver) Observe(s Snapshot) { c.seen = append(c.seen, s) }

func bodyNamed(s Snapshot, name string) *physics.Body {
	for _, b := range s.Bodies {
		if b.Name == name {
			return b
		}
	}
	return nil
}

var _ = Describe("Orbital", func() {
	var (
		cfg     config.OrbitalConfig
		clock   *frame.MockClock
		q       *frame.Queue
		surface *render.Recorder
		orbital *Orbital
	)

	tick := func(n int) {
		for i := 0; i < n; i++ {
			clock.Advance(frameDt)
			q.Tick()
		}
	}

	BeforeEach(func() {
		cfg = config.DefaultConfig().Orbital
		cfg.Fit = false
		clock = frame.NewMockClock(time.Unix(0, 0))
		q = frame.NewQueue(clock)
		surface = render.NewRecorder(800, 600)
	})

	JustBeforeEach(func() {
		orbital = NewOrbital(cfg, q, surface)
	})

	Describe("state machine", func() {
		It("starts stopped with an idle status", func() {
			Expect(orbital.IsRunning()).To(BeFalse())
			Expect(orbital.IsPaused()).To(BeFalse())
			Expect(orbital.Status()).To(Equal(IdleStatus))
			Expect(q.Pending()).To(BeZero())
		})

		It("ignores pause toggles while stopped", func() {
			orbital.TogglePause()
			Expect(orbital.State()).To(Equal(Stopped))
		})

		It("moves through running, paused and stopped", func() {
			orbital.Start(OrbitalParams{})
			Expect(orbital.State()).To(Equal(Running))
			orbital.TogglePause()
			Expect(orbital.IsPaused()).To(BeTrue())
			Expect(orbital.IsRunning()).To(BeTrue())
			orbital.TogglePause()
			Expect(orbital.State()).To(Equal(Running))
			orbital.Reset()
			Expect(orbital.State()).To(Equal(Stopped))
		})

		It("keeps a single frame request across repeated starts", func() {
			orbital.Start(OrbitalParams{})
			orbital.Start(OrbitalParams{})
			orbital.Start(OrbitalParams{SunMass: 2000})
			Expect(q.Pending()).To(Equal(1))
			Expect(q.Tick()).To(Equal(1))
			Expect(q.Pending()).To(Equal(1))
		})

		It("cancels the loop on reset", func() {
			orbital.Start(OrbitalParams{})
			tick(3)
			orbital.Reset()
			Expect(q.Pending()).To(BeZero())
			Expect(q.Tick()).To(BeZero())
		})
	})

	Describe("initial configuration", func() {
		It("launches each body at circular speed when no eccentricity rule applies", func() {
			orbital.Start(OrbitalParams{})
			s := orbital.Snapshot()
			Expect(s.Attractor.Pos).To(Equal(r2.Vec{}))
			Expect(s.Bodies).To(HaveLen(len(cfg.Bodies)))
			for _, b := range s.Bodies {
				want := math.Sqrt(cfg.G * cfg.Sun.DefaultMass / b.OrbitRadius)
				Expect(r2.Norm(b.Vel)).To(BeNumerically("~", want, 1e-12))
				Expect(r2.Dot(b.Vel, b.Pos)).To(BeNumerically("~", 0, 1e-9))
			}
		})

		It("reduces speed for the first two bodies under a heavy attractor", func() {
			orbital.Start(OrbitalParams{SunMass: 3500})
			s := orbital.Snapshot()
			for i, b := range s.Bodies {
				circular := math.Sqrt(cfg.G * 3500 / b.OrbitRadius)
				factor := 1.0
				if i < 2 {
					factor = 0.8
				}
				Expect(r2.Norm(b.Vel)).To(BeNumerically("~", circular*factor, 1e-9), b.Name)
			}
		})

		It("sizes bodies by the cube root of their mass", func() {
			orbital.Start(OrbitalParams{SunMass: 8000, BodyMass: map[string]float64{"Earth": 8}})
			s := orbital.Snapshot()
			Expect(s.Attractor.Radius).To(BeNumerically("~", cfg.Sun.Radius*2, 1e-9))
			Expect(bodyNamed(s, "Earth").Radius).To(BeNumerically("~", 20, 1e-9))
		})

		It("caps a body's radius for absurd masses", func() {
			orbital.Start(ParseOrbitalParams(cfg, "", map[string]string{"Earth": "1e13"}))
			Expect(bodyNamed(orbital.Snapshot(), "Earth").Radius).To(BeNumerically("~", 10*config.DefaultBodyMaxScale, 1e-9))
		})

		Context("with a configured body max_scale", func() {
			BeforeEach(func() {
				cfg.Bodies = append([]config.BodyConfig(nil), cfg.Bodies...)
				cfg.Bodies[2].MaxScale = 1.5
			})

			It("uses it instead of the default cap", func() {
				orbital.Start(OrbitalParams{BodyMass: map[string]float64{"Earth": 1000}})
				Expect(bodyNamed(orbital.Snapshot(), "Earth").Radius).To(BeNumerically("~", 15, 1e-9))
			})
		})

		It("clamps the attractor radius", func() {
			orbital.Start(OrbitalParams{SunMass: 1})
			Expect(orbital.Snapshot().Attractor.Radius).To(BeNumerically("~", cfg.Sun.Radius*cfg.Sun.MinScale, 1e-9))
		})

		Context("when fitting to the surface", func() {
			BeforeEach(func() {
				cfg.Fit = true
				surface = render.NewRecorder(400, 400)
			})

			It("scales orbits so the widest fits the current surface", func() {
				orbital.Start(OrbitalParams{})
				scale := 200 * cfg.FitMargin / cfg.MaxOrbit()
				earth := bodyNamed(orbital.Snapshot(), "Earth")
				Expect(earth.OrbitRadius).To(BeNumerically("~", 180*scale, 1e-9))
				Expect(r2.Norm(earth.Pos)).To(BeNumerically("~", 180*scale, 1e-9))
			})

			It("zooms the drawing when the surface is resized while running", func() {
				orbital.Start(OrbitalParams{})
				before := bodyNamed(orbital.Snapshot(), "Earth")

				surface.W, surface.H = 800, 800
				tick(1)

				earth := bodyNamed(orbital.Snapshot(), "Earth")
				Expect(earth.Pos).To(Equal(before.Pos))
				var drawn *render.Op
				for i, op := range surface.Ops {
					if op.Kind == "disc" && math.Abs(op.Radius-2*earth.Radius) < 1e-9 {
						drawn = &surface.Ops[i]
					}
				}
				Expect(drawn).NotTo(BeNil())
				want := r2.Add(r2.Vec{X: 400, Y: 400}, r2.Scale(2, earth.Pos))
				Expect(drawn.A.X).To(BeNumerically("~", want.X, 1e-9))
				Expect(drawn.A.Y).To(BeNumerically("~", want.Y, 1e-9))
			})
		})
	})

	Describe("frame loop", func() {
		It("does not advance on the first frame", func() {
			orbital.Start(OrbitalParams{})
			before := orbital.Snapshot()
			tick(1)
			after := orbital.Snapshot()
			Expect(after.Time).To(BeZero())
			Expect(bodyNamed(after, "Earth").Pos).To(Equal(bodyNamed(before, "Earth").Pos))
		})

		It("scales wall time and clamps large gaps", func() {
			orbital.Start(OrbitalParams{})
			tick(2)
			Expect(orbital.Snapshot().Time).To(BeNumerically("~", frameDt.Seconds()*cfg.TimeScale, 1e-9))

			clock.Advance(time.Hour)
			q.Tick()
			Expect(orbital.Snapshot().Time).To(BeNumerically("~",
				(frameDt.Seconds()+cfg.MaxFrameDelta)*cfg.TimeScale, 1e-9))
		})

		It("renders every frame, including paused ones", func() {
			orbital.Start(OrbitalParams{})
			tick(1)
			Expect(surface.Count("disc")).To(Equal(1 + len(cfg.Bodies)))
			orbital.Pause()
			tick(1)
			Expect(surface.Count("disc")).To(Equal(1 + len(cfg.Bodies)))
			Expect(surface.Texts()).To(ContainElement("Earth"))
		})

		It("reports theoretical and visual periods", func() {
			orbital.Start(OrbitalParams{})
			tick(1)
			Expect(orbital.Status()).To(ContainSubstring("Earth period: theoretical 1696.46s, visual 42.41s"))
		})

		It("bounds every trail by its capacity", func() {
			cfg.TrailCapacity = 5
			orbital = NewOrbital(cfg, q, surface)
			orbital.Start(OrbitalParams{})
			tick(20)
			earth := bodyNamed(orbital.Snapshot(), "Earth")
			Expect(earth.Trail.Len()).To(Equal(5))
			Expect(earth.Trail.Points()[4]).To(Equal(earth.Pos))
		})

		It("notifies observers only for integrated frames", func() {
			obs := &countingObserver{}
			orbital.AddObserver(obs)
			orbital.Start(OrbitalParams{})
			tick(4)
			Expect(obs.seen).To(HaveLen(3))
			orbital.Pause()
			tick(4)
			Expect(obs.seen).To(HaveLen(3))
		})
	})

	Describe("pause and resume", func() {
		It("keeps positions continuous across a long pause", func() {
			orbital.Start(OrbitalParams{})
			tick(10)
			orbital.TogglePause()
			tick(1)
			paused := bodyNamed(orbital.Snapshot(), "Earth").Pos

			clock.Advance(time.Hour)
			orbital.TogglePause()
			q.Tick()
			resumed := bodyNamed(orbital.Snapshot(), "Earth").Pos
			Expect(resumed).To(Equal(paused))

			tick(1)
			earth := bodyNamed(orbital.Snapshot(), "Earth")
			step := r2.Norm(earth.Vel) * frameDt.Seconds() * cfg.TimeScale
			Expect(dynamo.Distance(earth.Pos, resumed)).To(BeNumerically("<", step*1.01))
		})
	})

	Describe("reset", func() {
		It("clears bodies and draws a bare attractor", func() {
			orbital.Start(OrbitalParams{})
			tick(5)
			orbital.Reset()
			s := orbital.Snapshot()
			Expect(s.Bodies).To(BeEmpty())
			Expect(s.Attractor).To(BeNil())
			Expect(orbital.Status()).To(Equal(ResetStatus))
			Expect(surface.Count("disc")).To(Equal(1))
			Expect(surface.Texts()).To(Equal([]string{cfg.Sun.Name}))
		})

		It("rebuilds an identical configuration for identical inputs", func() {
			params := OrbitalParams{SunMass: 1800, BodyMass: map[string]float64{"Mars": 0.5}}
			orbital.Start(params)
			first := orbital.Snapshot()
			tick(30)
			orbital.Reset()
			orbital.Start(params)
			second := orbital.Snapshot()

			Expect(second.Bodies).To(HaveLen(len(first.Bodies)))
			for i := range first.Bodies {
				Expect(second.Bodies[i].Pos).To(Equal(first.Bodies[i].Pos))
				Expect(second.Bodies[i].Vel).To(Equal(first.Bodies[i].Vel))
				Expect(second.Bodies[i].Radius).To(Equal(first.Bodies[i].Radius))
				Expect(second.Bodies[i].Trail.Len()).To(BeZero())
			}
		})
	})

	Describe("collisions", func() {
		BeforeEach(func() {
			cfg.Bodies = []config.BodyConfig{
				{Name: "Doomed", Orbit: 40, Radius: 4, DefaultMass: 1, MinScale: 0.5, Color: "#ffffff"},
			}
			cfg.Eccentricity = []config.EccentricityRule{{AboveMass: 0, Factor: 0, Bodies: 1}}
		})

		It("destroys a body that falls into the attractor and stops drawing it", func() {
			orbital.Start(OrbitalParams{})
			tick(200)
			s := orbital.Snapshot()
			doomed := s.Bodies[0]
			Expect(doomed.Destroyed).To(BeTrue())
			Expect(orbital.Status()).To(Equal("Doomed: collided"))

			pos := doomed.Pos
			tick(10)
			Expect(orbital.Snapshot().Bodies[0].Pos).To(Equal(pos))
			Expect(surface.Count("disc")).To(Equal(1))
		})
	})

	Describe("end to end", func() {
		It("sweeps Earth through the angle predicted by its angular speed", func() {
			orbital.Start(OrbitalParams{})
			p0 := bodyNamed(orbital.Snapshot(), "Earth").Pos
			tick(600)

			s := orbital.Snapshot()
			p := bodyNamed(s, "Earth").Pos
			swept := math.Atan2(p0.X*p.Y-p0.Y*p.X, r2.Dot(p0, p))
			omega := dynamo.AngularSpeed(cfg.G, cfg.Sun.DefaultMass, 180)
			Expect(s.Time).To(BeNumerically(">", 0))
			Expect(swept).To(BeNumerically("~", omega*s.Time, 0.01*omega*s.Time))
		})
	})
})
