package cgl_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/cglsim/internal/cgl"
)

// decaySystem is dA/dt = -A on an n×n grid, with the exact solution
// A(t) = A(0)·e^{-t}.
type decaySystem struct{ n int }

func (d *decaySystem) Derivative(f cgl.Field, _ float64) cgl.Field {
	out := cgl.NewField(d.n)
	data := out.Data()
	for i, v := range f.Data() {
		data[i] = -v
	}
	return out
}

func (d *decaySystem) GridSize() int { return d.n }

// eulerStep mirrors the forward-Euler scheme without importing the
// integrators package.
type eulerStep struct{}

func (eulerStep) Step(sys cgl.System, f cgl.Field, t, dt float64) cgl.Field {
	return f.AddScaled(sys.Derivative(f, t), dt)
}

// blowupStep produces a NaN field on the first step.
type blowupStep struct{}

func (blowupStep) Step(sys cgl.System, f cgl.Field, t, dt float64) cgl.Field {
	out := cgl.NewField(f.Size())
	out.Data()[0] = complex(math.NaN(), 0)
	return out
}

var _ = Describe("Simulator", func() {
	var (
		sys *decaySystem
		sim *cgl.Simulator
		f0  cgl.Field
	)

	BeforeEach(func() {
		sys = &decaySystem{n: 2}
		sim = cgl.New(sys, eulerStep{})
		f0 = cgl.NewField(2)
		f0.Set(0, 0, complex(1, 0.5))
	})

	Describe("config validation", func() {
		It("rejects non-positive dt", func() {
			_, err := sim.Run(context.Background(), f0, cgl.Config{Dt: 0, Duration: 1})
			Expect(err).To(MatchError(cgl.ErrInvalidConfig))
		})

		It("rejects negative duration", func() {
			_, err := sim.Run(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: -1})
			Expect(err).To(MatchError(cgl.ErrInvalidConfig))
		})

		It("rejects a field whose grid does not match the system", func() {
			wrong := cgl.NewField(3)
			_, err := sim.Run(context.Background(), wrong, cgl.Config{Dt: 0.1, Duration: 1})
			Expect(err).To(MatchError(cgl.ErrGridMismatch))
		})
	})

	Describe("frame accumulation", func() {
		It("produces round(T/dt)+1 frames including the initial condition", func() {
			result, err := sim.Run(context.Background(), f0, cgl.Config{Dt: 0.05, Duration: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Fields).To(HaveLen(1001))
			Expect(result.Times).To(HaveLen(1001))
			Expect(result.StepsTaken).To(Equal(1000))
		})

		It("stores the initial condition as frame zero", func() {
			result, err := sim.Run(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Fields[0].At(0, 0)).To(Equal(complex(1, 0.5)))
			Expect(result.Times[0]).To(BeZero())
		})

		It("does not alias the caller's initial field", func() {
			result, err := sim.Run(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			f0.Set(0, 0, complex(42, 0))
			Expect(result.Fields[0].At(0, 0)).To(Equal(complex(1, 0.5)))
		})

		It("computes times from the step index, not accumulation", func() {
			result, err := sim.Run(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Times[len(result.Times)-1]).To(Equal(float64(100) * 0.1))
		})
	})

	Describe("integration", func() {
		It("tracks the exact exponential decay to first order", func() {
			result, err := sim.Run(context.Background(), f0, cgl.Config{Dt: 0.001, Duration: 1})
			Expect(err).NotTo(HaveOccurred())

			final := result.Fields[len(result.Fields)-1].At(0, 0)
			exact := complex(1, 0.5) * complex(math.Exp(-1), 0)
			Expect(real(final)).To(BeNumerically("~", real(exact), 1e-3))
			Expect(imag(final)).To(BeNumerically("~", imag(exact), 1e-3))
		})

		It("is deterministic across invocations", func() {
			cfg := cgl.Config{Dt: 0.05, Duration: 2}
			a, err := sim.Run(context.Background(), f0, cfg)
			Expect(err).NotTo(HaveOccurred())
			b, err := sim.Run(context.Background(), f0, cfg)
			Expect(err).NotTo(HaveOccurred())

			for i := range a.Fields {
				Expect(a.Fields[i].Data()).To(Equal(b.Fields[i].Data()))
			}
		})
	})

	Describe("cancellation", func() {
		It("returns the context error when cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			result, err := sim.Run(ctx, f0, cgl.Config{Dt: 0.1, Duration: 10})
			Expect(err).To(MatchError(context.Canceled))
			Expect(result.Fields).To(HaveLen(1))
		})
	})

	Describe("state validation", func() {
		It("carries NaN frames silently when ValidateState is off", func() {
			bad := cgl.New(sys, blowupStep{})
			result, err := bad.Run(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: 0.5})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Fields).To(HaveLen(6))
			Expect(result.Fields[1].IsValid()).To(BeFalse())
		})

		It("stops with a SimError when ValidateState is on", func() {
			bad := cgl.New(sys, blowupStep{})
			result, err := bad.Run(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: 0.5, ValidateState: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Errors).To(HaveLen(1))
			Expect(result.Fields).To(HaveLen(1))
		})
	})

	Describe("metrics", func() {
		It("resets, observes, and reports registered metrics", func() {
			m := &countingMetric{}
			sim.AddMetric(m)

			result, err := sim.Run(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Metrics).To(HaveKey("observations"))
			// 10 steps observed plus the final frame.
			Expect(result.Metrics["observations"]).To(Equal(11.0))
		})
	})

	Describe("RunWithCallback", func() {
		It("visits every frame and stops when asked", func() {
			visits := 0
			err := sim.RunWithCallback(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: 1},
				func(f cgl.Field, t float64) bool {
					visits++
					return visits < 5
				})
			Expect(err).NotTo(HaveOccurred())
			Expect(visits).To(Equal(5))
		})

		It("visits all frames including the last when never stopped", func() {
			visits := 0
			err := sim.RunWithCallback(context.Background(), f0, cgl.Config{Dt: 0.1, Duration: 1},
				func(f cgl.Field, t float64) bool {
					visits++
					return true
				})
			Expect(err).NotTo(HaveOccurred())
			Expect(visits).To(Equal(11))
		})
	})
})

type countingMetric struct{ count int }

func (c *countingMetric) Name() string { return "observations" }

func (c *countingMetric) Observe(f cgl.Field, t float64) { c.count++ }

func (c *countingMetric) Value() float64 { return float64(c.count) }

func (c *countingMetric) Reset() { c.count = 0 }
