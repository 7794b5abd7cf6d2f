package wheel

import (
	"errors"
	"fmt"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingObserver struct {
	calls int
	last  [2]int
}

func (o *countingObserver) OnScrollChanged(p *Picker, offset, previous int) {
	o.calls++
	o.last = [2]int{offset, previous}
}

type valueRecorder struct {
	countingObserver
	values [][2]int
}

func (o *valueRecorder) OnValueChanged(p *Picker, previous, current int) {
	o.values = append(o.values, [2]int{previous, current})
}

var _ = Describe("Picker", func() {
	var r *rig

	Describe("construction", func() {
		It("rejects a negative max", func() {
			cfg := DefaultConfig()
			cfg.MinValue, cfg.MaxValue = -10, -1
			_, err := New(cfg, Env{})

			var rangeErr *InvalidRangeError
			Expect(errors.As(err, &rangeErr)).To(BeTrue())
			Expect(rangeErr.Max).To(Equal(-1))
			Expect(errors.Is(err, ErrInvalidRange)).To(BeTrue())
		})

		It("rejects an empty wheel", func() {
			cfg := DefaultConfig()
			cfg.WheelItemCount = 0
			_, err := New(cfg, Env{})
			Expect(errors.Is(err, ErrInvalidItemCount)).To(BeTrue())
		})

		It("clamps the initial value", func() {
			cfg := DefaultConfig()
			cfg.Wrap = false
			cfg.Value = 500
			p, err := New(cfg, Env{})
			Expect(err).NotTo(HaveOccurred())
			Expect(p.Value()).To(Equal(100))
		})

		It("scales the fling ceiling by the coefficient", func() {
			r = newRig(nil)
			Expect(r.p.MaxFlingVelocity()).To(Equal(DefaultMaxFlingVelocity / DefaultMaxFlingVelocityCoefficient))
			r.p.SetMaxFlingVelocityCoefficient(2)
			Expect(r.p.MaxFlingVelocity()).To(Equal(4000))
			r.p.SetMaxFlingVelocityCoefficient(0)
			Expect(r.p.MaxFlingVelocity()).To(Equal(1000))
		})
	})

	Describe("wrap eligibility", func() {
		It("forces wrapping off when the range cannot fill the wheel", func() {
			r = newRig(func(c *Config) {
				c.MinValue, c.MaxValue, c.Value = 0, 5, 2
				c.Wrap = true
			})
			Expect(r.p.WrapEnabled()).To(BeFalse())
		})

		It("wraps when the range exactly fills the wheel", func() {
			r = newRig(func(c *Config) {
				c.MinValue, c.MaxValue, c.Value = 0, 6, 0
			})
			Expect(r.p.WrapEnabled()).To(BeTrue())
			Expect(r.p.Indices()).To(Equal([]int{4, 5, 6, 0, 1, 2, 3}))
		})

		It("follows the preference", func() {
			r = newRig(nil)
			Expect(r.p.WrapEnabled()).To(BeTrue())
			r.p.SetWrap(false)
			Expect(r.p.WrapEnabled()).To(BeFalse())
		})

		It("never wraps a single-value wheel", func() {
			r = newRig(func(c *Config) {
				c.MinValue, c.MaxValue, c.Value = 3, 3, 3
				c.WheelItemCount = 1
			})
			Expect(r.p.WrapEnabled()).To(BeFalse())
			Expect(r.p.wrapIndex(10)).To(Equal(3))
		})
	})

	Describe("wrapIndex", func() {
		BeforeEach(func() {
			r = newRig(nil)
		})

		It("folds one step past either end with the corrected formula", func() {
			Expect(r.p.wrapIndex(101)).To(Equal(1))
			Expect(r.p.wrapIndex(105)).To(Equal(5))
			Expect(r.p.wrapIndex(0)).To(Equal(100))
			Expect(r.p.wrapIndex(-3)).To(Equal(97))
			Expect(r.p.wrapIndex(42)).To(Equal(42))
		})

		DescribeTable("stays in range and is idempotent",
			func(min, max int) {
				Expect(r.p.SetRange(min, max)).To(Succeed())
				for i := min - 3*(max-min) - 5; i <= max+3*(max-min)+5; i++ {
					w := r.p.wrapIndex(i)
					Expect(w).To(BeNumerically(">=", min), fmt.Sprintf("i=%d", i))
					Expect(w).To(BeNumerically("<=", max), fmt.Sprintf("i=%d", i))
					Expect(r.p.wrapIndex(w)).To(Equal(w), fmt.Sprintf("i=%d", i))
				}
			},
			Entry("percent", 1, 100),
			Entry("minutes", 0, 59),
			Entry("tiny", 0, 6),
			Entry("pair", 4, 5),
		)
	})

	Describe("SetRange", func() {
		BeforeEach(func() {
			r = newRig(nil)
		})

		It("rejects max below zero", func() {
			err := r.p.SetRange(0, -1)
			Expect(errors.Is(err, ErrInvalidRange)).To(BeTrue())
			Expect(r.p.Max()).To(Equal(100))
		})

		It("rejects min above max", func() {
			Expect(r.p.SetRange(10, 5)).To(MatchError(ErrInvalidRange))
		})

		It("clamps the current value and rebuilds the window", func() {
			Expect(r.p.SetRange(1, 30)).To(Succeed())
			Expect(r.p.Value()).To(Equal(30))
			Expect(r.p.Indices()[r.p.MiddleIndex()]).To(Equal(30))
			Expect(r.p.Label()).To(Equal("30"))
			Expect(r.changes).To(BeEmpty())
		})

		It("recomputes wrap eligibility", func() {
			Expect(r.p.SetRange(0, 3)).To(Succeed())
			Expect(r.p.WrapEnabled()).To(BeFalse())
			Expect(r.p.SetRange(0, 59)).To(Succeed())
			Expect(r.p.WrapEnabled()).To(BeTrue())
		})
	})

	Describe("SetValue", func() {
		It("wraps without notifying", func() {
			r = newRig(nil)
			r.p.SetValue(105)
			Expect(r.p.Value()).To(Equal(5))
			Expect(r.p.Indices()).To(Equal([]int{2, 3, 4, 5, 6, 7, 8}))
			Expect(r.changes).To(BeEmpty())
		})

		It("clamps when not wrapping", func() {
			r = newRig(func(c *Config) { c.Wrap = false })
			r.p.SetValue(-4)
			Expect(r.p.Value()).To(Equal(1))
			Expect(r.p.Label()).To(Equal("1"))
		})
	})

	Describe("SetWheelItemCount", func() {
		BeforeEach(func() {
			r = newRig(nil)
		})

		It("rejects counts below one", func() {
			Expect(r.p.SetWheelItemCount(0)).To(MatchError(ErrInvalidItemCount))
			Expect(r.p.WheelItemCount()).To(Equal(7))
		})

		It("resizes the window and re-anchors the rest offset", func() {
			Expect(r.p.SetWheelItemCount(3)).To(Succeed())
			Expect(r.p.Indices()).To(Equal([]int{49, 50, 51}))
			// the measured center stays put; only the middle slot moved
			Expect(r.p.InitialOffset()).To(Equal(3*testElement + testElement/2 - testElement))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
		})

		It("supports a single visible item", func() {
			Expect(r.p.SetWheelItemCount(1)).To(Succeed())
			r.p.scrollBy(testElement)
			Expect(r.p.Value()).To(Equal(49))
			r.p.scrollBy(-testElement)
			Expect(r.p.Value()).To(Equal(50))
		})
	})

	Describe("labels", func() {
		It("renders out-of-range slots as empty strings", func() {
			r = newRig(func(c *Config) {
				c.Wrap = false
				c.Value = 1
			})
			Expect(r.p.Labels()).To(Equal([]string{"", "", "", "1", "2", "3", "4"}))
		})

		It("uses the formatter", func() {
			r = newRig(func(c *Config) {
				c.MinValue, c.MaxValue, c.Value = 0, 59, 5
			})
			r.p.SetFormatter(FormatterFunc(func(v int) string { return fmt.Sprintf("%02d", v) }))
			Expect(r.p.Label()).To(Equal("05"))
			Expect(r.p.Labels()[0]).To(Equal("02"))
			Expect(r.p.DisplayString(58)).To(Equal("58"))
		})

		It("reverses drawing order for a descending wheel", func() {
			r = newRig(func(c *Config) { c.Order = Descending })
			Expect(r.p.Labels()).To(Equal([]string{"53", "52", "51", "50", "49", "48", "47"}))
		})

		It("resolves displayed values by offset from min", func() {
			r = newRig(func(c *Config) {
				c.MinValue, c.MaxValue, c.Value = 0, 2, 1
				c.WheelItemCount = 3
				c.Wrap = false
			})
			r.p.SetDisplayedValues([]string{"low", "mid", "high"})
			Expect(r.p.Validate()).To(Succeed())
			Expect(r.p.Labels()).To(Equal([]string{"low", "mid", "high"}))
			Expect(r.p.Label()).To(Equal("mid"))
		})

		It("skips slots a short displayed-value table cannot cover", func() {
			r = newRig(func(c *Config) {
				c.MinValue, c.MaxValue, c.Value = 0, 2, 1
				c.WheelItemCount = 3
				c.Wrap = false
			})
			r.p.SetDisplayedValues([]string{"low", "mid"})

			var rangeErr *InvalidRangeError
			Expect(errors.As(r.p.Validate(), &rangeErr)).To(BeTrue())
			Expect(rangeErr.Displayed).To(Equal(2))
			Expect(r.p.Labels()).To(Equal([]string{"low", "mid", ""}))

			r.p.SetValue(2)
			Expect(r.p.Label()).To(Equal(""))

			r.p.SetDisplayedValues(nil)
			Expect(r.p.Label()).To(Equal(strconv.Itoa(2)))
		})
	})

	Describe("before layout", func() {
		It("defers offsets but still steps the value", func() {
			cfg := DefaultConfig()
			cfg.Value = 10
			p, err := New(cfg, Env{})
			Expect(err).NotTo(HaveOccurred())

			p.scrollBy(100)
			Expect(p.Offset()).To(Equal(0))
			Expect(p.Tick()).To(BeFalse())

			p.ChangeValueByOne(true)
			Expect(p.Value()).To(Equal(11))

			p.Layout(0, 0, 0)
			p.ChangeValueByOne(false)
			Expect(p.Value()).To(Equal(10))
		})
	})

	Describe("observers and redraws", func() {
		It("reports offset changes", func() {
			r = newRig(nil)
			obs := &countingObserver{}
			r.p.AddObserver(obs)

			start := r.p.Offset()
			r.p.scrollBy(5)
			Expect(obs.calls).To(Equal(1))
			Expect(obs.last).To(Equal([2]int{start + 5, start}))

			r.p.scrollBy(0)
			Expect(obs.calls).To(Equal(1))
			Expect(r.redraw.Requests()).To(BeNumerically(">", 0))
		})

		It("reports value commits to value observers even when the offset is back at rest", func() {
			r = newRig(nil)
			obs := &valueRecorder{}
			r.p.AddObserver(obs)

			r.p.scrollBy(2 * testElement)
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			Expect(obs.calls).To(Equal(0))
			Expect(obs.values).To(Equal([][2]int{{50, 49}, {49, 48}}))
			Expect(obs.values).To(Equal(r.changes))
		})
	})
})
