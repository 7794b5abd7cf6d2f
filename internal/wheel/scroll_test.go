package wheel

import (
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/wheelsim/internal/scroller"
)

var _ = Describe("scrolling", func() {
	var r *rig

	Describe("scrollBy", func() {
		It("rotates the window one slot per element", func() {
			r = newRig(nil)
			r.p.scrollBy(testElement)

			Expect(r.p.Value()).To(Equal(49))
			Expect(r.p.Indices()).To(Equal(window(49, 7)))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			Expect(r.changes).To(Equal([][2]int{{50, 49}}))
		})

		It("mirrors rotation for a descending wheel", func() {
			r = newRig(func(c *Config) { c.Order = Descending })
			r.p.scrollBy(testElement)
			Expect(r.p.Value()).To(Equal(51))
		})

		DescribeTable("conserves whole-element moves",
			func(start, k, want int) {
				r = newRig(func(c *Config) { c.Value = start })
				r.p.scrollBy(k * testElement)
				Expect(r.p.Value()).To(Equal(want))
				Expect(r.p.Indices()[r.p.MiddleIndex()]).To(Equal(want))
				Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			},
			Entry("one down", 50, 1, 49),
			Entry("two down", 50, 2, 48),
			Entry("five down", 50, 5, 45),
			Entry("one up", 50, -1, 51),
			Entry("five up", 50, -5, 55),
			Entry("wraps below min", 3, 5, 98),
			Entry("wraps above max", 99, -3, 2),
		)

		It("holds still up to half a slot", func() {
			r = newRig(nil)
			r.p.scrollBy(testElement / 2)
			Expect(r.p.Value()).To(Equal(50))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset() + testElement/2))
			Expect(r.changes).To(BeEmpty())
		})

		It("rotates once just past half a slot", func() {
			r = newRig(nil)
			r.p.scrollBy(testElement/2 + 1)
			Expect(r.p.Value()).To(Equal(49))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset() + testElement/2 + 1 - testElement))
			Expect(r.changes).To(Equal([][2]int{{50, 49}}))

			r.p.scrollBy(-1)
			Expect(r.p.Value()).To(Equal(49))
			Expect(r.changes).To(HaveLen(1))
		})

		It("uses a label wider than half a slot as the threshold", func() {
			r = newRig(nil)
			r.p.Layout(testElement, 30, 140)
			r.p.scrollBy(30)
			Expect(r.p.Value()).To(Equal(50))
			r.p.scrollBy(1)
			Expect(r.p.Value()).To(Equal(49))
		})

		It("falls back to half a slot when the label does not fit", func() {
			r = newRig(nil)
			r.p.Layout(testElement, testElement, 140)
			r.p.scrollBy(testElement/2 + 1)
			Expect(r.p.Value()).To(Equal(49))
		})

		It("never undoes its own rotation", func() {
			for delta := -3 * testElement; delta <= 3*testElement; delta++ {
				r = newRig(nil)
				r.p.scrollBy(delta)
				for _, c := range r.changes {
					if delta > 0 {
						Expect(c[1]).To(Equal(c[0]-1), "delta %d: %v", delta, r.changes)
					} else {
						Expect(c[1]).To(Equal(c[0]+1), "delta %d: %v", delta, r.changes)
					}
				}
				rel := r.p.Offset() - r.p.InitialOffset()
				Expect(rel).To(BeNumerically(">=", -testElement/2), "delta %d", delta)
				Expect(rel).To(BeNumerically("<=", testElement/2), "delta %d", delta)
			}
		})

		Context("without wrapping", func() {
			BeforeEach(func() {
				r = newRig(func(c *Config) {
					c.Wrap = false
					c.Value = 3
				})
			})

			It("stops at min and rejects further moves", func() {
				r.p.scrollBy(10 * testElement)
				Expect(r.p.Value()).To(Equal(1))
				Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
				Expect(r.changes).To(Equal([][2]int{{3, 2}, {2, 1}}))

				r.p.scrollBy(testElement)
				Expect(r.p.Value()).To(Equal(1))
				Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
				Expect(r.p.Indices()[r.p.MiddleIndex()]).To(Equal(1))
			})

			It("stops at max", func() {
				r.p.SetValue(98)
				r.p.scrollBy(-10 * testElement)
				Expect(r.p.Value()).To(Equal(100))
				Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			})

			It("never leaves the range", func() {
				for delta := -1000; delta <= 1000; delta += 37 {
					r.p.scrollBy(delta)
					Expect(r.p.Value()).To(BeNumerically(">=", 1))
					Expect(r.p.Value()).To(BeNumerically("<=", 100))
				}
			})
		})
	})

	Describe("ensureScrollWheelAdjusted", func() {
		BeforeEach(func() {
			r = newRig(nil)
		})

		It("returns to rest and a second call does nothing", func() {
			r.p.scrollBy(10)
			r.p.ensureScrollWheelAdjusted()
			Expect(r.p.Animating()).To(BeTrue())
			r.settle()

			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			Expect(r.p.Value()).To(Equal(50))

			r.p.ensureScrollWheelAdjusted()
			Expect(r.p.Animating()).To(BeFalse())
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			Expect(r.changes).To(BeEmpty())
		})

		It("settles on the slot the wheel rotated to", func() {
			r.p.scrollBy(30)
			Expect(r.p.Value()).To(Equal(49))
			r.p.ensureScrollWheelAdjusted()
			r.settle()
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			Expect(r.p.Value()).To(Equal(49))
		})

		It("takes the shorter way past half a slot", func() {
			r.p.Layout(testElement, 30, 140)
			r.p.scrollBy(25)
			Expect(r.p.Value()).To(Equal(50))

			r.p.ensureScrollWheelAdjusted()
			r.settle()
			Expect(r.p.Value()).To(Equal(49))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
		})
	})

	Describe("fling", func() {
		BeforeEach(func() {
			r = newRig(nil)
		})

		It("runs touch-scroll, fling, idle and defers the label", func() {
			r.p.HandleGestureStart(140)
			Expect(r.clicks).To(Equal(1))

			r.p.HandleGestureMove(150)
			Expect(r.p.ScrollState()).To(Equal(TouchScroll))
			r.p.HandleGestureMove(190)
			Expect(r.p.Value()).To(Equal(49))
			Expect(r.p.Label()).To(Equal("49"))

			r.p.HandleGestureEnd(-3000, 190)
			Expect(r.p.ScrollState()).To(Equal(Fling))

			for i := 0; i < 50 && r.p.Value() == 49; i++ {
				r.frame()
			}
			Expect(r.p.Value()).NotTo(Equal(49))
			Expect(r.p.ScrollState()).To(Equal(Fling))
			Expect(r.p.Label()).To(Equal("49"))
			Expect(r.p.Velocity()).To(BeNumerically(">", 0))

			r.settle()
			Expect(r.p.ScrollState()).To(Equal(Idle))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			Expect(r.p.Value()).To(BeNumerically(">", 51))
			Expect(r.p.Label()).To(Equal(strconv.Itoa(r.p.Value())))
			Expect(r.states).To(Equal([]ScrollState{TouchScroll, Fling, Idle}))
		})

		It("moves toward smaller values for a positive velocity", func() {
			r.p.HandleGestureStart(140)
			r.p.HandleGestureEnd(2000, 140)
			r.settle()
			Expect(r.p.Value()).To(BeNumerically("<", 48))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
		})

		It("clamps the release velocity", func() {
			r.p.HandleGestureStart(140)
			r.p.HandleGestureEnd(-50000, 140)
			Expect(r.p.flinger.Velocity()).To(BeNumerically("==", r.p.MaxFlingVelocity()))
		})

		It("stops at the bound of a non-wrapping wheel", func() {
			r = newRig(func(c *Config) {
				c.Wrap = false
				c.Value = 98
			})
			r.p.HandleGestureStart(140)
			r.p.HandleGestureEnd(-5000, 140)
			r.settle()
			Expect(r.p.Value()).To(Equal(100))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
		})

		It("is stopped by a new press", func() {
			r.p.HandleGestureStart(140)
			r.p.HandleGestureEnd(-3000, 140)
			r.frames(3)

			r.p.HandleGestureStart(20)
			Expect(r.p.Animating()).To(BeFalse())
			Expect(r.p.ScrollState()).To(Equal(Idle))
			Expect(r.p.LongPressPending()).To(BeFalse())
			Expect(r.p.Label()).To(Equal(strconv.Itoa(r.p.Value())))
		})

		It("lets a single step finish the fling first", func() {
			r.p.HandleGestureStart(140)
			r.p.HandleGestureEnd(-3000, 140)
			r.frames(3)

			r.p.ChangeValueByOne(true)
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			landed := r.p.Value()

			r.settle()
			Expect(r.p.Value()).To(Equal(landed + 1))
			Expect(r.p.ScrollState()).To(Equal(Idle))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
		})
	})

	Describe("snap-adjust interruption", func() {
		It("is stopped by a press without firing a click", func() {
			r = newRig(nil)
			r.p.scrollBy(10)
			r.p.ensureScrollWheelAdjusted()
			r.frames(2)

			r.p.HandleGestureStart(140)
			Expect(r.p.Animating()).To(BeFalse())
			Expect(r.clicks).To(Equal(0))
		})
	})

	Describe("SmoothScrollToPosition", func() {
		It("walks to the target value", func() {
			r = newRig(nil)
			r.p.SmoothScrollToPosition(53)
			r.settle()
			Expect(r.p.Value()).To(Equal(53))
			Expect(r.changes).To(HaveLen(3))
		})

		It("respects descending order", func() {
			r = newRig(func(c *Config) { c.Order = Descending })
			r.p.SmoothScrollToPosition(47)
			r.settle()
			Expect(r.p.Value()).To(Equal(47))
		})

		It("ignores the current value", func() {
			r = newRig(nil)
			r.p.SmoothScrollToPosition(50)
			Expect(r.p.Animating()).To(BeFalse())
		})
	})

	Describe("friction", func() {
		It("shortens flings when raised", func() {
			loose := newRig(nil)
			loose.p.HandleGestureStart(140)
			loose.p.HandleGestureEnd(-1000, 140)

			tight := newRig(nil)
			tight.p.SetFriction(scroller.DefaultFriction * 3)
			tight.p.HandleGestureStart(140)
			tight.p.HandleGestureEnd(-1000, 140)

			Expect(tight.p.flinger.Distance()).To(BeNumerically("<", loose.p.flinger.Distance()))
		})
	})
})
