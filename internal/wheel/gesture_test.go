package wheel

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/san-kum/wheelsim/internal/scroller"
)

var _ = Describe("gestures", func() {
	var r *rig

	Describe("tap release", func() {
		It("steps once toward a tap after the center", func() {
			r = newRig(nil)
			r.p.HandleGestureStart(230)
			r.p.HandleGestureEnd(10, 232)

			Expect(r.p.flinger.Mode()).To(Equal(scroller.ModeScroll))
			Expect(r.p.ScrollState()).To(Equal(Idle))
			r.settle()

			Expect(r.p.Value()).To(Equal(51))
			Expect(r.changes).To(Equal([][2]int{{50, 51}}))
			Expect(r.states).NotTo(ContainElement(Fling))
		})

		It("does the same on a horizontal wheel", func() {
			r = newRig(func(c *Config) { c.Orientation = Horizontal })
			r.p.HandleGestureStart(230)
			r.p.HandleGestureEnd(-20, 230)
			r.settle()
			Expect(r.p.Value()).To(Equal(51))
			Expect(r.p.flinger.CurrY()).To(Equal(0))
		})

		It("steps back for a tap before the center", func() {
			r = newRig(nil)
			r.p.HandleGestureStart(50)
			r.p.HandleGestureEnd(0, 52)
			r.settle()
			Expect(r.p.Value()).To(Equal(49))
		})

		It("clicks and stays put on the center", func() {
			r = newRig(nil)
			r.p.HandleGestureStart(140)
			r.p.HandleGestureEnd(0, 141)
			r.settle()
			Expect(r.clicks).To(Equal(1))
			Expect(r.p.Value()).To(Equal(50))
			Expect(r.changes).To(BeEmpty())
		})

		It("snaps back after a slow drag", func() {
			r = newRig(nil)
			r.p.HandleGestureStart(140)
			r.p.HandleGestureMove(160)
			r.p.HandleGestureMove(170)
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset() + 10))

			r.p.HandleGestureEnd(0, 170)
			r.settle()
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
			Expect(r.p.Value()).To(Equal(50))
			Expect(r.states).To(Equal([]ScrollState{TouchScroll, Idle}))
		})

		It("ignores movement inside the slop", func() {
			r = newRig(nil)
			r.p.HandleGestureStart(140)
			r.p.HandleGestureMove(145)
			Expect(r.p.ScrollState()).To(Equal(Idle))
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
		})
	})

	Describe("long press", func() {
		BeforeEach(func() {
			r = newRig(nil)
		})

		It("repeats until released", func() {
			r.p.HandleGestureStart(20)
			Expect(r.p.LongPressPending()).To(BeTrue())

			r.frames(31)
			Expect(r.changes).To(BeEmpty())

			r.frames(21)
			r.p.HandleGestureEnd(0, 20)
			Expect(r.p.LongPressPending()).To(BeFalse())

			r.settle()
			Expect(r.p.Value()).To(Equal(47))
			Expect(r.changes).To(Equal([][2]int{{50, 49}, {49, 48}, {48, 47}}))

			r.frames(100)
			Expect(r.p.Value()).To(Equal(47))
		})

		It("is cancelled by a drag", func() {
			r.p.HandleGestureStart(20)
			r.p.HandleGestureMove(40)
			Expect(r.p.LongPressPending()).To(BeFalse())
			Expect(r.p.ScrollState()).To(Equal(TouchScroll))
		})

		It("is cancelled by a gesture cancel", func() {
			r.p.HandleGestureStart(250)
			r.p.HandleGestureCancel()
			Expect(r.p.LongPressPending()).To(BeFalse())
			r.frames(60)
			Expect(r.p.Value()).To(Equal(50))
		})

		It("is cancelled on detach", func() {
			r.p.HandleGestureStart(250)
			r.p.Detach()
			Expect(r.p.LongPressPending()).To(BeFalse())
			Expect(r.looper.Pending()).To(Equal(0))
			r.frames(60)
			Expect(r.p.Value()).To(Equal(50))
		})
	})

	Describe("gesture cancel mid-drag", func() {
		It("re-centers the wheel", func() {
			r = newRig(nil)
			r.p.HandleGestureStart(140)
			r.p.HandleGestureMove(150)
			r.p.HandleGestureMove(160)
			r.p.HandleGestureCancel()
			Expect(r.p.ScrollState()).To(Equal(Idle))
			r.settle()
			Expect(r.p.Offset()).To(Equal(r.p.InitialOffset()))
		})
	})

	Describe("keys", func() {
		It("steps in both directions", func() {
			r = newRig(nil)
			Expect(r.p.HandleKey(KeyDown)).To(BeTrue())
			r.settle()
			Expect(r.p.Value()).To(Equal(51))

			Expect(r.p.HandleKey(KeyUp)).To(BeTrue())
			r.settle()
			Expect(r.p.Value()).To(Equal(50))
		})

		It("refuses to step past a bound without wrapping", func() {
			r = newRig(func(c *Config) {
				c.Wrap = false
				c.Value = 100
			})
			Expect(r.p.HandleKey(KeyDown)).To(BeFalse())
			Expect(r.p.HandleKey(KeyUp)).To(BeTrue())
			r.settle()
			Expect(r.p.Value()).To(Equal(99))
		})

		It("wraps past max", func() {
			r = newRig(func(c *Config) { c.Value = 100 })
			Expect(r.p.HandleKey(KeyDown)).To(BeTrue())
			r.settle()
			Expect(r.p.Value()).To(Equal(1))
		})

		It("follows descending order", func() {
			r = newRig(func(c *Config) {
				c.Order = Descending
				c.Wrap = false
				c.Value = 1
			})
			Expect(r.p.HandleKey(KeyDown)).To(BeFalse())
			Expect(r.p.HandleKey(KeyUp)).To(BeTrue())
			r.settle()
			Expect(r.p.Value()).To(Equal(2))
		})

		It("does not step while a fling runs", func() {
			r = newRig(nil)
			r.p.HandleGestureStart(140)
			r.p.HandleGestureEnd(-3000, 140)
			Expect(r.p.HandleKey(KeyDown)).To(BeTrue())
			Expect(r.p.flinger.Mode()).To(Equal(scroller.ModeFling))
		})

		It("clicks on center", func() {
			r = newRig(nil)
			Expect(r.p.HandleKey(KeyCenter)).To(BeTrue())
			Expect(r.clicks).To(Equal(1))
		})
	})
})
