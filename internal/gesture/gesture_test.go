package gesture_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/hashviz/internal/gesture"
)

var _ = Describe("Tracker", func() {
	var (
		tr gesture.Tracker
		t0 time.Time
	)

	BeforeEach(func() {
		tr = gesture.Tracker{}
		t0 = time.Unix(1700000000, 0)
	})

	It("ignores the first sample", func() {
		speed, ok := tr.Sample(500, 500, t0)
		Expect(ok).To(BeFalse())
		Expect(speed).To(BeZero())
		Expect(tr.Samples()).To(Equal(1))
	})

	It("measures pixels per millisecond", func() {
		tr.Sample(0, 0, t0)
		speed, ok := tr.Sample(30, 40, t0.Add(10*time.Millisecond))
		Expect(ok).To(BeTrue())
		Expect(speed).To(BeNumerically("~", 5.0, 1e-9))
		Expect(tr.Speed()).To(Equal(speed))
	})

	It("floors the elapsed time at one millisecond", func() {
		tr.Sample(0, 0, t0)
		speed, ok := tr.Sample(100, 0, t0)
		Expect(ok).To(BeTrue())
		Expect(speed).To(BeNumerically("~", 100.0, 1e-9))

		speed, _ = tr.Sample(150, 0, t0.Add(100*time.Microsecond))
		Expect(speed).To(BeNumerically("~", 50.0, 1e-9))
	})
})

var _ = Describe("Trigger", func() {
	var (
		trig *gesture.Trigger
		t0   time.Time
	)

	BeforeEach(func() {
		trig = gesture.NewTrigger(gesture.DefaultThreshold, gesture.DefaultCooldown)
		t0 = time.Unix(1700000000, 0)
	})

	It("starts locked and never fires while locked", func() {
		Expect(trig.State()).To(Equal(gesture.Locked))
		Expect(trig.Observe(1000, t0)).To(BeFalse())
		Expect(trig.State()).To(Equal(gesture.Locked))
	})

	It("unlocks only once", func() {
		Expect(trig.Unlock()).To(BeTrue())
		Expect(trig.State()).To(Equal(gesture.Armed))
		Expect(trig.Unlock()).To(BeFalse())
	})

	Context("when armed", func() {
		BeforeEach(func() {
			trig.Unlock()
		})

		It("stays armed below the threshold", func() {
			Expect(trig.Observe(gesture.DefaultThreshold-0.1, t0)).To(BeFalse())
			Expect(trig.State()).To(Equal(gesture.Armed))
			Expect(trig.Cooling(t0)).To(BeFalse())
		})

		It("fires exactly once at the threshold", func() {
			Expect(trig.Observe(gesture.DefaultThreshold, t0)).To(BeTrue())
			Expect(trig.State()).To(Equal(gesture.Fired))
			Expect(trig.Cooling(t0.Add(time.Second))).To(BeTrue())

			Expect(trig.Observe(500, t0.Add(time.Second))).To(BeFalse())
		})

		It("never re-arms after the cooldown elapses", func() {
			Expect(trig.Observe(200, t0)).To(BeTrue())

			later := t0.Add(gesture.DefaultCooldown + time.Millisecond)
			Expect(trig.Cooling(later)).To(BeFalse())
			Expect(trig.Observe(200, later)).To(BeFalse())
			Expect(trig.State()).To(Equal(gesture.Fired))
		})
	})

	It("reports readable state names", func() {
		Expect(gesture.Locked.String()).To(Equal("locked"))
		Expect(gesture.Armed.String()).To(Equal("armed"))
		Expect(gesture.Fired.String()).To(Equal("fired"))
		Expect(gesture.State(9).String()).To(Equal("State(9)"))
	})
})
