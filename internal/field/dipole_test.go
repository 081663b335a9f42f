package field_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/efield/internal/field"
)

var _ = Describe("Dipole field", func() {
	var (
		charges field.ChargeSet
		eval    field.Evaluator
	)

	BeforeEach(func() {
		charges = field.Dipole(6, 1e-9)
		eval = field.NewEvaluator()
	})

	It("places the positive charge on +x", func() {
		Expect(charges.Len()).To(Equal(2))
		Expect(charges.At(0).Position).To(Equal(field.Vec3{X: 3}))
		Expect(charges.At(0).Value).To(BeNumerically(">", 0))
		Expect(charges.At(1).Position).To(Equal(field.Vec3{X: -3}))
		Expect(charges.At(1).Value).To(BeNumerically("<", 0))
	})

	It("points from the positive charge to the negative one at the origin", func() {
		v := eval.At(field.Vec3{}, charges)
		Expect(v.X).To(BeNumerically("~", -2.0, 1e-12))
		Expect(v.Y).To(BeZero())
		Expect(v.Z).To(BeZero())
	})

	It("is mirror symmetric across the x=0 plane", func() {
		a := eval.At(field.Vec3{X: 1.5, Y: 2, Z: -1}, charges)
		b := eval.At(field.Vec3{X: -1.5, Y: 2, Z: -1}, charges)
		Expect(a.X).To(BeNumerically("~", b.X, 1e-12))
		Expect(a.Y).To(BeNumerically("~", -b.Y, 1e-12))
		Expect(a.Z).To(BeNumerically("~", -b.Z, 1e-12))
	})

	It("has zero potential on the bisecting plane", func() {
		Expect(eval.Potential(field.Vec3{Y: 4, Z: 2}, charges)).To(BeNumerically("~", 0, 1e-12))
	})

	DescribeTable("stays finite",
		func(p field.Vec3) {
			v := eval.At(p, charges)
			Expect(v.IsFinite()).To(BeTrue())
			Expect(math.IsNaN(v.Length())).To(BeFalse())
		},
		Entry("on the positive charge", field.Vec3{X: 3}),
		Entry("on the negative charge", field.Vec3{X: -3}),
		Entry("just off a charge", field.Vec3{X: 3 + 1e-12}),
		Entry("far away", field.Vec3{X: 1e6, Y: -1e6}),
	)
})
