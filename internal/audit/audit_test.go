package audit_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/condosys/condo-management/internal/audit"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Suite")
}

var _ = Describe("Builder", func() {
	It("should collect only fields that changed", func() {
		b := audit.NewBuilder()
		b.Field("name", audit.String("Porteiro"), audit.String("Zelador"))
		b.Field("phone", audit.String("1199"), audit.String("1199"))
		b.Field("email", nil, audit.String("novo@condo.local"))

		changes := b.Changes()
		Expect(changes).To(HaveLen(2))
		Expect(changes[0].Field).To(Equal("name"))
		Expect(changes[1].Field).To(Equal("email"))
	})

	It("should treat two nils as unchanged", func() {
		b := audit.NewBuilder()
		b.Field("termination_date", nil, nil)
		Expect(b.Changes()).To(BeEmpty())
	})

	It("should report no changes for an untouched builder", func() {
		Expect(audit.NewBuilder().Changes()).To(BeEmpty())
	})
})

var _ = Describe("Serialization helpers", func() {
	Describe("Cents", func() {
		It("should render cents with two decimals", func() {
			Expect(*audit.Cents(120000)).To(Equal("1200.00"))
			Expect(*audit.Cents(5)).To(Equal("0.05"))
			Expect(*audit.Cents(100050)).To(Equal("1000.50"))
		})

		It("should keep the sign in front", func() {
			Expect(*audit.Cents(-12345)).To(Equal("-123.45"))
		})

		It("should pass nil pointers through", func() {
			Expect(audit.CentsPtr(nil)).To(BeNil())
		})
	})

	Describe("Date and Time", func() {
		It("should render dates as yyyy-mm-dd", func() {
			d := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
			Expect(*audit.Date(d)).To(Equal("2025-03-14"))
		})

		It("should render timestamps as RFC3339 in UTC", func() {
			loc := time.FixedZone("BRT", -3*3600)
			t := time.Date(2025, 3, 14, 9, 0, 0, 0, loc)
			Expect(*audit.Time(t)).To(Equal("2025-03-14T12:00:00Z"))
		})
	})

	Describe("Int and Bool", func() {
		It("should render numbers and booleans as text", func() {
			Expect(*audit.Int(42)).To(Equal("42"))
			Expect(*audit.Bool(true)).To(Equal("true"))
			Expect(*audit.Bool(false)).To(Equal("false"))
		})
	})
})
