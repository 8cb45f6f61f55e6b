package access

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAccess(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Access Module Suite")
}

var _ = Describe("Key", func() {
	It("should join the triple with dots", func() {
		k := NewKey("nova", "weather", ActionWrite)
		Expect(k.String()).To(Equal("nova.weather.write"))
	})

	It("should round-trip through ParseKey", func() {
		k, err := ParseKey("nova.weather.write")
		Expect(err).NotTo(HaveOccurred())
		Expect(k).To(Equal(Key{App: "nova", Resource: "weather", Action: "write"}))
		Expect(k.String()).To(Equal("nova.weather.write"))
	})

	It("should reject keys missing parts", func() {
		for _, bad := range []string{"", "nova", "nova.weather", "nova..write", ".weather.write", "nova.weather."} {
			_, err := ParseKey(bad)
			Expect(err).To(HaveOccurred(), "expected %q to be invalid", bad)
		}
	})

	Describe("write-class detection", func() {
		It("should classify by structured action first", func() {
			Expect(IsWriteClassKey("nova.weather.write")).To(BeTrue())
			Expect(IsWriteClassKey("nova.system.admin")).To(BeTrue())
			Expect(IsWriteClassKey("nova.dashboard.manage_config")).To(BeTrue())
			Expect(IsWriteClassKey("nova.weather.read")).To(BeFalse())
		})

		It("should fall back to suffix matching for non-triple keys", func() {
			Expect(IsWriteClassKey("legacy.key.with.extra.write")).To(BeTrue())
			Expect(IsWriteClassKey("legacy.key.with.extra.read")).To(BeFalse())
		})
	})
})
