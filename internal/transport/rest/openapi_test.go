package rest_test

import (
	"context"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Transport Suite")
}

var _ = Describe("OpenAPI document", func() {
	var doc *openapi3.T

	BeforeEach(func() {
		loader := openapi3.NewLoader()
		var err error
		doc, err = loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
	})

	It("is a valid OpenAPI 3 document", func() {
		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("documents the session bootstrap endpoint", func() {
		path := doc.Paths.Find("/session")
		Expect(path).NotTo(BeNil())
		Expect(path.Get).NotTo(BeNil())
	})

	It("documents the override operations", func() {
		path := doc.Paths.Find("/weather/locations/{id}/override")
		Expect(path).NotTo(BeNil())
		Expect(path.Patch).NotTo(BeNil())
		Expect(path.Delete).NotTo(BeNil())
	})

	It("requires auth on every mutating operation", func() {
		for route, item := range doc.Paths.Map() {
			if route == "/auth/login" || route == "/auth/refresh" || route == "/auth/logout" {
				continue
			}
			for _, op := range []*openapi3.Operation{item.Post, item.Put, item.Patch, item.Delete} {
				if op == nil {
					continue
				}
				Expect(op.Security).NotTo(BeNil(), "route %s", route)
			}
		}
	})

	It("keeps the override wrapper schema aligned with the wire format", func() {
		schema := doc.Components.Schemas["OverrideWrapper"]
		Expect(schema).NotTo(BeNil())
		Expect(schema.Value.Required).To(ContainElements("originalValue", "overriddenValue", "isOverridden"))
	})
})
