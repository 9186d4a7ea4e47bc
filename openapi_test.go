package main_test

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	It("should load and validate", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		Expect(doc.Validate(context.Background())).To(Succeed())
	})

	It("should document the core operations", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{
			"/auth/login",
			"/permissions",
			"/employees/{id}/history",
			"/schedulings/{id}/approve",
			"/budgets/{id}/submit",
			"/notice-board",
			"/logs",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "missing path %s", path)
		}
	})
})
