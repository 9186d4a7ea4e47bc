package logger_test

import (
	"context"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/condosys/condo-management/pkg/logger"
)

func TestLoggerContext(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Logger Context Suite")
}

var _ = Describe("logger context", func() {
	It("should fall back to the service default on a bare context", func() {
		l := logger.From(context.Background())
		Expect(l).NotTo(BeNil())
		Expect(l).To(BeIdenticalTo(logger.LoggerWrapper()))
	})

	It("should return the logger stored by With", func() {
		ctx := logger.With(context.Background(), "traceID", "abc-123")

		l := logger.From(ctx)
		Expect(l).NotTo(BeNil())
		Expect(l).NotTo(BeIdenticalTo(logger.LoggerWrapper()))
		Expect(logger.From(ctx)).To(BeIdenticalTo(l))
	})

	It("should accumulate fields across nested With calls", func() {
		outer := logger.With(context.Background(), "traceID", "abc-123")
		inner := logger.With(outer, "user_id", 7)

		Expect(logger.From(inner)).NotTo(BeIdenticalTo(logger.From(outer)))
	})
})
