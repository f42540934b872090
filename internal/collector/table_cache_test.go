package collector

import (
	"context"
	"errors"
	"time"

	cw "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"

	"github.com/inferenceops/endpoint-metrics/internal/constants"
	"github.com/inferenceops/endpoint-metrics/internal/metrictable"
)

var _ = Describe("TableCache", func() {
	var cache *TableCache

	sampleTable := func(v float64) *metrictable.Table {
		t := metrictable.New(constants.UtilizationMetricNames)
		t.Set(windowStart, "ep-1", constants.MetricCPUUtilization, v)
		return t
	}

	BeforeEach(func() {
		cache = NewTableCache(time.Minute, zap.NewNop())
	})

	Context("Basic operations", func() {
		It("should create a new empty cache", func() {
			Expect(cache).NotTo(BeNil())
			Expect(cache.Size()).To(BeZero())
		})

		It("should set and get tables successfully", func() {
			cache.Set(testParams(), sampleTable(42.0))

			retrieved, exists := cache.Get(testParams())
			Expect(exists).To(BeTrue())
			Expect(retrieved).NotTo(BeNil())
			v, ok := retrieved.Value(windowStart, "ep-1", constants.MetricCPUUtilization)
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(42.0))
		})

		It("should return false for unknown parameters", func() {
			p := testParams()
			p.EndpointName = "other-endpoint"

			retrieved, exists := cache.Get(p)
			Expect(exists).To(BeFalse())
			Expect(retrieved).To(BeNil())
		})

		It("should key entries by the full query window", func() {
			cache.Set(testParams(), sampleTable(42.0))

			shifted := testParams()
			shifted.EndTime = shifted.EndTime.Add(time.Minute)
			_, exists := cache.Get(shifted)
			Expect(exists).To(BeFalse())
		})

		It("should update existing entries", func() {
			cache.Set(testParams(), sampleTable(1.0))
			cache.Set(testParams(), sampleTable(2.0))

			retrieved, exists := cache.Get(testParams())
			Expect(exists).To(BeTrue())
			v, _ := retrieved.Value(windowStart, "ep-1", constants.MetricCPUUtilization)
			Expect(v).To(Equal(2.0))
			Expect(cache.Size()).To(Equal(1))
		})

		It("should invalidate entries", func() {
			cache.Set(testParams(), sampleTable(42.0))
			cache.Invalidate(testParams())

			_, exists := cache.Get(testParams())
			Expect(exists).To(BeFalse())
		})

		It("should clear all entries", func() {
			p2 := testParams()
			p2.EndpointName = "ep-2"
			cache.Set(testParams(), sampleTable(1.0))
			cache.Set(p2, sampleTable(2.0))

			cache.Clear()
			Expect(cache.Size()).To(BeZero())
		})
	})

	Context("Nil handling", func() {
		It("should not cache nil tables", func() {
			cache.Set(testParams(), nil)

			_, exists := cache.Get(testParams())
			Expect(exists).To(BeFalse())
			Expect(cache.Size()).To(BeZero())
		})
	})

	Context("Copy semantics", func() {
		It("should return a copy in Get, not the internal table", func() {
			cache.Set(testParams(), sampleTable(42.0))

			first, _ := cache.Get(testParams())
			first.Set(windowStart, "ep-1", constants.MetricCPUUtilization, 99.0)

			second, _ := cache.Get(testParams())
			v, _ := second.Value(windowStart, "ep-1", constants.MetricCPUUtilization)
			Expect(v).To(Equal(42.0))
		})
	})

	Context("Expiry", func() {
		It("should treat expired entries as missing", func() {
			cache = NewTableCache(10*time.Millisecond, zap.NewNop())
			cache.Set(testParams(), sampleTable(42.0))

			Eventually(func() bool {
				_, exists := cache.Get(testParams())
				return exists
			}, time.Second, 5*time.Millisecond).Should(BeFalse())
		})

		It("should remove expired entries on Cleanup", func() {
			cache = NewTableCache(10*time.Millisecond, zap.NewNop())
			cache.Set(testParams(), sampleTable(42.0))

			time.Sleep(30 * time.Millisecond)
			Expect(cache.Cleanup()).To(Equal(1))
			Expect(cache.Size()).To(BeZero())
		})
	})

	Context("TTL validation", func() {
		It("should fall back to the default TTL for non-positive values", func() {
			cache = NewTableCache(0, zap.NewNop())
			Expect(cache.ttl).To(Equal(defaultCacheTTL))

			cache = NewTableCache(-time.Second, zap.NewNop())
			Expect(cache.ttl).To(Equal(defaultCacheTTL))
		})
	})
})

var _ = Describe("Collector with cache", func() {
	It("should skip the backend on a cache hit", func() {
		api := &fakeAPI{}
		c := newTestCollector(api, WithCache(time.Minute))

		first := c.EndpointMetrics(context.Background(), testParams())
		Expect(first).NotTo(BeNil())
		callsAfterFirst := len(api.statsInputs) + len(api.dataInputs)
		Expect(callsAfterFirst).To(Equal(11))

		second := c.EndpointMetrics(context.Background(), testParams())
		Expect(second).NotTo(BeNil())
		Expect(len(api.statsInputs) + len(api.dataInputs)).To(Equal(callsAfterFirst))
	})

	It("should not cache failed retrievals", func() {
		api := &fakeAPI{
			statsFn: func(in *cw.GetMetricStatisticsInput) (*cw.GetMetricStatisticsOutput, error) {
				return nil, errors.New("backend down")
			},
		}
		c := newTestCollector(api, WithCache(time.Minute))

		Expect(c.EndpointMetrics(context.Background(), testParams())).To(BeNil())
		Expect(c.EndpointMetrics(context.Background(), testParams())).To(BeNil())
		// both invocations hit the backend
		Expect(len(api.statsInputs)).To(Equal(2))
	})
})
