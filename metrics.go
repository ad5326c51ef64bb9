package cqlwire

import (
	"fmt"

	"github.com/rcrowley/go-metrics"
)

func getOrRegisterHistogram(name string, r metrics.Registry) metrics.Histogram {
	return r.GetOrRegister(name, func() metrics.Histogram {
		return metrics.NewHistogram(metrics.NewExpDecaySample(1028, 0.015))
	}).(metrics.Histogram)
}

func getMetricNameForOpcode(name string, op Opcode) string {
	return fmt.Sprintf(name+"-for-opcode-%s", op)
}

func getOrRegisterOpcodeMeter(name string, op Opcode, r metrics.Registry) metrics.Meter {
	return metrics.GetOrRegisterMeter(getMetricNameForOpcode(name, op), r)
}
