package bus

import (
	"go.uber.org/zap"
)

func (router *Router) PrintStatistics() {
	throughput := 0.0
	if router.runTime.Seconds() > 0 {
		throughput = float64(router.dispatchCount) / router.runTime.Seconds()
	}

	router.logger.Info("router statistics",
		zap.Duration("run_time", router.runTime),
		zap.Uint64("post_count", router.postCount),
		zap.Uint64("post_fails", router.postFails),
		zap.Uint64("dispatch_count", router.dispatchCount),
		zap.Uint64("dispatch_fails", router.dispatchFails),
		zap.Uint64("redeliveries", router.redeliveries),
		zap.Uint64("drops", router.drops),
		zap.Float64("throughput", throughput))
}
