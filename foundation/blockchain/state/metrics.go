package state

import (
	"github.com/ardanlabs/crosspay/foundation/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

var recordsAccepted = metrics.Auto().NewCounter(prometheus.CounterOpts{
	Name: "crosspay_records_accepted_total",
	Help: "Number of records accepted into the mempool",
})

var recordsRejected = metrics.Auto().NewCounter(prometheus.CounterOpts{
	Name: "crosspay_records_rejected_total",
	Help: "Number of records rejected at submission",
})

var recordsMined = metrics.Auto().NewCounter(prometheus.CounterOpts{
	Name: "crosspay_records_mined_total",
	Help: "Number of records included in mined blocks",
})

var blocksMined = metrics.Auto().NewCounter(prometheus.CounterOpts{
	Name: "crosspay_blocks_mined_total",
	Help: "Number of blocks mined and appended to the chain",
})

var chainHeight = metrics.Auto().NewGauge(prometheus.GaugeOpts{
	Name: "crosspay_chain_height",
	Help: "Number of blocks in the chain including genesis",
})
