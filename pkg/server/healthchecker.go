package server

import "context"

type HealthChecker interface {
	Healthy(ctx context.Context) bool
}

type OkHealthChecker struct {
}

func NewOkHealthChecker() *OkHealthChecker {
	return &OkHealthChecker{}
}

func (hc *OkHealthChecker) Healthy(ctx context.Context) bool {
	return true
}

// Indexer is anything that builds an index before it can serve.
type Indexer interface {
	Indexed() bool
}

// IndexHealthChecker is healthy once its indexer has completed a build.
type IndexHealthChecker struct {
	indexer Indexer
}

func NewIndexHealthChecker(indexer Indexer) *IndexHealthChecker {
	return &IndexHealthChecker{indexer: indexer}
}

func (hc *IndexHealthChecker) Healthy(ctx context.Context) bool {
	return ctx.Err() == nil && hc.indexer.Indexed()
}
