package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	UploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curio_uploads_total",
		Help: "Assets stored through the upload intake, by kind.",
	}, []string{"kind"})

	AssetsServedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curio_assets_served_total",
		Help: "Decrypt-and-serve asset reads that succeeded.",
	})

	DecryptFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curio_asset_decrypt_failures_total",
		Help: "Asset reads that failed decryption (corrupt or wrong key).",
	})

	CleanupErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "curio_asset_cleanup_errors_total",
		Help: "Best-effort asset deletes that failed after a catalog delete.",
	})

	CatalogDeletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "curio_catalog_deletes_total",
		Help: "Catalog delete operations, by collection.",
	}, []string{"collection"})
)
