package consts

const (
	// DashboardCacheKey dashboard:<brand>:<query digest>
	DashboardCacheKey = "dashboard:cache:"
	// DashboardBrandKeysKey set of cache keys written for a brand
	DashboardBrandKeysKey = "dashboard:keys:"
	// DashboardSyncedKey marker set after a brand was re-warmed, expires after synced_ttl
	DashboardSyncedKey = "dashboard:synced:"
	// DashboardDirtyKey set of brand ids whose source rows changed
	DashboardDirtyKey = "dashboard:dirty"
)

const (
	DashboardWarmLock = "dashboard:warm:lock"
)

// AllBrands cache segment used when the dashboard spans every brand
const AllBrands = "all"
