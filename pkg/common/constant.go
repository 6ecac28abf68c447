package common

const (
	EnvKeyGoEnv string = "GO_ENV"

	EnvKeyRunIntegrationTests string = "RUN_INTEGRATION_TESTS"

	EnvKeyFleetDBType string = "FLEET_DB_TYPE"
	EnvKeyFleetDbPath string = "FLEET_DB_PATH"

	EnvKeyFleetHttpHostPort string = "FLEET_HTTP_HOST_PORT"

	EnvKeyFleetStaleAfter     string = "FLEET_STALE_AFTER"
	EnvKeyFleetOfflineAfter   string = "FLEET_OFFLINE_AFTER"
	EnvKeyFleetKindThresholds string = "FLEET_KIND_THRESHOLDS"
	EnvKeyFleetSweepPeriod    string = "FLEET_SWEEP_PERIOD"

	EnvKeyFleetMirrorQueue string = "FLEET_MIRROR_QUEUE"

	EnvKeyFleetDefaultRate  string = "FLEET_DEFAULT_RATE"
	EnvKeyFleetDefaultBurst string = "FLEET_DEFAULT_BURST"

	LoggerNameFleetCore     string = "fleet_core"
	LoggerNameRestfulServer string = "restful_server"
	LoggerFieldCategory     string = "category"
	LoggerCategoryLiveness  string = "liveness"
	LoggerCategoryRollup    string = "rollup"
	LoggerCategorySweep     string = "sweep"
	LoggerCategoryMirror    string = "mirror"
	LoggerCategoryFeed      string = "feed"
)
