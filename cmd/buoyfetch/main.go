// Command buoyfetch retrieves the latest standard meteorological and spectral
// wave reports for one NDBC buoy and writes them as a single JSON document for
// dashboards that need a fallback when live data is unavailable.
//
// It takes no arguments and is meant to be run by an external scheduler (cron,
// a CI workflow, a Kubernetes CronJob). Settings come from BUOY_* environment
// variables or an optional YAML file passed with --config.
package main

import "os"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
